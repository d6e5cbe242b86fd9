package timegrid

import (
	"fmt"
	"strings"
	"time"
)

// Week is seven consecutive local dates normalised to midnight.
type Week [DaysPerWeek]time.Time

// WeekOf returns the calendar week containing ref, beginning on startsOn.
func WeekOf(ref time.Time, startsOn time.Weekday) Week {
	offset := (int(ref.Weekday()) - int(startsOn) + DaysPerWeek) % DaysPerWeek
	var w Week
	for i := range w {
		w[i] = time.Date(ref.Year(), ref.Month(), ref.Day()-offset+i, 0, 0, 0, 0, ref.Location())
	}
	return w
}

// Start is the first instant of the window.
func (w Week) Start() time.Time {
	return w[0]
}

// End is the exclusive end of the window, midnight after the last day.
func (w Week) End() time.Time {
	last := w[DaysPerWeek-1]
	return time.Date(last.Year(), last.Month(), last.Day()+1, 0, 0, 0, 0, last.Location())
}

// IndexOf returns the day index of t within the window or -1.
func (w Week) IndexOf(t time.Time) int {
	for i, d := range w {
		if SameDay(d, t) {
			return i
		}
	}
	return -1
}

// Contains reports whether t falls on one of the window's days.
func (w Week) Contains(t time.Time) bool {
	return w.IndexOf(t) >= 0
}

// Shift moves the window by whole weeks.
func (w Week) Shift(weeks int) Week {
	first := w[0]
	return WeekOf(time.Date(first.Year(), first.Month(), first.Day()+weeks*DaysPerWeek, 0, 0, 0, 0, first.Location()), first.Weekday())
}

// String renders the window as "Jan 2 - Jan 8, 2006".
func (w Week) String() string {
	first, last := w[0], w[DaysPerWeek-1]
	if first.Year() != last.Year() {
		return fmt.Sprintf("%s - %s", first.Format("Jan 2, 2006"), last.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s - %s", first.Format("Jan 2"), last.Format("Jan 2, 2006"))
}

// SameDay compares the calendar date of a and b in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Midnight returns the start of t's day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseWeekday accepts "monday" or "sunday" (any case, optional prefix).
func ParseWeekday(s string) (time.Weekday, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); {
	case v == "" || strings.HasPrefix("monday", v) && len(v) >= 3:
		return time.Monday, nil
	case strings.HasPrefix("sunday", v) && len(v) >= 3:
		return time.Sunday, nil
	default:
		return time.Monday, fmt.Errorf("timegrid: week must start on monday or sunday, got %q", s)
	}
}
