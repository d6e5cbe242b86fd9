// Package timegrid maps wall-clock times onto the calendar's 15 minute grid
// and back again.
package timegrid

import "time"

const (
	// SlotMinutes is the duration of one grid row.
	SlotMinutes = 15
	// SlotsPerDay is 24 hours * 4 slots per hour.
	SlotsPerDay = 96
	// DaysPerWeek is the number of day columns in a week window.
	DaysPerWeek = 7
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440
)

// SlotDuration is SlotMinutes as a time.Duration.
const SlotDuration = SlotMinutes * time.Minute

// Slot is a row index in [0, SlotsPerDay). A Slot of SlotsPerDay is only
// valid as an exclusive end row.
type Slot int

// Minutes returns the minutes from midnight at which the slot begins.
func (s Slot) Minutes() int {
	return int(s) * SlotMinutes
}

// Label formats the slot start as HH:MM.
func (s Slot) Label() string {
	m := s.Minutes()
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}

// MinutesOf returns minutes elapsed since midnight for t. Seconds are ignored.
func MinutesOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// RowForTime returns the row that contains t.
func RowForTime(t time.Time) Slot {
	return Slot(MinutesOf(t) / SlotMinutes)
}

// EndRowForTime returns the exclusive end row for an interval ending at t.
// An end on a slot boundary closes that slot; anything later rounds up.
func EndRowForTime(t time.Time) Slot {
	m := MinutesOf(t)
	return Slot((m + SlotMinutes - 1) / SlotMinutes)
}

// RowSpan returns the start row and exclusive end row covered by
// [start, end). The end row is always at least one past the start row and
// an end on a later day runs to the bottom of the grid.
func RowSpan(start, end time.Time) (Slot, Slot) {
	s := RowForTime(start)
	e := EndRowForTime(end)
	if end.After(start) && !SameDay(start, end) {
		e = SlotsPerDay
	}
	if e <= s {
		e = s + 1
	}
	if e > SlotsPerDay {
		e = SlotsPerDay
	}
	return s, e
}

// CellToTime converts a (day, row) cell of the week into the time the cell
// starts. The day must be in [0, DaysPerWeek); callers clamp.
func CellToTime(day int, row Slot, week Week) time.Time {
	base := week[day]
	m := row.Minutes()
	return time.Date(base.Year(), base.Month(), base.Day(), m/60, m%60, 0, 0, base.Location())
}

// Floor truncates t down to the start of its slot.
func Floor(t time.Time) time.Time {
	m := RowForTime(t).Minutes()
	return time.Date(t.Year(), t.Month(), t.Day(), m/60, m%60, 0, 0, t.Location())
}

// Ceil rounds t up to the next slot boundary. Boundaries are returned as is.
func Ceil(t time.Time) time.Time {
	f := Floor(t)
	if f.Equal(t) {
		return t
	}
	return f.Add(SlotDuration)
}

// ClampDay limits a day index to the week.
func ClampDay(day int) int {
	return clamp(day, 0, DaysPerWeek-1)
}

// ClampRow limits a row to the grid.
func ClampRow(row Slot) Slot {
	return Slot(clamp(int(row), 0, SlotsPerDay-1))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
