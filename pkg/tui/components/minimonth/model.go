package minimonth

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/timegrid"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
)

// headerLines is the month title plus the weekday names.
const headerLines = 2

// Model renders a month with the visible week highlighted. Clicking a day
// asks for the week containing it.
type Model struct {
	id     events.ComponentID
	opts   Options
	source func() []calendar.Event

	month  time.Time
	week   timegrid.Week
	now    time.Time
	bounds ui.Bounds
}

// New constructs a navigator for the month containing week's first day.
func New(id events.ComponentID, week timegrid.Week, now time.Time, startsOn time.Weekday, styles theme.GridTheme, source func() []calendar.Event) *Model {
	if id == "" {
		id = events.ComponentID("minimonth")
	}
	m := &Model{
		id:     id,
		source: source,
		now:    now,
		opts: Options{
			TitleStyle:  styles.Month,
			HeaderStyle: styles.Gutter,
			EmptyStyle:  styles.MonthDay,
			EventStyle:  styles.Day,
			TodayStyle:  styles.Today,
			WeekStyle:   styles.MonthWeek,
			StartsOn:    startsOn,
		},
	}
	m.SetWeek(week)
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetBounds implements ui.Component.
func (m *Model) SetBounds(b ui.Bounds) { m.bounds = b }

// SetWeek highlights week and shows its month.
func (m *Model) SetWeek(week timegrid.Week) {
	m.week = week
	start := week.Start()
	m.month = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
}

// SetNow updates the reference time used to mark today.
func (m *Model) SetNow(now time.Time) { m.now = now }

// Month is the month on display.
func (m *Model) Month() time.Time { return m.month }

// Update handles clicks on days and month paging.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.String() {
		case "pgup", "<":
			m.month = m.month.AddDate(0, -1, 0)
		case "pgdown", ">":
			m.month = m.month.AddDate(0, 1, 0)
		}
	case tea.MouseClickMsg:
		mouse := v.Mouse()
		if mouse.Button != tea.MouseLeft || !m.bounds.Contains(mouse.X, mouse.Y) {
			return m, nil
		}
		x, y := m.bounds.Local(mouse.X, mouse.Y)
		if day, ok := m.DayAt(x, y); ok {
			return m, events.Emit(events.DateSelectMsg{Component: m.id, Date: day})
		}
	}
	return m, nil
}

// DayAt resolves a position relative to the component into a date.
func (m *Model) DayAt(x, y int) (time.Time, bool) {
	row := y - headerLines
	col := x / cellWidth
	if row < 0 || col < 0 || col >= 7 || x%cellWidth == cellWidth-1 {
		return time.Time{}, false
	}
	weeks := Weeks(m.month, m.opts.StartsOn)
	if row >= len(weeks) || weeks[row][col] == 0 {
		return time.Time{}, false
	}
	return m.month.AddDate(0, 0, weeks[row][col]-1), true
}

// View implements ui.Component.
func (m *Model) View() string {
	busy := make(map[int]bool)
	if m.source != nil {
		for _, e := range m.source() {
			if e.Start.Year() == m.month.Year() && e.Start.Month() == m.month.Month() {
				busy[e.Start.Day()] = true
			}
		}
	}
	days := make([]Day, 0, DaysIn(m.month))
	for d := 1; d <= DaysIn(m.month); d++ {
		date := m.month.AddDate(0, 0, d-1)
		days = append(days, Day{
			Day:      d,
			HasEvent: busy[d],
			IsToday:  timegrid.SameDay(date, m.now),
			InWeek:   m.week.Contains(date),
		})
	}
	return Render(m.month, days, m.opts)
}
