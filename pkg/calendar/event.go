// Package calendar holds calendar events and the week grid interaction:
// placing events on the grid and turning pointer drags into new intervals.
package calendar

import (
	"errors"
	"strings"
	"time"

	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

const (
	// DefaultColor paints standalone events created without a color.
	DefaultColor = palette.Blue
	// DefaultGoalColor paints goal linked events whose goal color is unknown.
	DefaultGoalColor = palette.Orange
	// UntitledTitle replaces blank titles from the quick add popover.
	UntitledTitle = "(No title)"
)

var (
	// ErrInvalidInterval is returned when an event is shorter than one slot.
	ErrInvalidInterval = errors.New("calendar: event must last at least one slot")
	// ErrTitleRequired is returned by the full form for blank titles.
	ErrTitleRequired = errors.New("calendar: title is required")
	// ErrNotFound is returned for unknown event ids.
	ErrNotFound = errors.New("calendar: event not found")
)

// Link ties an event to the board. It is one of Standalone, GoalLinked or
// TaskLinked.
type Link interface {
	// Color is the palette key the event is drawn with.
	Color() palette.Key
	link()
}

// Standalone is an event not tied to any goal.
type Standalone struct {
	Paint palette.Key
}

// GoalLinked is an event scheduled for a goal.
type GoalLinked struct {
	GoalID    string
	GoalColor palette.Key
}

// TaskLinked is an event scheduled for a task of a goal.
type TaskLinked struct {
	GoalID    string
	TaskID    string
	GoalColor palette.Key
	TaskColor palette.Key
}

func (Standalone) link() {}
func (GoalLinked) link() {}
func (TaskLinked) link() {}

// Color implements Link.
func (s Standalone) Color() palette.Key {
	if s.Paint == "" {
		return DefaultColor
	}
	return s.Paint
}

// Color implements Link.
func (g GoalLinked) Color() palette.Key {
	if g.GoalColor == "" {
		return DefaultGoalColor
	}
	return g.GoalColor
}

// Color implements Link. The task color wins over the goal color.
func (t TaskLinked) Color() palette.Key {
	if t.TaskColor != "" {
		return t.TaskColor
	}
	return GoalLinked{GoalColor: t.GoalColor}.Color()
}

// Event is a titled interval on the calendar.
type Event struct {
	ID            string
	Title         string
	Description   string
	Start         time.Time
	End           time.Time
	Notifications []time.Time
	Link          Link
}

// Color is the palette key the event is drawn with.
func (e Event) Color() palette.Key {
	if e.Link == nil {
		return DefaultColor
	}
	return e.Link.Color()
}

// Duration is End - Start.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Validate checks the event's title and interval. Events last at least one
// 15 minute slot.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if e.End.Sub(e.Start) < timegrid.SlotDuration {
		return ErrInvalidInterval
	}
	return nil
}

// Span returns the event's rows on its start day.
func (e Event) Span() (timegrid.Slot, timegrid.Slot) {
	return timegrid.RowSpan(e.Start, e.End)
}
