package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

// Book is the in-memory set of calendar events for a session.
type Book struct {
	events map[string]Event
	newID  func() string
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{events: make(map[string]Event), newID: uuid.NewString}
}

// QuickSave creates a standalone event from the quick add popover. Blank
// titles become UntitledTitle and a blank color becomes DefaultColor.
func (b *Book) QuickSave(title string, start, end time.Time, color palette.Key) (Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = UntitledTitle
	}
	if color == "" {
		color = DefaultColor
	}
	return b.Save(Event{Title: title, Start: start, End: end, Link: Standalone{Paint: color}})
}

// Save creates the event when it has no id and replaces the stored event
// otherwise.
func (b *Book) Save(e Event) (Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	e.Description = strings.TrimSpace(e.Description)
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if e.Link == nil {
		e.Link = Standalone{Paint: DefaultColor}
	}
	if e.ID == "" {
		e.ID = b.newID()
	} else if _, ok := b.events[e.ID]; !ok {
		return Event{}, fmt.Errorf("event %q: %w", e.ID, ErrNotFound)
	}
	if len(e.Notifications) > 0 {
		notes := make([]time.Time, len(e.Notifications))
		copy(notes, e.Notifications)
		sort.Slice(notes, func(i, j int) bool { return notes[i].Before(notes[j]) })
		e.Notifications = notes
	}
	b.events[e.ID] = e
	return e, nil
}

// Delete removes an event.
func (b *Book) Delete(id string) (Event, error) {
	e, ok := b.events[id]
	if !ok {
		return Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
	}
	delete(b.events, id)
	return e, nil
}

// Get returns an event by id.
func (b *Book) Get(id string) (Event, bool) {
	e, ok := b.events[id]
	return e, ok
}

// Len is the number of events.
func (b *Book) Len() int {
	return len(b.events)
}

// List returns every event ordered by start time.
func (b *Book) List() []Event {
	out := make([]Event, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// InWeek returns the events that start inside w.
func (b *Book) InWeek(w timegrid.Week) []Event {
	var out []Event
	for _, e := range b.List() {
		if w.Contains(e.Start) {
			out = append(out, e)
		}
	}
	return out
}

// Due returns events with a notification in (after, until].
func (b *Book) Due(after, until time.Time) []Event {
	var out []Event
	for _, e := range b.List() {
		for _, n := range e.Notifications {
			if n.After(after) && !n.After(until) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// UnlinkGoal turns events linked to goalID into standalone events keeping
// their color. It returns how many events changed.
func (b *Book) UnlinkGoal(goalID string) int {
	n := 0
	for id, e := range b.events {
		var linked string
		switch l := e.Link.(type) {
		case GoalLinked:
			linked = l.GoalID
		case TaskLinked:
			linked = l.GoalID
		}
		if linked != goalID || linked == "" {
			continue
		}
		e.Link = Standalone{Paint: e.Color()}
		b.events[id] = e
		n++
	}
	return n
}
