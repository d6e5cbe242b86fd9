package app

import (
	"time"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

// QuickAddEvent creates a standalone event from the quick add popover.
func (s *Service) QuickAddEvent(title string, start, end time.Time, color palette.Key) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.QuickSave(title, start, end, color)
}

// SaveEvent creates or updates an event from the full form.
func (s *Service) SaveEvent(e calendar.Event) (calendar.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Save(e)
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.events.Delete(id)
	return err
}

// Event returns one event.
func (s *Service) Event(id string) (calendar.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Get(id)
}

// EventsInWeek returns the events starting inside w.
func (s *Service) EventsInWeek(w timegrid.Week) []calendar.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.InWeek(w)
}

// LinkFor builds the link for an event scheduled against a goal or one of
// its tasks, carrying their current colors. Unknown ids give a standalone
// link in color.
func (s *Service) LinkFor(goalID, taskID string, color palette.Key) calendar.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, _, ok := s.board.Goal(goalID)
	if !ok {
		return calendar.Standalone{Paint: color}
	}
	if taskID != "" {
		if t, found := g.Task(taskID); found {
			return calendar.TaskLinked{GoalID: g.ID, TaskID: t.ID, GoalColor: g.Color, TaskColor: t.Color}
		}
	}
	return calendar.GoalLinked{GoalID: g.ID, GoalColor: g.Color}
}

// Events returns every event ordered by start time.
func (s *Service) Events() []calendar.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.List()
}

// DueEvents returns events with a notification in (after, until].
func (s *Service) DueEvents(after, until time.Time) []calendar.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Due(after, until)
}
