package calendar

import (
	"time"

	"tableflip.dev/tempo/pkg/timegrid"
)

// State is a DragSession's phase.
type State int

const (
	Idle State = iota
	Dragging
	Committed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Point is a viewport position in cells.
type Point struct {
	X int
	Y int
}

// Interval is a span on a single day of the week.
type Interval struct {
	Day      int
	StartRow timegrid.Slot
	EndRow   timegrid.Slot
	Start    time.Time
	End      time.Time
}

// Commit is emitted when a drag is released. Anchor is where the pointer was
// released, for positioning the quick add popover.
type Commit struct {
	Interval
	Anchor Point
}

// DragSession turns a press, moves and a release on one day column into a
// new event interval.
type DragSession struct {
	state State
	day   int
	start time.Time
	end   time.Time
}

// State returns the current phase.
func (s *DragSession) State() State {
	return s.state
}

// Active reports whether a drag is in progress.
func (s *DragSession) Active() bool {
	return s.state == Dragging
}

// Begin starts a drag on day at the given time. The start snaps down to its
// slot. It returns false when a drag is already running.
func (s *DragSession) Begin(day int, at time.Time) bool {
	if s.state == Dragging {
		return false
	}
	s.state = Dragging
	s.day = day
	s.start = timegrid.Floor(at)
	s.end = s.start
	return true
}

// Move extends the drag. Moves over another day are ignored and times before
// the start clamp to the start.
func (s *DragSession) Move(day int, at time.Time) {
	if s.state != Dragging || day != s.day {
		return
	}
	if at.Before(s.start) {
		s.end = s.start
		return
	}
	s.end = at
}

// Preview returns the interval currently covered by the drag.
func (s *DragSession) Preview() (Interval, bool) {
	if s.state != Dragging {
		return Interval{}, false
	}
	return s.interval(s.start, s.end), true
}

// Release finishes the drag. Intervals shorter than one slot grow to exactly
// one slot; longer ones round their end up to the next slot boundary.
func (s *DragSession) Release(anchor Point) (Commit, bool) {
	if s.state != Dragging {
		return Commit{}, false
	}
	end := s.end
	if end.Sub(s.start) < timegrid.SlotDuration {
		end = s.start.Add(timegrid.SlotDuration)
	} else {
		end = timegrid.Ceil(end)
	}
	s.state = Committed
	return Commit{Interval: s.interval(s.start, end), Anchor: anchor}, true
}

// Leave cancels a running drag without emitting anything. It reports
// whether a drag was cancelled.
func (s *DragSession) Leave() bool {
	if s.state != Dragging {
		return false
	}
	s.state = Cancelled
	return true
}

// Reset returns the session to Idle.
func (s *DragSession) Reset() {
	*s = DragSession{}
}

func (s *DragSession) interval(start, end time.Time) Interval {
	sr, er := timegrid.RowSpan(start, end)
	return Interval{Day: s.day, StartRow: sr, EndRow: er, Start: start, End: end}
}
