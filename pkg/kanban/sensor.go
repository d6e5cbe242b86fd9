package kanban

const (
	// TaskActivationDistance is the pointer travel, in cells, before a task or
	// column press becomes a drag.
	TaskActivationDistance = 5
	// GoalActivationDistance is the same threshold for the goal list.
	GoalActivationDistance = 8
)

// Point is a pointer position in cells.
type Point struct {
	X int
	Y int
}

// Sensor separates clicks from drags: a press only turns into a drag once
// the pointer travels Distance cells from where it went down.
type Sensor struct {
	Distance int

	id      DragID
	origin  Point
	pressed bool
	active  bool
}

// Press records a pointer down over id.
func (s *Sensor) Press(id DragID, at Point) {
	s.id = id
	s.origin = at
	s.pressed = true
	s.active = false
}

// Move reports whether this motion activates the drag. It returns true only
// on the crossing motion.
func (s *Sensor) Move(at Point) bool {
	if !s.pressed || s.active {
		return false
	}
	dx, dy := at.X-s.origin.X, at.Y-s.origin.Y
	if dx*dx+dy*dy < s.Distance*s.Distance {
		return false
	}
	s.active = true
	return true
}

// Release ends the gesture. It returns the pressed id and whether the
// gesture was a drag rather than a click.
func (s *Sensor) Release() (DragID, bool) {
	id, dragged := s.id, s.active
	s.Reset()
	return id, dragged
}

// Pressed returns the id under the pointer while a press is held.
func (s *Sensor) Pressed() (DragID, bool) {
	return s.id, s.pressed
}

// Dragging reports whether the current press has activated.
func (s *Sensor) Dragging() bool {
	return s.active
}

// Reset drops any press in progress.
func (s *Sensor) Reset() {
	s.id = ""
	s.pressed = false
	s.active = false
}
