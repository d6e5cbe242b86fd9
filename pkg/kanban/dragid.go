package kanban

import "strings"

// Kind is the tier of a draggable entity.
type Kind string

const (
	KindTask   Kind = "task"
	KindColumn Kind = "column"
	KindGoal   Kind = "goal"
)

// DragID identifies a draggable or droppable entity as "<kind>:<id>".
// Position is never part of the identity.
type DragID string

// NewDragID builds the drag id for an entity.
func NewDragID(kind Kind, id string) DragID {
	return DragID(string(kind) + ":" + id)
}

// TaskDragID is NewDragID(KindTask, id).
func TaskDragID(id string) DragID { return NewDragID(KindTask, id) }

// ColumnDragID is NewDragID(KindColumn, id).
func ColumnDragID(id string) DragID { return NewDragID(KindColumn, id) }

// GoalDragID is NewDragID(KindGoal, id).
func GoalDragID(id string) DragID { return NewDragID(KindGoal, id) }

// Parse splits a drag id. Malformed ids report false.
func (d DragID) Parse() (Kind, string, bool) {
	kind, id, ok := strings.Cut(string(d), ":")
	if !ok || id == "" {
		return "", "", false
	}
	switch k := Kind(kind); k {
	case KindTask, KindColumn, KindGoal:
		return k, id, true
	default:
		return "", "", false
	}
}
