package kanban

import (
	"errors"
	"fmt"
)

// ErrNothingPending is returned by Confirm when no deletion was requested.
var ErrNothingPending = errors.New("kanban: no deletion pending")

// Deletion holds at most one destructive request awaiting confirmation.
// Goals and columns are only ever removed through Confirm.
type Deletion struct {
	kind     Kind
	goalID   string
	columnID string
}

// Removed reports what a confirmed deletion took off the board.
type Removed struct {
	Kind     Kind
	GoalID   string
	ColumnID string
	Title    string
}

// RequestGoal marks a goal for deletion, replacing any earlier request.
func (d *Deletion) RequestGoal(goalID string) {
	*d = Deletion{kind: KindGoal, goalID: goalID}
}

// RequestColumn marks a column for deletion, replacing any earlier request.
func (d *Deletion) RequestColumn(goalID, columnID string) {
	*d = Deletion{kind: KindColumn, goalID: goalID, columnID: columnID}
}

// Pending returns the kind and id awaiting confirmation.
func (d *Deletion) Pending() (Kind, string, bool) {
	switch d.kind {
	case KindGoal:
		return KindGoal, d.goalID, true
	case KindColumn:
		return KindColumn, d.columnID, true
	}
	return "", "", false
}

// Cancel drops the pending request.
func (d *Deletion) Cancel() {
	*d = Deletion{}
}

// Confirm performs the pending deletion against b. The request is cleared
// whether or not the target still exists.
func (d *Deletion) Confirm(b *Board) (Removed, error) {
	req := *d
	d.Cancel()
	switch req.kind {
	case KindGoal:
		g, err := b.DeleteGoal(req.goalID)
		if err != nil {
			return Removed{}, err
		}
		return Removed{Kind: KindGoal, GoalID: g.ID, Title: g.Title}, nil
	case KindColumn:
		g, _, ok := b.Goal(req.goalID)
		if !ok {
			return Removed{}, fmt.Errorf("goal %q: %w", req.goalID, ErrNotFound)
		}
		c, err := g.DeleteColumn(req.columnID)
		if err != nil {
			return Removed{}, err
		}
		return Removed{Kind: KindColumn, GoalID: g.ID, ColumnID: c.ID, Title: c.Title}, nil
	}
	return Removed{}, ErrNothingPending
}
