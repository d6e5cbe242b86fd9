package kanban

import "tableflip.dev/tempo/pkg/palette"

// Preview is the snapshot rendered as the floating drag overlay.
type Preview struct {
	ID     DragID
	Kind   Kind
	GoalID string
	Title  string
	Color  palette.Key
}

// Result describes a reconciled drop. Kind goal changes the goal order;
// task and column drops change the goal named by GoalID.
type Result struct {
	Kind   Kind
	GoalID string
	ID     string
	Task   TaskMove
}

// DragController runs one drag at a time against a board. It resolves the
// dragged entity at Start and reconciles the drop at End. Drops on unknown or
// malformed targets, or on a different goal's board, are no-ops.
type DragController struct {
	board   *Board
	preview Preview
	over    DragID
	active  bool
}

// NewDragController binds a controller to b.
func NewDragController(b *Board) *DragController {
	return &DragController{board: b}
}

// Start begins dragging id. It fails when id is malformed, unknown, or a
// drag is already running.
func (c *DragController) Start(id DragID) (Preview, bool) {
	if c.active {
		return Preview{}, false
	}
	kind, eid, ok := id.Parse()
	if !ok {
		return Preview{}, false
	}
	p := Preview{ID: id, Kind: kind}
	switch kind {
	case KindGoal:
		g, _, ok := c.board.Goal(eid)
		if !ok {
			return Preview{}, false
		}
		p.GoalID, p.Title, p.Color = g.ID, g.Title, g.Color
	case KindColumn:
		g, col, ok := c.findColumn(eid)
		if !ok {
			return Preview{}, false
		}
		p.GoalID, p.Title, p.Color = g.ID, col.Title, col.Color
	case KindTask:
		g, t, ok := c.findTask(eid)
		if !ok {
			return Preview{}, false
		}
		p.GoalID, p.Title, p.Color = g.ID, t.Title, t.Color
	}
	c.preview = p
	c.over = ""
	c.active = true
	return p, true
}

// Active returns the running drag's preview.
func (c *DragController) Active() (Preview, bool) {
	return c.preview, c.active
}

// Over records the entity currently under the pointer.
func (c *DragController) Over(id DragID) {
	if c.active {
		c.over = id
	}
}

// Hovered returns the last Over target.
func (c *DragController) Hovered() DragID {
	return c.over
}

// Cancel abandons the drag without touching the board.
func (c *DragController) Cancel() {
	c.active = false
	c.preview = Preview{}
	c.over = ""
}

// End drops the dragged entity on over and applies the matching move. An
// empty over falls back to the last Over target.
func (c *DragController) End(over DragID) (Result, bool) {
	if !c.active {
		return Result{}, false
	}
	p := c.preview
	if over == "" {
		over = c.over
	}
	c.Cancel()

	kind, oid, ok := over.Parse()
	if !ok {
		return Result{}, false
	}
	_, id, _ := p.ID.Parse()

	switch p.Kind {
	case KindGoal:
		if kind != KindGoal || !MoveGoal(c.board, id, oid) {
			return Result{}, false
		}
		return Result{Kind: KindGoal, GoalID: id, ID: id}, true

	case KindColumn:
		g, _, ok := c.board.Goal(p.GoalID)
		if !ok {
			return Result{}, false
		}
		switch kind {
		case KindColumn:
		case KindTask:
			ci, _, found := g.FindTask(oid)
			if !found {
				return Result{}, false
			}
			oid = g.Columns[ci].ID
		default:
			return Result{}, false
		}
		if !MoveColumn(g, id, oid) {
			return Result{}, false
		}
		return Result{Kind: KindColumn, GoalID: g.ID, ID: id}, true

	case KindTask:
		g, _, ok := c.board.Goal(p.GoalID)
		if !ok {
			return Result{}, false
		}
		var to Target
		switch kind {
		case KindTask:
			to.TaskID = oid
		case KindColumn:
			to.ColumnID = oid
		default:
			return Result{}, false
		}
		move, ok := MoveTask(g, id, to)
		if !ok {
			return Result{}, false
		}
		return Result{Kind: KindTask, GoalID: g.ID, ID: id, Task: move}, true
	}
	return Result{}, false
}

func (c *DragController) findColumn(id string) (*Goal, *Column, bool) {
	for i := range c.board.Goals {
		g := &c.board.Goals[i]
		if col, _, ok := g.Column(id); ok {
			return g, col, true
		}
	}
	return nil, nil, false
}

func (c *DragController) findTask(id string) (*Goal, *Task, bool) {
	for i := range c.board.Goals {
		g := &c.board.Goals[i]
		if t, ok := g.Task(id); ok {
			return g, t, true
		}
	}
	return nil, nil, false
}
