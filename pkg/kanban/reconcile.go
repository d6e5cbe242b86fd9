package kanban

// ArrayMove removes the item at from and reinserts it at to, where to is an
// index into the list as it was before the move. Out of range indexes leave
// the slice unchanged. The slice is modified in place and returned.
func ArrayMove[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return s
	}
	item := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = item
	return s
}

// Target is where a dragged task was dropped: onto another task, or onto a
// column's empty area when TaskID is blank.
type Target struct {
	ColumnID string
	TaskID   string
}

// TaskMove describes a reconciled task drop.
type TaskMove struct {
	TaskID     string
	FromColumn string
	ToColumn   string
	Index      int
}

// MoveTask applies a task drop to g. Within one column the task is reordered
// to the over task's index, or to the end when dropped on the column. Across
// columns the task is removed, repainted with the destination column's color
// and inserted at the over task's index or appended. Unknown ids and drops
// that change nothing return false.
func MoveTask(g *Goal, taskID string, to Target) (TaskMove, bool) {
	ci, ti, ok := g.FindTask(taskID)
	if !ok {
		return TaskMove{}, false
	}

	var (
		di      int
		overIdx = -1
	)
	switch {
	case to.TaskID != "":
		if to.TaskID == taskID {
			return TaskMove{}, false
		}
		di, overIdx, ok = g.FindTask(to.TaskID)
		if !ok {
			return TaskMove{}, false
		}
	case to.ColumnID != "":
		if _, di, ok = g.Column(to.ColumnID); !ok {
			return TaskMove{}, false
		}
	default:
		return TaskMove{}, false
	}

	src := &g.Columns[ci]
	dst := &g.Columns[di]
	move := TaskMove{TaskID: taskID, FromColumn: src.ID, ToColumn: dst.ID}

	if ci == di {
		target := overIdx
		if target < 0 {
			target = len(src.Tasks) - 1
		}
		if target == ti {
			return TaskMove{}, false
		}
		src.Tasks = ArrayMove(src.Tasks, ti, target)
		move.Index = target
		return move, true
	}

	task := src.Tasks[ti]
	src.Tasks = append(src.Tasks[:ti], src.Tasks[ti+1:]...)
	task.Color = dst.Color
	if overIdx < 0 || overIdx > len(dst.Tasks) {
		overIdx = len(dst.Tasks)
	}
	dst.Tasks = append(dst.Tasks, Task{})
	copy(dst.Tasks[overIdx+1:], dst.Tasks[overIdx:])
	dst.Tasks[overIdx] = task
	move.Index = overIdx
	return move, true
}

// MoveColumn reorders a column to the index of the over column.
func MoveColumn(g *Goal, columnID, overID string) bool {
	_, from, ok := g.Column(columnID)
	if !ok {
		return false
	}
	_, to, ok := g.Column(overID)
	if !ok || from == to {
		return false
	}
	g.Columns = ArrayMove(g.Columns, from, to)
	return true
}

// MoveGoal reorders a goal to the index of the over goal.
func MoveGoal(b *Board, goalID, overID string) bool {
	_, from, ok := b.Goal(goalID)
	if !ok {
		return false
	}
	_, to, ok := b.Goal(overID)
	if !ok || from == to {
		return false
	}
	b.Goals = ArrayMove(b.Goals, from, to)
	return true
}
