package kanban

import (
	"fmt"
	"strings"

	"tableflip.dev/tempo/pkg/palette"
)

// Board is the ordered list of goals. Slice order is the display order.
type Board struct {
	Goals []Goal `json:"goals" yaml:"goals"`
}

// Clone deep copies the board.
func (b *Board) Clone() Board {
	out := Board{Goals: make([]Goal, len(b.Goals))}
	for i, g := range b.Goals {
		out.Goals[i] = g.Clone()
	}
	return out
}

// Goal finds a goal by id.
func (b *Board) Goal(id string) (*Goal, int, bool) {
	for i := range b.Goals {
		if b.Goals[i].ID == id {
			return &b.Goals[i], i, true
		}
	}
	return nil, -1, false
}

// Order returns goal ids in display order.
func (b *Board) Order() []string {
	ids := make([]string, len(b.Goals))
	for i, g := range b.Goals {
		ids[i] = g.ID
	}
	return ids
}

// TaskCount is the number of tasks across every goal.
func (b *Board) TaskCount() int {
	n := 0
	for i := range b.Goals {
		n += b.Goals[i].TaskCount()
	}
	return n
}

// AddGoal appends a new goal with the default columns.
func (b *Board) AddGoal(title string, color palette.Key) (Goal, error) {
	if len(b.Goals) >= MaxGoals {
		return Goal{}, ErrGoalLimit
	}
	g, err := NewGoal(title, color)
	if err != nil {
		return Goal{}, err
	}
	b.Goals = append(b.Goals, g)
	return g, nil
}

// RenameGoal changes a goal's title. Blank titles are refused and leave the
// goal untouched.
func (b *Board) RenameGoal(id, title string) error {
	g, _, ok := b.Goal(id)
	if !ok {
		return fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}
	t, err := requireTitle(title)
	if err != nil {
		return err
	}
	g.Title = t
	return nil
}

// RecolorGoal changes a goal's accent color.
func (b *Board) RecolorGoal(id string, color palette.Key) error {
	g, _, ok := b.Goal(id)
	if !ok {
		return fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}
	if !color.Valid() {
		return ErrInvalidColor
	}
	g.Color = color
	return nil
}

// DeleteGoal removes a goal, keeping the relative order of the rest.
func (b *Board) DeleteGoal(id string) (Goal, error) {
	_, i, ok := b.Goal(id)
	if !ok {
		return Goal{}, fmt.Errorf("goal %q: %w", id, ErrNotFound)
	}
	removed := b.Goals[i]
	b.Goals = append(b.Goals[:i], b.Goals[i+1:]...)
	return removed, nil
}

// AddColumn appends a column. A blank title becomes NewColumnTitle.
func (g *Goal) AddColumn(title string) (Column, error) {
	if len(g.Columns) >= MaxColumns {
		return Column{}, ErrColumnLimit
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = NewColumnTitle
	}
	c := Column{ID: NewID(), Title: title, Color: DefaultColumnColor, Tasks: []Task{}}
	g.Columns = append(g.Columns, c)
	return c, nil
}

// RenameColumn changes a column's title.
func (g *Goal) RenameColumn(id, title string) error {
	c, _, ok := g.Column(id)
	if !ok {
		return fmt.Errorf("column %q: %w", id, ErrNotFound)
	}
	t, err := requireTitle(title)
	if err != nil {
		return err
	}
	c.Title = t
	return nil
}

// RecolorColumn changes a column's color and repaints every task in it.
func (g *Goal) RecolorColumn(id string, color palette.Key) error {
	c, _, ok := g.Column(id)
	if !ok {
		return fmt.Errorf("column %q: %w", id, ErrNotFound)
	}
	if !color.Valid() {
		return ErrInvalidColor
	}
	c.Color = color
	for i := range c.Tasks {
		c.Tasks[i].Color = color
	}
	return nil
}

// DeleteColumn removes a column and the tasks in it.
func (g *Goal) DeleteColumn(id string) (Column, error) {
	_, i, ok := g.Column(id)
	if !ok {
		return Column{}, fmt.Errorf("column %q: %w", id, ErrNotFound)
	}
	removed := g.Columns[i]
	g.Columns = append(g.Columns[:i], g.Columns[i+1:]...)
	return removed, nil
}

// AddTask appends a task to a column. The task takes the column's color.
func (g *Goal) AddTask(columnID, title, description string) (Task, error) {
	c, _, ok := g.Column(columnID)
	if !ok {
		return Task{}, fmt.Errorf("column %q: %w", columnID, ErrNotFound)
	}
	t, err := requireTitle(title)
	if err != nil {
		return Task{}, err
	}
	task := Task{ID: NewID(), Title: t, Description: strings.TrimSpace(description), Color: c.Color}
	c.Tasks = append(c.Tasks, task)
	return task, nil
}

// EditTask replaces a task's title and description.
func (g *Goal) EditTask(id, title, description string) error {
	task, ok := g.Task(id)
	if !ok {
		return fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	t, err := requireTitle(title)
	if err != nil {
		return err
	}
	task.Title = t
	task.Description = strings.TrimSpace(description)
	return nil
}

// DeleteTask removes a task.
func (g *Goal) DeleteTask(id string) (Task, error) {
	ci, ti, ok := g.FindTask(id)
	if !ok {
		return Task{}, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	col := &g.Columns[ci]
	removed := col.Tasks[ti]
	col.Tasks = append(col.Tasks[:ti], col.Tasks[ti+1:]...)
	return removed, nil
}
