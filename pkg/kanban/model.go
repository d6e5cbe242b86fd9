// Package kanban implements goal boards: goals hold ordered columns which hold
// ordered tasks. It owns the reorder and move rules used by drag and drop and
// by every other surface that edits boards.
package kanban

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/tempo/pkg/palette"
)

const (
	// MaxGoals caps the number of goals on a board.
	MaxGoals = 10
	// MaxColumns caps the number of columns in one goal.
	MaxColumns = 7
	// NewColumnTitle is used when a column is added without a title.
	NewColumnTitle = "New Column"
	// DefaultGoalColor is used when a goal is created without a color.
	DefaultGoalColor = palette.Orange
	// DefaultColumnColor is the color of new columns.
	DefaultColumnColor = palette.Gray
)

var (
	// ErrNotFound is returned when a goal, column or task id is unknown.
	ErrNotFound = errors.New("kanban: not found")
	// ErrTitleRequired is returned when a title is empty after trimming.
	ErrTitleRequired = errors.New("kanban: title is required")
	// ErrGoalLimit is returned when adding a goal past MaxGoals.
	ErrGoalLimit = errors.New("kanban: goal limit reached")
	// ErrColumnLimit is returned when adding a column past MaxColumns.
	ErrColumnLimit = errors.New("kanban: column limit reached")
	// ErrInvalidColor is returned for colors outside the palette.
	ErrInvalidColor = errors.New("kanban: invalid color")
)

// NewID generates entity identifiers.
var NewID = uuid.NewString

// Task is a card on a goal board.
type Task struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Color       palette.Key `json:"color" yaml:"color"`
}

// Column is an ordered list of tasks.
type Column struct {
	ID    string      `json:"id" yaml:"id"`
	Title string      `json:"title" yaml:"title"`
	Color palette.Key `json:"color" yaml:"color"`
	Tasks []Task      `json:"tasks" yaml:"tasks"`
}

// Goal is a titled board of columns.
type Goal struct {
	ID      string      `json:"id" yaml:"id"`
	Title   string      `json:"title" yaml:"title"`
	Color   palette.Key `json:"color" yaml:"color"`
	Columns []Column    `json:"columns" yaml:"columns"`
}

// DefaultColumns returns fresh To Do, In Progress and Done columns.
func DefaultColumns() []Column {
	titles := []string{"To Do", "In Progress", "Done"}
	cols := make([]Column, len(titles))
	for i, title := range titles {
		cols[i] = Column{ID: NewID(), Title: title, Color: DefaultColumnColor, Tasks: []Task{}}
	}
	return cols
}

// NewGoal builds a goal with default columns. The title is trimmed and must
// not be empty.
func NewGoal(title string, color palette.Key) (Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, ErrTitleRequired
	}
	if color == "" {
		color = DefaultGoalColor
	}
	if !color.Valid() {
		return Goal{}, ErrInvalidColor
	}
	return Goal{ID: NewID(), Title: title, Color: color, Columns: DefaultColumns()}, nil
}

// Clone deep copies the goal so the copy can be handed to another goroutine.
func (g Goal) Clone() Goal {
	out := g
	out.Columns = make([]Column, len(g.Columns))
	for i, c := range g.Columns {
		out.Columns[i] = c
		out.Columns[i].Tasks = append([]Task(nil), c.Tasks...)
		if out.Columns[i].Tasks == nil {
			out.Columns[i].Tasks = []Task{}
		}
	}
	return out
}

// TaskCount is the number of tasks across all columns.
func (g *Goal) TaskCount() int {
	n := 0
	for _, c := range g.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Column finds a column by id.
func (g *Goal) Column(id string) (*Column, int, bool) {
	for i := range g.Columns {
		if g.Columns[i].ID == id {
			return &g.Columns[i], i, true
		}
	}
	return nil, -1, false
}

// FindTask returns the column and task indexes of a task.
func (g *Goal) FindTask(id string) (int, int, bool) {
	for ci, c := range g.Columns {
		for ti, t := range c.Tasks {
			if t.ID == id {
				return ci, ti, true
			}
		}
	}
	return -1, -1, false
}

// Task returns a pointer to a task by id.
func (g *Goal) Task(id string) (*Task, bool) {
	ci, ti, ok := g.FindTask(id)
	if !ok {
		return nil, false
	}
	return &g.Columns[ci].Tasks[ti], true
}

func requireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}
