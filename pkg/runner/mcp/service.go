// Package mcp provides the Model Context Protocol server integration for tempo.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
)

// Service exposes goal board operations to MCP tools. Each call reloads the
// board first so edits made in a running TUI are seen, and every mutation is
// written through immediately so the TUI picks it up from the store.
type Service struct {
	App *app.Service
}

// ErrGoalNotFound is returned when a goal id is unknown.
var ErrGoalNotFound = errors.New("goal not found")

// ErrConfirmRequired is returned by DeleteGoal without confirm set.
var ErrConfirmRequired = errors.New("deleting a goal removes all of its tasks; call again with confirm=true")

// GoalSummary describes a goal and basic aggregate metadata.
type GoalSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Color   string `json:"color"`
	Columns int    `json:"columns"`
	Tasks   int    `json:"tasks"`
	Done    int    `json:"done"`
}

// NewService wraps svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

// ListGoals summarizes every goal in board order.
func (s *Service) ListGoals(ctx context.Context) []GoalSummary {
	s.refresh(ctx)
	board := s.App.Snapshot()
	out := make([]GoalSummary, 0, len(board.Goals))
	for i := range board.Goals {
		out = append(out, summarize(&board.Goals[i]))
	}
	return out
}

func summarize(g *kanban.Goal) GoalSummary {
	sum := GoalSummary{
		ID:      g.ID,
		Title:   g.Title,
		Color:   string(g.Color),
		Columns: len(g.Columns),
		Tasks:   g.TaskCount(),
	}
	if n := len(g.Columns); n > 0 {
		sum.Done = len(g.Columns[n-1].Tasks)
	}
	return sum
}

// Goal returns one goal with its columns and tasks.
func (s *Service) Goal(ctx context.Context, id string) (kanban.Goal, error) {
	s.refresh(ctx)
	g, ok := s.App.Goal(strings.TrimSpace(id))
	if !ok {
		return kanban.Goal{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
	}
	return g, nil
}

// CreateGoal adds a goal with the default columns.
func (s *Service) CreateGoal(ctx context.Context, title, color string) (kanban.Goal, error) {
	key, err := parseColor(color, kanban.DefaultGoalColor)
	if err != nil {
		return kanban.Goal{}, err
	}
	s.refresh(ctx)
	g, err := s.App.AddGoal(title, key)
	if err != nil {
		return kanban.Goal{}, err
	}
	return g, nil
}

// RenameGoal retitles a goal.
func (s *Service) RenameGoal(ctx context.Context, id, title string) (kanban.Goal, error) {
	s.refresh(ctx)
	if err := s.App.RenameGoal(id, title); err != nil {
		return kanban.Goal{}, err
	}
	return s.written(ctx, id)
}

// AddColumn appends a column to a goal.
func (s *Service) AddColumn(ctx context.Context, goalID, title string) (kanban.Goal, error) {
	s.refresh(ctx)
	if _, err := s.App.AddColumn(goalID, title); err != nil {
		return kanban.Goal{}, err
	}
	return s.written(ctx, goalID)
}

// AddTask appends a task to a column, the goal's first column when
// columnID is empty.
func (s *Service) AddTask(ctx context.Context, goalID, columnID, title, description string) (kanban.Task, error) {
	g, err := s.Goal(ctx, goalID)
	if err != nil {
		return kanban.Task{}, err
	}
	if columnID == "" {
		if len(g.Columns) == 0 {
			return kanban.Task{}, fmt.Errorf("goal %q has no columns", g.Title)
		}
		columnID = g.Columns[0].ID
	}
	t, err := s.App.AddTask(goalID, columnID, title, description)
	if err != nil {
		return kanban.Task{}, err
	}
	s.App.Flush()
	return t, nil
}

// MoveTask moves a task to the index overTask holds, or to the end of column
// when overTask is empty. The index is taken before the task is removed, so
// moving down within a column lands after overTask and moving up lands before
// it. A cross-column move takes the column's color.
func (s *Service) MoveTask(ctx context.Context, goalID, taskID, column, overTask string) (kanban.Goal, error) {
	if column == "" && overTask == "" {
		return kanban.Goal{}, errors.New("one of column or over_task is required")
	}
	s.refresh(ctx)
	if _, ok := s.App.MoveTask(goalID, taskID, kanban.Target{ColumnID: column, TaskID: overTask}); !ok {
		return kanban.Goal{}, fmt.Errorf("task %s could not be moved", taskID)
	}
	return s.written(ctx, goalID)
}

// MoveColumn moves a column to the position of over.
func (s *Service) MoveColumn(ctx context.Context, goalID, columnID, over string) (kanban.Goal, error) {
	s.refresh(ctx)
	if !s.App.MoveColumn(goalID, columnID, over) {
		return kanban.Goal{}, fmt.Errorf("column %s could not be moved", columnID)
	}
	return s.written(ctx, goalID)
}

// MoveGoal moves a goal to the position of over.
func (s *Service) MoveGoal(ctx context.Context, goalID, over string) ([]GoalSummary, error) {
	s.refresh(ctx)
	if !s.App.MoveGoal(goalID, over) {
		return nil, fmt.Errorf("goal %s could not be moved", goalID)
	}
	s.App.Flush()
	return s.ListGoals(ctx), nil
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, goalID, taskID string) (kanban.Goal, error) {
	s.refresh(ctx)
	if err := s.App.DeleteTask(goalID, taskID); err != nil {
		return kanban.Goal{}, err
	}
	return s.written(ctx, goalID)
}

// DeleteGoal removes a goal and its tasks. The caller must confirm, which
// mirrors the two-step confirmation of the UI.
func (s *Service) DeleteGoal(ctx context.Context, id string, confirm bool) (kanban.Removed, error) {
	if _, err := s.Goal(ctx, id); err != nil {
		return kanban.Removed{}, err
	}
	s.App.RequestDeleteGoal(id)
	if !confirm {
		s.App.CancelDeletion()
		return kanban.Removed{}, ErrConfirmRequired
	}
	removed, err := s.App.ConfirmDeletion()
	if err != nil {
		return kanban.Removed{}, err
	}
	s.App.Flush()
	return removed, nil
}

// refresh reloads the board from the store. A failed reload leaves the
// in-memory board in place.
func (s *Service) refresh(ctx context.Context) {
	if s.App.Persistence == nil {
		return
	}
	if _, err := s.App.Reload(ctx); err != nil {
		s.App.Log.Warn("reload board", zap.Error(err))
	}
}

// written flushes pending saves and returns the goal as stored.
func (s *Service) written(ctx context.Context, goalID string) (kanban.Goal, error) {
	s.App.Flush()
	return s.Goal(ctx, goalID)
}

func parseColor(raw string, fallback palette.Key) (palette.Key, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return palette.Parse(raw)
}
