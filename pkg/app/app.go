package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/store"
)

// Service owns the board and calendar for one session. Edits apply to the
// in-memory state first and are persisted behind it: goal edits through a
// trailing debounce keyed by goal, structural changes (add and delete goal)
// immediately. UIs and the MCP server share it.
type Service struct {
	Persistence store.Persistence
	Log         *zap.Logger

	mu       sync.Mutex
	board    kanban.Board
	drag     *kanban.DragController
	deletion kanban.Deletion
	events   *calendar.Book
	saves    *store.Debouncer
}

// Options tunes a Service.
type Options struct {
	SaveDebounce time.Duration
	Logger       *zap.Logger
}

var errNoPersistence = errors.New("app: no persistence configured")

const orderKey = "order"

// New creates a service over p.
func New(p store.Persistence, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delay := opts.SaveDebounce
	if delay <= 0 {
		delay = store.DefaultSaveDebounce
	}
	s := &Service{
		Persistence: p,
		Log:         log,
		events:      calendar.NewBook(),
		saves:       store.NewDebouncer(delay, log),
	}
	s.drag = kanban.NewDragController(&s.board)
	return s
}

// Load replaces the board with the persisted goals.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	goals, err := s.Persistence.LoadGoals(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board.Goals = goals
	s.drag.Cancel()
	s.deletion.Cancel()
	return nil
}

// Reload picks up changes written by another process. It is skipped while
// local writes are pending so unsaved edits are not overwritten; it reports
// whether the board was reloaded.
func (s *Service) Reload(ctx context.Context) (bool, error) {
	if s.saves.Pending() > 0 {
		return false, nil
	}
	s.mu.Lock()
	dragging := false
	if _, ok := s.drag.Active(); ok {
		dragging = true
	}
	s.mu.Unlock()
	if dragging {
		return false, nil
	}
	if err := s.Load(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Snapshot returns a deep copy of the board for rendering.
func (s *Service) Snapshot() kanban.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// Goal returns a copy of one goal.
func (s *Service) Goal(id string) (kanban.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, _, ok := s.board.Goal(id)
	if !ok {
		return kanban.Goal{}, false
	}
	return g.Clone(), true
}

// Flush writes every pending edit now. Call it before exiting.
func (s *Service) Flush() {
	s.saves.Flush()
}

// Close flushes pending edits and stops accepting new ones.
func (s *Service) Close() {
	s.saves.Flush()
	s.saves.Stop()
}

// PendingSaves is the number of debounced writes not yet run.
func (s *Service) PendingSaves() int {
	return s.saves.Pending()
}

// AddGoal creates a goal and saves it and the goal order right away.
func (s *Service) AddGoal(title string, color palette.Key) (kanban.Goal, error) {
	s.mu.Lock()
	g, err := s.board.AddGoal(title, color)
	if err != nil {
		s.mu.Unlock()
		return kanban.Goal{}, err
	}
	snap := g.Clone()
	order := s.board.Order()
	s.mu.Unlock()

	s.saves.Cancel(orderKey)
	s.now("save goal", func() error { return s.Persistence.SaveGoal(snap) })
	s.now("save goal order", func() error { return s.Persistence.SaveGoalOrder(order) })
	s.Log.Info("goal added", zap.String("goal", g.ID))
	return g, nil
}

// RenameGoal retitles a goal.
func (s *Service) RenameGoal(id, title string) error {
	return s.editGoal(id, func(b *kanban.Board, g *kanban.Goal) error {
		return b.RenameGoal(id, title)
	})
}

// RecolorGoal changes a goal's color.
func (s *Service) RecolorGoal(id string, color palette.Key) error {
	return s.editGoal(id, func(b *kanban.Board, g *kanban.Goal) error {
		return b.RecolorGoal(id, color)
	})
}

// AddColumn appends a column to a goal.
func (s *Service) AddColumn(goalID, title string) (kanban.Column, error) {
	var col kanban.Column
	err := s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		var err error
		col, err = g.AddColumn(title)
		return err
	})
	return col, err
}

// RenameColumn retitles a column.
func (s *Service) RenameColumn(goalID, columnID, title string) error {
	return s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		return g.RenameColumn(columnID, title)
	})
}

// RecolorColumn repaints a column and its tasks.
func (s *Service) RecolorColumn(goalID, columnID string, color palette.Key) error {
	return s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		return g.RecolorColumn(columnID, color)
	})
}

// AddTask appends a task to a column.
func (s *Service) AddTask(goalID, columnID, title, description string) (kanban.Task, error) {
	var task kanban.Task
	err := s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		var err error
		task, err = g.AddTask(columnID, title, description)
		return err
	})
	return task, err
}

// EditTask changes a task's title and description.
func (s *Service) EditTask(goalID, taskID, title, description string) error {
	return s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		return g.EditTask(taskID, title, description)
	})
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(goalID, taskID string) error {
	return s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		_, err := g.DeleteTask(taskID)
		return err
	})
}

// MoveTask drops a task on a target within its goal.
func (s *Service) MoveTask(goalID, taskID string, to kanban.Target) (kanban.TaskMove, bool) {
	var (
		move  kanban.TaskMove
		moved bool
	)
	_ = s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		move, moved = kanban.MoveTask(g, taskID, to)
		if !moved {
			return errNoChange
		}
		return nil
	})
	return move, moved
}

// MoveColumn reorders a column onto the index of another.
func (s *Service) MoveColumn(goalID, columnID, overID string) bool {
	err := s.editGoal(goalID, func(_ *kanban.Board, g *kanban.Goal) error {
		if !kanban.MoveColumn(g, columnID, overID) {
			return errNoChange
		}
		return nil
	})
	return err == nil
}

// MoveGoal reorders a goal onto the index of another.
func (s *Service) MoveGoal(goalID, overID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !kanban.MoveGoal(&s.board, goalID, overID) {
		return false
	}
	s.scheduleOrder()
	return true
}

// StartDrag begins a pointer drag.
func (s *Service) StartDrag(id kanban.DragID) (kanban.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Start(id)
}

// DragOver records the drop target under the pointer.
func (s *Service) DragOver(id kanban.DragID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Over(id)
}

// ActiveDrag returns the running drag's preview.
func (s *Service) ActiveDrag() (kanban.Preview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag.Active()
}

// CancelDrag abandons the running drag.
func (s *Service) CancelDrag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drag.Cancel()
}

// EndDrag drops the running drag on over and schedules the write for what
// changed.
func (s *Service) EndDrag(over kanban.DragID) (kanban.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.drag.End(over)
	if !ok {
		return kanban.Result{}, false
	}
	if res.Kind == kanban.KindGoal {
		s.scheduleOrder()
	} else if g, _, found := s.board.Goal(res.GoalID); found {
		s.scheduleGoal(g)
	}
	return res, true
}

// RequestDeleteGoal asks for confirmation before deleting a goal.
func (s *Service) RequestDeleteGoal(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletion.RequestGoal(id)
}

// RequestDeleteColumn asks for confirmation before deleting a column.
func (s *Service) RequestDeleteColumn(goalID, columnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletion.RequestColumn(goalID, columnID)
}

// PendingDeletion returns what is awaiting confirmation.
func (s *Service) PendingDeletion() (kanban.Kind, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deletion.Pending()
}

// CancelDeletion drops the pending deletion.
func (s *Service) CancelDeletion() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletion.Cancel()
}

// ConfirmDeletion performs the pending deletion. Goals are removed from
// storage right away together with the new order; column removals are
// saved like any other goal edit. Events linked to a deleted goal become
// standalone.
func (s *Service) ConfirmDeletion() (kanban.Removed, error) {
	s.mu.Lock()
	removed, err := s.deletion.Confirm(&s.board)
	if err != nil {
		s.mu.Unlock()
		return kanban.Removed{}, err
	}
	if removed.Kind == kanban.KindColumn {
		if g, _, ok := s.board.Goal(removed.GoalID); ok {
			s.scheduleGoal(g)
		}
		s.mu.Unlock()
		return removed, nil
	}
	order := s.board.Order()
	s.events.UnlinkGoal(removed.GoalID)
	s.mu.Unlock()

	s.saves.Cancel(goalKey(removed.GoalID))
	s.saves.Cancel(orderKey)
	s.now("delete goal", func() error { return s.Persistence.DeleteGoal(removed.GoalID) })
	s.now("save goal order", func() error { return s.Persistence.SaveGoalOrder(order) })
	s.Log.Info("goal deleted", zap.String("goal", removed.GoalID))
	return removed, nil
}

var errNoChange = errors.New("app: no change")

// editGoal applies fn to a goal under the lock and schedules its save when
// fn succeeds.
func (s *Service) editGoal(id string, fn func(*kanban.Board, *kanban.Goal) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, _, ok := s.board.Goal(id)
	if !ok {
		return fmt.Errorf("goal %q: %w", id, kanban.ErrNotFound)
	}
	if err := fn(&s.board, g); err != nil {
		return err
	}
	// fn may have replaced the goal slice, look it up again.
	if g, _, ok = s.board.Goal(id); ok {
		s.scheduleGoal(g)
	}
	return nil
}

func goalKey(id string) string {
	return "goal:" + id
}

// scheduleGoal queues a write of a snapshot of g. Callers hold s.mu.
func (s *Service) scheduleGoal(g *kanban.Goal) {
	if s.Persistence == nil {
		return
	}
	snap := g.Clone()
	s.saves.Schedule(goalKey(snap.ID), func() error {
		return s.Persistence.SaveGoal(snap)
	})
}

// scheduleOrder queues a write of the current goal order. Callers hold s.mu.
func (s *Service) scheduleOrder() {
	if s.Persistence == nil {
		return
	}
	order := s.board.Order()
	s.saves.Schedule(orderKey, func() error {
		return s.Persistence.SaveGoalOrder(order)
	})
}

func (s *Service) now(what string, write func() error) {
	if s.Persistence == nil {
		return
	}
	if err := write(); err != nil {
		s.Log.Error(what+" failed", zap.Error(err))
	}
}
