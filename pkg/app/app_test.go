package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	goals   map[string]kanban.Goal
	order   []string
	saves   int
	deletes int
	failAll bool
}

func newMemoryPersistence(goals ...kanban.Goal) *memoryPersistence {
	mp := &memoryPersistence{goals: make(map[string]kanban.Goal)}
	for _, g := range goals {
		mp.goals[g.ID] = g.Clone()
		mp.order = append(mp.order, g.ID)
	}
	return mp
}

func (m *memoryPersistence) LoadGoals(_ context.Context) ([]kanban.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]kanban.Goal, 0, len(m.order))
	for _, id := range m.order {
		if g, ok := m.goals[id]; ok {
			out = append(out, g.Clone())
		}
	}
	return out, nil
}

func (m *memoryPersistence) SaveGoal(g kanban.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("disk full")
	}
	m.saves++
	m.goals[g.ID] = g.Clone()
	return nil
}

func (m *memoryPersistence) DeleteGoal(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.goals, id)
	return nil
}

func (m *memoryPersistence) SaveGoalOrder(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errors.New("disk full")
	}
	m.order = append([]string(nil), ids...)
	return nil
}

func (m *memoryPersistence) Watch(ctx context.Context) (<-chan store.Event, error) {
	ch := make(chan store.Event)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (m *memoryPersistence) stored(id string) (kanban.Goal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.goals[id]
	return g, ok
}

func (m *memoryPersistence) savedOrder() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func newService(t *testing.T, mp *memoryPersistence) *Service {
	t.Helper()
	s := New(mp, Options{SaveDebounce: time.Hour})
	require.NoError(t, s.Load(context.Background()))
	t.Cleanup(s.Close)
	return s
}

func TestAddGoalSavesImmediately(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)

	g, err := s.AddGoal("Read more", palette.Green)
	require.NoError(t, err)

	stored, ok := mp.stored(g.ID)
	require.True(t, ok)
	require.Equal(t, "Read more", stored.Title)
	require.Equal(t, []string{g.ID}, mp.savedOrder())
	require.Zero(t, s.PendingSaves())
}

func TestEditsAreDebouncedPerGoal(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, err := s.AddGoal("Read more", palette.Green)
	require.NoError(t, err)
	savesAfterAdd := mp.saves

	col := g.Columns[0].ID
	for _, title := range []string{"a", "b", "c"} {
		_, err := s.AddTask(g.ID, col, title, "")
		require.NoError(t, err)
	}
	require.NoError(t, s.RenameGoal(g.ID, "Read even more"))
	require.Equal(t, 1, s.PendingSaves(), "one pending write per goal")
	require.Equal(t, savesAfterAdd, mp.saves)

	s.Flush()
	stored, _ := mp.stored(g.ID)
	require.Equal(t, "Read even more", stored.Title)
	require.Equal(t, 3, stored.TaskCount())
	require.Equal(t, savesAfterAdd+1, mp.saves)
}

func TestDebouncedSaveFiresAfterDelay(t *testing.T) {
	mp := newMemoryPersistence()
	s := New(mp, Options{SaveDebounce: 20 * time.Millisecond})
	t.Cleanup(s.Close)
	g, err := s.AddGoal("Garden", "")
	require.NoError(t, err)

	require.NoError(t, s.RecolorGoal(g.ID, palette.Violet))
	require.Eventually(t, func() bool {
		stored, _ := mp.stored(g.ID)
		return stored.Color == palette.Violet
	}, 2*time.Second, 5*time.Millisecond)
}

func TestDragEndSchedulesGoalSave(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, _ := s.AddGoal("Ship", palette.Orange)
	task, err := s.AddTask(g.ID, g.Columns[0].ID, "write", "")
	require.NoError(t, err)
	require.NoError(t, s.RecolorColumn(g.ID, g.Columns[2].ID, palette.Green))
	s.Flush()

	_, ok := s.StartDrag(kanban.TaskDragID(task.ID))
	require.True(t, ok)
	s.DragOver(kanban.ColumnDragID(g.Columns[2].ID))
	res, ok := s.EndDrag("")
	require.True(t, ok)
	require.Equal(t, g.ID, res.GoalID)
	require.Equal(t, 1, s.PendingSaves())

	s.Flush()
	stored, _ := mp.stored(g.ID)
	require.Len(t, stored.Columns[2].Tasks, 1)
	require.Equal(t, palette.Green, stored.Columns[2].Tasks[0].Color)
}

func TestInvalidDropSchedulesNothing(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, _ := s.AddGoal("Ship", palette.Orange)
	task, _ := s.AddTask(g.ID, g.Columns[0].ID, "write", "")
	s.Flush()

	_, ok := s.StartDrag(kanban.TaskDragID(task.ID))
	require.True(t, ok)
	_, ok = s.EndDrag("nonsense")
	require.False(t, ok)
	require.Zero(t, s.PendingSaves())
}

func TestGoalReorderSavesOrder(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	a, _ := s.AddGoal("A", "")
	b, _ := s.AddGoal("B", "")
	c, _ := s.AddGoal("C", "")

	require.True(t, s.MoveGoal(a.ID, c.ID))
	require.Equal(t, []string{a.ID, b.ID, c.ID}, mp.savedOrder(), "not written yet")
	s.Flush()
	require.Equal(t, []string{b.ID, c.ID, a.ID}, mp.savedOrder())
}

func TestDeleteGoalNeedsConfirmation(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	a, _ := s.AddGoal("A", "")
	b, _ := s.AddGoal("B", "")
	require.NoError(t, s.RenameGoal(a.ID, "A2"))

	s.RequestDeleteGoal(a.ID)
	_, ok := mp.stored(a.ID)
	require.True(t, ok, "request alone deletes nothing")

	s.CancelDeletion()
	_, err := s.ConfirmDeletion()
	require.ErrorIs(t, err, kanban.ErrNothingPending)

	s.RequestDeleteGoal(a.ID)
	removed, err := s.ConfirmDeletion()
	require.NoError(t, err)
	require.Equal(t, a.ID, removed.GoalID)
	_, ok = mp.stored(a.ID)
	require.False(t, ok)
	require.Equal(t, []string{b.ID}, mp.savedOrder())
	require.Zero(t, s.PendingSaves(), "pending rename of the deleted goal is dropped")
}

func TestDeleteColumnIsDebounced(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, _ := s.AddGoal("A", "")

	s.RequestDeleteColumn(g.ID, g.Columns[1].ID)
	kind, id, ok := s.PendingDeletion()
	require.True(t, ok)
	require.Equal(t, kanban.KindColumn, kind)
	require.Equal(t, g.Columns[1].ID, id)

	_, err := s.ConfirmDeletion()
	require.NoError(t, err)
	require.Equal(t, 1, s.PendingSaves())
	s.Flush()
	stored, _ := mp.stored(g.ID)
	require.Len(t, stored.Columns, 2)
}

func TestSaveFailuresKeepMemoryState(t *testing.T) {
	mp := newMemoryPersistence()
	mp.failAll = true
	s := newService(t, mp)

	g, err := s.AddGoal("Offline", "")
	require.NoError(t, err)
	require.NoError(t, s.RenameGoal(g.ID, "Still here"))
	s.Flush()

	got, ok := s.Goal(g.ID)
	require.True(t, ok)
	require.Equal(t, "Still here", got.Title)
}

func TestReloadSkippedWhileWritesPending(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, _ := s.AddGoal("A", "")
	require.NoError(t, s.RenameGoal(g.ID, "local"))

	reloaded, err := s.Reload(context.Background())
	require.NoError(t, err)
	require.False(t, reloaded)

	s.Flush()
	mp.mu.Lock()
	other := mp.goals[g.ID]
	other.Title = "remote"
	mp.goals[g.ID] = other
	mp.mu.Unlock()

	reloaded, err = s.Reload(context.Background())
	require.NoError(t, err)
	require.True(t, reloaded)
	got, _ := s.Goal(g.ID)
	require.Equal(t, "remote", got.Title)
}

func TestEventsAndLinks(t *testing.T) {
	mp := newMemoryPersistence()
	s := newService(t, mp)
	g, _ := s.AddGoal("Fitness", palette.Red)
	task, _ := s.AddTask(g.ID, g.Columns[0].ID, "Run", "")

	start := time.Date(2024, time.March, 5, 7, 0, 0, 0, time.UTC)
	e, err := s.SaveEvent(calendar.Event{
		Title: "Run",
		Start: start,
		End:   start.Add(time.Hour),
		Link:  s.LinkFor(g.ID, task.ID, ""),
	})
	require.NoError(t, err)
	require.Equal(t, palette.Gray, e.Color(), "task color wins")

	require.Equal(t, calendar.GoalLinked{GoalID: g.ID, GoalColor: palette.Red}, s.LinkFor(g.ID, "", ""))
	require.Equal(t, calendar.Standalone{Paint: palette.Blue}, s.LinkFor("nope", "", palette.Blue))

	s.RequestDeleteGoal(g.ID)
	_, err = s.ConfirmDeletion()
	require.NoError(t, err)
	got, ok := s.Event(e.ID)
	require.True(t, ok)
	require.IsType(t, calendar.Standalone{}, got.Link)

	require.NoError(t, s.DeleteEvent(e.ID))
	require.Error(t, s.DeleteEvent(e.ID))
}

func TestDueEvents(t *testing.T) {
	s := newService(t, newMemoryPersistence())
	start := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	e, err := s.SaveEvent(calendar.Event{
		Title:         "Review",
		Start:         start,
		End:           start.Add(30 * time.Minute),
		Notifications: []time.Time{start.Add(-10 * time.Minute)},
		Link:          calendar.Standalone{Paint: palette.Violet},
	})
	require.NoError(t, err)
	require.Len(t, s.Events(), 1)

	due := s.DueEvents(start.Add(-15*time.Minute), start.Add(-5*time.Minute))
	require.Len(t, due, 1)
	require.Equal(t, e.ID, due[0].ID)
	require.Empty(t, s.DueEvents(start.Add(-10*time.Minute), start))
}
