package kanban

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/palette"
)

func TestDragIDParse(t *testing.T) {
	kind, id, ok := TaskDragID("abc-123").Parse()
	require.True(t, ok)
	require.Equal(t, KindTask, kind)
	require.Equal(t, "abc-123", id)

	for _, bad := range []DragID{"", "task", "task:", "lane:x", "todo|0"} {
		_, _, ok := bad.Parse()
		require.False(t, ok, bad)
	}
}

func TestDragControllerTaskAcrossColumns(t *testing.T) {
	b := boardFixture()
	c := NewDragController(b)

	p, ok := c.Start(TaskDragID("t2"))
	require.True(t, ok)
	require.Equal(t, "t2", p.Title)
	require.Equal(t, "g", p.GoalID)

	c.Over(ColumnDragID("done"))
	res, ok := c.End("")
	require.True(t, ok)
	require.Equal(t, KindTask, res.Kind)
	require.Equal(t, "g", res.GoalID)
	require.Equal(t, palette.Green, b.Goals[0].Columns[2].Tasks[0].Color)

	_, active := c.Active()
	require.False(t, active)
}

func TestDragControllerRejectsSecondStart(t *testing.T) {
	c := NewDragController(boardFixture())
	_, ok := c.Start(TaskDragID("t0"))
	require.True(t, ok)
	_, ok = c.Start(TaskDragID("t1"))
	require.False(t, ok)
}

func TestDragControllerInvalidDropIsNoop(t *testing.T) {
	b := boardFixture()
	before := b.Clone()
	c := NewDragController(b)

	for _, over := range []DragID{"", "garbage", GoalDragID("g"), TaskDragID("missing")} {
		_, ok := c.Start(TaskDragID("t0"))
		require.True(t, ok)
		_, ok = c.End(over)
		require.False(t, ok, over)
	}
	require.Equal(t, before, *b)

	_, ok := c.Start(TaskDragID("missing"))
	require.False(t, ok)
	_, ok = c.Start("column|0")
	require.False(t, ok)
}

func TestDragControllerColumnOntoTask(t *testing.T) {
	b := boardFixture()
	c := NewDragController(b)
	_, ok := c.Start(ColumnDragID("done"))
	require.True(t, ok)
	res, ok := c.End(TaskDragID("t3"))
	require.True(t, ok)
	require.Equal(t, KindColumn, res.Kind)
	require.Equal(t, []string{"todo", "done", "doing"}, []string{b.Goals[0].Columns[0].ID, b.Goals[0].Columns[1].ID, b.Goals[0].Columns[2].ID})
}

func TestDragControllerAcrossGoalsIsNoop(t *testing.T) {
	b := boardFixture()
	b.Goals = append(b.Goals, Goal{ID: "other", Title: "Other", Columns: []Column{{ID: "x", Tasks: []Task{{ID: "tx"}}}}})
	c := NewDragController(b)

	_, ok := c.Start(TaskDragID("t0"))
	require.True(t, ok)
	_, ok = c.End(ColumnDragID("x"))
	require.False(t, ok)
	_, ok = c.Start(TaskDragID("t0"))
	require.True(t, ok)
	_, ok = c.End(TaskDragID("tx"))
	require.False(t, ok)
	require.Equal(t, 4, b.Goals[0].TaskCount())
}

func TestDragControllerGoalReorder(t *testing.T) {
	b := &Board{Goals: []Goal{{ID: "A"}, {ID: "B"}, {ID: "C"}}}
	c := NewDragController(b)
	_, ok := c.Start(GoalDragID("A"))
	require.True(t, ok)
	res, ok := c.End(GoalDragID("C"))
	require.True(t, ok)
	require.Equal(t, KindGoal, res.Kind)
	require.Equal(t, []string{"B", "C", "A"}, b.Order())
}

func TestDragControllerCancel(t *testing.T) {
	b := boardFixture()
	c := NewDragController(b)
	_, ok := c.Start(TaskDragID("t0"))
	require.True(t, ok)
	c.Over(ColumnDragID("done"))
	c.Cancel()
	_, ok = c.End("")
	require.False(t, ok)
	require.Equal(t, []string{"t0", "t1", "t2"}, taskIDs(b.Goals[0].Columns[0]))
}

func TestSensorActivationDistance(t *testing.T) {
	s := Sensor{Distance: TaskActivationDistance}
	s.Press(TaskDragID("t0"), Point{X: 10, Y: 10})
	require.False(t, s.Move(Point{X: 13, Y: 13}), "3,3 is inside 5")
	require.True(t, s.Move(Point{X: 14, Y: 13}), "4,3 reaches 5")
	require.False(t, s.Move(Point{X: 20, Y: 20}), "already active")
	id, dragged := s.Release()
	require.Equal(t, TaskDragID("t0"), id)
	require.True(t, dragged)

	s.Press(TaskDragID("t1"), Point{})
	id, dragged = s.Release()
	require.Equal(t, TaskDragID("t1"), id)
	require.False(t, dragged, "click")

	g := Sensor{Distance: GoalActivationDistance}
	g.Press(GoalDragID("g"), Point{})
	require.False(t, g.Move(Point{X: 5, Y: 5}))
	require.True(t, g.Move(Point{X: 8}))
}
