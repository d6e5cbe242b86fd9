package kanban

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/palette"
)

func TestAddGoalDefaults(t *testing.T) {
	sequentialIDs(t)
	var b Board

	g, err := b.AddGoal("  Learn Go  ", "")
	require.NoError(t, err)
	require.Equal(t, "Learn Go", g.Title)
	require.Equal(t, DefaultGoalColor, g.Color)
	require.Len(t, g.Columns, 3)
	require.Equal(t, []string{"To Do", "In Progress", "Done"}, []string{g.Columns[0].Title, g.Columns[1].Title, g.Columns[2].Title})
	for _, c := range g.Columns {
		require.Equal(t, palette.Gray, c.Color)
		require.NotNil(t, c.Tasks)
	}
	require.Equal(t, []string{g.ID}, b.Order())
}

func TestAddGoalRejectsBlankTitle(t *testing.T) {
	var b Board
	_, err := b.AddGoal("   ", palette.Blue)
	require.ErrorIs(t, err, ErrTitleRequired)
	require.Empty(t, b.Goals)
}

func TestAddGoalLimit(t *testing.T) {
	sequentialIDs(t)
	var b Board
	for i := 0; i < MaxGoals; i++ {
		_, err := b.AddGoal("goal "+strconv.Itoa(i), palette.Blue)
		require.NoError(t, err)
	}
	_, err := b.AddGoal("one too many", palette.Blue)
	require.ErrorIs(t, err, ErrGoalLimit)
	require.Len(t, b.Goals, MaxGoals)
}

func TestRenameGoal(t *testing.T) {
	b := boardFixture()
	require.NoError(t, b.RenameGoal("g", " Launch "))
	require.Equal(t, "Launch", b.Goals[0].Title)

	require.ErrorIs(t, b.RenameGoal("g", ""), ErrTitleRequired)
	require.Equal(t, "Launch", b.Goals[0].Title)

	require.ErrorIs(t, b.RenameGoal("missing", "x"), ErrNotFound)
}

func TestRecolorColumnRepaintsTasks(t *testing.T) {
	b := boardFixture()
	g := &b.Goals[0]
	require.NoError(t, g.RecolorColumn("todo", palette.Red))
	for _, task := range g.Columns[0].Tasks {
		require.Equal(t, palette.Red, task.Color)
	}
	require.Equal(t, palette.Blue, g.Columns[1].Tasks[0].Color)
	require.ErrorIs(t, g.RecolorColumn("todo", "teal"), ErrInvalidColor)
}

func TestAddColumn(t *testing.T) {
	sequentialIDs(t)
	b := boardFixture()
	g := &b.Goals[0]

	c, err := g.AddColumn("")
	require.NoError(t, err)
	require.Equal(t, NewColumnTitle, c.Title)
	require.Equal(t, DefaultColumnColor, c.Color)

	for len(g.Columns) < MaxColumns {
		_, err := g.AddColumn("more")
		require.NoError(t, err)
	}
	_, err = g.AddColumn("overflow")
	require.ErrorIs(t, err, ErrColumnLimit)
}

func TestTaskLifecycle(t *testing.T) {
	sequentialIDs(t)
	b := boardFixture()
	g := &b.Goals[0]

	task, err := g.AddTask("doing", " Write tests ", "")
	require.NoError(t, err)
	require.Equal(t, "Write tests", task.Title)
	require.Equal(t, palette.Blue, task.Color)

	_, err = g.AddTask("doing", " ", "")
	require.ErrorIs(t, err, ErrTitleRequired)

	require.NoError(t, g.EditTask(task.ID, "Write more tests", "table driven"))
	got, ok := g.Task(task.ID)
	require.True(t, ok)
	require.Equal(t, "table driven", got.Description)

	removed, err := g.DeleteTask(task.ID)
	require.NoError(t, err)
	require.Equal(t, task.ID, removed.ID)
	_, err = g.DeleteTask(task.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestCloneIsDeep(t *testing.T) {
	b := boardFixture()
	c := b.Clone()
	c.Goals[0].Columns[0].Tasks[0].Title = "changed"
	c.Goals[0].Title = "changed"
	require.Equal(t, "t0", b.Goals[0].Columns[0].Tasks[0].Title)
	require.Equal(t, "Ship", b.Goals[0].Title)
}
