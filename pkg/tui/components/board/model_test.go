package board

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
)

// With a 120x20 board the sidebar is 24 cells and each column 26, so column
// i starts at x = 25 + 27*i and its first card is on line 3.
func columnX(i int) int { return 25 + 27*i }

type fixture struct {
	svc   *app.Service
	board *Model
	goal  kanban.Goal
}

func newFixture(t *testing.T, goals ...string) fixture {
	t.Helper()
	svc := app.New(nil, app.Options{SaveDebounce: time.Hour})
	t.Cleanup(svc.Close)
	if len(goals) == 0 {
		goals = []string{"Launch"}
	}
	var first kanban.Goal
	for i, title := range goals {
		g, err := svc.AddGoal(title, palette.Orange)
		require.NoError(t, err)
		if i == 0 {
			first = g
		}
	}
	for _, title := range []string{"t0", "t1", "t2"} {
		_, err := svc.AddTask(first.ID, first.Columns[0].ID, title, "")
		require.NoError(t, err)
	}
	require.NoError(t, svc.RecolorColumn(first.ID, first.Columns[1].ID, palette.Blue))

	b := New("", svc, theme.Default().Board, nil)
	b.SetBounds(ui.Bounds{Width: 120, Height: 20})
	first, _ = svc.Goal(first.ID)
	return fixture{svc: svc, board: b, goal: first}
}

func (f fixture) titles(t *testing.T, col int) []string {
	t.Helper()
	g, ok := f.svc.Goal(f.goal.ID)
	require.True(t, ok)
	var out []string
	for _, task := range g.Columns[col].Tasks {
		out = append(out, task.Title)
	}
	return out
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "shift+right":
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestSelectsFirstTask(t *testing.T) {
	f := newFixture(t)
	goal, col, task := f.board.Selection()
	require.Equal(t, f.goal.ID, goal)
	require.Equal(t, f.goal.Columns[0].ID, col)
	require.Equal(t, f.goal.Columns[0].Tasks[0].ID, task)
}

func TestKeyboardMoveRecolorsTask(t *testing.T) {
	f := newFixture(t)
	f.board.Update(key("down"))
	_, cmd := f.board.Update(key("shift+right"))
	require.NotNil(t, cmd)

	require.Equal(t, []string{"t0", "t2"}, f.titles(t, 0))
	require.Equal(t, []string{"t1"}, f.titles(t, 1))
	g, _ := f.svc.Goal(f.goal.ID)
	require.Equal(t, palette.Blue, g.Columns[1].Tasks[0].Color)

	_, col, task := f.board.Selection()
	require.Equal(t, g.Columns[1].ID, col, "selection follows the task")
	require.Equal(t, g.Columns[1].Tasks[0].ID, task)
}

func TestPointerDragAcrossColumns(t *testing.T) {
	f := newFixture(t)
	x := columnX(0) + 2
	f.board.Update(tea.MouseClickMsg{X: x, Y: 5, Button: tea.MouseLeft}) // t2
	f.board.Update(tea.MouseMotionMsg{X: x + 2, Y: 5})
	require.False(t, f.board.Dragging(), "below the activation distance")

	f.board.Update(tea.MouseMotionMsg{X: columnX(1) + 2, Y: 8})
	require.True(t, f.board.Dragging())
	preview, ok := f.svc.ActiveDrag()
	require.True(t, ok)
	require.Equal(t, "t2", preview.Title)
	require.Contains(t, ansi.Strip(f.board.View()), "t2")

	_, cmd := f.board.Update(tea.MouseReleaseMsg{X: columnX(1) + 2, Y: 8, Button: tea.MouseLeft})
	require.NotNil(t, cmd)
	require.Equal(t, []string{"t0", "t1"}, f.titles(t, 0))
	require.Equal(t, []string{"t2"}, f.titles(t, 1))
	require.False(t, f.board.Dragging())
}

func TestPointerReorderWithinColumn(t *testing.T) {
	f := newFixture(t)
	x := columnX(0) + 2
	f.board.Update(tea.MouseClickMsg{X: x, Y: 5, Button: tea.MouseLeft}) // t2
	f.board.Update(tea.MouseMotionMsg{X: x + 6, Y: 3})                    // over t0
	_, cmd := f.board.Update(tea.MouseReleaseMsg{X: x + 6, Y: 3, Button: tea.MouseLeft})
	require.NotNil(t, cmd)
	require.Equal(t, []string{"t2", "t0", "t1"}, f.titles(t, 0))
}

func TestClickWithoutTravelOnlySelects(t *testing.T) {
	f := newFixture(t)
	x := columnX(0) + 2
	f.board.Update(tea.MouseClickMsg{X: x, Y: 4, Button: tea.MouseLeft}) // t1
	_, cmd := f.board.Update(tea.MouseReleaseMsg{X: x + 1, Y: 4, Button: tea.MouseLeft})
	require.Nil(t, cmd)
	require.Equal(t, []string{"t0", "t1", "t2"}, f.titles(t, 0))
	_, _, task := f.board.Selection()
	require.Equal(t, f.goal.Columns[0].Tasks[1].ID, task)
}

func TestGoalDragNeedsEightCells(t *testing.T) {
	f := newFixture(t, "Launch", "Health")
	f.board.Update(tea.MouseClickMsg{X: 1, Y: 2, Button: tea.MouseLeft})
	f.board.Update(tea.MouseMotionMsg{X: 6, Y: 3})
	require.False(t, f.board.Dragging())
	f.board.Update(tea.MouseMotionMsg{X: 10, Y: 3})
	require.True(t, f.board.Dragging())
	_, cmd := f.board.Update(tea.MouseReleaseMsg{X: 10, Y: 3, Button: tea.MouseLeft})
	require.NotNil(t, cmd)

	snap := f.svc.Snapshot()
	require.Equal(t, "Health", snap.Goals[0].Title)
	require.Equal(t, "Launch", snap.Goals[1].Title)
}

func TestClickingGoalSelectsIt(t *testing.T) {
	f := newFixture(t, "Launch", "Health")
	f.board.Update(tea.MouseClickMsg{X: 1, Y: 3, Button: tea.MouseLeft})
	f.board.Update(tea.MouseReleaseMsg{X: 1, Y: 3, Button: tea.MouseLeft})
	goal, _, task := f.board.Selection()
	require.Equal(t, f.svc.Snapshot().Goals[1].ID, goal)
	require.Empty(t, task)
}

func TestPromptsAddAndRename(t *testing.T) {
	f := newFixture(t)
	_, cmd := f.board.Update(key("a"))
	req, ok := cmd().(events.PromptRequestMsg)
	require.True(t, ok)
	require.Equal(t, events.PromptAddTask, req.Action)

	f.board.Update(events.PromptSubmitMsg{Component: f.board.ID(), Action: req.Action, Value: "t3", Ref: req.Ref})
	require.Equal(t, []string{"t0", "t1", "t2", "t3"}, f.titles(t, 0))
	_, _, task := f.board.Selection()
	g, _ := f.svc.Goal(f.goal.ID)
	require.Equal(t, g.Columns[0].Tasks[3].ID, task)

	f.board.Update(events.PromptSubmitMsg{
		Component: f.board.ID(),
		Action:    events.PromptRenameGoal,
		Value:     "Ship it",
		Ref:       events.BoardRef{GoalID: f.goal.ID},
	})
	g, _ = f.svc.Goal(f.goal.ID)
	require.Equal(t, "Ship it", g.Title)

	f.board.Update(events.PromptSubmitMsg{Component: "elsewhere", Action: events.PromptRenameGoal, Value: "nope", Ref: events.BoardRef{GoalID: f.goal.ID}})
	g, _ = f.svc.Goal(f.goal.ID)
	require.Equal(t, "Ship it", g.Title)
}

func TestDeleteGoalWaitsForConfirmation(t *testing.T) {
	f := newFixture(t, "Launch", "Health")
	_, cmd := f.board.Update(key("X"))
	req, ok := cmd().(events.ConfirmRequestMsg)
	require.True(t, ok)
	require.Contains(t, req.Body, "Launch")
	require.Len(t, f.svc.Snapshot().Goals, 2)

	f.board.Update(events.ConfirmResultMsg{Component: f.board.ID(), Accepted: false})
	require.Len(t, f.svc.Snapshot().Goals, 2)

	f.board.Update(key("X"))
	f.board.Update(events.ConfirmResultMsg{Component: f.board.ID(), Accepted: true})
	snap := f.svc.Snapshot()
	require.Len(t, snap.Goals, 1)
	goal, _, _ := f.board.Selection()
	require.Equal(t, snap.Goals[0].ID, goal)
}

func TestViewListsGoalsAndColumns(t *testing.T) {
	f := newFixture(t)
	view := ansi.Strip(f.board.View())
	require.Contains(t, view, "Launch (3)")
	require.Contains(t, view, "To Do (3)")
	require.Contains(t, view, "In Progress (0)")
	require.Contains(t, view, "+ New goal")
	require.Contains(t, view, addTaskLabel)
	require.Len(t, strings.Split(view, "\n"), 20)
}
