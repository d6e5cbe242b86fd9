package printers

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
)

func init() {
	color.NoColor = true
}

func fixture() kanban.Goal {
	return kanban.Goal{
		ID:    "g1",
		Title: "Launch",
		Color: palette.Orange,
		Columns: []kanban.Column{
			{ID: "c1", Title: "To Do", Color: palette.Gray, Tasks: []kanban.Task{{ID: "t1", Title: "Write copy", Color: palette.Gray}}},
			{ID: "c2", Title: "Done", Color: palette.Green, Tasks: []kanban.Task{{ID: "t2", Title: "Pick name", Color: palette.Green}}},
		},
	}
}

func TestGoalsTable(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Goals(fixture())

	out := buf.String()
	require.Contains(t, out, "Goal")
	require.Contains(t, out, "● Launch")
	require.Contains(t, out, "1/2")
	require.NotContains(t, out, "g1")
}

func TestGoalsTableShowsIDs(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}
	pp.Goals(fixture())
	require.Contains(t, buf.String(), "g1")
}

func TestNoGoals(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Goals()
	require.Contains(t, buf.String(), "no goals")
}

func TestGoalColumns(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	g := fixture()
	g.Columns = append(g.Columns, kanban.Column{ID: "c3", Title: "Later"})
	pp.Goal(g)

	out := buf.String()
	require.Contains(t, out, "Launch - 2 tasks")
	require.Contains(t, out, "To Do (1)")
	require.Contains(t, out, "■ Write copy")
	require.Contains(t, out, "Later (0)\n  none")
}

func TestPaintFallsBack(t *testing.T) {
	require.NotNil(t, Paint("teal"))
}
