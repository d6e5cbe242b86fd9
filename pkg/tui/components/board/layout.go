package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/tui/ui"
)

const (
	minSidebar   = 18
	minColumn    = 18
	maxColumn    = 32
	addColumnW   = 12
	addTaskLabel = "+ Add task"
)

type regionKind int

const (
	regionGoal regionKind = iota
	regionAddGoal
	regionColumn
	regionHeader
	regionTask
	regionAddTask
	regionAddColumn
)

// region is a clickable area in absolute screen cells.
type region struct {
	kind     regionKind
	goalID   string
	columnID string
	taskID   string
	rect     ui.Bounds
}

// drag returns the drag id a press on r starts.
func (r region) drag() (kanban.DragID, bool) {
	switch r.kind {
	case regionGoal:
		return kanban.GoalDragID(r.goalID), true
	case regionHeader:
		return kanban.ColumnDragID(r.columnID), true
	case regionTask:
		return kanban.TaskDragID(r.taskID), true
	}
	return "", false
}

// drop returns the drop target r represents.
func (r region) drop() kanban.DragID {
	switch r.kind {
	case regionGoal:
		return kanban.GoalDragID(r.goalID)
	case regionTask:
		return kanban.TaskDragID(r.taskID)
	case regionColumn, regionHeader, regionAddTask:
		return kanban.ColumnDragID(r.columnID)
	}
	return ""
}

// layout is the geometry of one frame.
type layout struct {
	sidebar int
	column  int
	regions []region
}

func (l layout) hit(x, y int) (region, bool) {
	for i := len(l.regions) - 1; i >= 0; i-- {
		if l.regions[i].rect.Contains(x, y) {
			return l.regions[i], true
		}
	}
	return region{}, false
}

func computeLayout(b ui.Bounds, board kanban.Board, goalID string) layout {
	l := layout{sidebar: max(minSidebar, b.Width/5)}
	for i, g := range board.Goals {
		l.regions = append(l.regions, region{
			kind:   regionGoal,
			goalID: g.ID,
			rect:   ui.Bounds{X: b.X, Y: b.Y + 2 + i, Width: l.sidebar, Height: 1},
		})
	}
	if len(board.Goals) < kanban.MaxGoals {
		l.regions = append(l.regions, region{
			kind: regionAddGoal,
			rect: ui.Bounds{X: b.X, Y: b.Y + 3 + len(board.Goals), Width: l.sidebar, Height: 1},
		})
	}

	g, _, ok := board.Goal(goalID)
	if !ok {
		return l
	}
	x0 := b.X + l.sidebar + 1
	avail := b.Width - l.sidebar - 1
	n := len(g.Columns)
	slots := n
	if n < kanban.MaxColumns {
		avail -= addColumnW
	}
	if slots == 0 {
		slots = 1
	}
	l.column = min(maxColumn, max(minColumn, avail/slots-1))

	for i, col := range g.Columns {
		x := x0 + i*(l.column+1)
		l.regions = append(l.regions,
			region{kind: regionColumn, goalID: g.ID, columnID: col.ID, rect: ui.Bounds{X: x, Y: b.Y, Width: l.column, Height: b.Height}},
			region{kind: regionHeader, goalID: g.ID, columnID: col.ID, rect: ui.Bounds{X: x + 1, Y: b.Y + 1, Width: l.column - 2, Height: 1}},
		)
		for j, t := range col.Tasks {
			l.regions = append(l.regions, region{
				kind: regionTask, goalID: g.ID, columnID: col.ID, taskID: t.ID,
				rect: ui.Bounds{X: x + 1, Y: b.Y + 3 + j, Width: l.column - 2, Height: 1},
			})
		}
		l.regions = append(l.regions, region{
			kind: regionAddTask, goalID: g.ID, columnID: col.ID,
			rect: ui.Bounds{X: x + 1, Y: b.Y + 4 + len(col.Tasks), Width: l.column - 2, Height: 1},
		})
	}
	if n < kanban.MaxColumns {
		l.regions = append(l.regions, region{
			kind: regionAddColumn, goalID: g.ID,
			rect: ui.Bounds{X: x0 + n*(l.column+1), Y: b.Y + 1, Width: addColumnW, Height: 1},
		})
	}
	return l
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = truncate.StringWithTail(s, uint(w), "…")
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// box frames lines in a rounded border w cells wide and h lines tall.
func box(lines []string, w, h int, border lipgloss.Style) []string {
	inner := w - 2
	out := make([]string, 0, h)
	out = append(out, border.Render("╭"+strings.Repeat("─", inner)+"╮"))
	for i := 0; i < h-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, border.Render("│")+fit(line, inner)+border.Render("│"))
	}
	out = append(out, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return out
}

func countLabel(title string, n int) string {
	return fmt.Sprintf("%s (%d)", title, n)
}
