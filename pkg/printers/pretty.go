// Package printers renders goal boards for the command line.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
)

// PrettyPrint writes colored goal listings to Out, or color.Output when Out
// is nil.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

var (
	spacing = strings.Repeat(" ", len("00000000-0000-0000-0000-000000000000  "))
)

// attrs maps palette keys onto the sixteen terminal colors.
var attrs = map[palette.Key]color.Attribute{
	palette.Red:    color.FgRed,
	palette.Orange: color.FgHiRed,
	palette.Yellow: color.FgYellow,
	palette.Green:  color.FgGreen,
	palette.Blue:   color.FgBlue,
	palette.Indigo: color.FgHiBlue,
	palette.Violet: color.FgMagenta,
	palette.Gray:   color.FgHiBlack,
}

// Paint returns the terminal color for k.
func Paint(k palette.Key) *color.Color {
	if a, ok := attrs[k]; ok {
		return color.New(a)
	}
	return color.New(color.FgHiBlack)
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " task")
	default:
		_, _ = c.Fprintln(pp.out(), " tasks")
	}
}

// Goals prints one row per goal with its task counts.
func (pp *PrettyPrint) Goals(goals ...kanban.Goal) {
	if len(goals) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no goals\n\n")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Goal"), bold.Sprint("Columns"), bold.Sprint("Tasks"), bold.Sprint("Done")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for i := range goals {
		g := &goals[i]
		done := 0
		if n := len(g.Columns); n > 0 {
			done = len(g.Columns[n-1].Tasks)
		}
		row := []interface{}{
			Paint(g.Color).Sprint("●") + " " + g.Title,
			len(g.Columns),
			g.TaskCount(),
			faint.Sprintf("%d/%d", done, g.TaskCount()),
		}
		if pp.ShowID {
			row = append([]interface{}{faint.Sprint(g.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Goal prints every column of g and the tasks in it.
func (pp *PrettyPrint) Goal(g kanban.Goal) {
	pp.TitleWithCount(g.Title, g.TaskCount())
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint, color.Italic)

	for _, col := range g.Columns {
		_, _ = Paint(col.Color).Fprintf(pp.out(), "%s (%d)\n", col.Title, len(col.Tasks))
		if len(col.Tasks) == 0 {
			_, _ = f.Fprintln(pp.out(), "  none")
			continue
		}
		for _, t := range col.Tasks {
			if pp.ShowID {
				_, _ = y.Fprint(pp.out(), t.ID)
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(t.ID))))
			}
			_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", Paint(t.Color).Sprint("■"), t.Title)
		}
	}
	pp.NewLine()
}
