// Package goals provides the CLI helpers that list and create goals.
package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/kanban"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/printers"
)

// ErrNoService is returned when a runner has no service to read from.
var ErrNoService = errors.New("goals: no service")

// Get prints every goal, or the columns of one goal when GoalID is set.
type Get struct {
	Service *app.Service
	GoalID  string
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

// Do renders the board.
func (g *Get) Do(_ context.Context) error {
	if g.Service == nil {
		return ErrNoService
	}
	out := g.Out
	if out == nil {
		out = color.Output
	}

	var v interface{}
	board := g.Service.Snapshot()
	v = board.Goals
	if g.GoalID != "" {
		goal, ok := g.Service.Goal(g.GoalID)
		if !ok {
			return fmt.Errorf("goal %q: %w", g.GoalID, kanban.ErrNotFound)
		}
		v = goal
	}

	if g.JSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{Out: out, ShowID: g.ShowID}
	switch v := v.(type) {
	case kanban.Goal:
		pp.Goal(v)
	case []kanban.Goal:
		pp.Title("Goals")
		pp.Goals(v...)
	}
	return nil
}

// Add creates a goal with the default columns and writes it right away.
type Add struct {
	Service *app.Service
	Title   string
	Color   palette.Key
	Out     io.Writer
}

// Do creates the goal.
func (a *Add) Do(_ context.Context) error {
	if a.Service == nil {
		return ErrNoService
	}
	c := a.Color
	if c == "" {
		c = kanban.DefaultGoalColor
	}
	g, err := a.Service.AddGoal(a.Title, c)
	if err != nil {
		return err
	}
	a.Service.Flush()

	out := a.Out
	if out == nil {
		out = color.Output
	}
	_, err = fmt.Fprintf(out, "%s %s (%s)\n", printers.Paint(g.Color).Sprint("●"), g.Title, g.ID)
	return err
}
