// Package info prints where tempo keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
)

type Info struct {
	Settings *store.Settings
	Service  *app.Service
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("TEMPO_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TEMPO_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "TEMPO_CONFIG_PATH env var not set")
	}

	if n.Settings == nil {
		var err error
		n.Settings, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Settings.BasePath())
	_, _ = fmt.Fprintln(out, "Config.logFile:", n.Settings.LogFile)
	_, _ = fmt.Fprintln(out, "Config.weekStartsOn:", n.Settings.WeekStartsOn)
	_, _ = fmt.Fprintln(out, "Config.saveDebounce:", n.Settings.SaveDebounce)

	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}

	board := n.Service.Snapshot()
	_, _ = fmt.Fprintf(out, "Goals:\n")
	for _, g := range board.Goals {
		_, _ = fmt.Fprintf(out, "  %s (%d tasks)\n", g.Title, g.TaskCount())
	}
	if len(board.Goals) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no goals")
	}
	return nil
}
