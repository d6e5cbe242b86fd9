// Package ui launches the interactive calendar and goal board.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/tempo/pkg/app"
	teaui "tableflip.dev/tempo/pkg/tui/app"
)

// ErrNotTerminal is returned when stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("tempo ui needs an interactive terminal")

type UI struct {
	Service *app.Service
	Options teaui.Options
	// Demo seeds sample goals and this week's events before starting.
	Demo bool
}

func (u *UI) Do(ctx context.Context) error {
	if !interactive(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	if u.Demo {
		now := timeNow()
		if u.Options.Now != nil {
			now = u.Options.Now()
		}
		if err := Seed(ctx, u.Service, now, u.Options.StartsOn); err != nil {
			return err
		}
	}
	return teaui.Run(u.Service, u.Options)
}

func interactive(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
