package main

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/timegrid"
	"tableflip.dev/tempo/pkg/tui/components/board"
	"tableflip.dev/tempo/pkg/tui/components/help"
	"tableflip.dev/tempo/pkg/tui/components/minimonth"
	"tableflip.dev/tempo/pkg/tui/components/weekgrid"
	tui "tableflip.dev/tempo/pkg/tui/ui"
)

func newWeekCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Preview the week grid with sample events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*opts, "week", weekGrid, nil)
		},
	}
}

func newMonthCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Preview the mini month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*opts, "month", func(e env) tui.Component {
				week := timegrid.WeekOf(e.now, e.startsOn)
				return minimonth.New("", week, e.now, e.startsOn, e.theme.Grid, e.svc.Events)
			}, nil)
		},
	}
}

func newBoardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Preview the goal board",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*opts, "board", func(e env) tui.Component {
				return board.New("", e.svc, e.theme.Board, nil)
			}, nil)
		},
	}
}

func newHelpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "help-overlay",
		Short: "Render the help overlay over the week grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(*opts, "help", weekGrid, func(env) tui.Overlay {
				return help.New(opts.width*3/4, opts.height*3/4)
			})
		},
	}
}

func weekGrid(e env) tui.Component {
	return weekgrid.New(weekgrid.Options{
		StartsOn: e.startsOn,
		Source:   e.svc.EventsInWeek,
		Theme:    e.theme.Grid,
	})
}
