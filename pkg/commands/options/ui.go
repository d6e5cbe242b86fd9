package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/timegrid"
)

// UIOptions tunes the interactive UI.
type UIOptions struct {
	Debug    bool
	Demo     bool
	StartsOn string
}

func AddUIArgs(cmd *cobra.Command, o *UIOptions) {
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Open with the event log pane visible (toggle with ctrl+g).")
	cmd.Flags().BoolVar(&o.Demo, "demo", false,
		"Seed sample goals and events for this week.")
	cmd.Flags().StringVar(&o.StartsOn, "week-starts-on", "",
		"First day of the week, overriding the config file.")
}

// GetStartsOn returns the week start flag, or def when it is unset.
func (o *UIOptions) GetStartsOn(def time.Weekday) (time.Weekday, error) {
	if o.StartsOn == "" {
		return def, nil
	}
	return timegrid.ParseWeekday(o.StartsOn)
}
