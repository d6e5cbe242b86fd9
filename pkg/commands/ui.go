package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/ui"
	teaui "tableflip.dev/tempo/pkg/tui/app"
)

func addUI(topLevel *cobra.Command) {
	uo := &options.UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
tempo ui
tempo ui --week-starts-on sunday
tempo ui --demo --debug
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			startsOn, err := uo.GetStartsOn(s.settings.WeekStartsOn)
			if err != nil {
				return err
			}
			i := ui.UI{
				Service: s.svc,
				Demo:    uo.Demo,
				Options: teaui.Options{
					StartsOn: startsOn,
					Logger:   s.log,
					Debug:    uo.Debug,
				},
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddUIArgs(cmd, uo)

	topLevel.AddCommand(cmd)
}
