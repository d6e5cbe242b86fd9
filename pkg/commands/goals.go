package commands

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tempo/pkg/commands/options"
	"tableflip.dev/tempo/pkg/runner/goals"
)

func addGoals(topLevel *cobra.Command) {
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:     "goals [goal-id]",
		Aliases: []string{"goal", "g"},
		Short:   base.Wrap80("List goals, or the columns and tasks of one goal."),
		Example: `
tempo goals
tempo goals --show-id
tempo goals 6f1c0f3e-8c39-4a5e-9a57-1b1b0b0c7d21 --json
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return goalCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			g := goals.Get{
				Service: s.svc,
				ShowID:  gopts.ShowID,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				g.GoalID = args[0]
			}
			err = g.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, gopts)

	addGoalsAdd(cmd)

	topLevel.AddCommand(cmd)
}

func addGoalsAdd(topLevel *cobra.Command) {
	gopts := &options.GoalOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a goal with To Do, In Progress and Done columns.",
		Example: `
tempo goals add Launch
tempo goals add "Run a marathon" --color green
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			color, err := gopts.GetColor()
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			a := goals.Add{
				Service: s.svc,
				Title:   strings.Join(args, " "),
				Color:   color,
				Out:     cmd.OutOrStdout(),
			}
			return a.Do(cmd.Context())
		},
	}

	options.AddColorArgs(cmd, gopts)

	topLevel.AddCommand(cmd)
}
