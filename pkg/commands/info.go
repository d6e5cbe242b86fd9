package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about goals and where they are stored.",
		Example: `
tempo info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return oo.HandleError(err)
			}
			defer s.Close()

			n := info.Info{
				Settings: s.settings,
				Service:  s.svc,
				Out:      cmd.OutOrStdout(),
			}
			err = n.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
