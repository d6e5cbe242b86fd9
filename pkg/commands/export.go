package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	format := string(export.FormatYAML)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every goal, column and task to stdout.",
		Example: `
tempo export > goals.yaml
tempo export -o json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			e := export.Export{
				Service: s.svc,
				Format:  export.Format(format),
				Out:     cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", format, "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
