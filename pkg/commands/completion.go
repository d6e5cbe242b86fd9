package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(tempo completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(tempo completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// goalCompletions offers goal ids with their titles as descriptions.
func goalCompletions(cmd *cobra.Command, toComplete string) []string {
	s, err := openSession(cmd.Context())
	if err != nil {
		return nil
	}
	defer s.Close()
	var out []string
	for _, g := range s.svc.Snapshot().Goals {
		if strings.HasPrefix(g.ID, toComplete) {
			out = append(out, g.ID+"\t"+g.Title)
		}
	}
	return out
}
