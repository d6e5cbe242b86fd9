package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/palette"
)

// GoalOptions selects goals and how they are shown.
type GoalOptions struct {
	ShowID bool
	Color  string
}

func AddShowIDArgs(cmd *cobra.Command, o *GoalOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the ID of each goal.")
}

func AddColorArgs(cmd *cobra.Command, o *GoalOptions) {
	keys := make([]string, 0, 8)
	for _, k := range palette.Keys() {
		keys = append(keys, string(k))
	}
	cmd.Flags().StringVarP(&o.Color, "color", "c", "",
		"Goal color, one of "+strings.Join(keys, ", ")+".")
	_ = cmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return keys, cobra.ShellCompDirectiveNoFileComp
	})
}

// GetColor resolves the color flag. Unset gives an empty key.
func (o *GoalOptions) GetColor() (palette.Key, error) {
	if strings.TrimSpace(o.Color) == "" {
		return "", nil
	}
	return palette.Parse(o.Color)
}
