package commands

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := New()
	require.Equal(t, "tempo", root.Name())

	for _, name := range []string{"ui", "goals", "export", "info", "mcp", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		require.Equal(t, name, cmd.Name())
	}

	add, _, err := root.Find([]string{"goals", "add"})
	require.NoError(t, err)
	require.NotNil(t, add.Flags().Lookup("color"))

	goals, _, err := root.Find([]string{"g"})
	require.NoError(t, err)
	require.NotNil(t, goals.Flags().Lookup("json"))
	require.NotNil(t, goals.Flags().Lookup("show-id"))
}

func TestUIFlags(t *testing.T) {
	cmd, _, err := New().Find([]string{"ui"})
	require.NoError(t, err)
	for _, flag := range []string{"debug", "demo", "week-starts-on"} {
		require.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}
