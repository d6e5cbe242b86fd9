package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
)

func TestSubmitReturnsToRequester(t *testing.T) {
	req := events.PromptRequestMsg{
		Component: "board",
		Action:    events.PromptRenameColumn,
		Title:     "Rename column",
		Value:     "Doing",
		Ref:       events.BoardRef{GoalID: "g", ColumnID: "c"},
	}
	m := New(req, theme.Default().Modal)
	m.input.SetValue("  Review ")

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(events.PromptSubmitMsg)
	require.True(t, ok)
	require.Equal(t, events.ComponentID("board"), msg.Component)
	require.Equal(t, events.PromptRenameColumn, msg.Action)
	require.Equal(t, "Review", msg.Value)
	require.Equal(t, "c", msg.Ref.ColumnID)
}

func TestEmptyValueStaysOpen(t *testing.T) {
	m := New(events.PromptRequestMsg{Component: "board", Title: "New goal"}, theme.Default().Modal)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Contains(t, ansi.Strip(m.View()), "Title is required")

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.Equal(t, events.OverlayCloseMsg{Component: ID}, cmd())
}
