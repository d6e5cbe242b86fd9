package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
)

func TestAnswers(t *testing.T) {
	req := events.ConfirmRequestMsg{Component: "board", Title: "Delete goal?", Body: "Fitness and its 3 tasks"}
	m := New(req, theme.Default().Modal)
	require.Contains(t, ansi.Strip(m.View()), "Fitness and its 3 tasks")

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.Equal(t, events.ConfirmResultMsg{Component: "board", Accepted: true}, cmd())

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.Equal(t, events.ConfirmResultMsg{Component: "board", Accepted: false}, cmd())
}
