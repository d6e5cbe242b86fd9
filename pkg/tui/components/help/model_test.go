package help

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/tui/events"
)

func TestViewShowsSections(t *testing.T) {
	m := New(70, 40)
	view := ansi.Strip(m.View())
	require.Contains(t, view, "Calendar")
	require.Contains(t, view, "Quick add")
}

func TestEscCloses(t *testing.T) {
	m := New(70, 20)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	require.Equal(t, events.OverlayCloseMsg{Component: ID}, cmd())
}

func TestSizeHasFloor(t *testing.T) {
	m := New(5, 2)
	require.Equal(t, 40, m.width)
	require.Equal(t, 8, m.height)
}
