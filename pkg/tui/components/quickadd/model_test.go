package quickadd

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
)

func newPopover() *Model {
	start := time.Date(2024, 3, 6, 14, 0, 0, 0, time.UTC)
	commit := calendar.Commit{
		Interval: calendar.Interval{Day: 2, StartRow: 56, EndRow: 57, Start: start, End: start.Add(15 * time.Minute)},
		Anchor:   calendar.Point{X: 30, Y: 12},
	}
	return New("", commit, theme.Default().Modal)
}

func TestSubmitCarriesTitleAndColor(t *testing.T) {
	m := newPopover()
	m.Init()
	m.input.SetValue("  Lunch ")
	require.Equal(t, calendar.DefaultColor, m.Color())

	m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	require.Equal(t, palette.Indigo, m.Color())
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	m.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	require.Equal(t, palette.Green, m.Color())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(events.QuickAddSubmitMsg)
	require.True(t, ok)
	require.Equal(t, "Lunch", msg.Title)
	require.Equal(t, palette.Green, msg.Color)
	require.Equal(t, 14, msg.Start.Hour())
	require.Equal(t, 15*time.Minute, msg.End.Sub(msg.Start))
}

func TestMoreOptionsHandsOverDraft(t *testing.T) {
	m := newPopover()
	m.input.SetValue("Planning")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	msg, ok := cmd().(events.EventFormRequestMsg)
	require.True(t, ok)
	require.Empty(t, msg.Draft.ID)
	require.Equal(t, "Planning", msg.Draft.Title)
	require.Equal(t, calendar.Standalone{Paint: calendar.DefaultColor}, msg.Draft.Link)
}

func TestEscapeCloses(t *testing.T) {
	m := newPopover()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	require.Equal(t, events.OverlayCloseMsg{Component: m.ID()}, cmd())
}

func TestPlacementFollowsAnchor(t *testing.T) {
	p := newPopover().Placement()
	require.True(t, p.Anchored)
	require.Equal(t, 31, p.X)
	require.Equal(t, 12, p.Y)
}
