// Package help renders the key reference overlay.
package help

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

// ID is the component id the help overlay emits with.
const ID events.ComponentID = "help"

//go:embed help.txt
var helpText string

// Model renders the help text inside a bordered, scrollable viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(width, height int) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	m := &Model{viewport: vp, frame: frame}
	m.SetSize(width, height)
	return m
}

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd { return nil }

// Placement implements ui.Overlay.
func (m *Model) Placement() overlay.Placement { return overlay.Centered() }

// Update closes on esc, ? or q and forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q":
			return m, events.Emit(events.OverlayCloseMsg{Component: ID})
		}
	}
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return m, cmd
}

// View renders the help content inside a rounded frame.
func (m *Model) View() string {
	return m.frame.Width(m.width).Height(m.height).Render(m.viewport.View())
}

// SetSize configures the overlay dimensions and rewraps the text to fit.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 40), max(height, 8)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height

	inner := max(width-m.frame.GetHorizontalFrameSize(), 1)
	m.viewport.SetWidth(inner)
	m.viewport.SetHeight(max(height-m.frame.GetVerticalFrameSize(), 1))
	m.viewport.SetContent(lipgloss.NewStyle().Width(inner).Render(strings.TrimSpace(helpText)))
	m.viewport.SetYOffset(0)
}
