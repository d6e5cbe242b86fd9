// Package prompt asks for a single line of text on behalf of another
// component.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

// ID identifies prompt overlays in OverlayCloseMsg.
const ID events.ComponentID = "prompt"

// Model is a one line text prompt.
type Model struct {
	req    events.PromptRequestMsg
	input  textinput.Model
	errMsg string
	styles theme.ModalTheme
}

// New opens a prompt for req. The answer goes back to req.Component.
func New(req events.PromptRequestMsg, styles theme.ModalTheme) *Model {
	ti := textinput.New()
	ti.Placeholder = req.Placeholder
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.SetWidth(40)
	ti.SetValue(req.Value)
	ti.CursorEnd()
	return &Model{req: req, input: ti, styles: styles}
}

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// Placement implements ui.Overlay.
func (m *Model) Placement() overlay.Placement { return overlay.Centered() }

// Update implements ui.Overlay.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.errMsg = "Title is required"
				return m, nil
			}
			return m, events.Emit(events.PromptSubmitMsg{
				Component: m.req.Component,
				Action:    m.req.Action,
				Value:     value,
				Ref:       m.req.Ref,
			})
		case "esc":
			return m, events.Emit(events.OverlayCloseMsg{Component: ID})
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements ui.Overlay.
func (m *Model) View() string {
	lines := []string{m.styles.Title.Render(m.req.Title), m.input.View()}
	if m.errMsg != "" {
		lines = append(lines, m.styles.Error.Render(m.errMsg))
	}
	lines = append(lines, m.styles.Label.Render("enter save  esc cancel"))
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
