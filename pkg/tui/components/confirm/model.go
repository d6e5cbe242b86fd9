// Package confirm is the yes/no dialog guarding destructive board edits.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

// Model asks one question and answers with a ConfirmResultMsg addressed to
// the requesting component.
type Model struct {
	req    events.ConfirmRequestMsg
	styles theme.ModalTheme
}

// New opens the dialog for req.
func New(req events.ConfirmRequestMsg, styles theme.ModalTheme) *Model {
	return &Model{req: req, styles: styles}
}

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd { return nil }

// Placement implements ui.Overlay.
func (m *Model) Placement() overlay.Placement { return overlay.Centered() }

// Update implements ui.Overlay.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		return m, m.answer(true)
	case "n", "N", "esc":
		return m, m.answer(false)
	}
	return m, nil
}

func (m *Model) answer(ok bool) tea.Cmd {
	return events.Emit(events.ConfirmResultMsg{Component: m.req.Component, Accepted: ok})
}

// View implements ui.Overlay.
func (m *Model) View() string {
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Danger.Render(m.req.Title),
		m.styles.Body.Render(m.req.Body),
		"",
		m.styles.Label.Render("y delete  n keep"),
	))
}
