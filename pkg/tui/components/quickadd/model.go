// Package quickadd is the popover shown after a drag on the week grid. It
// asks for a title and a color and can hand the draft to the full form.
package quickadd

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

const width = 36

// Model is the quick add popover.
type Model struct {
	id     events.ComponentID
	commit calendar.Commit
	input  textinput.Model
	color  palette.Key
	styles theme.ModalTheme
}

// New opens the popover for a released drag.
func New(id events.ComponentID, commit calendar.Commit, styles theme.ModalTheme) *Model {
	if id == "" {
		id = events.ComponentID("quickadd")
	}
	ti := textinput.New()
	ti.Placeholder = "Add title"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.SetWidth(width - 6)
	return &Model{
		id:     id,
		commit: commit,
		input:  ti,
		color:  calendar.DefaultColor,
		styles: styles,
	}
}

// ID returns the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// Color is the selected color.
func (m *Model) Color() palette.Key { return m.color }

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// Placement anchors the popover beside the release point.
func (m *Model) Placement() overlay.Placement {
	return overlay.At(m.commit.Anchor.X+1, m.commit.Anchor.Y)
}

// Update implements ui.Overlay.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	switch key.String() {
	case "enter":
		return m, events.Emit(events.QuickAddSubmitMsg{
			Component: m.id,
			Title:     strings.TrimSpace(m.input.Value()),
			Color:     m.color,
			Start:     m.commit.Start,
			End:       m.commit.End,
		})
	case "esc":
		return m, events.Emit(events.OverlayCloseMsg{Component: m.id})
	case "tab":
		m.color = m.color.Next()
		return m, nil
	case "shift+tab":
		m.color = m.color.Prev()
		return m, nil
	case "ctrl+o":
		draft := calendar.Event{
			Title: strings.TrimSpace(m.input.Value()),
			Start: m.commit.Start,
			End:   m.commit.End,
			Link:  calendar.Standalone{Paint: m.color},
		}
		return m, events.Emit(events.EventFormRequestMsg{Component: m.id, Draft: draft})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements ui.Overlay.
func (m *Model) View() string {
	when := m.commit.Start.Format("Mon Jan 2, 15:04") + " - " + m.commit.End.Format("15:04")
	lines := []string{
		m.styles.Title.Render("New event"),
		m.styles.Label.Render(when),
		m.input.View(),
		Swatches(m.color),
		m.styles.Label.Render("tab color  ctrl+o more options"),
	}
	return m.styles.Frame.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Swatches renders the palette with selected marked.
func Swatches(selected palette.Key) string {
	parts := make([]string, 0, len(palette.Keys()))
	for _, k := range palette.Keys() {
		mark := "●"
		if k == selected {
			mark = "◉"
		}
		parts = append(parts, theme.Accent(k).Render(mark))
	}
	return strings.Join(parts, " ") + "  " + string(selected)
}
