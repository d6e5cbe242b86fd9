package teaui

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/tui/components/confirm"
	"tableflip.dev/tempo/pkg/tui/components/eventform"
	"tableflip.dev/tempo/pkg/tui/components/help"
	"tableflip.dev/tempo/pkg/tui/components/prompt"
	"tableflip.dev/tempo/pkg/tui/components/quickadd"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

const (
	quickAddID  events.ComponentID = "quickadd"
	eventFormID events.ComponentID = "eventform"
	confirmID   events.ComponentID = "confirm"
)

// openOverlay replaces any open overlay with o.
func (m *Model) openOverlay(id events.ComponentID, o ui.Overlay) tea.Cmd {
	m.overlay, m.overlayID = o, id
	return o.Init()
}

func (m *Model) closeOverlay() {
	m.overlay, m.overlayID = nil, ""
}

// overlayContains reports whether the screen cell (x, y) is covered by the
// open overlay.
func (m *Model) overlayContains(x, y int) bool {
	if m.overlay == nil {
		return false
	}
	ox, oy, w, h := overlay.Region(m.width, m.height, m.overlay.View(), m.overlay.Placement())
	return ui.Bounds{X: ox, Y: oy, Width: w, Height: h}.Contains(x, y)
}

func (m *Model) openHelp() {
	m.openOverlay(help.ID, help.New(m.width*3/4, m.height*3/4))
}

func (m *Model) openQuickAdd(c calendar.Commit) tea.Cmd {
	return m.openOverlay(quickAddID, quickadd.New(quickAddID, c, m.theme.Modal))
}

func (m *Model) openEventForm(draft calendar.Event) tea.Cmd {
	form := eventform.New(eventFormID, draft, m.goalChoices(), m.svc.LinkFor, m.theme.Modal)
	return m.openOverlay(eventFormID, form)
}

func (m *Model) openPrompt(req events.PromptRequestMsg) tea.Cmd {
	return m.openOverlay(prompt.ID, prompt.New(req, m.theme.Modal))
}

func (m *Model) openConfirm(req events.ConfirmRequestMsg) tea.Cmd {
	return m.openOverlay(confirmID, confirm.New(req, m.theme.Modal))
}

// goalChoices lists goals and their tasks for the event form.
func (m *Model) goalChoices() []eventform.Choice {
	board := m.svc.Snapshot()
	out := make([]eventform.Choice, 0, len(board.Goals))
	for _, g := range board.Goals {
		c := eventform.Choice{ID: g.ID, Title: g.Title, Color: g.Color}
		for _, col := range g.Columns {
			for _, t := range col.Tasks {
				c.Tasks = append(c.Tasks, eventform.Choice{ID: t.ID, Title: t.Title, Color: t.Color})
			}
		}
		out = append(out, c)
	}
	return out
}
