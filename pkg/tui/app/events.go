package teaui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tempo/pkg/tui/events"
)

// handleEvent applies the component messages the root model owns. It
// reports false for messages it does not know.
func (m *Model) handleEvent(msg tea.Msg) (tea.Cmd, bool) {
	switch v := msg.(type) {
	case events.WeekChangedMsg:
		m.month.SetWeek(v.Week)
	case events.DateSelectMsg:
		return m.week.Jump(v.Date), true

	case events.EventCreateRequestMsg:
		return m.openQuickAdd(v.Commit), true
	case events.QuickAddSubmitMsg:
		e, err := m.svc.QuickAddEvent(v.Title, v.Start, v.End, v.Color)
		if err != nil {
			m.setError(err)
			return nil, true
		}
		m.closeOverlay()
		m.eventsChanged()
		m.setStatus(fmt.Sprintf("Added %q", e.Title))
	case events.EventFormRequestMsg:
		return m.openEventForm(v.Draft), true
	case events.EventEditRequestMsg:
		e, ok := m.svc.Event(v.EventID)
		if !ok {
			m.setError(fmt.Errorf("event %s not found", v.EventID))
			return nil, true
		}
		return m.openEventForm(e), true
	case events.EventSubmitMsg:
		e, err := m.svc.SaveEvent(v.Event)
		if err != nil {
			m.setError(err)
			return nil, true
		}
		m.closeOverlay()
		m.eventsChanged()
		m.setStatus(fmt.Sprintf("Saved %q", e.Title))
	case events.EventDeleteRequestMsg:
		title := v.EventID
		if e, ok := m.svc.Event(v.EventID); ok {
			title = e.Title
		}
		if err := m.svc.DeleteEvent(v.EventID); err != nil {
			m.setError(err)
			return nil, true
		}
		if m.overlayID == eventFormID {
			m.closeOverlay()
		}
		m.eventsChanged()
		m.setStatus(fmt.Sprintf("Deleted %q", title))

	case events.PromptRequestMsg:
		return m.openPrompt(v), true
	case events.PromptSubmitMsg:
		m.closeOverlay()
		_, cmd := m.board.Update(v)
		return cmd, true
	case events.ConfirmRequestMsg:
		return m.openConfirm(v), true
	case events.ConfirmResultMsg:
		m.closeOverlay()
		_, cmd := m.board.Update(v)
		return cmd, true
	case events.OverlayCloseMsg:
		if v.Component == m.overlayID {
			m.closeOverlay()
		}
	case events.BoardChangedMsg:
		m.board.Update(v)
		m.week.Refresh()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) eventsChanged() {
	m.week.Refresh()
}

// eventSource returns the component that emitted msg, if any.
func eventSource(msg tea.Msg) events.ComponentID {
	switch v := msg.(type) {
	case events.WeekChangedMsg:
		return v.Component
	case events.DateSelectMsg:
		return v.Component
	case events.EventCreateRequestMsg:
		return v.Component
	case events.EventEditRequestMsg:
		return v.Component
	case events.EventDeleteRequestMsg:
		return v.Component
	case events.QuickAddSubmitMsg:
		return v.Component
	case events.EventFormRequestMsg:
		return v.Component
	case events.EventSubmitMsg:
		return v.Component
	case events.PromptRequestMsg:
		return v.Component
	case events.PromptSubmitMsg:
		return v.Component
	case events.ConfirmRequestMsg:
		return v.Component
	case events.ConfirmResultMsg:
		return v.Component
	case events.BoardChangedMsg:
		return v.Component
	case events.OverlayCloseMsg:
		return v.Component
	}
	return ""
}
