package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timegrid"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Emit wraps msg into a tea.Cmd.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// WeekChangedMsg announces that the visible week moved.
type WeekChangedMsg struct {
	Component ComponentID
	Week      timegrid.Week
}

// Describe renders the week for logs.
func (m WeekChangedMsg) Describe() string {
	return fmt.Sprintf(`week:%q`, m.Week.String())
}

// DateSelectMsg is emitted when a day is picked in the month navigator.
type DateSelectMsg struct {
	Component ComponentID
	Date      time.Time
}

// Describe renders the date for logs.
func (m DateSelectMsg) Describe() string {
	return fmt.Sprintf(`date:%q`, m.Date.Format("2006-01-02"))
}

// EventCreateRequestMsg carries a released drag on the week grid. The root
// model answers it with the quick add popover.
type EventCreateRequestMsg struct {
	Component ComponentID
	Commit    calendar.Commit
}

// Describe renders the interval for logs.
func (m EventCreateRequestMsg) Describe() string {
	return fmt.Sprintf(`start:%q end:%q`, m.Commit.Start.Format(time.Kitchen), m.Commit.End.Format(time.Kitchen))
}

// EventEditRequestMsg asks for the full form on an existing event.
type EventEditRequestMsg struct {
	Component ComponentID
	EventID   string
}

// Describe renders the event id for logs.
func (m EventEditRequestMsg) Describe() string {
	return fmt.Sprintf(`event:%q`, m.EventID)
}

// EventDeleteRequestMsg asks for an event to be removed.
type EventDeleteRequestMsg struct {
	Component ComponentID
	EventID   string
}

// Describe renders the event id for logs.
func (m EventDeleteRequestMsg) Describe() string {
	return fmt.Sprintf(`event:%q`, m.EventID)
}

// QuickAddSubmitMsg saves a standalone event from the popover.
type QuickAddSubmitMsg struct {
	Component ComponentID
	Title     string
	Color     palette.Key
	Start     time.Time
	End       time.Time
}

// Describe renders the submission for logs.
func (m QuickAddSubmitMsg) Describe() string {
	return fmt.Sprintf(`title:%q color:%q`, m.Title, m.Color)
}

// EventFormRequestMsg opens the full event form seeded with Draft. Drafts
// without an id create a new event.
type EventFormRequestMsg struct {
	Component ComponentID
	Draft     calendar.Event
}

// Describe renders the draft for logs.
func (m EventFormRequestMsg) Describe() string {
	return fmt.Sprintf(`event:%q title:%q`, m.Draft.ID, m.Draft.Title)
}

// EventSubmitMsg saves an event from the full form.
type EventSubmitMsg struct {
	Component ComponentID
	Event     calendar.Event
}

// Describe renders the event for logs.
func (m EventSubmitMsg) Describe() string {
	return fmt.Sprintf(`event:%q title:%q`, m.Event.ID, m.Event.Title)
}

// OverlayCloseMsg dismisses the overlay that emitted it.
type OverlayCloseMsg struct {
	Component ComponentID
}

// BoardRef points at a goal, column or task.
type BoardRef struct {
	GoalID   string
	ColumnID string
	TaskID   string
}

// PromptAction names what a prompt's value is used for.
type PromptAction string

const (
	PromptAddGoal      PromptAction = "add-goal"
	PromptRenameGoal   PromptAction = "rename-goal"
	PromptAddColumn    PromptAction = "add-column"
	PromptRenameColumn PromptAction = "rename-column"
	PromptAddTask      PromptAction = "add-task"
	PromptEditTask     PromptAction = "edit-task"
)

// PromptRequestMsg asks the root model for a single line of text.
type PromptRequestMsg struct {
	Component   ComponentID
	Action      PromptAction
	Title       string
	Placeholder string
	Value       string
	Ref         BoardRef
}

// Describe renders the request for logs.
func (m PromptRequestMsg) Describe() string {
	return fmt.Sprintf(`action:%q goal:%q`, m.Action, m.Ref.GoalID)
}

// PromptSubmitMsg returns the text to the component that asked for it.
type PromptSubmitMsg struct {
	Component ComponentID
	Action    PromptAction
	Value     string
	Ref       BoardRef
}

// Describe renders the submission for logs.
func (m PromptSubmitMsg) Describe() string {
	return fmt.Sprintf(`action:%q value:%q`, m.Action, m.Value)
}

// ConfirmRequestMsg asks the root model to confirm the deletion pending in
// the service.
type ConfirmRequestMsg struct {
	Component ComponentID
	Title     string
	Body      string
}

// Describe renders the request for logs.
func (m ConfirmRequestMsg) Describe() string {
	return fmt.Sprintf(`title:%q`, m.Title)
}

// ConfirmResultMsg carries the user's answer.
type ConfirmResultMsg struct {
	Component ComponentID
	Accepted  bool
}

// Describe renders the answer for logs.
func (m ConfirmResultMsg) Describe() string {
	return fmt.Sprintf(`accepted:%t`, m.Accepted)
}

// BoardChangedMsg announces that goals changed in memory.
type BoardChangedMsg struct {
	Component ComponentID
	GoalID    string
}

// Describe renders the change for logs.
func (m BoardChangedMsg) Describe() string {
	return fmt.Sprintf(`goal:%q`, m.GoalID)
}

// StatusMsg sets the footer text. A non-nil Err is shown as an error.
type StatusMsg struct {
	Text string
	Err  error
}

// Describe renders the status for logs.
func (m StatusMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`error:%q`, m.Err.Error())
	}
	return fmt.Sprintf(`text:%q`, m.Text)
}

// StatusCmd wraps a footer update into a tea.Cmd.
func StatusCmd(text string) tea.Cmd {
	return Emit(StatusMsg{Text: text})
}

// ErrorCmd reports err in the footer.
func ErrorCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return Emit(StatusMsg{Err: err})
}
