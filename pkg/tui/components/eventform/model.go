// Package eventform is the full event editor: title, description, timing,
// color, goal link and a reminder.
package eventform

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/timeutil"
	"tableflip.dev/tempo/pkg/tui/components/quickadd"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

const dateLayout = "2006-01-02"

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldDate
	fieldStart
	fieldLength
	fieldReminder
	fieldColor
	fieldGoal
	fieldTask
	fieldCount
)

var labels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Notes",
	fieldDate:        "Date",
	fieldStart:       "Start",
	fieldLength:      "Length",
	fieldReminder:    "Remind",
	fieldColor:       "Color",
	fieldGoal:        "Goal",
	fieldTask:        "Task",
}

// Choice is a goal or task that an event can be linked to.
type Choice struct {
	ID    string
	Title string
	Color palette.Key
	Tasks []Choice
}

// Linker builds the link for the selected goal and task.
type Linker func(goalID, taskID string, color palette.Key) calendar.Link

// Model is the event form overlay.
type Model struct {
	id     events.ComponentID
	draft  calendar.Event
	goals  []Choice
	link   Linker
	styles theme.ModalTheme

	inputs [fieldCount]*textinput.Model
	focus  field
	color  palette.Key
	goal   int // 0 is no goal, i+1 selects goals[i]
	task   int // 0 is no task
	errMsg string
}

// New opens the form on draft. Drafts without an id create an event.
func New(id events.ComponentID, draft calendar.Event, goals []Choice, link Linker, styles theme.ModalTheme) *Model {
	if id == "" {
		id = events.ComponentID("eventform")
	}
	m := &Model{id: id, draft: draft, goals: goals, link: link, styles: styles, color: calendar.DefaultColor}

	values := map[field]string{
		fieldTitle:       draft.Title,
		fieldDescription: draft.Description,
		fieldDate:        draft.Start.Format(dateLayout),
		fieldStart:       timeutil.FormatClock(draft.Start),
		fieldLength:      timeutil.FormatLength(draft.Duration()),
	}
	if len(draft.Notifications) > 0 {
		values[fieldReminder] = timeutil.FormatLength(draft.Start.Sub(draft.Notifications[0]))
	}
	placeholders := map[field]string{
		fieldTitle:       "Add title",
		fieldDescription: "Add description",
		fieldDate:        dateLayout,
		fieldStart:       "14:30",
		fieldLength:      timeutil.DefaultLength,
		fieldReminder:    "none, or e.g. 10m",
	}
	for f := fieldTitle; f <= fieldReminder; f++ {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.SetWidth(32)
		ti.Placeholder = placeholders[f]
		ti.SetValue(values[f])
		m.inputs[f] = &ti
	}

	switch l := draft.Link.(type) {
	case calendar.Standalone:
		if l.Paint != "" {
			m.color = l.Paint
		}
	case calendar.GoalLinked:
		m.selectGoal(l.GoalID, "")
	case calendar.TaskLinked:
		m.selectGoal(l.GoalID, l.TaskID)
	}
	return m
}

func (m *Model) selectGoal(goalID, taskID string) {
	for i, g := range m.goals {
		if g.ID != goalID {
			continue
		}
		m.goal = i + 1
		for j, t := range g.Tasks {
			if t.ID == taskID {
				m.task = j + 1
			}
		}
	}
}

// ID returns the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputs[fieldTitle].Focus(), textinput.Blink)
}

// Placement implements ui.Overlay.
func (m *Model) Placement() overlay.Placement { return overlay.Centered() }

// Update implements ui.Overlay.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, events.Emit(events.OverlayCloseMsg{Component: m.id})
		case "tab", "down":
			return m, m.move(1)
		case "shift+tab", "up":
			return m, m.move(-1)
		case "ctrl+d":
			if m.draft.ID == "" {
				return m, nil
			}
			return m, events.Emit(events.EventDeleteRequestMsg{Component: m.id, EventID: m.draft.ID})
		case "enter", "ctrl+s":
			e, err := m.Event()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			return m, events.Emit(events.EventSubmitMsg{Component: m.id, Event: e})
		case "left", "right":
			if m.focus >= fieldColor {
				step := 1
				if key.String() == "left" {
					step = -1
				}
				m.cycle(step)
				return m, nil
			}
		}
	}
	if m.focus < fieldColor {
		in, cmd := m.inputs[m.focus].Update(msg)
		*m.inputs[m.focus] = in
		return m, cmd
	}
	return m, nil
}

func (m *Model) move(step int) tea.Cmd {
	if m.focus < fieldColor {
		m.inputs[m.focus].Blur()
	}
	m.focus = field((int(m.focus) + step + int(fieldCount)) % int(fieldCount))
	if m.focus < fieldColor {
		return m.inputs[m.focus].Focus()
	}
	return nil
}

func (m *Model) cycle(step int) {
	switch m.focus {
	case fieldColor:
		if step > 0 {
			m.color = m.color.Next()
		} else {
			m.color = m.color.Prev()
		}
	case fieldGoal:
		m.goal = wrap(m.goal+step, len(m.goals)+1)
		m.task = 0
	case fieldTask:
		if m.goal == 0 {
			return
		}
		m.task = wrap(m.task+step, len(m.goals[m.goal-1].Tasks)+1)
	}
}

func wrap(v, n int) int {
	return (v%n + n) % n
}

// Event validates the form and builds the event it describes.
func (m *Model) Event() (calendar.Event, error) {
	e := m.draft
	e.Title = strings.TrimSpace(m.inputs[fieldTitle].Value())
	if e.Title == "" {
		e.Title = calendar.UntitledTitle
	}
	e.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(m.inputs[fieldDate].Value()), m.draft.Start.Location())
	if err != nil {
		return calendar.Event{}, fmt.Errorf("date must look like %s", dateLayout)
	}
	start, err := timeutil.ParseClock(day, m.inputs[fieldStart].Value())
	if err != nil {
		return calendar.Event{}, err
	}
	length, _, err := timeutil.ParseLength(m.inputs[fieldLength].Value())
	if err != nil {
		return calendar.Event{}, err
	}
	e.Start, e.End = start, start.Add(length)

	e.Notifications = nil
	if raw := strings.TrimSpace(m.inputs[fieldReminder].Value()); raw != "" && raw != "none" {
		before, _, err := timeutil.ParseLength(raw)
		if err != nil {
			return calendar.Event{}, err
		}
		e.Notifications = []time.Time{start.Add(-before)}
	}

	goalID, taskID := "", ""
	if m.goal > 0 {
		g := m.goals[m.goal-1]
		goalID = g.ID
		if m.task > 0 {
			taskID = g.Tasks[m.task-1].ID
		}
	}
	switch {
	case goalID != "" && m.link != nil:
		e.Link = m.link(goalID, taskID, m.color)
	default:
		e.Link = calendar.Standalone{Paint: m.color}
	}
	return e, e.Validate()
}

// View implements ui.Overlay.
func (m *Model) View() string {
	title := "New event"
	if m.draft.ID != "" {
		title = "Edit event"
	}
	lines := []string{m.styles.Title.Render(title), ""}
	for f := fieldTitle; f < fieldCount; f++ {
		lines = append(lines, m.row(f))
	}
	if m.errMsg != "" {
		lines = append(lines, "", m.styles.Error.Render(m.errMsg))
	}
	help := "tab next  ←/→ choose  enter save  esc cancel"
	if m.draft.ID != "" {
		help += "  ctrl+d delete"
	}
	lines = append(lines, "", m.styles.Label.Render(help))
	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) row(f field) string {
	marker := "  "
	if f == m.focus {
		marker = "> "
	}
	label := m.styles.Label.Render(fmt.Sprintf("%-7s", labels[f]))
	var value string
	switch f {
	case fieldColor:
		value = quickadd.Swatches(m.color)
	case fieldGoal:
		value = "(none)"
		if m.goal > 0 {
			g := m.goals[m.goal-1]
			value = theme.Accent(g.Color).Render("● ") + g.Title
		}
	case fieldTask:
		value = "(none)"
		if m.goal > 0 && m.task > 0 {
			value = m.goals[m.goal-1].Tasks[m.task-1].Title
		}
	default:
		value = m.inputs[f].View()
	}
	return marker + label + value
}
