// Package eventviewer is the debug pane that lists the messages flowing
// through the root model, newest first.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/tempo/pkg/tui/ui"
)

// Level indicates the severity of a logged message.
type Level int

const (
	// LevelInfo is the default severity.
	LevelInfo Level = iota
	// LevelError highlights failures.
	LevelError
)

// Entry captures a rendered message.
type Entry struct {
	Timestamp time.Time
	Source    string
	Summary   string
	Detail    string
	Level     Level
}

// Styles controls the log's presentation.
type Styles struct {
	Frame     lipgloss.Style
	Header    lipgloss.Style
	Info      lipgloss.Style
	Error     lipgloss.Style
	Timestamp lipgloss.Style
	Source    lipgloss.Style
}

// DefaultStyles returns the stock styling.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("248")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Source:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Model renders a capped message log.
type Model struct {
	viewport viewport.Model
	entries  []Entry
	limit    int
	bounds   ui.Bounds
	styles   Styles
}

// New constructs a viewer that keeps at most limit entries.
func New(limit int) *Model {
	if limit <= 0 {
		limit = 200
	}
	m := &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		limit:    limit,
		styles:   DefaultStyles(),
	}
	m.refresh()
	return m
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls the log with the mouse wheel.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if wheel, ok := msg.(tea.MouseWheelMsg); ok && m.bounds.Contains(wheel.Mouse().X, wheel.Mouse().Y) {
		vp, cmd := m.viewport.Update(msg)
		m.viewport = vp
		return m, cmd
	}
	return m, nil
}

// SetBounds implements ui.Component. The frame and header take three lines.
func (m *Model) SetBounds(b ui.Bounds) {
	m.bounds = b
	m.viewport.SetWidth(max(1, b.Width-2))
	m.viewport.SetHeight(max(1, b.Height-3))
	m.refresh()
}

// Len returns the number of retained entries.
func (m *Model) Len() int { return len(m.entries) }

// View renders the bordered log.
func (m *Model) View() string {
	if m.bounds.Empty() {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.styles.Header.Render("Events"), m.viewport.View())
	return m.styles.Frame.
		Width(max(1, m.bounds.Width-2)).
		Height(max(1, m.bounds.Height-2)).
		Render(body)
}

// Append inserts entry at the top of the log.
func (m *Model) Append(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Source == "" {
		entry.Source = "tea"
	}
	m.entries = append([]Entry{entry}, m.entries...)
	if len(m.entries) > m.limit {
		m.entries = m.entries[:m.limit]
	}
	m.refresh()
	m.viewport.SetYOffset(0)
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		lines = append(lines, m.render(entry))
	}
	content := strings.Join(lines, "\n")
	if content == "" {
		content = m.styles.Timestamp.Render("No events yet")
	}
	m.viewport.SetContent(content)
}

func (m *Model) render(entry Entry) string {
	ts := m.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05.000"))
	source := m.styles.Source.Render(fmt.Sprintf("[%s]", entry.Source))
	msg := entry.Summary
	if entry.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, entry.Detail)
	}
	if entry.Level == LevelError {
		msg = m.styles.Error.Render(msg)
	} else {
		msg = m.styles.Info.Render(msg)
	}
	return fmt.Sprintf("%s %s %s", ts, source, msg)
}
