// Package weekgrid renders the seven day calendar grid and turns mouse input
// into drag-to-create, edit and delete requests.
package weekgrid

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/timegrid"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
)

const (
	gutterWidth = 6
	headerLines = 1
	// scrollStep is one hour of rows.
	scrollStep = 4
	// dayStart is the first row shown when the grid opens (08:00).
	dayStart timegrid.Slot = 32
)

// scales are the slots drawn per screen line, finest first.
var scales = []int{1, 2, 4}

// Source returns the events to lay out for a week.
type Source func(timegrid.Week) []calendar.Event

// Options configures a week grid.
type Options struct {
	ID       events.ComponentID
	StartsOn time.Weekday
	Source   Source
	Theme    theme.GridTheme
	Now      func() time.Time
}

// Model is the week grid component.
type Model struct {
	id     events.ComponentID
	grid   *calendar.Grid
	source Source
	styles theme.GridTheme
	clock  func() time.Time

	bounds ui.Bounds
	first  timegrid.Slot
	scale  int
	now    time.Time

	placed  []calendar.Placement
	pending []tea.Cmd
}

// New constructs a week grid showing the week containing now.
func New(opts Options) *Model {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	id := opts.ID
	if id == "" {
		id = events.ComponentID("weekgrid")
	}
	now := clock()
	m := &Model{
		id:     id,
		grid:   calendar.NewGrid(now, opts.StartsOn),
		source: opts.Source,
		styles: opts.Theme,
		clock:  clock,
		first:  dayStart,
		now:    now,
	}
	m.grid.OnCreate = func(c calendar.Commit) {
		m.emit(events.EventCreateRequestMsg{Component: m.id, Commit: c})
	}
	m.grid.OnEdit = func(e calendar.Event) {
		m.emit(events.EventEditRequestMsg{Component: m.id, EventID: e.ID})
	}
	m.grid.OnDelete = func(e calendar.Event) {
		m.emit(events.EventDeleteRequestMsg{Component: m.id, EventID: e.ID})
	}
	m.Refresh()
	return m
}

// ID returns the component identifier used in emitted events.
func (m *Model) ID() events.ComponentID { return m.id }

// Grid exposes the controller driving the view.
func (m *Model) Grid() *calendar.Grid { return m.grid }

// Week is the visible window.
func (m *Model) Week() timegrid.Week { return m.grid.Week() }

// Placements returns the events laid out by the last refresh.
func (m *Model) Placements() []calendar.Placement { return m.placed }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetBounds implements ui.Component.
func (m *Model) SetBounds(b ui.Bounds) {
	m.bounds = b
	m.relayout()
}

// SetNow moves the now indicator.
func (m *Model) SetNow(now time.Time) {
	m.now = now
}

// Jump shows the week containing day.
func (m *Model) Jump(day time.Time) tea.Cmd {
	if m.grid.Week().Contains(day) {
		return nil
	}
	m.grid.SetReference(day)
	m.Refresh()
	return m.weekChanged()
}

// Refresh lays out the current events again.
func (m *Model) Refresh() {
	var list []calendar.Event
	if m.source != nil {
		list = m.source(m.grid.Week())
	}
	m.placed = m.grid.Layout(list)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(v.String())
	case tea.MouseClickMsg:
		mouse := v.Mouse()
		if mouse.Button == tea.MouseLeft {
			m.grid.PointerDown(mouse.X, mouse.Y)
		}
	case tea.MouseMotionMsg:
		if m.grid.Dragging() {
			mouse := v.Mouse()
			m.grid.PointerMove(mouse.X, mouse.Y)
		}
	case tea.MouseReleaseMsg:
		mouse := v.Mouse()
		m.grid.PointerUp(mouse.X, mouse.Y)
	case tea.MouseWheelMsg:
		mouse := v.Mouse()
		if !m.bounds.Contains(mouse.X, mouse.Y) {
			break
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.scroll(-scrollStep)
		case tea.MouseWheelDown:
			m.scroll(scrollStep)
		}
	}
	return m, m.flush()
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "left", "h", "[":
		m.grid.Shift(-1)
		m.Refresh()
		return m.weekChanged()
	case "right", "l", "]":
		m.grid.Shift(1)
		m.Refresh()
		return m.weekChanged()
	case "t":
		m.grid.SetReference(m.clock())
		m.Refresh()
		m.scrollTo(timegrid.RowForTime(m.now))
		return m.weekChanged()
	case "up", "k":
		m.scroll(-scrollStep)
	case "down", "j":
		m.scroll(scrollStep)
	case "+", "=":
		m.zoom(-1)
	case "-":
		m.zoom(1)
	case "esc":
		m.grid.PointerLeave()
	case "n":
		start := timegrid.Ceil(m.clock())
		if !m.grid.Week().Contains(start) {
			start = m.grid.Week().Start().Add(time.Duration(dayStart.Minutes()) * time.Minute)
		}
		draft := calendar.Event{Start: start, End: start.Add(time.Hour), Link: calendar.Standalone{}}
		return events.Emit(events.EventFormRequestMsg{Component: m.id, Draft: draft})
	}
	return nil
}

func (m *Model) weekChanged() tea.Cmd {
	return events.Emit(events.WeekChangedMsg{Component: m.id, Week: m.grid.Week()})
}

func (m *Model) emit(msg tea.Msg) {
	m.pending = append(m.pending, events.Emit(msg))
}

func (m *Model) flush() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *Model) visibleRows() int {
	lines := m.bounds.Height - headerLines
	if lines <= 0 {
		return 0
	}
	rows := lines * m.scaleFactor()
	if rows > timegrid.SlotsPerDay {
		rows = timegrid.SlotsPerDay
	}
	return rows
}

func (m *Model) scaleFactor() int {
	return scales[m.scale]
}

func (m *Model) scroll(delta int) {
	m.scrollTo(m.first + timegrid.Slot(delta))
}

// scrollTo puts row at the top of the view, clamped so the view never runs
// past the end of the day.
func (m *Model) scrollTo(row timegrid.Slot) {
	maxFirst := timegrid.Slot(timegrid.SlotsPerDay - m.visibleRows())
	if row > maxFirst {
		row = maxFirst
	}
	if row < 0 {
		row = 0
	}
	m.first = row
	m.relayout()
}

func (m *Model) zoom(delta int) {
	next := m.scale + delta
	if next < 0 || next >= len(scales) {
		return
	}
	m.scale = next
	m.scrollTo(m.first)
}

func (m *Model) relayout() {
	b := m.bounds
	lines := b.Height - headerLines
	width := b.Width - gutterWidth
	if lines <= 0 || width <= 0 {
		m.grid.SetGeometry(timegrid.Geometry{})
		return
	}
	rows := m.visibleRows()
	if int(m.first)+rows > timegrid.SlotsPerDay {
		m.first = timegrid.Slot(timegrid.SlotsPerDay - rows)
	}
	m.grid.SetGeometry(timegrid.Geometry{
		Left:  b.X + gutterWidth,
		Top:   b.Y + headerLines,
		Width: width,
		Lines: lines,
		First: m.first,
		Rows:  rows,
	})
}

// View implements ui.Component.
func (m *Model) View() string {
	b := m.bounds
	geom := m.grid.Geometry()
	if b.Empty() || geom.Lines <= 0 {
		return ""
	}
	cv := newCanvas(geom.Width, geom.Lines)
	rule := cv.style(m.styles.Rule)
	hour := cv.style(m.styles.Hour)

	for day := 0; day < timegrid.DaysPerWeek; day++ {
		x, _ := geom.Column(day)
		for y := 0; y < geom.Lines; y++ {
			cv.put(x-geom.Left, y, '│', rule)
		}
	}
	for row := geom.First; int(row) < int(geom.First)+geom.Rows; row++ {
		if row%4 != 0 {
			continue
		}
		if y, ok := geom.Line(row); ok {
			for x := 0; x < geom.Width; x++ {
				if cv.cells[y-geom.Top][x].ch == ' ' {
					cv.put(x, y-geom.Top, '┈', hour)
				}
			}
		}
	}

	for _, p := range m.placed {
		m.paintBlock(cv, p)
	}
	if iv, ok := m.grid.Preview(); ok {
		m.paintPreview(cv, iv)
	}
	nowY, nowOK := m.paintNow(cv)

	gutter := m.gutter(nowY, nowOK)
	body := cv.lines()
	lines := make([]string, 0, headerLines+len(body))
	lines = append(lines, m.header())
	for i, line := range body {
		lines = append(lines, gutter[i]+line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) paintBlock(cv *canvas, p calendar.Placement) {
	r, ok := m.grid.Block(p)
	if !ok {
		return
	}
	geom := m.grid.Geometry()
	x, y, w := r.X-geom.Left, r.Y-geom.Top, r.W
	fill := cv.style(theme.Fill(p.Event.Color()))
	// Keep the day divider visible between neighbouring blocks.
	if w > 2 {
		x++
		w--
	}
	cv.fill(x, y, w, r.H, ' ', fill)
	title := p.Event.Title
	if title == "" {
		title = calendar.UntitledTitle
	}
	limit := w
	if w >= 2 {
		limit = w - 1
	}
	cv.text(x, y, truncate.StringWithTail(title, uint(limit), "…"), limit, fill)
	if r.H >= 2 {
		label := p.Event.Start.Format("15:04") + "-" + p.Event.End.Format("15:04")
		if len(label) > w {
			label = p.Event.Start.Format("15:04")
		}
		cv.text(x, y+1, label, w, fill)
	}
	if dx, dy, ok := calendar.DeleteControl(r); ok && w >= 2 {
		cv.put(dx-geom.Left, dy-geom.Top, '×', fill)
	}
}

func (m *Model) paintPreview(cv *canvas, iv calendar.Interval) {
	geom := m.grid.Geometry()
	top, bottom, ok := geom.Extent(iv.StartRow, iv.EndRow)
	if !ok {
		return
	}
	x, w := geom.Column(iv.Day)
	if w > 2 {
		x++
		w--
	}
	style := cv.style(m.styles.Preview)
	cv.fill(x-geom.Left, top-geom.Top, w, bottom-top, ' ', style)
	label := iv.Start.Format("15:04") + "-" + iv.End.Format("15:04")
	cv.text(x-geom.Left, top-geom.Top, label, w, style)
}

// paintNow draws the now line across today's column and returns its line.
func (m *Model) paintNow(cv *canvas) (int, bool) {
	marker, ok := m.grid.NowLine(m.now)
	if !ok {
		return 0, false
	}
	geom := m.grid.Geometry()
	top, bottom, ok := geom.Extent(marker.Row, marker.Row+1)
	if !ok {
		return 0, false
	}
	y := top + marker.Minute*(bottom-top)/timegrid.SlotMinutes - geom.Top
	x, w := geom.Column(marker.Day)
	style := cv.style(m.styles.Now)
	for dx := 1; dx < w; dx++ {
		cv.put(x-geom.Left+dx, y, '─', style)
	}
	cv.put(x-geom.Left, y, '●', style)
	return y, true
}

func (m *Model) gutter(nowY int, nowOK bool) []string {
	geom := m.grid.Geometry()
	out := make([]string, geom.Lines)
	blank := strings.Repeat(" ", gutterWidth)
	for i := range out {
		out[i] = blank
	}
	for row := geom.First; int(row) < int(geom.First)+geom.Rows; row++ {
		if row%4 != 0 {
			continue
		}
		if y, ok := geom.Line(row); ok {
			out[y-geom.Top] = m.styles.Gutter.Render(fmt.Sprintf("%-*s", gutterWidth, row.Label()))
		}
	}
	if nowOK && nowY >= 0 && nowY < len(out) {
		out[nowY] = m.styles.Now.Render(fmt.Sprintf("%-*s", gutterWidth, m.now.Format("15:04")))
	}
	return out
}

func (m *Model) header() string {
	geom := m.grid.Geometry()
	week := m.grid.Week()
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	for day := 0; day < timegrid.DaysPerWeek; day++ {
		_, w := geom.Column(day)
		label := truncate.String(week[day].Format("Mon 02"), uint(w))
		style := m.styles.Day
		if timegrid.SameDay(week[day], m.now) {
			style = m.styles.Today
		}
		sb.WriteString(style.Render(lipgloss.PlaceHorizontal(w, lipgloss.Center, label)))
	}
	return sb.String()
}
