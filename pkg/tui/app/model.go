// Package teaui hosts the Bubble Tea program for the tempo TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/tui/components/board"
	"tableflip.dev/tempo/pkg/tui/components/eventviewer"
	"tableflip.dev/tempo/pkg/tui/components/help"
	"tableflip.dev/tempo/pkg/tui/components/minimonth"
	"tableflip.dev/tempo/pkg/tui/components/weekgrid"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	"tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

type tab int

const (
	tabCalendar tab = iota
	tabGoals
)

var tabLabels = [...]string{tabCalendar: " 1 Calendar ", tabGoals: " 2 Goals "}

const (
	// sidebarWidth fits the month navigator (seven three-cell days).
	sidebarWidth = 22
	// minSplitWidth is the narrowest screen that still shows the sidebar.
	minSplitWidth = 70

	calendarHelp = "drag to create  click to edit  ←/→ week  t today  ↑/↓ scroll  +/- zoom  n new  ? help"
)

// Options configures the root model.
type Options struct {
	StartsOn time.Weekday
	Now      func() time.Time
	Logger   *zap.Logger
	Debug    bool
}

// Model is the root Bubble Tea model: a calendar tab and a goals tab, a
// footer for status and at most one overlay.
type Model struct {
	svc   *app.Service
	log   *zap.Logger
	clock func() time.Time
	theme theme.Theme

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
	tab    tab

	week  *weekgrid.Model
	month *minimonth.Model
	board *board.Model
	debug *eventviewer.Model

	overlay   ui.Overlay
	overlayID events.ComponentID

	status    string
	statusErr bool
	lastTick  time.Time

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New creates the root model backed by svc.
func New(svc *app.Service, opts Options) *Model {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())

	week := weekgrid.New(weekgrid.Options{
		StartsOn: opts.StartsOn,
		Source:   svc.EventsInWeek,
		Theme:    th.Grid,
		Now:      clock,
	})
	m := &Model{
		svc:      svc,
		log:      log,
		clock:    clock,
		theme:    th,
		ctx:      ctx,
		cancel:   cancel,
		week:     week,
		month:    minimonth.New("", week.Week(), clock(), opts.StartsOn, th.Grid, svc.Events),
		board:    board.New("", svc, th.Board, log),
		status:   "Ready",
		lastTick: clock(),
	}
	if opts.Debug {
		m.debug = eventviewer.New(400)
	}
	return m
}

// Run launches the interactive TUI program and flushes pending edits when
// it exits.
func Run(svc *app.Service, opts Options) error {
	m := New(svc, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Close writes pending edits and stops the store watch.
func (m *Model) Close() {
	m.stopWatch()
	m.cancel()
	m.svc.Flush()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), m.week.Init(), m.board.Init()}
	if m.svc.Persistence != nil {
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	}
	return tea.Batch(cmds...)
}

// Update routes Bubble Tea messages to the overlay, the active tab and the
// service.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.note(msg)
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.layout()
		if h, ok := m.overlay.(*help.Model); ok {
			h.SetSize(m.width*3/4, m.height*3/4)
		}
		return m, nil
	case tickMsg:
		m.tick()
		return m, tickCmd()
	case watchStartedMsg:
		if v.err != nil {
			m.setError(fmt.Errorf("watch: %w", v.err))
			return m, nil
		}
		m.stopWatch()
		m.watchCh, m.watchCancel = v.ch, v.cancel
		return m, m.waitForWatch()
	case watchEventMsg:
		m.handleWatchEvent(v.event)
		return m, m.waitForWatch()
	case watchStoppedMsg:
		m.stopWatch()
		return m, startWatchCmd(m.ctx, m.svc)
	case events.StatusMsg:
		if v.Err != nil {
			m.setError(v.Err)
		} else {
			m.setStatus(v.Text)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(v)
	case tea.MouseMsg:
		return m, m.handleMouse(v)
	}

	if cmd, handled := m.handleEvent(msg); handled {
		return m, cmd
	}

	// Everything else (cursor blinks, viewport messages) belongs to the
	// overlay when one is open.
	if m.overlay != nil {
		next, cmd := m.overlay.Update(msg)
		m.overlay = next
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	if key.String() == "ctrl+c" {
		return m.quit()
	}
	if m.overlay != nil {
		next, cmd := m.overlay.Update(key)
		m.overlay = next
		return cmd
	}
	switch key.String() {
	case "q":
		return m.quit()
	case "1":
		m.switchTab(tabCalendar)
		return nil
	case "2":
		m.switchTab(tabGoals)
		return nil
	case "?":
		m.openHelp()
		return nil
	case "ctrl+g":
		m.toggleDebug()
		return nil
	}
	if m.tab == tabGoals {
		_, cmd := m.board.Update(key)
		return cmd
	}
	_, weekCmd := m.week.Update(key)
	_, monthCmd := m.month.Update(key)
	return tea.Batch(weekCmd, monthCmd)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	mouse := msg.Mouse()
	if m.overlay != nil {
		if _, click := msg.(tea.MouseClickMsg); click && m.overlayID == quickAddID && !m.overlayContains(mouse.X, mouse.Y) {
			m.closeOverlay()
			m.setStatus("Discarded")
			return nil
		}
		next, cmd := m.overlay.Update(msg)
		m.overlay = next
		return cmd
	}
	if _, click := msg.(tea.MouseClickMsg); click && mouse.Y == 0 {
		if t, ok := tabAt(mouse.X); ok {
			m.switchTab(t)
		}
		return nil
	}
	var cmds []tea.Cmd
	if m.debug != nil {
		_, cmd := m.debug.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.tab == tabGoals {
		_, cmd := m.board.Update(msg)
		return tea.Batch(append(cmds, cmd)...)
	}
	if _, click := msg.(tea.MouseClickMsg); click {
		_, cmd := m.month.Update(msg)
		cmds = append(cmds, cmd)
	}
	_, cmd := m.week.Update(msg)
	return tea.Batch(append(cmds, cmd)...)
}

func tabAt(x int) (tab, bool) {
	left := 0
	for i, label := range tabLabels {
		w := lipgloss.Width(label)
		if x >= left && x < left+w {
			return tab(i), true
		}
		left += w
	}
	return 0, false
}

func (m *Model) switchTab(t tab) {
	if m.tab == t {
		return
	}
	m.tab = t
	switch t {
	case tabGoals:
		m.board.Sync()
	case tabCalendar:
		m.week.Refresh()
	}
	m.layout()
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// tick advances the now indicator and announces reminders that came due
// since the previous tick.
func (m *Model) tick() {
	now := m.clock()
	m.week.SetNow(now)
	m.month.SetNow(now)
	due := m.svc.DueEvents(m.lastTick, now)
	m.lastTick = now
	if len(due) == 0 {
		return
	}
	names := make([]string, 0, len(due))
	for _, e := range due {
		names = append(names, fmt.Sprintf("%s at %s", e.Title, e.Start.Format("15:04")))
	}
	m.setStatus("Reminder: " + strings.Join(names, ", "))
}

func (m *Model) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *Model) setError(err error) {
	m.log.Warn("ui error", zap.Error(err))
	m.status, m.statusErr = err.Error(), true
}

// layout assigns bounds to the tab components. Line 0 is the tab bar and the
// last line is the footer; the debug log, when shown, takes the bottom of
// the body.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	body := ui.Bounds{X: 0, Y: 1, Width: m.width, Height: max(0, m.height-2)}
	if m.debug != nil {
		rows := debugHeight(body.Height)
		body.Height -= rows
		m.debug.SetBounds(ui.Bounds{X: 0, Y: body.Y + body.Height, Width: m.width, Height: rows})
	}
	m.board.SetBounds(body)
	if m.width < minSplitWidth {
		m.month.SetBounds(ui.Bounds{})
		m.week.SetBounds(body)
		return
	}
	m.month.SetBounds(ui.Bounds{X: body.X + 1, Y: body.Y, Width: sidebarWidth - 1, Height: body.Height})
	m.week.SetBounds(ui.Bounds{X: body.X + sidebarWidth, Y: body.Y, Width: body.Width - sidebarWidth, Height: body.Height})
}

func debugHeight(total int) int {
	if total <= 8 {
		return 0
	}
	return min(max(total/3, 5), 12)
}

func (m *Model) toggleDebug() {
	if m.debug != nil {
		m.debug = nil
		m.setStatus("Debug log hidden")
	} else {
		m.debug = eventviewer.New(400)
		m.setStatus("Debug log visible")
	}
	m.layout()
}

// note records msg in the debug log and the zap debug stream.
func (m *Model) note(msg tea.Msg) {
	detail, ok := describeMsg(msg)
	if !ok {
		return
	}
	summary := fmt.Sprintf("%T", msg)
	m.log.Debug("ui message", zap.String("type", summary), zap.String("detail", detail))
	if m.debug == nil {
		return
	}
	entry := eventviewer.Entry{Timestamp: m.clock(), Source: "tea", Summary: summary, Detail: detail}
	if s, isStatus := msg.(events.StatusMsg); isStatus && s.Err != nil {
		entry.Level = eventviewer.LevelError
	}
	if src := eventSource(msg); src != "" {
		entry.Source = string(src)
	}
	m.debug.Append(entry)
}

func describeMsg(msg tea.Msg) (string, bool) {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe(), true
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String()), true
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height), true
	case tea.MouseClickMsg, tea.MouseReleaseMsg:
		mouse := v.(tea.MouseMsg).Mouse()
		return fmt.Sprintf("mouse=%d,%d", mouse.X, mouse.Y), true
	}
	return "", false
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "initializing…", nil
	}
	lines := make([]string, 0, m.height)
	lines = append(lines, m.header())
	lines = append(lines, m.body()...)
	lines = append(lines, m.footer())
	view := strings.Join(lines, "\n")
	if m.overlay != nil {
		view = overlay.Compose(view, m.width, m.height, m.overlay.View(), m.overlay.Placement())
	}
	return view, nil
}

func (m *Model) header() string {
	var b strings.Builder
	for i, label := range tabLabels {
		style := m.theme.Header.Tab
		if tab(i) == m.tab {
			style = m.theme.Header.ActiveTab
		}
		b.WriteString(style.Render(label))
	}
	title := "tempo"
	if m.tab == tabCalendar {
		title = m.week.Week().String()
	}
	left := b.String()
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(title) - 1
	if gap < 1 {
		return truncate.String(left, uint(m.width))
	}
	return left + strings.Repeat(" ", gap) + m.theme.Header.Title.Render(title) + " "
}

func (m *Model) body() []string {
	height := max(0, m.height-2)
	var main []string
	if m.tab == tabGoals {
		main = splitLines(m.board.View(), height)
	} else {
		main = m.calendarLines(height)
	}
	if m.debug != nil {
		if rows := debugHeight(height); rows > 0 {
			main = append(main[:height-rows], splitLines(m.debug.View(), rows)...)
		}
	}
	return main
}

func (m *Model) calendarLines(height int) []string {
	week := splitLines(m.week.View(), height)
	if m.width < minSplitWidth {
		return week
	}
	side := splitLines(m.month.View(), height)
	out := make([]string, height)
	for i := range out {
		out[i] = " " + padRight(side[i], sidebarWidth-1) + week[i]
	}
	return out
}

func (m *Model) footer() string {
	text := m.status
	style := m.theme.Footer.Status
	if m.statusErr {
		style = m.theme.Footer.Error
		text = "ERR: " + text
	}
	help := calendarHelp
	if m.tab == tabGoals {
		help = board.Help
	}
	line := style.Render(text) + "  " + m.theme.Footer.Help.Render(help)
	return truncate.String(line, uint(m.width))
}

// splitLines returns exactly n lines of view.
func splitLines(view string, n int) []string {
	lines := strings.Split(view, "\n")
	if view == "" {
		lines = nil
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}

func padRight(s string, w int) string {
	s = truncate.String(s, uint(w))
	if pad := w - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}
