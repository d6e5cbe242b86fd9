// Command testbed runs one tempo component on its own with the event log
// underneath, for iterating on layout and input handling.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/runner/ui"
	"tableflip.dev/tempo/pkg/store"
	"tableflip.dev/tempo/pkg/timegrid"
	"tableflip.dev/tempo/pkg/tui/components/eventviewer"
	"tableflip.dev/tempo/pkg/tui/events"
	"tableflip.dev/tempo/pkg/tui/theme"
	tui "tableflip.dev/tempo/pkg/tui/ui"
	"tableflip.dev/tempo/pkg/tui/ui/overlay"
)

type options struct {
	full     bool
	width    int
	height   int
	real     bool
	startsOn string
}

// env is what a component constructor gets to work with.
type env struct {
	svc      *app.Service
	theme    theme.Theme
	startsOn time.Weekday
	now      time.Time
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "testbed",
		Short: "Run the TUI testbed harness",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.full, "full", false, "use the full terminal window")
	rootCmd.PersistentFlags().IntVar(&opts.width, "width", 100, "component width when not fullscreen")
	rootCmd.PersistentFlags().IntVar(&opts.height, "height", 24, "component height when not fullscreen")
	rootCmd.PersistentFlags().BoolVar(&opts.real, "real", false, "load goals from the real tempo database")
	rootCmd.PersistentFlags().StringVar(&opts.startsOn, "week-starts-on", "monday", "first day of the week")

	rootCmd.AddCommand(newWeekCmd(&opts))
	rootCmd.AddCommand(newMonthCmd(&opts))
	rootCmd.AddCommand(newBoardCmd(&opts))
	rootCmd.AddCommand(newHelpCmd(&opts))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run hosts the component build returns. Overlays, when set, are drawn over
// it and receive keys first.
func run(opts options, name string, build func(env) tui.Component, open func(env) tui.Overlay) error {
	startsOn, err := timegrid.ParseWeekday(opts.startsOn)
	if err != nil {
		return err
	}
	svc, err := newService(opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	e := env{svc: svc, theme: theme.Default(), startsOn: startsOn, now: time.Now()}
	if !opts.real {
		if err := ui.Seed(context.Background(), svc, e.now, startsOn); err != nil {
			return err
		}
	}
	m := newTestbedModel(opts, name, build(e))
	if open != nil {
		m.overlay = open(e)
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func newService(opts options) (*app.Service, error) {
	if !opts.real {
		return app.New(nil, app.Options{}), nil
	}
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(settings)
	if err != nil {
		return nil, err
	}
	svc := app.New(p, app.Options{SaveDebounce: settings.SaveDebounce})
	return svc, svc.Load(context.Background())
}

type testbedModel struct {
	name       string
	fullscreen bool
	maxWidth   int
	maxHeight  int

	termWidth  int
	termHeight int

	component tui.Component
	overlay   tui.Overlay
	events    *eventviewer.Model

	frame       tui.Bounds
	eventHeight int
}

func newTestbedModel(opts options, name string, c tui.Component) *testbedModel {
	return &testbedModel{
		name:       name,
		fullscreen: opts.full,
		maxWidth:   opts.width,
		maxHeight:  opts.height,
		component:  c,
		events:     eventviewer.New(400),
	}
}

func (m *testbedModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.component.Init()}
	if m.overlay != nil {
		cmds = append(cmds, m.overlay.Init())
	}
	return tea.Batch(cmds...)
}

func (m *testbedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.recordEvent(msg)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.overlay == nil {
				return m, tea.Quit
			}
		}
	case tea.MouseWheelMsg:
		m.events.Update(msg)
	case events.OverlayCloseMsg:
		m.overlay = nil
		return m, nil
	}

	if m.overlay != nil {
		if _, isMouse := msg.(tea.MouseMsg); !isMouse {
			next, cmd := m.overlay.Update(msg)
			m.overlay = next
			return m, cmd
		}
	}
	next, cmd := m.component.Update(msg)
	m.component = next
	return m, cmd
}

func (m *testbedModel) layout() {
	m.eventHeight = m.computeEventHeight()
	space := max(minFrameHeight, m.termHeight-m.eventHeight-1)

	width := clamp(m.maxWidth, 20, m.termWidth)
	height := clamp(m.maxHeight, minFrameHeight, space)
	if m.fullscreen {
		width, height = m.termWidth, space
	}
	m.frame = tui.Bounds{X: 0, Y: 1, Width: width, Height: height}
	m.component.SetBounds(m.frame)
	if m.eventHeight > 0 {
		m.events.SetBounds(tui.Bounds{X: 0, Y: 1 + height, Width: m.termWidth, Height: m.eventHeight})
	}
}

func (m *testbedModel) computeEventHeight() int {
	available := m.termHeight - minFrameHeight - 1
	if available < minEventHeight {
		return 0
	}
	return min(clamp(m.termHeight/4, minEventHeight, maxEventHeight), available)
}

func (m *testbedModel) View() (string, *tea.Cursor) {
	if m.termWidth == 0 || m.termHeight == 0 {
		return "Resizing…", nil
	}
	header := lipgloss.NewStyle().Bold(true).Render("testbed: "+m.name) + "  q quits"
	body := m.component.View()
	if m.overlay != nil {
		body = overlay.Compose(body, m.frame.Width, m.frame.Height, m.overlay.View(), m.overlay.Placement())
	}
	parts := []string{header, body}
	if m.eventHeight > 0 {
		parts = append(parts, m.events.View())
	}
	return strings.Join(parts, "\n"), nil
}

func (m *testbedModel) recordEvent(msg tea.Msg) {
	detail := describeMsg(msg)
	if detail == "" {
		return
	}
	m.events.Append(eventviewer.Entry{
		Timestamp: time.Now(),
		Source:    "tea",
		Summary:   fmt.Sprintf("%T", msg),
		Detail:    detail,
		Level:     eventviewer.LevelInfo,
	})
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseClickMsg, tea.MouseReleaseMsg:
		mouse := v.(tea.MouseMsg).Mouse()
		return fmt.Sprintf("mouse=%d,%d", mouse.X, mouse.Y)
	default:
		return ""
	}
}

func clamp(value, lo, hi int) int {
	if hi <= 0 {
		return lo
	}
	return max(lo, min(value, hi))
}

const (
	minFrameHeight = 12
	minEventHeight = 5
	maxEventHeight = 12
)
