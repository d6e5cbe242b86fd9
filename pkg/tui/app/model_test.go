package teaui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/calendar"
	"tableflip.dev/tempo/pkg/palette"
	"tableflip.dev/tempo/pkg/tui/components/prompt"
	"tableflip.dev/tempo/pkg/tui/events"
)

var base = time.Date(2024, time.March, 6, 10, 0, 0, 0, time.UTC)

type harness struct {
	svc *app.Service
	m   *Model
	now time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{now: base}
	h.svc = app.New(nil, app.Options{SaveDebounce: time.Hour})
	t.Cleanup(h.svc.Close)
	h.m = New(h.svc, Options{StartsOn: time.Monday, Now: func() time.Time { return h.now }})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *harness) key(s string) tea.Cmd {
	r := []rune(s)[0]
	return h.send(tea.KeyPressMsg{Code: r, Text: s})
}

func (h *harness) view() string {
	v, _ := h.m.View()
	return ansi.Strip(v)
}

func TestTabs(t *testing.T) {
	h := newHarness(t)
	require.Contains(t, h.view(), "1 Calendar")
	require.Contains(t, h.view(), h.m.week.Week().String())

	h.key("2")
	require.Equal(t, tabGoals, h.m.tab)
	require.Contains(t, h.view(), "No goals yet")

	h.send(tea.MouseClickMsg{X: 2, Y: 0, Button: tea.MouseLeft})
	require.Equal(t, tabCalendar, h.m.tab)
}

func TestQuickAddSavesEvent(t *testing.T) {
	h := newHarness(t)
	commit := calendar.Commit{
		Interval: calendar.Interval{Start: base.Add(4 * time.Hour), End: base.Add(5 * time.Hour)},
		Anchor:   calendar.Point{X: 40, Y: 10},
	}
	h.send(events.EventCreateRequestMsg{Commit: commit})
	require.Equal(t, quickAddID, h.m.overlayID)

	h.send(events.QuickAddSubmitMsg{Title: "Standup", Color: palette.Blue, Start: commit.Start, End: commit.End})
	require.Nil(t, h.m.overlay)
	list := h.svc.Events()
	require.Len(t, list, 1)
	require.Equal(t, "Standup", list[0].Title)
	require.Equal(t, palette.Blue, list[0].Color())
	require.Contains(t, h.m.status, "Standup")
	require.Len(t, h.m.week.Placements(), 1)
}

func TestClickOutsideQuickAddDiscards(t *testing.T) {
	h := newHarness(t)
	commit := calendar.Commit{
		Interval: calendar.Interval{Start: base, End: base.Add(15 * time.Minute)},
		Anchor:   calendar.Point{X: 40, Y: 10},
	}
	h.send(events.EventCreateRequestMsg{Commit: commit})
	require.NotNil(t, h.m.overlay)

	h.send(tea.MouseClickMsg{X: 0, Y: 39, Button: tea.MouseLeft})
	require.Nil(t, h.m.overlay)
	require.Empty(t, h.svc.Events())
}

func TestEditThenDeleteEvent(t *testing.T) {
	h := newHarness(t)
	e, err := h.svc.QuickAddEvent("Review", base, base.Add(time.Hour), palette.Green)
	require.NoError(t, err)

	h.send(events.EventEditRequestMsg{EventID: e.ID})
	require.Equal(t, eventFormID, h.m.overlayID)

	h.send(events.EventDeleteRequestMsg{EventID: e.ID})
	require.Nil(t, h.m.overlay)
	require.Empty(t, h.svc.Events())
	require.Contains(t, h.m.status, "Review")
}

func TestPromptRoundTripAddsGoal(t *testing.T) {
	h := newHarness(t)
	h.key("2")
	cmd := h.key("n")
	require.NotNil(t, cmd)
	req, ok := cmd().(events.PromptRequestMsg)
	require.True(t, ok)

	h.send(req)
	require.Equal(t, prompt.ID, h.m.overlayID)

	h.send(events.PromptSubmitMsg{Component: req.Component, Action: req.Action, Value: "Read more"})
	require.Nil(t, h.m.overlay)
	goals := h.svc.Snapshot().Goals
	require.Len(t, goals, 1)
	require.Equal(t, "Read more", goals[0].Title)
	require.Contains(t, h.view(), "Read more")
}

func TestConfirmDeletesGoal(t *testing.T) {
	h := newHarness(t)
	g, err := h.svc.AddGoal("Launch", palette.Red)
	require.NoError(t, err)
	h.send(events.BoardChangedMsg{GoalID: g.ID})
	h.key("2")

	cmd := h.key("X")
	req, ok := cmd().(events.ConfirmRequestMsg)
	require.True(t, ok)
	h.send(req)
	require.Equal(t, confirmID, h.m.overlayID)

	cmd = h.key("y")
	h.send(cmd())
	require.Nil(t, h.m.overlay)
	require.Empty(t, h.svc.Snapshot().Goals)
}

func TestTickAnnouncesReminders(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.SaveEvent(calendar.Event{
		Title:         "Review",
		Start:         base.Add(15 * time.Minute),
		End:           base.Add(time.Hour),
		Notifications: []time.Time{base.Add(5 * time.Minute)},
		Link:          calendar.Standalone{Paint: palette.Blue},
	})
	require.NoError(t, err)

	h.now = base.Add(10 * time.Minute)
	cmd := h.send(tickMsg(h.now))
	require.NotNil(t, cmd)
	require.Equal(t, "Reminder: Review at 10:15", h.m.status)

	h.now = base.Add(11 * time.Minute)
	h.m.setStatus("Ready")
	h.send(tickMsg(h.now))
	require.Equal(t, "Ready", h.m.status, "a reminder fires once")
}

func TestDateSelectMovesWeek(t *testing.T) {
	h := newHarness(t)
	target := base.AddDate(0, 0, 14)
	cmd := h.send(events.DateSelectMsg{Date: target})
	require.NotNil(t, cmd)
	h.send(cmd())
	require.True(t, h.m.week.Week().Contains(target))
	require.Contains(t, h.view(), h.m.week.Week().String())
}

func TestHelpAndDebugToggle(t *testing.T) {
	h := newHarness(t)
	h.key("?")
	require.NotNil(t, h.m.overlay)
	require.Contains(t, h.view(), "Quick add")
	h.send(h.send(tea.KeyPressMsg{Code: tea.KeyEscape})())
	require.Nil(t, h.m.overlay)

	h.send(tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl})
	require.NotNil(t, h.m.debug)
	h.send(events.StatusMsg{Text: "hello"})
	require.Positive(t, h.m.debug.Len())
	require.Contains(t, h.view(), "Events")
}

func TestQuitFlushes(t *testing.T) {
	h := newHarness(t)
	cmd := h.key("q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
