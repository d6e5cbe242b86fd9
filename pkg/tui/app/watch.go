package teaui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/store"
)

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil || parent.Err() != nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent reloads goals written by another process. Reload is
// skipped while local edits are waiting to be saved or a drag is running.
func (m *Model) handleWatchEvent(ev store.Event) {
	m.log.Debug("store changed", zap.Int("type", int(ev.Type)), zap.String("goal", ev.GoalID))
	reloaded, err := m.svc.Reload(m.ctx)
	if err != nil {
		m.setError(fmt.Errorf("reload: %w", err))
		return
	}
	if !reloaded {
		return
	}
	m.board.Sync()
	m.week.Refresh()
	m.setStatus("Reloaded goals from disk")
}
