package board

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/roadmap/pkg/app"
	"tableflip.dev/roadmap/pkg/store"
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
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		if ch == nil {
			cancel()
			return watchStoppedMsg{}
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
}

// handleWatchEvent reloads on changes to the shown roadmap. While a gesture
// is active the reload waits for the release so the dragged box stays put.
func (m *Model) handleWatchEvent(ev store.Event) {
	if ev.Type == store.EventRoadmapChanged && ev.Roadmap != m.svc.Name() {
		return
	}
	if _, active := m.ctrl.Active(); active {
		m.pendingReload = true
		return
	}
	m.reload(ev.Type.String())
}
