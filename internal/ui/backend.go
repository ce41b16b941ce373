package ui

import (
	"fmt"

	"github.com/atomicstack/uinav/internal/backend"
	"github.com/atomicstack/uinav/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent merges a reloaded screen set into the live registry.
// Changed descriptors apply from the next instantiation; screens missing from
// the file stay registered so open instances keep resolving.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		events.UI.Reload(evt.Path, 0, evt.Err)
		m.errMsg = fmt.Sprintf("reload screens: %v", evt.Err)
		m.forceClearInfo()
		return
	}
	if evt.Screens == nil {
		return
	}
	reg := m.mgr.Registry()
	ids := evt.Screens.IDs()
	for _, id := range ids {
		if d, err := evt.Screens.Lookup(id); err == nil {
			reg.Register(d)
		}
	}
	events.UI.Reload(evt.Path, len(ids), nil)
	m.palette.SetItems(paletteItems(reg))
	m.syncViewport()
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("reloaded %d screens", len(ids)))
}
