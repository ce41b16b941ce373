package ui

import (
	"github.com/atomicstack/uinav/internal/logging/events"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/ui/command"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.running = false
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Back):
		return m.handleEscapeKey()
	case key.Matches(keyMsg, m.keys.Open):
		return m.requestSelected(command.OpAdd)
	case key.Matches(keyMsg, m.keys.Run):
		return m.requestSelected(command.OpRun)
	case key.Matches(keyMsg, m.keys.Close):
		return m.requestSelected(command.OpBack)
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursor(func() bool { return m.palette.MoveCursor(-1) })
		return nil
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursor(func() bool { return m.palette.MoveCursor(1) })
		return nil
	case key.Matches(keyMsg, m.keys.PageUp):
		m.moveCursor(func() bool { return m.palette.MoveCursorPageUp(m.maxVisibleItems()) })
		return nil
	case key.Matches(keyMsg, m.keys.PageDown):
		m.moveCursor(func() bool { return m.palette.MoveCursorPageDown(m.maxVisibleItems()) })
		return nil
	case key.Matches(keyMsg, m.keys.Home):
		m.moveCursor(m.palette.MoveCursorHome)
		return nil
	case key.Matches(keyMsg, m.keys.End):
		m.moveCursor(m.palette.MoveCursorEnd)
		return nil
	}
	m.handleTextInput(keyMsg)
	return nil
}

// handleEscapeKey clears the filter first; after that it closes the current
// screen, and with nothing open it quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.palette.Filter != "" {
		m.clearFilter()
		return nil
	}
	cur, ok := m.mgr.CurrentID()
	if !ok {
		m.running = false
		return tea.Quit
	}
	return m.bus.Execute(command.Request{Op: command.OpBackCurrent, ID: cur})
}

func (m *Model) requestSelected(op command.Op) tea.Cmd {
	item, ok := m.palette.Selected()
	if !ok {
		return nil
	}
	events.UI.PaletteEnter(item.ID, m.palette.Filter)
	if op != command.OpBack && m.palette.Filter != "" {
		m.clearFilter()
		m.palette.Select(item.ID)
	}
	return m.bus.Execute(command.Request{Op: op, ID: registry.ID(item.ID)})
}

func (m *Model) moveCursor(move func() bool) {
	if move() {
		events.UI.PaletteCursor(m.palette.Cursor)
	}
	m.syncViewport()
}

func (m *Model) syncViewport() {
	m.palette.EnsureCursorVisible(m.maxVisibleItems())
}
