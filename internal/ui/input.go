package ui

import (
	"unicode"

	"github.com/atomicstack/uinav/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// editFilter applies edit and reports whether the query or caret moved.
func (m *Model) editFilter(edit func() bool) bool {
	before, beforePos := m.palette.Filter, m.palette.FilterCursorPos()
	if !edit() {
		return false
	}
	if m.palette.FilterCursorPos() != beforePos {
		m.filterCursorDirty = true
	}
	if m.palette.Filter != before {
		m.errMsg = ""
		m.forceClearInfo()
		events.Filter.Changed(m.palette.Filter, len(m.palette.Items))
	}
	m.syncViewport()
	return true
}

func (m *Model) clearFilter() {
	if m.editFilter(m.palette.ClearFilter) {
		events.Filter.Cleared()
	}
}

func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+u":
		if m.palette.Filter == "" {
			return false
		}
		m.clearFilter()
		return true
	case "ctrl+w":
		return m.editFilter(m.palette.DeleteFilterWordBackward)
	case "backspace", "ctrl+h":
		return m.editFilter(m.palette.DeleteFilterRuneBackward)
	case "ctrl+a":
		return m.editFilter(m.palette.MoveFilterCursorStart)
	case "ctrl+e":
		return m.editFilter(m.palette.MoveFilterCursorEnd)
	case "left", "ctrl+b":
		return m.editFilter(func() bool { return m.palette.MoveFilterCursor(-1) })
	case "right", "ctrl+f":
		return m.editFilter(func() bool { return m.palette.MoveFilterCursor(1) })
	case "alt+left", "alt+b":
		return m.editFilter(m.palette.MoveFilterCursorWordBackward)
	case "alt+right", "alt+f":
		return m.editFilter(m.palette.MoveFilterCursorWordForward)
	}
	switch msg.Type {
	case tea.KeySpace:
		return m.editFilter(func() bool { return m.palette.InsertFilterText(" ") })
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		text := string(msg.Runes)
		for _, r := range text {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.editFilter(func() bool { return m.palette.InsertFilterText(text) })
	}
	return false
}

func (m *Model) filterPrompt() string {
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := render(styles.FilterPrompt, "» ")
	text := m.palette.Filter
	if text == "" {
		placeholder := []rune("type to filter screens")
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		return prompt + m.renderFilterCursor(string(placeholder[0])) + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(text)
	pos := m.palette.FilterCursorPos()
	caret, after := " ", ""
	if pos < len(runes) {
		caret = string(runes[pos])
		after = string(runes[pos+1:])
	}
	return prompt + render(styles.Filter, string(runes[:pos])) + m.renderFilterCursor(caret) + render(styles.Filter, after)
}

func (m *Model) renderFilterCursor(char string) string {
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
