package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/uinav/internal/format/table"
	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/logging/events"
	"github.com/atomicstack/uinav/internal/registry"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	infoTTL        = 5 * time.Second
	chainSeparator = " › "
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text carries its own styling; truncate ANSI-aware, never restyle
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 24)
	lines = append(lines, styledLine{text: m.statusHeader(), style: styles.Header})
	lines = append(lines, styledLine{text: m.chainLine(), raw: true})
	lines = append(lines, m.layerLines()...)
	lines = append(lines, styledLine{})

	m.syncViewport()
	items, start := m.palette.Visible(m.maxVisibleItems())
	if len(m.palette.Items) == 0 {
		msg := "(no screens registered)"
		if m.palette.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", m.palette.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	}
	for i, item := range items {
		lines = append(lines, m.buildItemLine(item.Label, item.Detail, start+i))
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		m.help.Width = m.width
		lines = append(lines, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine, {text: m.filterPrompt(), raw: true}}, m.width)
	lines = append(lines, bottom...)
	return renderLines(lines)
}

func (m *Model) statusHeader() string {
	root := "-"
	if id := m.mgr.RunRoot(); id != "" {
		root = string(id)
	}
	cur := "-"
	if id, ok := m.mgr.CurrentID(); ok {
		cur = string(id)
	}
	return fmt.Sprintf("run: %s  current: %s  open: %d", root, cur, len(m.mgr.Open()))
}

// chainLine renders the navigation chain oldest first, current last.
func (m *Model) chainLine() string {
	hist := m.mgr.History()
	ids := hist.IDs()
	if len(ids) == 0 {
		return render(styles.Chain, "chain: (empty)")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		if i == len(ids)-1 {
			parts[i] = render(styles.ChainCurrent, string(id))
			continue
		}
		parts[i] = render(styles.Chain, string(id))
	}
	return render(styles.Chain, "chain: ") + strings.Join(parts, render(styles.Chain, chainSeparator))
}

func (m *Model) layerLines() []styledLine {
	layers := m.mgr.Layers().All()
	rows := make([][]string, 0, len(layers))
	for _, l := range layers {
		rows = append(rows, []string{render(styles.LayerName, l.Name), m.layerMembers(l)})
	}
	formatted := table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
	out := make([]styledLine, len(formatted))
	for i, row := range formatted {
		out[i] = styledLine{text: row, raw: true}
	}
	return out
}

func (m *Model) layerMembers(l *layer.Layer) string {
	members := l.Members()
	if len(members) == 0 {
		return render(styles.LayerEmpty, "·")
	}
	parts := make([]string, 0, len(members))
	for _, member := range members {
		parts = append(parts, describeMember(member))
	}
	return strings.Join(parts, " ")
}

func describeMember(member layer.Member) string {
	p, ok := member.Value.(*Panel)
	if !ok {
		return string(member.ID)
	}
	label := fmt.Sprintf("%s[%s z%d f%d]", member.ID, p.Phase(), p.Z(), p.Frames())
	switch {
	case !p.Active():
		return render(styles.Inactive, label)
	case p.Phase() == PhaseShown:
		return render(styles.Shown, label)
	default:
		return render(styles.Transition, label)
	}
}

func (m *Model) buildItemLine(label, detail string, idx int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.palette.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := indicator + " " + label
	if detail != "" {
		text += "  (" + detail + ")"
	}
	if m.width > 0 {
		if pad := m.width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	events.UI.Resize(m.width, m.height)
	m.syncViewport()
	return nil
}

// maxVisibleItems returns how many palette rows fit, or -1 when the height is
// unknown.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // error/status + filter prompt
	used += 2 // header + chain
	used += len(registry.Tiers)
	used++ // blank before the palette
	if m.infoMsg != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if ansi.StringWidth(line.text) > width {
				line.text = ansi.Truncate(line.text, width, "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			text = render(line.prefixStyle, head) + render(line.style, tail)
		} else {
			text = render(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(text, width, "…")
}
