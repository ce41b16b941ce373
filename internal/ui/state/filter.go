package state

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the query and the caret position. Entering a query
// remembers the cursor so clearing it again can put the cursor back.
func (p *Palette) SetFilter(query string, caret int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(p.Filter)
	p.Filter = query
	n := len([]rune(query))
	if caret < 0 {
		caret = 0
	}
	if caret > n {
		caret = n
	}
	p.FilterCursor = caret

	switch {
	case trimmed != "" && prevTrimmed == "":
		p.LastCursor = p.Cursor
		p.Cursor = 0
	case trimmed != "":
		p.Cursor = 0
	}
	p.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(p.Items, trimmed); idx >= 0 {
			p.Cursor = idx
		}
		return
	}
	if prevTrimmed != "" {
		if p.LastCursor >= 0 && p.LastCursor < len(p.Items) {
			p.Cursor = p.LastCursor
		}
		p.LastCursor = -1
	}
}

func (p *Palette) applyFilter() {
	p.Items = FilterItems(p.Full, p.Filter)
	if len(p.Items) == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= len(p.Items) {
		p.Cursor = len(p.Items) - 1
	}
	if p.ViewportOffset > len(p.Items)-1 {
		p.ViewportOffset = 0
	}
}

// FilterCursorPos returns the rune offset of the caret, clamped to the query.
func (p *Palette) FilterCursorPos() int {
	n := len([]rune(p.Filter))
	switch {
	case p.FilterCursor < 0:
		return 0
	case p.FilterCursor > n:
		return n
	}
	return p.FilterCursor
}

// InsertFilterText inserts text at the caret.
func (p *Palette) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	p.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the caret.
func (p *Palette) DeleteFilterRuneBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 {
		return false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	p.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word before the caret along with any
// spaces between it and the caret.
func (p *Palette) DeleteFilterWordBackward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	if pos == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	p.SetFilter(string(updated), i)
	return true
}

// ClearFilter empties the query. It reports whether there was one.
func (p *Palette) ClearFilter() bool {
	if p.Filter == "" {
		return false
	}
	p.SetFilter("", 0)
	return true
}

// MoveFilterCursor moves the caret by delta runes.
func (p *Palette) MoveFilterCursor(delta int) bool {
	before := p.FilterCursorPos()
	p.FilterCursor = before + delta
	p.FilterCursor = p.FilterCursorPos()
	return p.FilterCursor != before
}

// MoveFilterCursorStart puts the caret before the first rune.
func (p *Palette) MoveFilterCursorStart() bool {
	return p.MoveFilterCursor(-p.FilterCursorPos())
}

// MoveFilterCursorEnd puts the caret after the last rune.
func (p *Palette) MoveFilterCursorEnd() bool {
	return p.MoveFilterCursor(len([]rune(p.Filter)) - p.FilterCursorPos())
}

// MoveFilterCursorWordBackward puts the caret at the start of the previous word.
func (p *Palette) MoveFilterCursorWordBackward() bool {
	pos := p.FilterCursorPos()
	return p.MoveFilterCursor(wordStart([]rune(p.Filter), pos) - pos)
}

// MoveFilterCursorWordForward puts the caret at the start of the next word.
func (p *Palette) MoveFilterCursorWordForward() bool {
	runes := []rune(p.Filter)
	pos := p.FilterCursorPos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return p.MoveFilterCursor(i - pos)
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

// FilterItems returns the items whose label or id fuzzily matches query,
// closest matches first. Ties keep their original order.
func FilterItems(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	type scored struct {
		item     Item
		distance int
	}
	matches := make([]scored, 0, len(items))
	for _, item := range items {
		best := -1
		for _, target := range []string{item.Label, item.ID} {
			if d := fuzzy.RankMatchNormalizedFold(trimmed, target); d >= 0 && (best < 0 || d < best) {
				best = d
			}
		}
		if best >= 0 {
			matches = append(matches, scored{item: item, distance: best})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})
	out := make([]Item, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// BestMatchIndex returns the index of an exact id or label match, then of a
// prefix match, and otherwise the first item. It returns -1 for no items.
func BestMatchIndex(items []Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	for i, item := range items {
		if strings.EqualFold(item.ID, trimmed) || strings.EqualFold(item.Label, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.ID), lower) || strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
	}
	return 0
}
