package state

// MoveCursor moves the cursor by delta rows, wrapping at either end.
func (p *Palette) MoveCursor(delta int) bool {
	n := len(p.Items)
	if n == 0 {
		p.Cursor = 0
		return false
	}
	old := p.Cursor
	p.Cursor = ((p.Cursor+delta)%n + n) % n
	return p.Cursor != old
}

// MoveCursorHome moves the cursor to the first item.
func (p *Palette) MoveCursorHome() bool {
	return p.moveCursorTo(0)
}

// MoveCursorEnd moves the cursor to the last item.
func (p *Palette) MoveCursorEnd() bool {
	return p.moveCursorTo(len(p.Items) - 1)
}

// MoveCursorPageUp moves the cursor up by one page without wrapping.
func (p *Palette) MoveCursorPageUp(maxVisible int) bool {
	return p.moveCursorTo(p.Cursor - p.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by one page without wrapping.
func (p *Palette) MoveCursorPageDown(maxVisible int) bool {
	return p.moveCursorTo(p.Cursor + p.pageSize(maxVisible))
}

func (p *Palette) moveCursorTo(idx int) bool {
	n := len(p.Items)
	if n == 0 {
		p.Cursor = 0
		return false
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	old := p.Cursor
	p.Cursor = idx
	return old != idx
}

func (p *Palette) pageSize(maxVisible int) int {
	total := len(p.Items)
	if maxVisible <= 0 || maxVisible > total {
		maxVisible = total
	}
	if maxVisible < 1 {
		maxVisible = 1
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport so the cursor row is on screen.
func (p *Palette) EnsureCursorVisible(maxVisible int) {
	n := len(p.Items)
	if n == 0 {
		p.Cursor = 0
		p.ViewportOffset = 0
		return
	}
	if p.Cursor < 0 {
		p.Cursor = 0
	}
	if p.Cursor >= n {
		p.Cursor = n - 1
	}
	if maxVisible <= 0 {
		p.ViewportOffset = 0
		return
	}
	maxOffset := n - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	switch {
	case p.Cursor < p.ViewportOffset:
		p.ViewportOffset = p.Cursor
	case p.Cursor >= p.ViewportOffset+maxVisible:
		p.ViewportOffset = p.Cursor - maxVisible + 1
	}
	if p.ViewportOffset > maxOffset {
		p.ViewportOffset = maxOffset
	}
	if p.ViewportOffset < 0 {
		p.ViewportOffset = 0
	}
}

// Visible returns the rows inside the viewport and the index of the first.
func (p *Palette) Visible(maxVisible int) ([]Item, int) {
	p.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(p.Items) <= maxVisible {
		return p.Items, 0
	}
	start := p.ViewportOffset
	return p.Items[start : start+maxVisible], start
}
