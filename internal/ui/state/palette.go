package state

// Palette is a filterable list of screens with a cursor and a scroll window.
type Palette struct {
	Items          []Item
	Full           []Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewPalette returns a palette over items with the cursor on the first row.
func NewPalette(items []Item) *Palette {
	p := &Palette{LastCursor: -1}
	p.SetItems(items)
	return p
}

// IndexOf returns the visible index of id, or -1.
func (p *Palette) IndexOf(id string) int {
	for i, item := range p.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// SetItems replaces the full item list, keeping the cursor on the same id
// when it survives.
func (p *Palette) SetItems(items []Item) {
	keep := ""
	if sel, ok := p.Selected(); ok {
		keep = sel.ID
	}
	p.Full = CloneItems(items)
	p.applyFilter()
	if idx := p.IndexOf(keep); idx >= 0 {
		p.Cursor = idx
	}
}

// Selected returns the item under the cursor.
func (p *Palette) Selected() (Item, bool) {
	if p.Cursor < 0 || p.Cursor >= len(p.Items) {
		return Item{}, false
	}
	return p.Items[p.Cursor], true
}

// Select moves the cursor to id if it is visible.
func (p *Palette) Select(id string) bool {
	idx := p.IndexOf(id)
	if idx < 0 {
		return false
	}
	p.Cursor = idx
	return true
}
