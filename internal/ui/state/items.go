package state

// Item is one selectable palette row.
type Item struct {
	ID     string
	Label  string
	Detail string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
