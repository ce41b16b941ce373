// Package layer holds the four display surfaces screens are parented to, one
// per tier, in back-to-front order.
package layer

import "github.com/atomicstack/uinav/internal/registry"

// Token identifies one attachment. Detaching with a stale token is a no-op,
// so a late destroy of an old instance cannot evict its replacement.
type Token uint64

// ZOrderer is implemented by instances that honour a stacking order within
// their layer.
type ZOrderer interface {
	SetZOrder(z int)
}

// Member is one attached entry of a layer.
type Member struct {
	ID    registry.ID
	Value interface{}
	Z     int
	token Token
}

// Layer is an ordered display surface for a single tier.
type Layer struct {
	Tier    registry.Tier
	Name    string
	members []Member
	zorder  int
	next    *Token
}

// Attach appends value under id, replacing any earlier attachment with the
// same id. The returned token must be passed to Detach.
func (l *Layer) Attach(id registry.ID, value interface{}) Token {
	*l.next++
	tok := *l.next
	l.remove(id)
	l.members = append(l.members, Member{ID: id, Value: value, token: tok})
	return tok
}

// Detach removes id if tok still names its current attachment.
func (l *Layer) Detach(id registry.ID, tok Token) bool {
	for i, m := range l.members {
		if m.ID == id && m.token == tok {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return true
		}
	}
	return false
}

// Raise assigns the next z-order to id and returns it. Only the third-tier
// layer stacks; other layers return 0.
func (l *Layer) Raise(id registry.ID) int {
	if l.Tier != registry.ThirdLevel {
		return 0
	}
	l.zorder++
	for i := range l.members {
		if l.members[i].ID == id {
			l.members[i].Z = l.zorder
		}
	}
	return l.zorder
}

// ZOrder returns the highest z-order handed out so far.
func (l *Layer) ZOrder() int {
	return l.zorder
}

// Members returns a copy of the attached entries in attach order.
func (l *Layer) Members() []Member {
	if len(l.members) == 0 {
		return nil
	}
	dup := make([]Member, len(l.members))
	copy(dup, l.members)
	return dup
}

// Has reports whether id is attached.
func (l *Layer) Has(id registry.ID) bool {
	for _, m := range l.members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of attached entries.
func (l *Layer) Len() int {
	return len(l.members)
}

func (l *Layer) remove(id registry.ID) {
	for i, m := range l.members {
		if m.ID == id {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return
		}
	}
}

func (l *Layer) reset() {
	l.members = nil
	l.zorder = 0
}

// Set is the fixed group of four layers.
type Set struct {
	layers [4]*Layer
	tokens Token
}

var layerNames = map[registry.Tier]string{
	registry.FullScreen:  "FirstLayer",
	registry.SecondLevel: "SecondLayer",
	registry.ThirdLevel:  "ThirdLayer",
	registry.Float:       "TopLayer",
}

// NewSet creates the four layers.
func NewSet() *Set {
	s := &Set{}
	for i, tier := range registry.Tiers {
		s.layers[i] = &Layer{Tier: tier, Name: layerNames[tier], next: &s.tokens}
	}
	return s
}

// For returns the layer for tier, or nil for an unknown tier.
func (s *Set) For(tier registry.Tier) *Layer {
	if !tier.Valid() {
		return nil
	}
	return s.layers[int(tier)-1]
}

// All returns the layers back to front.
func (s *Set) All() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers[:])
	return out
}

// Reset empties every layer and restarts the z-order counter.
func (s *Set) Reset() {
	for _, l := range s.layers {
		l.reset()
	}
}
