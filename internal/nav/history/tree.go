// Package history records which screens were visited and in what order, so a
// closing screen can hand control back to the right earlier screen.
//
// Nodes live in an arena and refer to each other by Handle. The visit chain is
// a doubly-linked list threaded through Prev/Next; Root, Second and Thirds are
// back-references into the chain used when restoring. A node spliced or
// truncated out of the chain stays in the arena, marked Detached, because
// other nodes may still refer to it. The arena is only emptied by Reset.
package history

import (
	"errors"
	"fmt"

	"github.com/atomicstack/uinav/internal/registry"
)

// Handle addresses a node in a Tree.
type Handle int32

// None is the null handle.
const None Handle = -1

var (
	// ErrNotCurrent is returned by Close for any node but the chain tail.
	ErrNotCurrent = errors.New("node is not current")
	// ErrIsCurrent is returned by Unlink for the chain tail.
	ErrIsCurrent = errors.New("node is current")
	// ErrBrokenChain reports an invariant violation found by Validate.
	ErrBrokenChain = errors.New("history chain broken")
)

// Node is one visit.
type Node struct {
	ID       registry.ID
	Tier     registry.Tier
	Prev     Handle
	Next     Handle
	Root     Handle   // enclosing full-screen node
	Second   Handle   // enclosing second-level node
	Thirds   []Handle // third-level group this node belongs to, in open order
	Detached bool
}

// Tree is the visit chain plus the current/full/second pointers.
type Tree struct {
	nodes  []Node
	head   Handle
	cur    Handle
	full   Handle
	second Handle
}

// New returns an empty tree.
func New() *Tree {
	t := &Tree{}
	t.Reset()
	return t
}

// Reset drops every node and pointer.
func (t *Tree) Reset() {
	t.nodes = t.nodes[:0]
	t.head, t.cur, t.full, t.second = None, None, None, None
}

// Head returns the first node of the chain.
func (t *Tree) Head() Handle { return t.head }

// Current returns the chain tail, the screen that has focus.
func (t *Tree) Current() Handle { return t.cur }

// Full returns the node of the full screen currently shown.
func (t *Tree) Full() Handle { return t.full }

// Second returns the node of the second-level screen currently shown.
func (t *Tree) Second() Handle { return t.second }

// Node returns a copy of the node at h.
func (t *Tree) Node(h Handle) (Node, bool) {
	if !t.valid(h) {
		return Node{}, false
	}
	n := t.nodes[h]
	if len(n.Thirds) > 0 {
		n.Thirds = append([]Handle(nil), n.Thirds...)
	}
	return n, true
}

// ID returns the identifier stored at h.
func (t *Tree) ID(h Handle) (registry.ID, bool) {
	if !t.valid(h) {
		return "", false
	}
	return t.nodes[h].ID, true
}

// Seek scans the chain from the head for id.
func (t *Tree) Seek(id registry.ID) Handle {
	for h := t.head; h != None; h = t.nodes[h].Next {
		if t.nodes[h].ID == id {
			return h
		}
	}
	return None
}

// Len returns the number of nodes in the chain.
func (t *Tree) Len() int {
	n := 0
	for h := t.head; h != None; h = t.nodes[h].Next {
		n++
	}
	return n
}

// Arena returns the number of nodes ever allocated since the last Reset.
func (t *Tree) Arena() int {
	return len(t.nodes)
}

// IDs returns the chain in visit order.
func (t *Tree) IDs() []registry.ID {
	var ids []registry.ID
	for h := t.head; h != None; h = t.nodes[h].Next {
		ids = append(ids, t.nodes[h].ID)
	}
	return ids
}

// Start resets the tree and records id as the only node. The node is the
// current full-screen node whatever its tier, Float included.
func (t *Tree) Start(id registry.ID, tier registry.Tier) Handle {
	t.Reset()
	h := t.alloc(id, tier)
	t.link(h)
	t.full = h
	t.second = None
	return h
}

// Visit records that id was opened and makes it current. Float screens are
// not tracked and return None.
func (t *Tree) Visit(id registry.ID, tier registry.Tier) Handle {
	switch tier {
	case registry.FullScreen:
		h := t.Seek(id)
		switch {
		case h == None:
			h = t.alloc(id, tier)
			t.link(h)
		case h != t.cur:
			t.splice(h)
			t.link(h)
		}
		t.full = h
		t.second = None
		return h

	case registry.SecondLevel:
		h := t.Seek(id)
		switch {
		case h == None:
			h = t.alloc(id, tier)
			t.link(h)
		case h == t.cur:
		case t.nodes[h].Root != t.full:
			// left over from an earlier full-screen session
			t.splice(h)
			t.link(h)
		default:
			t.truncateAfter(h)
			t.cur = h
			t.settle()
		}
		if h != t.full {
			t.nodes[h].Root = t.full
		}
		t.second = h
		return h

	case registry.ThirdLevel:
		h := t.Seek(id)
		if h == None {
			h = t.alloc(id, tier)
			t.link(h)
		} else {
			t.truncateAfter(h)
			t.cur = h
			t.settle()
		}
		t.nodes[h].Root = t.full
		t.nodes[h].Second = t.second
		t.joinGroup(h)
		return h
	}
	return None
}

// Unlink splices a node that is not current out of the chain.
func (t *Tree) Unlink(h Handle) error {
	if !t.valid(h) {
		return fmt.Errorf("%w: invalid handle %d", ErrBrokenChain, h)
	}
	if h == t.cur {
		return ErrIsCurrent
	}
	if t.nodes[h].Detached {
		return nil
	}
	t.splice(h)
	if t.second == h {
		t.second = None
	}
	if t.full == h {
		t.full = None
	}
	return nil
}

// Close works out which node takes over when the current node h closes,
// redisplaying screens through show as it goes. footprint reports whether a
// screen should be restored rather than skipped. The returned node is the new
// current node; None means the chain is now empty.
func (t *Tree) Close(h Handle, footprint func(registry.ID) bool, show func(registry.ID)) (Handle, error) {
	if !t.valid(h) || h != t.cur {
		return None, ErrNotCurrent
	}
	pre := t.nodes[h].Prev
	if pre == None {
		t.clear()
		return None, nil
	}

	target := t.restoreTarget(h, pre, footprint, show)
	if target == None {
		// nothing above pre qualified; fall back to pre itself
		target = pre
		if show != nil {
			show(t.nodes[pre].ID)
		}
		t.adopt(target)
	}
	if t.nodes[target].Detached {
		t.truncateAfter(pre)
		t.cur = pre
		t.link(target)
	} else {
		t.truncateAfter(target)
		t.cur = target
	}
	t.settle()
	return target, nil
}

// settle drops full/second pointers left on nodes that are no longer in the
// chain.
func (t *Tree) settle() {
	if !t.attached(t.full) {
		t.full = None
	}
	if !t.attached(t.second) {
		t.second = None
	}
}

func (t *Tree) attached(h Handle) bool {
	return t.valid(h) && !t.nodes[h].Detached
}

func (t *Tree) restoreTarget(h, pre Handle, footprint func(registry.ID) bool, show func(registry.ID)) Handle {
	closing := t.nodes[h]
	p := t.nodes[pre]
	usable := func(x Handle) bool { return x != None && x != h && t.valid(x) }
	reveal := func(x Handle) {
		if show != nil {
			show(t.nodes[x].ID)
		}
	}

	switch closing.Tier {
	case registry.FullScreen:
		switch p.Tier {
		case registry.FullScreen:
			target := pre
			if !footprint(p.ID) && p.Prev != None {
				target = p.Prev
			}
			reveal(target)
			t.adopt(target)
			return target

		case registry.SecondLevel:
			target := None
			t.second = None
			if usable(p.Root) {
				reveal(p.Root)
				t.full = p.Root
				target = p.Root
			}
			if footprint(p.ID) {
				reveal(pre)
				t.second = pre
				target = pre
			}
			return target

		case registry.ThirdLevel:
			target := None
			t.second = None
			if usable(p.Root) {
				reveal(p.Root)
				t.full = p.Root
				target = p.Root
			}
			if usable(p.Second) && footprint(t.nodes[p.Second].ID) {
				reveal(p.Second)
				t.second = p.Second
				target = p.Second
			}
			for _, sib := range p.Thirds {
				if sib == pre || !usable(sib) || t.nodes[sib].Detached {
					continue
				}
				if footprint(t.nodes[sib].ID) {
					reveal(sib)
					target = sib
				}
			}
			if footprint(p.ID) {
				reveal(pre)
				target = pre
			}
			return target
		}
		return pre

	case registry.SecondLevel:
		t.second = None
		switch {
		case p.Tier == registry.ThirdLevel:
			target := t.full
			if usable(p.Second) && footprint(t.nodes[p.Second].ID) {
				reveal(p.Second)
				t.second = p.Second
				target = p.Second
			}
			if footprint(p.ID) {
				reveal(pre)
				target = pre
			}
			return target
		case p.Tier == registry.SecondLevel && footprint(p.ID):
			reveal(pre)
			t.second = pre
			return pre
		}
		if usable(t.full) {
			return t.full
		}
		return pre
	}
	return pre
}

// adopt points full/second at target according to its tier.
func (t *Tree) adopt(target Handle) {
	n := t.nodes[target]
	switch n.Tier {
	case registry.FullScreen:
		t.full = target
		t.second = None
	case registry.SecondLevel:
		t.full = n.Root
		t.second = target
	default:
		t.full = n.Root
		t.second = n.Second
	}
}

func (t *Tree) joinGroup(h Handle) {
	anchor := t.second
	if anchor == None {
		anchor = t.full
	}
	if anchor == None || anchor == h {
		t.nodes[h].Thirds = []Handle{h}
		return
	}
	group := make([]Handle, 0, len(t.nodes[anchor].Thirds)+1)
	for _, x := range t.nodes[anchor].Thirds {
		if x != h {
			group = append(group, x)
		}
	}
	group = append(group, h)
	t.nodes[anchor].Thirds = group
	t.nodes[h].Thirds = append([]Handle(nil), group...)
}

func (t *Tree) alloc(id registry.ID, tier registry.Tier) Handle {
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Tier:   tier,
		Prev:   None,
		Next:   None,
		Root:   None,
		Second: None,
	})
	return Handle(len(t.nodes) - 1)
}

// link appends a free node after the tail and makes it current.
func (t *Tree) link(h Handle) {
	n := &t.nodes[h]
	n.Detached = false
	n.Next = None
	if t.cur == None {
		n.Prev = None
		t.head = h
	} else {
		n.Prev = t.cur
		t.nodes[t.cur].Next = h
	}
	t.cur = h
}

// splice removes h from the chain, joining its neighbours.
func (t *Tree) splice(h Handle) {
	n := &t.nodes[h]
	prev, next := n.Prev, n.Next
	if prev != None {
		t.nodes[prev].Next = next
	} else if t.head == h {
		t.head = next
	}
	if next != None {
		t.nodes[next].Prev = prev
	} else if t.cur == h {
		t.cur = prev
	}
	n.Prev, n.Next = None, None
	n.Detached = true
}

// truncateAfter detaches every node following h.
func (t *Tree) truncateAfter(h Handle) {
	next := t.nodes[h].Next
	t.nodes[h].Next = None
	for next != None {
		n := &t.nodes[next]
		after := n.Next
		n.Prev, n.Next = None, None
		n.Detached = true
		next = after
	}
}

func (t *Tree) clear() {
	for h := t.head; h != None; {
		n := &t.nodes[h]
		next := n.Next
		n.Prev, n.Next = None, None
		n.Detached = true
		h = next
	}
	t.head, t.cur, t.full, t.second = None, None, None, None
}

func (t *Tree) valid(h Handle) bool {
	return h >= 0 && int(h) < len(t.nodes)
}
