package history

import "fmt"

// Validate walks the chain and checks its structural invariants: no self
// links, Prev/Next symmetry, no cycles, unique ids, and the current node
// being the tail. The full and second pointers must be None or point at
// nodes in the chain.
func (t *Tree) Validate() error {
	if err := t.checkPointer("full", t.full); err != nil {
		return err
	}
	if err := t.checkPointer("second", t.second); err != nil {
		return err
	}
	if t.head == None {
		if t.cur != None {
			return fmt.Errorf("%w: empty chain with current node %d", ErrBrokenChain, t.cur)
		}
		return nil
	}
	if !t.valid(t.head) {
		return fmt.Errorf("%w: head %d out of range", ErrBrokenChain, t.head)
	}
	if t.nodes[t.head].Prev != None {
		return fmt.Errorf("%w: head %d has prev %d", ErrBrokenChain, t.head, t.nodes[t.head].Prev)
	}

	seen := make(map[string]Handle)
	prev := None
	steps := 0
	for h := t.head; h != None; h = t.nodes[h].Next {
		if !t.valid(h) {
			return fmt.Errorf("%w: handle %d out of range", ErrBrokenChain, h)
		}
		steps++
		if steps > len(t.nodes) {
			return fmt.Errorf("%w: cycle through %d", ErrBrokenChain, h)
		}
		n := t.nodes[h]
		if n.Prev == h || n.Next == h {
			return fmt.Errorf("%w: node %d links to itself", ErrBrokenChain, h)
		}
		if n.Prev != prev {
			return fmt.Errorf("%w: node %d prev is %d, want %d", ErrBrokenChain, h, n.Prev, prev)
		}
		if n.Detached {
			return fmt.Errorf("%w: detached node %d reachable", ErrBrokenChain, h)
		}
		if other, dup := seen[string(n.ID)]; dup {
			return fmt.Errorf("%w: %q at both %d and %d", ErrBrokenChain, n.ID, other, h)
		}
		seen[string(n.ID)] = h
		prev = h
	}
	if prev != t.cur {
		return fmt.Errorf("%w: tail %d is not current %d", ErrBrokenChain, prev, t.cur)
	}
	return nil
}

func (t *Tree) checkPointer(name string, h Handle) error {
	switch {
	case h == None:
		return nil
	case !t.valid(h):
		return fmt.Errorf("%w: %s %d out of range", ErrBrokenChain, name, h)
	case t.nodes[h].Detached:
		return fmt.Errorf("%w: %s %d is detached", ErrBrokenChain, name, h)
	}
	return nil
}
