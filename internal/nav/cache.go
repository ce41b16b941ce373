package nav

import (
	"fmt"

	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/screen"
)

type entry struct {
	desc  registry.Descriptor
	inst  screen.Instance
	layer *layer.Layer
	token layer.Token
}

// cache owns every live instance. Entries are kept in creation order so forced
// closes visit them deterministically.
type cache struct {
	creator screen.Creator
	layers  *layer.Set
	entries map[registry.ID]*entry
	order   []registry.ID
}

func newCache(creator screen.Creator, layers *layer.Set) *cache {
	return &cache{
		creator: creator,
		layers:  layers,
		entries: make(map[registry.ID]*entry),
	}
}

func (c *cache) get(id registry.ID) *entry {
	return c.entries[id]
}

// getOrCreate returns the cached entry for d, instantiating and attaching a
// new one when there is none.
func (c *cache) getOrCreate(d registry.Descriptor) (*entry, bool, error) {
	if e, ok := c.entries[d.ID]; ok {
		return e, true, nil
	}
	l := c.layers.For(d.Tier)
	if l == nil {
		return nil, false, fmt.Errorf("screen %q: no layer for tier %v", d.ID, d.Tier)
	}
	inst, err := c.creator.Instantiate(d, l)
	if err != nil {
		return nil, false, fmt.Errorf("instantiate %q: %w", d.ID, err)
	}
	if inst == nil {
		return nil, false, fmt.Errorf("instantiate %q: creator returned no instance", d.ID)
	}
	e := &entry{desc: d, inst: inst, layer: l}
	e.token = l.Attach(d.ID, inst)
	c.entries[d.ID] = e
	c.order = append(c.order, d.ID)
	return e, false, nil
}

// remove evicts id and hides it. The instance is destroyed and detached only
// once its hide completes.
func (c *cache) remove(id registry.ID) bool {
	e, ok := c.evict(id)
	if !ok {
		return false
	}
	e.inst.Hide(func() {
		e.inst.Destroy()
		e.layer.Detach(id, e.token)
	})
	return true
}

// discard evicts id and tears it down immediately.
func (c *cache) discard(id registry.ID) bool {
	e, ok := c.evict(id)
	if !ok {
		return false
	}
	e.inst.SetActive(false)
	e.inst.Destroy()
	e.layer.Detach(id, e.token)
	return true
}

func (c *cache) clear() {
	for _, id := range c.ids() {
		c.discard(id)
	}
}

func (c *cache) ids() []registry.ID {
	out := make([]registry.ID, len(c.order))
	copy(out, c.order)
	return out
}

func (c *cache) len() int {
	return len(c.entries)
}

func (c *cache) evict(id registry.ID) (*entry, bool) {
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	delete(c.entries, id)
	for i, x := range c.order {
		if x == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return e, true
}
