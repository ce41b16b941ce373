package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Lookup for identifiers that were never registered.
var ErrNotFound = errors.New("screen not registered")

//go:embed screens.toml
var defaultScreens []byte

// Registry maps screen identifiers to their descriptors.
type Registry struct {
	screens map[ID]Descriptor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{screens: make(map[ID]Descriptor)}
}

// Default builds a registry from the definitions embedded in the binary.
func Default() *Registry {
	r, err := Parse(defaultScreens)
	if err != nil {
		panic(fmt.Sprintf("embedded screen definitions: %v", err))
	}
	return r
}

// Register inserts d, replacing any previous descriptor with the same ID.
func (r *Registry) Register(d Descriptor) {
	if d.Destroy == 0 {
		d.Destroy = DestroyOnStateChange
	}
	if d.Title == "" {
		d.Title = string(d.ID)
	}
	r.screens[d.ID] = d
}

// Lookup returns the descriptor registered for id.
func (r *Registry) Lookup(id ID) (Descriptor, error) {
	d, ok := r.screens[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return d, nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.screens[id]
	return ok
}

// IDs returns every registered identifier in lexical order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.screens))
	for id := range r.screens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the number of registered screens.
func (r *Registry) Len() int {
	return len(r.screens)
}
