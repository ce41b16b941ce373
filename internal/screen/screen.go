// Package screen declares the capabilities the navigation manager needs from
// a concrete screen. Rendering lives behind these interfaces.
package screen

import (
	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/registry"
)

// Args carries open/close parameters through to the screen.
type Args map[string]interface{}

// Instance is a live screen bound to one descriptor.
//
// Show and Hide may start a deferred transition; both return immediately.
// Hide calls onComplete once the screen is fully hidden. SetActive toggles
// visibility with no transition.
type Instance interface {
	Show(args Args)
	Hide(onComplete func())
	SetActive(active bool)
	Destroy()
	Update()
}

// Tagger is implemented by instances that want to know the identifier they
// were opened under.
type Tagger interface {
	SetID(id registry.ID)
}

// Creator instantiates screens parented to a layer.
type Creator interface {
	Instantiate(d registry.Descriptor, l *layer.Layer) (Instance, error)
}

// CreatorFunc adapts a function to Creator.
type CreatorFunc func(d registry.Descriptor, l *layer.Layer) (Instance, error)

func (f CreatorFunc) Instantiate(d registry.Descriptor, l *layer.Layer) (Instance, error) {
	return f(d, l)
}
