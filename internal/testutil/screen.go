// Package testutil provides recording fakes for the screen interfaces.
package testutil

import (
	"errors"
	"fmt"

	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/screen"
)

// ErrCreate is returned by a Creator for ids listed in Fail.
var ErrCreate = errors.New("instantiate failed")

// Screen records every call made on it.
type Screen struct {
	Desc      registry.Descriptor
	Layer     *layer.Layer
	Tag       registry.ID
	Active    bool
	Destroyed bool
	Updates   int
	Z         int
	Shows     int
	Hides     int
	LastArgs  screen.Args

	owner   *Creator
	pending []func()
}

var (
	_ screen.Instance = (*Screen)(nil)
	_ screen.Tagger   = (*Screen)(nil)
	_ layer.ZOrderer  = (*Screen)(nil)
)

func (s *Screen) Show(args screen.Args) {
	s.Shows++
	s.Active = true
	s.LastArgs = args
	s.record("show")
}

// Hide completes at once unless the owning Creator defers hides, in which
// case onComplete waits for Creator.CompleteHides.
func (s *Screen) Hide(onComplete func()) {
	s.Hides++
	s.Active = false
	s.record("hide")
	if onComplete == nil {
		return
	}
	if s.owner != nil && s.owner.DeferHide {
		s.pending = append(s.pending, onComplete)
		s.owner.deferred = append(s.owner.deferred, s)
		return
	}
	onComplete()
}

func (s *Screen) SetActive(active bool) {
	s.Active = active
	if active {
		s.record("activate")
	} else {
		s.record("deactivate")
	}
}

func (s *Screen) Destroy() {
	s.Destroyed = true
	s.Active = false
	s.record("destroy")
}

func (s *Screen) Update() {
	s.Updates++
}

func (s *Screen) SetID(id registry.ID) {
	s.Tag = id
}

func (s *Screen) SetZOrder(z int) {
	s.Z = z
}

func (s *Screen) record(op string) {
	if s.owner != nil {
		s.owner.Journal = append(s.owner.Journal, fmt.Sprintf("%s:%s", s.Desc.ID, op))
	}
}

// Creator hands out Screens and remembers each one it made.
type Creator struct {
	// Fail lists ids whose instantiation returns ErrCreate.
	Fail map[registry.ID]bool
	// DeferHide holds hide completions until CompleteHides is called.
	DeferHide bool
	// Journal is every call made on any screen, as "id:op", in order.
	Journal []string
	Created []*Screen

	deferred []*Screen
}

// NewCreator returns an empty recording Creator.
func NewCreator() *Creator {
	return &Creator{Fail: make(map[registry.ID]bool)}
}

func (c *Creator) Instantiate(d registry.Descriptor, l *layer.Layer) (screen.Instance, error) {
	if c.Fail[d.ID] {
		return nil, fmt.Errorf("%w: %s", ErrCreate, d.ID)
	}
	s := &Screen{Desc: d, Layer: l, owner: c}
	c.Created = append(c.Created, s)
	c.Journal = append(c.Journal, fmt.Sprintf("%s:create", d.ID))
	return s, nil
}

// Count returns how many instances were created for id.
func (c *Creator) Count(id registry.ID) int {
	n := 0
	for _, s := range c.Created {
		if s.Desc.ID == id {
			n++
		}
	}
	return n
}

// Last returns the most recent instance created for id.
func (c *Creator) Last(id registry.ID) *Screen {
	for i := len(c.Created) - 1; i >= 0; i-- {
		if c.Created[i].Desc.ID == id {
			return c.Created[i]
		}
	}
	return nil
}

// CompleteHides runs every deferred hide completion in the order the hides
// were requested.
func (c *Creator) CompleteHides() int {
	queue := c.deferred
	c.deferred = nil
	ran := 0
	for _, s := range queue {
		if len(s.pending) == 0 {
			continue
		}
		fn := s.pending[0]
		s.pending = s.pending[1:]
		fn()
		ran++
	}
	return ran
}

// ResetJournal clears the recorded calls.
func (c *Creator) ResetJournal() {
	c.Journal = nil
}

// Registry builds a registry from descriptors.
func Registry(descs ...registry.Descriptor) *registry.Registry {
	r := registry.New()
	for _, d := range descs {
		r.Register(d)
	}
	return r
}
