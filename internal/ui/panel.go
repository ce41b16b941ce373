package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/schedule"
	"github.com/atomicstack/uinav/internal/screen"
)

// Phase is where a panel is in its show/hide cycle.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseShowing
	PhaseShown
	PhaseHiding
)

func (p Phase) String() string {
	switch p {
	case PhaseShowing:
		return "showing"
	case PhaseShown:
		return "shown"
	case PhaseHiding:
		return "hiding"
	default:
		return "hidden"
	}
}

// Panel is the terminal rendering of one screen. Show and Hide run a timed
// transition on the shared scheduler; SetActive skips it.
type Panel struct {
	desc       registry.Descriptor
	layer      *layer.Layer
	sched      *schedule.Scheduler
	transition time.Duration
	key        string
	slot       *keySlot
	pending    func()

	id        registry.ID
	phase     Phase
	active    bool
	destroyed bool
	z         int
	frames    int
	args      screen.Args
}

var (
	_ screen.Instance = (*Panel)(nil)
	_ screen.Tagger   = (*Panel)(nil)
	_ layer.ZOrderer  = (*Panel)(nil)
)

func (p *Panel) Show(args screen.Args) {
	if p.destroyed {
		return
	}
	p.args = args
	p.active = true
	p.phase = PhaseShowing
	p.schedule(func() {
		p.phase = PhaseShown
	})
}

func (p *Panel) Hide(onComplete func()) {
	if p.destroyed {
		if onComplete != nil {
			onComplete()
		}
		return
	}
	p.phase = PhaseHiding
	p.schedule(func() {
		p.phase = PhaseHidden
		p.active = false
		if onComplete != nil {
			onComplete()
		}
	})
}

func (p *Panel) SetActive(active bool) {
	p.release()
	p.active = active
	if active {
		p.phase = PhaseShown
	} else {
		p.phase = PhaseHidden
	}
}

func (p *Panel) Destroy() {
	p.release()
	p.destroyed = true
	p.active = false
	p.phase = PhaseHidden
}

// schedule queues fn under the id's key. A transition another panel of the
// same id still has pending is completed first.
func (p *Panel) schedule(fn func()) {
	if prev := p.slot.owner; prev != nil && prev != p {
		prev.finish()
	}
	p.slot.owner = p
	p.pending = fn
	p.sched.After(p.key, p.transition, func() {
		p.pending = nil
		fn()
	})
}

// finish runs the pending transition now.
func (p *Panel) finish() {
	fn := p.pending
	if fn == nil {
		return
	}
	p.release()
	fn()
}

// release drops the pending transition if p still owns the key.
func (p *Panel) release() {
	if p.slot.owner != p {
		return
	}
	p.sched.Cancel(p.key)
	p.pending = nil
}

func (p *Panel) Update() {
	p.frames++
}

func (p *Panel) SetID(id registry.ID) {
	p.id = id
}

func (p *Panel) SetZOrder(z int) {
	p.z = z
}

func (p *Panel) ID() registry.ID                 { return p.id }
func (p *Panel) Descriptor() registry.Descriptor { return p.desc }
func (p *Panel) Phase() Phase                    { return p.phase }
func (p *Panel) Active() bool                    { return p.active }
func (p *Panel) Destroyed() bool                 { return p.destroyed }
func (p *Panel) Z() int                          { return p.z }
func (p *Panel) Frames() int                     { return p.frames }
func (p *Panel) Args() screen.Args               { return p.args }
func (p *Panel) Layer() *layer.Layer             { return p.layer }

// Visible reports whether the panel should be drawn.
func (p *Panel) Visible() bool {
	return p.active && !p.destroyed
}

// keySlot records which panel of an id last scheduled under the id's key.
type keySlot struct {
	owner *Panel
}

// PanelFactory creates Panels. Panels of one id share a scheduler key, so at
// most one transition per id is ever pending.
type PanelFactory struct {
	sched      *schedule.Scheduler
	transition time.Duration
	slots      map[registry.ID]*keySlot
}

// NewPanelFactory returns a screen.Creator producing panels whose transitions
// last transition.
func NewPanelFactory(sched *schedule.Scheduler, transition time.Duration) *PanelFactory {
	return &PanelFactory{
		sched:      sched,
		transition: transition,
		slots:      make(map[registry.ID]*keySlot),
	}
}

func (f *PanelFactory) Instantiate(d registry.Descriptor, l *layer.Layer) (screen.Instance, error) {
	if f.sched == nil {
		return nil, fmt.Errorf("panel %q: no scheduler", d.ID)
	}
	slot, ok := f.slots[d.ID]
	if !ok {
		slot = &keySlot{}
		f.slots[d.ID] = slot
	}
	return &Panel{
		desc:       d,
		layer:      l,
		sched:      f.sched,
		transition: f.transition,
		key:        "panel:" + string(d.ID),
		slot:       slot,
		id:         d.ID,
	}, nil
}
