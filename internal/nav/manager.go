package nav

import (
	"fmt"

	"github.com/atomicstack/uinav/internal/dispatcher"
	"github.com/atomicstack/uinav/internal/layer"
	"github.com/atomicstack/uinav/internal/logging"
	"github.com/atomicstack/uinav/internal/logging/events"
	"github.com/atomicstack/uinav/internal/nav/history"
	"github.com/atomicstack/uinav/internal/registry"
	"github.com/atomicstack/uinav/internal/screen"
)

// Bus events dispatched after each completed transition. The single argument
// is an Event.
const (
	EventAdded    = "nav.added"
	EventClosed   = "nav.closed"
	EventRestored = "nav.restored"
	EventRun      = "nav.run"
)

// Event is the payload of every nav bus event.
type Event struct {
	ID   registry.ID
	Tier registry.Tier
}

// TickID identifies a registered tick func.
type TickID uint64

type tickFunc struct {
	id TickID
	fn func()
}

// History is the read-only view of the visit chain exposed to hosts.
type History interface {
	IDs() []registry.ID
	Current() history.Handle
	Full() history.Handle
	Second() history.Handle
	ID(h history.Handle) (registry.ID, bool)
	Node(h history.Handle) (history.Node, bool)
	Len() int
}

// Option configures a Manager.
type Option func(*Manager)

// WithDispatcher routes nav events and the bus facade through d instead of a
// private dispatcher.
func WithDispatcher(d *dispatcher.Dispatcher) Option {
	return func(m *Manager) {
		if d != nil {
			m.bus = d
		}
	}
}

// WithLayers parents screens to an existing layer set.
func WithLayers(s *layer.Set) Option {
	return func(m *Manager) {
		if s != nil {
			m.layers = s
		}
	}
}

// Manager owns screen instances and the navigation history.
type Manager struct {
	reg     *registry.Registry
	layers  *layer.Set
	cache   *cache
	tree    *history.Tree
	bus     *dispatcher.Dispatcher
	ticks   []tickFunc
	nextID  TickID
	runRoot registry.ID
}

// New returns a Manager that looks screens up in reg and builds them with
// creator.
func New(reg *registry.Registry, creator screen.Creator, opts ...Option) *Manager {
	m := &Manager{
		reg:    reg,
		layers: layer.NewSet(),
		tree:   history.New(),
		bus:    dispatcher.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = newCache(creator, m.layers)
	return m
}

// Add opens id. Opening the screen that is already current returns it
// unchanged. A lookup or creation failure leaves every screen as it was.
func (m *Manager) Add(id registry.ID, args screen.Args) (screen.Instance, error) {
	if cur, ok := m.CurrentID(); ok && cur == id {
		if e := m.cache.get(id); e != nil {
			return e.inst, nil
		}
	}
	d, err := m.reg.Lookup(id)
	if err != nil {
		events.Nav.Reject("add", string(id), events.RejectUnregistered)
		return nil, err
	}
	e, cached, err := m.cache.getOrCreate(d)
	if err != nil {
		logging.Error(err)
		return nil, fmt.Errorf("add %q: %w", id, err)
	}

	switch d.Tier {
	case registry.FullScreen:
		m.forceClose(id, func(t registry.Tier) bool { return t != registry.Float })
	case registry.SecondLevel:
		m.forceClose(id, func(t registry.Tier) bool {
			return t == registry.SecondLevel || t == registry.ThirdLevel
		})
	}

	e.inst.Show(args)
	m.tree.Visit(id, d.Tier)
	m.place(e)
	events.Nav.Add(string(id), d.Tier.String(), cached)
	m.traceChain()
	m.emit(EventAdded, d)
	return e.inst, nil
}

// Back closes id. It returns false, changing nothing, when id is not open or
// is a full screen that is not current.
//
// A history error found after the instance was hidden or evicted is logged
// and also reported as false; the instance stays closed.
func (m *Manager) Back(id registry.ID, args screen.Args) bool {
	e := m.cache.get(id)
	if e == nil {
		events.Nav.Reject("back", string(id), events.RejectNotCached)
		return false
	}
	d := e.desc
	if d.Tier == registry.FullScreen {
		if cur, ok := m.CurrentID(); !ok || cur != id {
			events.Nav.Reject("back", string(id), events.RejectNotCurrent)
			return false
		}
	}
	events.Nav.Back(string(id), d.Tier.String())

	if d.Destroy == registry.DestroyOnSelfClose {
		m.cache.remove(id)
	} else {
		e.inst.Hide(nil)
	}

	restored := history.None
	switch h := m.tree.Seek(id); {
	case h == history.None:
	case h == m.tree.Current():
		target, err := m.tree.Close(h, m.footprint, func(rid registry.ID) { m.restore(rid, args) })
		if err != nil {
			logging.Error(fmt.Errorf("back %q: %w", id, err))
			return false
		}
		restored = target
	default:
		if err := m.tree.Unlink(h); err != nil {
			logging.Error(fmt.Errorf("back %q: %w", id, err))
			return false
		}
	}
	if err := m.tree.Validate(); err != nil {
		logging.Error(fmt.Errorf("back %q: %w", id, err))
		return false
	}

	m.traceChain()
	m.emit(EventClosed, d)
	if rid, ok := m.tree.ID(restored); ok {
		events.Nav.Restore(string(id), string(rid))
		if rd, err := m.reg.Lookup(rid); err == nil {
			m.emit(EventRestored, rd)
		}
	}
	return true
}

// BackCurrent closes whatever screen is current. It is the handler for a
// hardware or keyboard back action.
func (m *Manager) BackCurrent(args screen.Args) bool {
	id, ok := m.CurrentID()
	if !ok {
		events.Nav.Reject("back", "", events.RejectNoCurrent)
		return false
	}
	return m.Back(id, args)
}

// Run discards every open screen and history, then opens id as the new root.
// An unregistered id changes nothing. If creation fails the manager is left
// empty.
func (m *Manager) Run(id registry.ID, args screen.Args) (screen.Instance, error) {
	d, err := m.reg.Lookup(id)
	if err != nil {
		events.Nav.Reject("run", string(id), events.RejectUnregistered)
		return nil, err
	}
	m.cache.clear()
	m.layers.Reset()
	m.tree.Reset()
	m.runRoot = ""

	e, _, err := m.cache.getOrCreate(d)
	if err != nil {
		logging.Error(err)
		return nil, fmt.Errorf("run %q: %w", id, err)
	}
	e.inst.Show(args)
	m.tree.Start(id, d.Tier)
	m.place(e)
	m.runRoot = id
	events.Nav.Run(string(id))
	m.traceChain()
	m.emit(EventRun, d)
	return e.inst, nil
}

// Tick updates the visible full screen, the visible second-level screen and
// the current screen, then runs the registered tick funcs in order.
func (m *Manager) Tick() {
	full, second, cur := m.tree.Full(), m.tree.Second(), m.tree.Current()
	m.update(full)
	if second != full {
		m.update(second)
	}
	if cur != full && cur != second {
		m.update(cur)
	}

	if len(m.ticks) == 0 {
		return
	}
	snapshot := make([]tickFunc, len(m.ticks))
	copy(snapshot, m.ticks)
	for _, t := range snapshot {
		t.fn()
	}
}

// RegisterTickFunc adds fn to the per-frame callbacks. Registrations made
// during a Tick take effect from the next one.
func (m *Manager) RegisterTickFunc(fn func()) TickID {
	m.nextID++
	m.ticks = append(m.ticks, tickFunc{id: m.nextID, fn: fn})
	return m.nextID
}

// RemoveTickFunc drops a registered callback. Removals made during a Tick take
// effect from the next one.
func (m *Manager) RemoveTickFunc(id TickID) bool {
	for i, t := range m.ticks {
		if t.id == id {
			m.ticks = append(m.ticks[:i:i], m.ticks[i+1:]...)
			return true
		}
	}
	return false
}

// CurrentID returns the id of the current screen.
func (m *Manager) CurrentID() (registry.ID, bool) {
	return m.tree.ID(m.tree.Current())
}

// CurrentInstance returns the current screen, or nil.
func (m *Manager) CurrentInstance() screen.Instance {
	id, ok := m.CurrentID()
	if !ok {
		return nil
	}
	return m.Instance(id)
}

// Instance returns the live instance for id, or nil when none is cached.
func (m *Manager) Instance(id registry.ID) screen.Instance {
	if e := m.cache.get(id); e != nil {
		return e.inst
	}
	return nil
}

// Open lists the cached ids in creation order.
func (m *Manager) Open() []registry.ID {
	return m.cache.ids()
}

// RunRoot returns the id passed to the last successful Run.
func (m *Manager) RunRoot() registry.ID {
	return m.runRoot
}

func (m *Manager) History() History {
	return m.tree
}

func (m *Manager) Layers() *layer.Set {
	return m.layers
}

func (m *Manager) Registry() *registry.Registry {
	return m.reg
}

// Register subscribes fn to a bus event.
func (m *Manager) Register(event string, fn dispatcher.Callback) dispatcher.HandlerID {
	return m.bus.Register(event, fn)
}

// Cancel unsubscribes handlers from a bus event; with no ids every handler is
// removed.
func (m *Manager) Cancel(event string, ids ...dispatcher.HandlerID) int {
	return m.bus.Cancel(event, ids...)
}

// Receive dispatches a bus event and returns the last non-nil handler result.
func (m *Manager) Receive(event string, args ...interface{}) interface{} {
	return m.bus.Dispatch(event, args...)
}

// forceClose shuts every other cached screen whose tier matches, skipping
// transitions.
func (m *Manager) forceClose(opener registry.ID, match func(registry.Tier) bool) {
	for _, id := range m.cache.ids() {
		if id == opener {
			continue
		}
		e := m.cache.get(id)
		if e == nil || !match(e.desc.Tier) {
			continue
		}
		if e.desc.Destroy == registry.DestroyOnSelfClose {
			m.cache.discard(id)
		} else {
			e.inst.SetActive(false)
		}
		events.Nav.ForceClose(string(id), string(opener))
	}
}

// restore redisplays id while a close walks back through the history.
func (m *Manager) restore(id registry.ID, args screen.Args) {
	if e := m.cache.get(id); e != nil {
		e.inst.SetActive(true)
		if e.desc.Tier == registry.ThirdLevel {
			m.place(e)
		}
		return
	}
	d, err := m.reg.Lookup(id)
	if err != nil {
		logging.Error(fmt.Errorf("restore: %w", err))
		return
	}
	e, _, err := m.cache.getOrCreate(d)
	if err != nil {
		logging.Error(fmt.Errorf("restore: %w", err))
		return
	}
	e.inst.Show(args)
	m.place(e)
}

// place raises third-level screens to the top of their layer and tags the
// instance with its id.
func (m *Manager) place(e *entry) {
	if e.desc.Tier == registry.ThirdLevel {
		z := e.layer.Raise(e.desc.ID)
		if zo, ok := e.inst.(layer.ZOrderer); ok {
			zo.SetZOrder(z)
		}
	}
	if tg, ok := e.inst.(screen.Tagger); ok {
		tg.SetID(e.desc.ID)
	}
}

func (m *Manager) footprint(id registry.ID) bool {
	d, err := m.reg.Lookup(id)
	return err == nil && d.Footprint
}

func (m *Manager) update(h history.Handle) {
	id, ok := m.tree.ID(h)
	if !ok {
		return
	}
	if e := m.cache.get(id); e != nil {
		e.inst.Update()
	}
}

func (m *Manager) emit(event string, d registry.Descriptor) {
	m.bus.Dispatch(event, Event{ID: d.ID, Tier: d.Tier})
}

func (m *Manager) traceChain() {
	if !logging.TraceEnabled() {
		return
	}
	ids := m.tree.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	events.Nav.Chain(out)
}
