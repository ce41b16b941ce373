// Package dispatcher is a synchronous message bus for cross-system
// notifications. Callbacks run on the caller's goroutine in registration
// order.
package dispatcher

import "github.com/atomicstack/uinav/internal/logging/events"

// Callback receives the arguments passed to Dispatch. A non-nil return value
// becomes the result of Dispatch unless a later callback also returns one.
type Callback func(args ...interface{}) interface{}

// HandlerID identifies one registration.
type HandlerID uint64

type handler struct {
	id HandlerID
	fn Callback
}

// Dispatcher maps event names to callbacks.
type Dispatcher struct {
	handlers map[string][]handler
	next     HandlerID
}

func New() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]handler)}
}

// Register adds fn for event and returns an id that Cancel accepts.
func (d *Dispatcher) Register(event string, fn Callback) HandlerID {
	d.next++
	d.handlers[event] = append(d.handlers[event], handler{id: d.next, fn: fn})
	events.Bus.Register(event, uint64(d.next))
	return d.next
}

// Cancel removes the listed handlers from event. With no ids it removes every
// handler for event. It returns the number removed.
func (d *Dispatcher) Cancel(event string, ids ...HandlerID) int {
	list, ok := d.handlers[event]
	if !ok {
		return 0
	}
	if len(ids) == 0 {
		delete(d.handlers, event)
		events.Bus.Cancel(event, len(list))
		return len(list)
	}
	drop := make(map[HandlerID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := make([]handler, 0, len(list))
	for _, h := range list {
		if _, ok := drop[h.id]; !ok {
			kept = append(kept, h)
		}
	}
	removed := len(list) - len(kept)
	if len(kept) == 0 {
		delete(d.handlers, event)
	} else {
		d.handlers[event] = kept
	}
	if removed > 0 {
		events.Bus.Cancel(event, removed)
	}
	return removed
}

// Has reports whether any handler is registered for event.
func (d *Dispatcher) Has(event string) bool {
	return len(d.handlers[event]) > 0
}

// Dispatch invokes every handler registered for event and returns the last
// non-nil result. Handlers may register or cancel during dispatch; changes
// apply from the next Dispatch.
func (d *Dispatcher) Dispatch(event string, args ...interface{}) interface{} {
	list := d.handlers[event]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]handler, len(list))
	copy(snapshot, list)
	events.Bus.Dispatch(event, len(snapshot))

	var result interface{}
	for _, h := range snapshot {
		if res := h.fn(args...); res != nil {
			result = res
		}
	}
	return result
}
