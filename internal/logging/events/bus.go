package events

import "github.com/atomicstack/uinav/internal/logging"

type BusTracer struct{}

var Bus = BusTracer{}

func (BusTracer) Register(event string, handler uint64) {
	logging.Trace("bus.register", map[string]interface{}{"event": event, "handler": handler})
}

func (BusTracer) Cancel(event string, handlers int) {
	logging.Trace("bus.cancel", map[string]interface{}{"event": event, "handlers": handlers})
}

func (BusTracer) Dispatch(event string, handlers int) {
	logging.Trace("bus.dispatch", map[string]interface{}{"event": event, "handlers": handlers})
}
