package events

import "github.com/atomicstack/uinav/internal/logging"

type NavTracer struct{}

type rejectReason string

const (
	RejectNotCached    rejectReason = "not-cached"
	RejectNotCurrent   rejectReason = "full-screen-not-current"
	RejectUnregistered rejectReason = "unregistered"
	RejectNoCurrent    rejectReason = "no-current"
)

var Nav = NavTracer{}

func (NavTracer) Add(id, tier string, cached bool) {
	logging.Trace("nav.add", map[string]interface{}{"id": id, "tier": tier, "cached": cached})
}

func (NavTracer) Back(id, tier string) {
	logging.Trace("nav.back", map[string]interface{}{"id": id, "tier": tier})
}

func (NavTracer) Reject(op, id string, reason rejectReason) {
	logging.Trace("nav.reject", map[string]interface{}{"op": op, "id": id, "reason": string(reason)})
}

func (NavTracer) Run(id string) {
	logging.Trace("nav.run", map[string]interface{}{"id": id})
}

func (NavTracer) Restore(closed, target string) {
	logging.Trace("nav.restore", map[string]interface{}{"closed": closed, "target": target})
}

func (NavTracer) ForceClose(id, by string) {
	logging.Trace("nav.force-close", map[string]interface{}{"id": id, "by": by})
}

func (NavTracer) Chain(ids []string) {
	logging.Trace("nav.chain", map[string]interface{}{"ids": ids})
}
