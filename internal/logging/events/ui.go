package events

import "github.com/atomicstack/uinav/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Command = CommandTracer{}
)

func (UITracer) PaletteEnter(id, filter string) {
	logging.Trace("palette.enter", map[string]interface{}{"id": id, "filter": filter})
}

func (UITracer) PaletteCursor(cursor int) {
	logging.Trace("palette.cursor", map[string]interface{}{"cursor": cursor})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (FilterTracer) Changed(filter string, matches int) {
	logging.Trace("filter.change", map[string]interface{}{"filter": filter, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (CommandTracer) Queue(op, id string) {
	logging.Trace("command.queue", map[string]interface{}{"op": op, "id": id})
}

func (CommandTracer) Result(op, id string, ok bool, err error) {
	payload := map[string]interface{}{"op": op, "id": id, "ok": ok}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}

func (UITracer) Reload(path string, screens int, err error) {
	payload := map[string]interface{}{"path": path, "screens": screens}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("screens.reload", payload)
}
