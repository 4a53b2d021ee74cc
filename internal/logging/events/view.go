package events

import "github.com/atomicstack/movie-booth/internal/logging"

type ViewTracer struct{}

type GateTracer struct{}

var (
	View = ViewTracer{}
	Gate = GateTracer{}
)

func (ViewTracer) Refresh(view string, generation uint64) {
	logging.Trace("view.refresh", map[string]interface{}{"view": view, "generation": generation})
}

func (ViewTracer) Apply(view string, generation uint64) {
	logging.Trace("view.apply", map[string]interface{}{"view": view, "generation": generation})
}

func (ViewTracer) Stale(view string, generation, current uint64, reason error) {
	logging.Trace("view.stale", map[string]interface{}{"view": view, "generation": generation, "current": current, "reason": reason.Error()})
}

func (ViewTracer) Clear(view string) {
	logging.Trace("view.clear", map[string]interface{}{"view": view})
}

func (GateTracer) Shutdown() {
	logging.Trace("gate.shutdown", nil)
}

func (GateTracer) Discard(what string, reason error) {
	logging.Trace("gate.discard", map[string]interface{}{"what": what, "reason": reason.Error()})
}

func (GateTracer) ClockStop() {
	logging.Trace("gate.clock.stop", nil)
}
