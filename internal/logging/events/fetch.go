package events

import "github.com/atomicstack/movie-booth/internal/logging"

type FetchTracer struct{}

var Fetch = FetchTracer{}

func (FetchTracer) Queue(id, op string, generation uint64) {
	logging.Trace("fetch.queue", map[string]interface{}{"id": id, "op": op, "generation": generation})
}

func (FetchTracer) Start(id, op string) {
	logging.Trace("fetch.start", map[string]interface{}{"id": id, "op": op})
}

func (FetchTracer) Result(id, op string, elapsedMS int64, err error) {
	payload := map[string]interface{}{"id": id, "op": op, "elapsed_ms": elapsedMS}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("fetch.result", payload)
}

func (FetchTracer) Panic(id, op string, recovered interface{}) {
	logging.Trace("fetch.panic", map[string]interface{}{"id": id, "op": op, "panic": recovered})
}

func (FetchTracer) Rejected(id, op string) {
	logging.Trace("fetch.rejected", map[string]interface{}{"id": id, "op": op})
}
