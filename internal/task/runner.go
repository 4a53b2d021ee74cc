// Package task runs blocking fetch operations off the consumer goroutine.
//
// Submit never blocks. Each request gets its own goroutine which waits on a
// FIFO weighted semaphore, so queueing is unbounded while at most Workers
// fetches run at once. When a fetch finishes its Result is posted to the
// dispatcher; completions never touch view state from the worker.
package task

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atomicstack/movie-booth/internal/logging"
	"github.com/atomicstack/movie-booth/internal/logging/events"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

const defaultWorkers = 4

// ErrClosed is reported for requests submitted after Close.
var ErrClosed = errors.New("task runner closed")

// Poster enqueues a callback for the consumer goroutine.
type Poster interface {
	Post(fn func()) bool
}

// Request is a unit of background work.
type Request struct {
	// Op names the operation, e.g. "movies" or "room-for-movie:7".
	Op string
	// Generation is the view generation captured when the request was made.
	Generation uint64
	// Fetch runs on a worker.
	Fetch func(ctx context.Context) (any, error)
	// Deliver runs on the consumer with the outcome. It may be nil.
	Deliver func(Result)
}

// Result is the outcome of one request.
type Result struct {
	ID         uuid.UUID
	Op         string
	Generation uint64
	Value      any
	Err        error
	Elapsed    time.Duration
}

// Handle identifies a submitted request.
type Handle struct {
	ID         uuid.UUID
	Op         string
	Generation uint64
	done       <-chan struct{}
}

// Done is closed once the request's fetch has returned and its result has
// been handed to the dispatcher.
func (h Handle) Done() <-chan struct{} {
	return h.done
}

// Pending describes a request that is queued or running.
type Pending struct {
	ID        uuid.UUID
	Op        string
	Submitted time.Time
	Running   bool
}

// Options tunes a Runner.
type Options struct {
	// Workers bounds concurrent fetches. Zero or less selects 4.
	Workers int
	// Timeout bounds each fetch. Zero disables the limit.
	Timeout time.Duration
}

// Runner executes requests on a bounded set of goroutines.
type Runner struct {
	poster  Poster
	sem     *semaphore.Weighted
	workers int
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup

	mu      sync.Mutex
	pending map[uuid.UUID]*Pending
}

// New creates a runner that posts results to poster.
func New(poster Poster, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		poster:  poster,
		sem:     semaphore.NewWeighted(int64(workers)),
		workers: workers,
		timeout: opts.Timeout,
		ctx:     ctx,
		cancel:  cancel,
		pending: make(map[uuid.UUID]*Pending),
	}
}

// Workers returns the concurrency bound.
func (r *Runner) Workers() int {
	return r.workers
}

// Submit schedules req and returns immediately.
func (r *Runner) Submit(req Request) Handle {
	id := uuid.New()
	done := make(chan struct{})
	h := Handle{ID: id, Op: req.Op, Generation: req.Generation, done: done}
	events.Fetch.Queue(id.String(), req.Op, req.Generation)

	if r.closed.Load() {
		events.Fetch.Rejected(id.String(), req.Op)
		r.deliver(req, Result{ID: id, Op: req.Op, Generation: req.Generation, Err: ErrClosed})
		close(done)
		return h
	}

	r.track(id, req.Op)
	r.wg.Add(1)
	go r.run(id, req, done)
	return h
}

// Pending returns a best-effort snapshot of queued and running requests,
// oldest first.
func (r *Runner) Pending() []Pending {
	r.mu.Lock()
	out := make([]Pending, 0, len(r.pending))
	for _, p := range r.pending {
		out = append(out, *p)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Submitted.Before(out[j].Submitted)
	})
	return out
}

// Close stops accepting requests and cancels the context passed to running
// and queued fetches. It does not wait for them; see Wait.
func (r *Runner) Close() {
	if r.closed.Swap(true) {
		return
	}
	r.cancel()
}

// Wait blocks until every submitted request has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) run(id uuid.UUID, req Request, done chan struct{}) {
	defer r.wg.Done()
	defer close(done)
	defer r.untrack(id)

	res := Result{ID: id, Op: req.Op, Generation: req.Generation}
	if err := r.sem.Acquire(r.ctx, 1); err != nil {
		res.Err = fmt.Errorf("%s: %w", req.Op, err)
		r.deliver(req, res)
		return
	}
	r.markRunning(id)
	events.Fetch.Start(id.String(), req.Op)

	start := time.Now()
	res.Value, res.Err = r.call(id, req)
	res.Elapsed = time.Since(start)
	r.sem.Release(1)

	events.Fetch.Result(id.String(), req.Op, res.Elapsed.Milliseconds(), res.Err)
	r.deliver(req, res)
}

func (r *Runner) call(id uuid.UUID, req Request) (value any, err error) {
	ctx := r.ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	defer func() {
		if rec := recover(); rec != nil {
			events.Fetch.Panic(id.String(), req.Op, rec)
			logging.Error(fmt.Errorf("task %s panicked: %v\n%s", req.Op, rec, debug.Stack()))
			value = nil
			err = fmt.Errorf("%s: panic: %v", req.Op, rec)
		}
	}()
	if req.Fetch == nil {
		return nil, nil
	}
	return req.Fetch(ctx)
}

func (r *Runner) deliver(req Request, res Result) {
	if req.Deliver == nil || r.poster == nil {
		return
	}
	r.poster.Post(func() { req.Deliver(res) })
}

func (r *Runner) track(id uuid.UUID, op string) {
	r.mu.Lock()
	r.pending[id] = &Pending{ID: id, Op: op, Submitted: time.Now()}
	r.mu.Unlock()
}

func (r *Runner) markRunning(id uuid.UUID) {
	r.mu.Lock()
	if p, ok := r.pending[id]; ok {
		p.Running = true
	}
	r.mu.Unlock()
}

func (r *Runner) untrack(id uuid.UUID) {
	r.mu.Lock()
	delete(r.pending, id)
	r.mu.Unlock()
}
