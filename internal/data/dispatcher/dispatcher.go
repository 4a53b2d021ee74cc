// Package dispatcher hands completed background results to the single
// consumer that owns view state.
//
// Producers call Post from any goroutine; it appends to an unbounded FIFO
// queue and never blocks. The consumer pulls callbacks one at a time with
// Next (or TryNext) and runs them itself, so callbacks never overlap each
// other or the input handling done on the same goroutine.
package dispatcher

import (
	"context"
	"sync"
)

// Dispatcher is an unbounded FIFO of callbacks with a single consumer.
type Dispatcher struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	// signal has capacity 1; a pending value means the queue may be non-empty.
	signal chan struct{}
	done   chan struct{}
}

// New creates an empty dispatcher.
func New() *Dispatcher {
	return &Dispatcher{
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Post enqueues fn for the consumer. It reports false when fn is nil or the
// dispatcher has been closed.
func (d *Dispatcher) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return false
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.signal <- struct{}{}:
	default:
	}
	return true
}

// TryNext pops the oldest callback without waiting.
func (d *Dispatcher) TryNext() (func(), bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.popLocked()
}

// Next blocks until a callback is available, ctx is done, or the dispatcher
// is closed and drained.
func (d *Dispatcher) Next(ctx context.Context) (func(), bool) {
	for {
		d.mu.Lock()
		fn, ok := d.popLocked()
		closed := d.closed
		d.mu.Unlock()
		if ok {
			return fn, true
		}
		if closed {
			return nil, false
		}
		select {
		case <-ctx.Done():
			return nil, false
		case <-d.done:
		case <-d.signal:
		}
	}
}

// Len returns the number of queued callbacks.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Close stops accepting callbacks. Queued callbacks are still returned by
// Next and TryNext. Close is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	close(d.done)
}

// Drain runs every queued callback on the calling goroutine and returns how
// many ran. Callbacks posted while draining are run too.
func (d *Dispatcher) Drain() int {
	count := 0
	for {
		fn, ok := d.TryNext()
		if !ok {
			return count
		}
		fn()
		count++
	}
}

func (d *Dispatcher) popLocked() (func(), bool) {
	if len(d.queue) == 0 {
		return nil, false
	}
	fn := d.queue[0]
	d.queue[0] = nil
	d.queue = d.queue[1:]
	if len(d.queue) == 0 {
		d.queue = nil
	}
	return fn, true
}
