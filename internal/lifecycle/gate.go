// Package lifecycle tracks whether the customer window is still open and
// runs the periodic clock task on its behalf.
package lifecycle

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/movie-booth/internal/logging/events"
)

// ErrShutdown marks a completion dropped because the window closed.
var ErrShutdown = errors.New("window closed, result discarded")

// Poster enqueues a callback for the consumer goroutine.
type Poster interface {
	Post(fn func()) bool
}

// Gate is a one-way liveness latch. It starts alive; Shutdown flips it to
// closed exactly once and it never reopens.
type Gate struct {
	alive atomic.Bool
	once  sync.Once
	done  chan struct{}
}

// NewGate returns an open gate.
func NewGate() *Gate {
	g := &Gate{done: make(chan struct{})}
	g.alive.Store(true)
	return g
}

// Alive reports whether the window is still open. Safe from any goroutine.
func (g *Gate) Alive() bool {
	return g.alive.Load()
}

// Shutdown closes the gate. Subsequent calls do nothing.
func (g *Gate) Shutdown() {
	g.once.Do(func() {
		g.alive.Store(false)
		close(g.done)
		events.Gate.Shutdown()
	})
}

// Done is closed when the gate shuts down.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Guard wraps fn so it only runs while the gate is open. The check happens
// when the returned function runs, not when Guard is called.
func (g *Gate) Guard(what string, fn func()) func() {
	return func() {
		if !g.Alive() {
			events.Gate.Discard(what, ErrShutdown)
			return
		}
		fn()
	}
}
