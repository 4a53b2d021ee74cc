// Package view implements refreshable view regions guarded by a generation
// counter.
//
// Each refresh bumps the counter and the caller carries the returned
// Generation into its background fetch. When the fetch completes, the
// consumer applies the result through ApplyIfCurrent; results whose
// generation has been superseded are dropped. Only the consumer goroutine
// mutates content and status. The counter itself is atomic so workers may
// read it for diagnostics.
package view

import (
	"errors"
	"sync/atomic"

	"github.com/atomicstack/movie-booth/internal/logging/events"
)

// ErrStaleResult marks a completion dropped because a newer refresh
// superseded it. It is traced, never shown.
var ErrStaleResult = errors.New("stale result discarded")

// Generation identifies one refresh of a view.
type Generation uint64

// Status is the load state of a view.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// View holds the displayed content of one region.
type View[T any] struct {
	name    string
	gen     atomic.Uint64
	applied Generation
	isEmpty func(T) bool

	status     Status
	content    T
	hasContent bool
	err        error
}

// New creates an idle view. isEmpty decides when loaded content should be
// shown as the "no data" placeholder; nil means never.
func New[T any](name string, isEmpty func(T) bool) *View[T] {
	return &View[T]{name: name, isEmpty: isEmpty}
}

// Name returns the view's identifier.
func (v *View[T]) Name() string {
	return v.name
}

// BeginRefresh starts a new refresh and returns its generation. The view
// moves to StatusLoading and keeps its previous content until a result
// is applied.
func (v *View[T]) BeginRefresh() Generation {
	g := Generation(v.gen.Add(1))
	v.status = StatusLoading
	v.err = nil
	events.View.Refresh(v.name, uint64(g))
	return g
}

// Current returns the live generation.
func (v *View[T]) Current() Generation {
	return Generation(v.gen.Load())
}

// IsCurrent reports whether g is still the live generation.
func (v *View[T]) IsCurrent(g Generation) bool {
	return g == v.Current()
}

// ApplyIfCurrent runs fn when g is the live generation and no result has
// been applied for it yet. It reports whether fn ran.
func (v *View[T]) ApplyIfCurrent(g Generation, fn func()) bool {
	current := v.Current()
	if g != current || g == v.applied {
		events.View.Stale(v.name, uint64(g), uint64(current), ErrStaleResult)
		return false
	}
	v.applied = g
	if fn != nil {
		fn()
	}
	events.View.Apply(v.name, uint64(g))
	return true
}

// Resolve applies a fetch outcome for generation g. A nil err replaces the
// content and marks the view loaded; otherwise the view is marked failed
// and keeps whatever it showed before.
func (v *View[T]) Resolve(g Generation, value T, err error) bool {
	return v.ApplyIfCurrent(g, func() {
		if err != nil {
			v.status = StatusFailed
			v.err = err
			return
		}
		v.content = value
		v.hasContent = true
		v.err = nil
		v.status = StatusLoaded
	})
}

// Clear drops the content, returns the view to idle and invalidates any
// refresh still in flight.
func (v *View[T]) Clear() {
	var zero T
	v.gen.Add(1)
	v.content = zero
	v.hasContent = false
	v.err = nil
	v.status = StatusIdle
	events.View.Clear(v.name)
}

// Status returns the load state.
func (v *View[T]) Status() Status {
	return v.status
}

// Content returns the last applied content.
func (v *View[T]) Content() T {
	return v.content
}

// Err returns the error of the last failed refresh, if the view is failed.
func (v *View[T]) Err() error {
	return v.err
}

// HasContent reports whether a result has been applied since the last Clear.
func (v *View[T]) HasContent() bool {
	return v.hasContent
}

// Empty reports whether the applied content should render as the "no data"
// placeholder.
func (v *View[T]) Empty() bool {
	if !v.hasContent || v.isEmpty == nil {
		return false
	}
	return v.isEmpty(v.content)
}

// EmptySlice is an isEmpty func for slice-valued views.
func EmptySlice[E any](s []E) bool {
	return len(s) == 0
}
