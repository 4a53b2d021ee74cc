package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/movie-booth/internal/data/dispatcher"
)

func TestGateShutdownIsOneWayAndIdempotent(t *testing.T) {
	g := NewGate()
	if !g.Alive() {
		t.Fatalf("expected new gate to be alive")
	}
	g.Shutdown()
	g.Shutdown()
	if g.Alive() {
		t.Fatalf("expected gate closed after shutdown")
	}
	select {
	case <-g.Done():
	default:
		t.Fatalf("expected done channel closed")
	}
}

func TestGateShutdownConcurrentCallers(t *testing.T) {
	g := NewGate()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Shutdown()
		}()
	}
	wg.Wait()
	if g.Alive() {
		t.Fatalf("expected gate closed")
	}
}

func TestGuardChecksAtRunTime(t *testing.T) {
	g := NewGate()
	ran := 0
	guarded := g.Guard("test", func() { ran++ })
	guarded()
	g.Shutdown()
	guarded()
	if ran != 1 {
		t.Fatalf("expected guarded callback to run once, ran %d", ran)
	}
}

func TestClockTicksUntilShutdown(t *testing.T) {
	g := NewGate()
	d := dispatcher.New()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	var ticks []time.Time
	clock := StartClock(g, d, 5*time.Millisecond, func(ts time.Time) {
		ticks = append(ticks, ts)
	}, WithNow(func() time.Time { return fixed }))

	deadline := time.Now().Add(2 * time.Second)
	for len(ticks) < 3 && time.Now().Before(deadline) {
		d.Drain()
		time.Sleep(2 * time.Millisecond)
	}
	if len(ticks) < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", len(ticks))
	}
	if !ticks[0].Equal(fixed) {
		t.Fatalf("expected injected time, got %v", ticks[0])
	}

	g.Shutdown()
	clock.Wait()
	before := len(ticks)
	d.Drain()
	if len(ticks) != before {
		t.Fatalf("expected ticks queued before shutdown to be discarded, got %d new", len(ticks)-before)
	}
}

func TestClockDoesNotStartWhenGateClosed(t *testing.T) {
	g := NewGate()
	g.Shutdown()
	d := dispatcher.New()
	clock := StartClock(g, d, time.Millisecond, func(time.Time) {
		t.Errorf("tick delivered after shutdown")
	})
	clock.Wait()
	if d.Len() != 0 {
		t.Fatalf("expected nothing posted, got %d", d.Len())
	}
}
