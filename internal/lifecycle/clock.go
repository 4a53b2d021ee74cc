package lifecycle

import (
	"sync"
	"time"

	"github.com/atomicstack/movie-booth/internal/logging/events"
)

// Clock posts the current time to the consumer at a fixed interval until
// its gate shuts down.
type Clock struct {
	gate     *Gate
	poster   Poster
	interval time.Duration
	now      func() time.Time
	onTick   func(time.Time)

	wg sync.WaitGroup
}

// ClockOption customises a Clock.
type ClockOption func(*Clock)

// WithNow replaces time.Now as the clock's time source.
func WithNow(now func() time.Time) ClockOption {
	return func(c *Clock) {
		if now != nil {
			c.now = now
		}
	}
}

// StartClock launches the periodic task. onTick runs on the consumer and is
// skipped when the gate closed between scheduling and delivery.
func StartClock(gate *Gate, poster Poster, interval time.Duration, onTick func(time.Time), opts ...ClockOption) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	c := &Clock{
		gate:     gate,
		poster:   poster,
		interval: interval,
		now:      time.Now,
		onTick:   onTick,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Wait blocks until the clock goroutine has exited.
func (c *Clock) Wait() {
	c.wg.Wait()
}

func (c *Clock) run() {
	defer c.wg.Done()
	defer events.Gate.ClockStop()

	if !c.emit() {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.gate.Done():
			return
		case <-ticker.C:
			if !c.emit() {
				return
			}
		}
	}
}

// emit reports whether the clock should keep ticking.
func (c *Clock) emit() bool {
	if !c.gate.Alive() {
		return false
	}
	now := c.now()
	c.poster.Post(c.gate.Guard("clock.tick", func() {
		c.onTick(now)
	}))
	return c.gate.Alive()
}
