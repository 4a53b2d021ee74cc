package dispatcher

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestPostPreservesFIFOOrder(t *testing.T) {
	d := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		if !d.Post(func() { got = append(got, i) }) {
			t.Fatalf("expected post %d to be accepted", i)
		}
	}
	if n := d.Drain(); n != 5 {
		t.Fatalf("expected 5 callbacks, ran %d", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", got)
		}
	}
}

func TestPostFromManyGoroutinesKeepsPerProducerOrder(t *testing.T) {
	d := New()
	const producers = 8
	const perProducer = 200

	last := make([]int, producers)
	for i := range last {
		last[i] = -1
	}
	seen := 0
	record := func(p, i int) {
		if i != last[p]+1 {
			t.Errorf("producer %d: callback %d ran after %d", p, i, last[p])
		}
		last[p] = i
		seen++
	}

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				i := i
				d.Post(func() { record(p, i) })
			}
		}(p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for seen < producers*perProducer {
		fn, ok := d.Next(ctx)
		if !ok {
			t.Fatalf("timed out after %d callbacks", seen)
		}
		fn()
	}
	wg.Wait()
}

func TestPostNeverBlocksWithoutConsumer(t *testing.T) {
	d := New()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			d.Post(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("post blocked with no consumer running")
	}
	if d.Len() != 10000 {
		t.Fatalf("expected 10000 queued callbacks, got %d", d.Len())
	}
}

func TestNextWaitsForPost(t *testing.T) {
	d := New()
	result := make(chan bool, 1)
	go func() {
		fn, ok := d.Next(context.Background())
		if ok {
			fn()
		}
		result <- ok
	}()
	ran := make(chan struct{})
	time.Sleep(10 * time.Millisecond)
	d.Post(func() { close(ran) })
	select {
	case ok := <-result:
		if !ok {
			t.Fatalf("expected Next to return a callback")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Next did not wake after Post")
	}
	<-ran
}

func TestNextRespectsContext(t *testing.T) {
	d := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, ok := d.Next(ctx); ok {
		t.Fatalf("expected no callback from empty dispatcher")
	}
}

func TestCloseRejectsPostsButDrainsQueue(t *testing.T) {
	d := New()
	ran := 0
	d.Post(func() { ran++ })
	d.Close()
	d.Close()
	if d.Post(func() { ran++ }) {
		t.Fatalf("expected post after close to be rejected")
	}
	fn, ok := d.Next(context.Background())
	if !ok {
		t.Fatalf("expected queued callback to survive close")
	}
	fn()
	if _, ok := d.Next(context.Background()); ok {
		t.Fatalf("expected closed and drained dispatcher to stop")
	}
	if ran != 1 {
		t.Fatalf("expected exactly one callback, ran %d", ran)
	}
}

func TestPostRejectsNil(t *testing.T) {
	d := New()
	if d.Post(nil) {
		t.Fatalf("expected nil callback to be rejected")
	}
	if d.Len() != 0 {
		t.Fatalf("expected empty queue")
	}
}
