package queue_test

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/bounded-queue/internal/queue"
)

// Concurrency contract tests. Run with: go test -race ./internal/queue

// tagged identifies an item by producer and sequence number.
type tagged struct {
	producer int
	seq      int
}

// drain pops until end-of-stream on consumers goroutines and returns
// everything received.
func drain[T any](q *queue.Bounded[T], consumers int) <-chan []T {
	out := make(chan []T, 1)
	var (
		mu  sync.Mutex
		all []T
		wg  sync.WaitGroup
	)
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local []T
			for {
				v, ok := q.Pop()
				if !ok {
					break
				}
				local = append(local, v)
			}
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		}()
	}
	go func() {
		wg.Wait()
		out <- all
	}()
	return out
}

// TestBounded_SPSC_FIFO: one producer goroutine, one consumer goroutine,
// values arrive in push order.
func TestBounded_SPSC_FIFO(t *testing.T) {
	q := newBounded[int](t, 64)
	count := 10000

	go func() {
		for i := 0; i < count; i++ {
			q.Push(i)
		}
		q.Finish()
	}()

	expected := 0
	for {
		val, ok := q.Pop()
		if !ok {
			break
		}
		if val != expected {
			t.Fatalf("FIFO violation: expected %d, got %d", expected, val)
		}
		expected++
	}

	if expected != count {
		t.Errorf("expected %d items, received %d", count, expected)
	}
}

// TestBounded_MPMC_NoLoss: N producers push M tagged items each; after the
// last producer finishes the union of everything popped equals everything
// pushed, with no duplicates.
func TestBounded_MPMC_NoLoss(t *testing.T) {
	producers := runtime.GOMAXPROCS(0) + 2
	consumers := runtime.GOMAXPROCS(0)
	perProducer := 2000

	q := newBounded[tagged](t, 16)
	received := drain(q, consumers)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for s := 0; s < perProducer; s++ {
				q.Push(tagged{producer: id, seq: s})
			}
		}(p)
	}
	wg.Wait()
	q.Finish()

	var got []tagged
	select {
	case got = <-received:
	case <-time.After(10 * time.Second):
		t.Fatal("consumers did not reach end-of-stream")
	}

	if len(got) != producers*perProducer {
		t.Fatalf("received %d items, want %d", len(got), producers*perProducer)
	}

	seen := make(map[tagged]bool, len(got))
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate item %+v", v)
		}
		seen[v] = true
	}
	for p := 0; p < producers; p++ {
		for s := 0; s < perProducer; s++ {
			if !seen[tagged{p, s}] {
				t.Fatalf("lost item producer=%d seq=%d", p, s)
			}
		}
	}
}

// TestBounded_PerProducerOrder: total FIFO implies each producer's items
// come out in the order that producer pushed them, with a single consumer.
func TestBounded_PerProducerOrder(t *testing.T) {
	producers := 4
	perProducer := 1000
	q := newBounded[tagged](t, 8)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for s := 0; s < perProducer; s++ {
				q.Push(tagged{producer: id, seq: s})
			}
		}(p)
	}
	go func() {
		wg.Wait()
		q.Finish()
	}()

	next := make([]int, producers)
	for {
		v, ok := q.Pop()
		if !ok {
			break
		}
		if v.seq != next[v.producer] {
			t.Fatalf("producer %d: expected seq %d, got %d", v.producer, next[v.producer], v.seq)
		}
		next[v.producer]++
	}
}

// TestBounded_CapacityInvariant samples Len() while producers and
// consumers hammer the queue.
func TestBounded_CapacityInvariant(t *testing.T) {
	const capacity = 4
	q := newBounded[int](t, capacity)

	var violations atomic.Int64
	stop := make(chan struct{})
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		for {
			select {
			case <-stop:
				return
			default:
				if n := q.Len(); n > capacity || n < 0 {
					violations.Add(1)
				}
			}
		}
	}()

	received := drain(q, 3)

	var wg sync.WaitGroup
	for p := 0; p < 6; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 3000; i++ {
				q.Push(i)
			}
		}()
	}
	wg.Wait()
	q.Finish()
	got := <-received
	close(stop)
	<-sampled

	if v := violations.Load(); v != 0 {
		t.Errorf("observed %d samples with Len() outside [0, %d]", v, capacity)
	}
	if len(got) != 6*3000 {
		t.Errorf("received %d items, want %d", len(got), 6*3000)
	}
}

// TestBounded_FinishReleasesAllWaiters parks producers on a full queue and
// consumers on an empty one, then checks Finish releases every one of them.
func TestBounded_FinishReleasesAllWaiters(t *testing.T) {
	full := newBounded[int](t, 1)
	full.Push(0)
	empty := newBounded[int](t, 1)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(v int) {
			defer wg.Done()
			full.Push(v)
		}(i + 1)
		go func() {
			defer wg.Done()
			if _, ok := empty.Pop(); ok {
				t.Error("expected end-of-stream from empty queue")
			}
		}()
	}

	time.Sleep(blockWindow)
	full.Finish()
	empty.Finish()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	mustUnblock(t, done, "waiters")

	// Only the item buffered before Finish survives.
	if full.Len() != 1 {
		t.Errorf("expected 1 buffered item, got %d", full.Len())
	}
}

// TestBounded_FinishRace races Finish against pushes. Every item that made
// it in before Finish must still be drained; nothing appears after.
func TestBounded_FinishRace(t *testing.T) {
	for iter := 0; iter < 50; iter++ {
		q := newBounded[int](t, 8)
		received := drain(q, 2)

		var accepted atomic.Int64
		var wg sync.WaitGroup
		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if q.TryPush(i) {
						accepted.Add(1)
					}
				}
			}()
		}
		q.Finish()
		wg.Wait()

		got := <-received
		if int64(len(got)) != accepted.Load() {
			t.Fatalf("iter %d: accepted %d, drained %d", iter, accepted.Load(), len(got))
		}
	}
}
