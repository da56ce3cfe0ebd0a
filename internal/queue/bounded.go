package queue

import (
	"fmt"
	"sync"
)

// Bounded is a fixed-capacity blocking FIFO.
//
// All methods are safe for concurrent use by multiple producers and
// consumers. The zero value is not usable; construct with NewBounded.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond // room available, or finished
	notEmpty *sync.Cond // data available, or finished

	items    ring[T]
	finished bool
}

// NewBounded creates a Bounded queue holding at most capacity items.
//
// A capacity below 1 is a programmer error and returns ErrInvalidCapacity.
// Storage for all capacity slots is allocated up front.
func NewBounded[T any](capacity int) (*Bounded[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}

	q := &Bounded[T]{
		items: newRing[T](capacity),
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Push appends v to the tail, blocking while the queue is full.
//
// If the queue is finished, before or while waiting, v is dropped and Push
// returns without error. On success one waiting consumer is woken.
func (q *Bounded[T]) Push(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.canPushLocked() {
		q.notFull.Wait()
	}
	if q.finished {
		return
	}

	q.items.push(v)
	q.notEmpty.Signal()
}

// Pop removes and returns the head item, blocking while the queue is empty.
//
// Items buffered before Finish are still returned. Once the queue is
// finished and drained, Pop returns the zero value and false without
// blocking. On success one waiting producer is woken.
func (q *Bounded[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.canPopLocked() {
		q.notEmpty.Wait()
	}
	if q.items.empty() {
		var zero T
		return zero, false
	}

	v := q.items.pop()
	q.notFull.Signal()
	return v, true
}

// Finish marks the queue as finished and wakes every blocked producer and
// consumer. It is idempotent and irreversible.
func (q *Bounded[T]) Finish() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.finished {
		return
	}
	q.finished = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of buffered items.
//
// The value may be stale as soon as it is returned; use it for telemetry,
// not for control flow.
func (q *Bounded[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.len()
}

// Cap returns the capacity the queue was created with.
func (q *Bounded[T]) Cap() int {
	// Immutable after construction.
	return q.items.cap()
}

// Finished reports whether Finish has been called.
func (q *Bounded[T]) Finished() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.finished
}

// TryPush appends v without blocking.
// Returns false if the queue is full or finished.
func (q *Bounded[T]) TryPush(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.finished || q.items.full() {
		return false
	}
	q.items.push(v)
	q.notEmpty.Signal()
	return true
}

// TryPop removes and returns the head item without blocking.
// Returns false if the queue is empty.
func (q *Bounded[T]) TryPop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.empty() {
		var zero T
		return zero, false
	}
	v := q.items.pop()
	q.notFull.Signal()
	return v, true
}

// canPushLocked is the notFull predicate. q.mu must be held.
func (q *Bounded[T]) canPushLocked() bool {
	return q.finished || !q.items.full()
}

// canPopLocked is the notEmpty predicate. q.mu must be held.
func (q *Bounded[T]) canPopLocked() bool {
	return q.finished || !q.items.empty()
}
