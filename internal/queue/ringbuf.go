package queue

// ring is the fixed-size backing store for Bounded.
//
// It is not safe for concurrent use; Bounded serializes every access
// through its mutex. Unlike a power-of-two ring, the slot count equals the
// requested capacity exactly, so the capacity invariant is the buffer size.
type ring[T any] struct {
	buf  []T
	head int // index of the oldest item
	n    int // number of buffered items
}

func newRing[T any](size int) ring[T] {
	return ring[T]{buf: make([]T, size)}
}

func (r *ring[T]) full() bool  { return r.n == len(r.buf) }
func (r *ring[T]) empty() bool { return r.n == 0 }
func (r *ring[T]) len() int    { return r.n }
func (r *ring[T]) cap() int    { return len(r.buf) }

// push appends v at the tail. The caller checks full() first.
func (r *ring[T]) push(v T) {
	tail := r.head + r.n
	if tail >= len(r.buf) {
		tail -= len(r.buf)
	}
	r.buf[tail] = v
	r.n++
}

// pop removes the head item. The caller checks empty() first.
func (r *ring[T]) pop() T {
	v := r.buf[r.head]

	// Clear the slot so the queue does not pin consumed items.
	var zero T
	r.buf[r.head] = zero

	r.head++
	if r.head == len(r.buf) {
		r.head = 0
	}
	r.n--
	return v
}
