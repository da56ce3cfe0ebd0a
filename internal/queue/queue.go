// Package queue provides a bounded blocking FIFO for connecting producer and
// consumer goroutines.
//
// Bounded is a fixed-capacity queue guarded by one mutex and two condition
// variables. It offers:
//   - Backpressure: Push blocks while the queue is full
//   - Blocking consumption: Pop blocks while the queue is empty
//   - A one-way shutdown: Finish wakes every waiter, later pushes are dropped,
//     and Pop drains what is left before reporting end-of-stream
//
// # Shutdown protocol
//
// Finish must be called once the orchestration layer knows no further Push
// calls will be made, typically after the last producer returns. Consumers
// loop on Pop until it reports false:
//
//	for {
//		v, ok := q.Pop()
//		if !ok {
//			return // end-of-stream
//		}
//		handle(v)
//	}
//
// Push after Finish is a silent no-op. Callers that need to know whether an
// item was accepted use PushContext, which returns ErrFinished instead.
package queue

// Queue is a bounded FIFO shared by any number of producers and consumers.
//
// Push and Pop block; Finish releases every blocked caller.
type Queue[T any] interface {
	// Push appends v, blocking while the queue is full.
	// The item is dropped if the queue is finished.
	Push(v T)

	// Pop removes the head item, blocking while the queue is empty.
	// Returns false once the queue is finished and drained.
	Pop() (T, bool)

	// Finish marks the end of the stream. Safe to call multiple times.
	Finish()

	// Len returns the number of buffered items. Advisory only.
	Len() int
}

// NonBlocking is the polling side of a queue.
//
// TryPush returns false if the item was not accepted,
// TryPop returns false if nothing was available.
type NonBlocking[T any] interface {
	TryPush(v T) bool
	TryPop() (T, bool)
}

var (
	_ Queue[int]       = (*Bounded[int])(nil)
	_ NonBlocking[int] = (*Bounded[int])(nil)
)
