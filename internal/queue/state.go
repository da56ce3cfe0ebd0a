package queue

import "errors"

var (
	// ErrInvalidCapacity is returned by NewBounded for a capacity below 1.
	ErrInvalidCapacity = errors.New("queue: capacity must be at least 1")

	// ErrFinished reports that the queue no longer accepts items
	// (PushContext) or has been drained after Finish (PopContext).
	ErrFinished = errors.New("queue: finished")
)

// State is the lifecycle position of a Bounded queue.
type State int

const (
	// StateOpen accepts pushes.
	StateOpen State = iota
	// StateDraining is finished with items still buffered.
	StateDraining
	// StateClosed is finished and empty. Terminal.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// State returns the current lifecycle state.
func (q *Bounded[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch {
	case !q.finished:
		return StateOpen
	case q.items.empty():
		return StateClosed
	default:
		return StateDraining
	}
}
