package queue

import (
	"context"
	"sync"
)

// PushContext is Push with cancellation and an explicit drop report.
//
// It returns ctx.Err() if ctx ends before room opens, and ErrFinished if the
// queue was finished, in which case v was not enqueued. A caller woken with
// room available completes the push even if ctx ended at the same moment.
func (q *Bounded[T]) PushContext(ctx context.Context, v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.waitLocked(ctx, q.notFull, q.canPushLocked); err != nil {
		return err
	}
	if q.finished {
		return ErrFinished
	}

	q.items.push(v)
	q.notEmpty.Signal()
	return nil
}

// PopContext is Pop with cancellation.
//
// It returns ctx.Err() if ctx ends while the queue is empty and not finished,
// and ErrFinished once the queue is finished and drained.
func (q *Bounded[T]) PopContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if err := q.waitLocked(ctx, q.notEmpty, q.canPopLocked); err != nil {
		return zero, err
	}
	if q.items.empty() {
		return zero, ErrFinished
	}

	v := q.items.pop()
	q.notFull.Signal()
	return v, nil
}

// waitLocked blocks on c until ready reports true or ctx is done.
// q.mu must be held; it is held again on return.
//
// ready is always checked before ctx so a waiter picked by Signal never
// discards the wakeup it was given.
func (q *Bounded[T]) waitLocked(ctx context.Context, c *sync.Cond, ready func() bool) error {
	if ready() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// The callback needs q.mu, so it cannot broadcast until this goroutine
	// is parked in Wait.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		c.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	for !ready() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.Wait()
	}
	return nil
}
