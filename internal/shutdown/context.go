package shutdown

import "context"

// ContextSignal is a Signal backed by a cancellable context.
//
// A stop is requested when Request is called or when the parent context
// ends, e.g. a signal.NotifyContext on SIGINT. Context exposes the derived
// context so blocking calls (pacing waits, PushContext) wake on the same
// event.
type ContextSignal struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// FromContext derives a ContextSignal from parent.
func FromContext(parent context.Context) *ContextSignal {
	ctx, cancel := context.WithCancel(parent)
	return &ContextSignal{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Requested reports whether the derived context is done.
// This performs a non-blocking select on ctx.Done().
func (s *ContextSignal) Requested() bool {
	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// Request cancels the derived context. The parent is not affected.
func (s *ContextSignal) Request() {
	s.cancel()
}

// Context returns the derived context.
func (s *ContextSignal) Context() context.Context {
	return s.ctx
}
