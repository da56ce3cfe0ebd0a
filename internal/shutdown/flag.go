package shutdown

import "sync/atomic"

// Flag is a Signal backed by an atomic.Bool.
//
// Requested is a single atomic load, cheap enough to call once per produced
// item. The zero value is ready to use.
type Flag struct {
	stopped atomic.Bool
}

// NewFlag returns a Flag with no stop requested.
func NewFlag() *Flag {
	return &Flag{}
}

// Requested reports whether Request has been called.
func (f *Flag) Requested() bool {
	return f.stopped.Load()
}

// Request marks the flag. Later calls are no-ops.
func (f *Flag) Request() {
	f.stopped.Store(true)
}
