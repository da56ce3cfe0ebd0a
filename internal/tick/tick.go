// Package tick decides when a hot loop should do periodic work.
//
// Consumers call Tick once per popped item; when it fires they sample the
// queue depth. The check must cost a few nanoseconds and be safe when many
// consumers share one ticker, which rules out time.Ticker's channel select
// and per-goroutine counters.
package tick

import "time"

// Ticker signals when a time interval has elapsed.
//
// Implementations are safe for concurrent use. When several goroutines poll
// the same Ticker, each interval fires for exactly one of them.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()
}

// DefaultInterval is the depth sampling period used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// New returns an AtomicTicker for interval, or Off when interval <= 0.
func New(interval time.Duration) Ticker {
	if interval <= 0 {
		return Off{}
	}
	return NewAtomicTicker(interval)
}

// Off never fires.
type Off struct{}

// Tick always returns false.
func (Off) Tick() bool { return false }

// Reset is a no-op.
func (Off) Reset() {}
