package tick

import (
	"sync/atomic"
	"time"
)

// AtomicTicker fires at most once per interval across all callers.
//
// Elapsed time is read from the monotonic clock relative to a fixed epoch,
// so the state is a single int64 and a tick is claimed with one CAS.
type AtomicTicker struct {
	epoch    time.Time
	interval int64 // nanoseconds
	lastTick atomic.Int64
}

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	t := &AtomicTicker{
		epoch:    time.Now(),
		interval: int64(interval),
	}
	t.lastTick.Store(t.now())
	return t
}

func (a *AtomicTicker) now() int64 {
	return int64(time.Since(a.epoch))
}

// Tick returns true if the interval has elapsed since the last tick.
//
// The compare-and-swap ensures only one of several concurrent callers
// observes each tick.
func (a *AtomicTicker) Tick() bool {
	now := a.now()
	last := a.lastTick.Load()

	if now-last >= a.interval {
		if a.lastTick.CompareAndSwap(last, now) {
			return true
		}
	}
	return false
}

// Reset starts a new interval from now.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(a.now())
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
