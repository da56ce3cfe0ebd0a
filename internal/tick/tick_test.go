package tick_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/bounded-queue/internal/tick"
)

func TestAtomicTicker(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)

	// Should not tick immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after creation")
	}

	// Wait for interval + buffer
	time.Sleep(interval + 20*time.Millisecond)

	// Should tick now
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval elapsed")
	}

	// Should not tick again immediately
	if ticker.Tick() {
		t.Error("expected Tick() = false immediately after tick")
	}
}

func TestAtomicTicker_Reset(t *testing.T) {
	interval := 50 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)

	// Wait and tick
	time.Sleep(interval + 20*time.Millisecond)
	if !ticker.Tick() {
		t.Error("expected Tick() = true after interval")
	}

	// Reset
	ticker.Reset()

	// Should not tick immediately after reset
	if ticker.Tick() {
		t.Error("expected Tick() = false after Reset()")
	}
}

func TestAtomicTicker_Interval(t *testing.T) {
	ticker := tick.NewAtomicTicker(time.Second)
	if ticker.Interval() != time.Second {
		t.Errorf("expected Interval() = 1s, got %v", ticker.Interval())
	}
}

// TestAtomicTicker_OneWinnerPerInterval polls one ticker from many
// goroutines; a single elapsed interval must fire exactly once.
func TestAtomicTicker_OneWinnerPerInterval(t *testing.T) {
	interval := 200 * time.Millisecond
	ticker := tick.NewAtomicTicker(interval)
	time.Sleep(interval + 20*time.Millisecond)

	var fired atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if ticker.Tick() {
					fired.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	// The loop finishes well inside one interval, so only the first
	// elapsed interval can fire.
	if n := fired.Load(); n != 1 {
		t.Errorf("expected exactly 1 tick, got %d", n)
	}
}

func TestOff(t *testing.T) {
	var ticker tick.Ticker = tick.Off{}
	if ticker.Tick() {
		t.Error("expected Off to never tick")
	}
	ticker.Reset()
	if ticker.Tick() {
		t.Error("expected Off to never tick after Reset")
	}
}

func TestNew(t *testing.T) {
	if _, ok := tick.New(0).(tick.Off); !ok {
		t.Error("expected New(0) to return Off")
	}
	if _, ok := tick.New(-time.Second).(tick.Off); !ok {
		t.Error("expected New(<0) to return Off")
	}
	if _, ok := tick.New(time.Second).(*tick.AtomicTicker); !ok {
		t.Error("expected New(1s) to return *AtomicTicker")
	}
}
