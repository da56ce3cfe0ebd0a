package shutdown_test

import (
	"context"
	"testing"

	"github.com/randomizedcoder/bounded-queue/internal/shutdown"
)

func TestFlag(t *testing.T) {
	f := shutdown.NewFlag()

	if f.Requested() {
		t.Error("expected Requested() = false before Request()")
	}

	f.Request()

	if !f.Requested() {
		t.Error("expected Requested() = true after Request()")
	}

	// Idempotent
	f.Request()
	if !f.Requested() {
		t.Error("expected Requested() = true after second Request()")
	}
}

func TestFlag_ZeroValue(t *testing.T) {
	var f shutdown.Flag
	if f.Requested() {
		t.Error("expected zero Flag to report no stop")
	}
	f.Request()
	if !f.Requested() {
		t.Error("expected Requested() = true after Request()")
	}
}

func TestContextSignal(t *testing.T) {
	s := shutdown.FromContext(context.Background())

	if s.Requested() {
		t.Error("expected Requested() = false before Request()")
	}

	select {
	case <-s.Context().Done():
		t.Error("expected context to not be done")
	default:
	}

	s.Request()

	if !s.Requested() {
		t.Error("expected Requested() = true after Request()")
	}
	select {
	case <-s.Context().Done():
	default:
		t.Error("expected context to be done after Request()")
	}
}

func TestContextSignal_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := shutdown.FromContext(parent)

	cancel()

	if !s.Requested() {
		t.Error("expected Requested() = true after parent cancel")
	}
}

func TestContextSignal_RequestLeavesParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := shutdown.FromContext(parent)

	s.Request()

	if parent.Err() != nil {
		t.Error("expected parent context to stay live")
	}
}

// Test that both implementations satisfy the interface
func TestSignalInterface(t *testing.T) {
	testCases := []struct {
		name string
		s    shutdown.Signal
	}{
		{"Flag", shutdown.NewFlag()},
		{"Context", shutdown.FromContext(context.Background())},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.s.Requested() {
				t.Error("expected Requested() = false initially")
			}

			tc.s.Request()

			if !tc.s.Requested() {
				t.Error("expected Requested() = true after Request()")
			}
		})
	}
}
