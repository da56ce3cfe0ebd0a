// Package shutdown carries a "stop producing" request to producer
// goroutines.
//
// Producers poll Requested between items, so the check sits on the hot path
// and must be cheap. Two implementations are provided:
//   - Flag: a single atomic load, the default inside the pipeline
//   - ContextSignal: backed by a context, for wiring OS signals or a parent
//     deadline into the same check
//
// A stop request only ends production early. Consumers keep draining the
// queue until it reports end-of-stream, so nothing already buffered is lost.
package shutdown

// Signal reports and triggers an early stop.
//
// Implementations must be safe for concurrent use:
//   - Any number of producers may call Requested concurrently
//   - Request may be called concurrently with Requested, more than once
type Signal interface {
	// Requested reports whether a stop has been requested. Never blocks.
	Requested() bool

	// Request asks producers to stop. Idempotent.
	Request()
}
