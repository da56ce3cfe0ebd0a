// Package combined holds benchmarks that run several components together:
// the stop check, the depth-sampling tick and the queue in one hot loop,
// the full pipeline, and the bounded queue against a buffered channel and
// a lock-free sharded ring.
//
// Isolated micro-benchmarks miss the cost of the pieces interacting, so
// these are the numbers to compare when changing any one of them.
package combined
