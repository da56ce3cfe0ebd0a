// Package pipeline drives a bounded queue with a fixed set of producer and
// consumer goroutines.
//
// Run owns the goroutines, the queue does not. The shutdown order is:
//
//  1. every producer returns, having produced its quota or seen a stop
//  2. Run calls Finish on the queue, exactly once
//  3. consumers drain what is buffered and exit on end-of-stream
//
// A stop request (shutdown.Signal, or ctx ending) only cuts production
// short. Items already in the queue are always delivered to a consumer, so a
// completed Run reports Produced == Consumed.
package pipeline
