// Package logging builds the zap logger used by the producer/consumer
// commands.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: colored console output for humans
//
// The queue package never logs; producers, consumers and the orchestrator do,
// through the *zap.Logger they are handed.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	defer logger.Sync()
//	logger.Info("producer finished", zap.Int("producer", id))
package logging
