// Command producer-consumer runs producers and consumers against a bounded
// queue and reports how the run went.
//
// Every setting comes from the environment (see internal/config) and can be
// overridden by a flag.
//
// Usage:
//
//	go run ./cmd/producer-consumer
//	go run ./cmd/producer-consumer -capacity 2 -producers 8 -rate 0
//	LOG_LEVEL=debug METRICS_ADDR=:9090 go run ./cmd/producer-consumer -items 1000
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/randomizedcoder/bounded-queue/internal/config"
	"github.com/randomizedcoder/bounded-queue/internal/logging"
	"github.com/randomizedcoder/bounded-queue/internal/metrics"
	"github.com/randomizedcoder/bounded-queue/internal/pipeline"
	"github.com/randomizedcoder/bounded-queue/internal/queue"
	"github.com/randomizedcoder/bounded-queue/internal/shutdown"
	"github.com/randomizedcoder/bounded-queue/internal/tick"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "producer-consumer: %v\n", err)
		os.Exit(2)
	}

	w := &cfg.Workload
	flag.IntVar(&cfg.Queue.Capacity, "capacity", cfg.Queue.Capacity, "queue capacity")
	flag.IntVar(&w.Producers, "producers", w.Producers, "number of producers")
	flag.IntVar(&w.Consumers, "consumers", w.Consumers, "number of consumers")
	flag.IntVar(&w.ItemsPerProducer, "items", w.ItemsPerProducer, "items per producer")
	flag.Float64Var(&w.ProduceRate, "rate", w.ProduceRate, "items/sec per producer (0 = unpaced)")
	flag.IntVar(&w.ProduceBurst, "burst", w.ProduceBurst, "producer rate burst")
	flag.DurationVar(&w.ConsumeDelayMin, "delay-min", w.ConsumeDelayMin, "minimum simulated work per item")
	flag.DurationVar(&w.ConsumeDelayMax, "delay-max", w.ConsumeDelayMax, "maximum simulated work per item")
	flag.DurationVar(&w.SampleInterval, "sample", w.SampleInterval, "depth sampling interval (0 = off)")
	flag.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "debug, info, warn or error")
	flag.BoolVar(&cfg.Logging.Development, "log-dev", cfg.Logging.Development, "human-readable logs")
	flag.StringVar(&cfg.Metrics.Addr, "metrics-addr", cfg.Metrics.Addr, "serve /metrics on this address (empty = off)")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "producer-consumer: invalid config: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "producer-consumer: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	stop := shutdown.FromContext(sigCtx)
	ctx := stop.Context()

	q, err := queue.NewBounded[int](cfg.Queue.Capacity)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SetCapacity(q.Cap())

	if cfg.Metrics.Addr != "" {
		srv := metrics.NewServer(cfg.Metrics.Addr, reg, logger)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	w := cfg.Workload
	stats, err := pipeline.Run(ctx, q, pipeline.Options{
		Producers:        w.Producers,
		Consumers:        w.Consumers,
		ItemsPerProducer: w.ItemsPerProducer,
		ProduceRate:      w.ProduceRate,
		ProduceBurst:     w.ProduceBurst,
		Sampler:          tick.New(w.SampleInterval),
		Stop:             stop,
		Logger:           logger,
		Metrics:          m,
	}, produce, consumer(w.ConsumeDelayMin, w.ConsumeDelayMax))

	fmt.Printf("\nRun %s\n", stats.RunID)
	fmt.Println("─────────────────────────────────────────────────")
	fmt.Printf("  Produced:        %d\n", stats.Produced)
	fmt.Printf("  Consumed:        %d\n", stats.Consumed)
	fmt.Printf("  Consumer errors: %d\n", stats.ConsumerErrors)
	fmt.Printf("  Stopped early:   %v\n", stats.Stopped)
	fmt.Printf("  Duration:        %v\n", stats.Duration.Round(time.Millisecond))

	return err
}

// produce returns a random value in [1, 100].
func produce(_ context.Context, _, _ int) (int, error) {
	return rand.IntN(100) + 1, nil
}

// consumer simulates work by sleeping a random duration in [lo, hi].
// A shutdown skips the sleep so buffered items drain quickly.
func consumer(lo, hi time.Duration) pipeline.Consumer[int] {
	return func(ctx context.Context, _ int, _ int) error {
		d := lo + rand.N(hi-lo+1)
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
		}
		return nil
	}
}
