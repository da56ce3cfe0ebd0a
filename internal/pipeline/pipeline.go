package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/randomizedcoder/bounded-queue/internal/metrics"
	"github.com/randomizedcoder/bounded-queue/internal/queue"
	"github.com/randomizedcoder/bounded-queue/internal/shutdown"
	"github.com/randomizedcoder/bounded-queue/internal/tick"
)

// ErrInvalidOptions is wrapped by every validation error from Run.
var ErrInvalidOptions = errors.New("pipeline: invalid options")

// Queue is the part of a bounded queue the pipeline needs.
// *queue.Bounded satisfies it.
type Queue[T any] interface {
	PushContext(ctx context.Context, v T) error
	Pop() (T, bool)
	Finish()
	Len() int
}

var _ Queue[int] = (*queue.Bounded[int])(nil)

// Producer returns the seq-th item of producer id.
// A non-nil error stops that producer and requests a stop for the others.
type Producer[T any] func(ctx context.Context, id, seq int) (T, error)

// Consumer handles one item. Errors are counted and logged; the consumer
// keeps draining.
type Consumer[T any] func(ctx context.Context, id int, item T) error

// Options configures a Run. Zero-valued optional fields get defaults.
type Options struct {
	Producers        int
	Consumers        int
	ItemsPerProducer int

	// ProduceRate paces each producer, in items per second. 0 = unpaced.
	ProduceRate  float64
	ProduceBurst int

	// Optional. Defaults: tick.Off, a fresh shutdown.Flag, zap.NewNop,
	// metrics on a private registry.
	Sampler tick.Ticker
	Stop    shutdown.Signal
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.Sampler == nil {
		o.Sampler = tick.Off{}
	}
	if o.Stop == nil {
		o.Stop = shutdown.NewFlag()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.NewUnregistered()
	}
	if o.ProduceRate > 0 && o.ProduceBurst < 1 {
		o.ProduceBurst = 1
	}
	return o
}

func (o Options) validate() error {
	switch {
	case o.Producers < 1:
		return fmt.Errorf("%w: producers must be at least 1, got %d", ErrInvalidOptions, o.Producers)
	case o.Consumers < 1:
		return fmt.Errorf("%w: consumers must be at least 1, got %d", ErrInvalidOptions, o.Consumers)
	case o.ItemsPerProducer < 0:
		return fmt.Errorf("%w: items per producer must not be negative, got %d", ErrInvalidOptions, o.ItemsPerProducer)
	case o.ProduceRate < 0:
		return fmt.Errorf("%w: produce rate must not be negative, got %g", ErrInvalidOptions, o.ProduceRate)
	}
	return nil
}

// Stats summarizes a completed Run.
type Stats struct {
	RunID          string
	Produced       int64 // items accepted by the queue
	Consumed       int64 // items handed to a consumer
	ConsumerErrors int64
	Stopped        bool // production was cut short
	Duration       time.Duration
}

type run[T any] struct {
	q       Queue[T]
	opts    Options
	log     *zap.Logger
	produce Producer[T]
	consume Consumer[T]

	produced atomic.Int64
	consumed atomic.Int64
	failed   atomic.Int64
}

// Run starts opts.Producers producers and opts.Consumers consumers on q and
// blocks until every item accepted by q has been consumed.
//
// ctx is passed to the callbacks and bounds producer waits. Ending ctx stops
// production like a stop request; consumers still drain. The returned error
// joins every producer error.
func Run[T any](ctx context.Context, q Queue[T], opts Options, produce Producer[T], consume Consumer[T]) (Stats, error) {
	if q == nil || produce == nil || consume == nil {
		return Stats{}, fmt.Errorf("%w: queue, producer and consumer are required", ErrInvalidOptions)
	}
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return Stats{}, err
	}

	runID := uuid.NewString()
	r := &run[T]{
		q:       q,
		opts:    opts,
		log:     opts.Logger.With(zap.String("run_id", runID)),
		produce: produce,
		consume: consume,
	}

	r.log.Info("starting run",
		zap.Int("producers", opts.Producers),
		zap.Int("consumers", opts.Consumers),
		zap.Int("items_per_producer", opts.ItemsPerProducer),
		zap.Float64("produce_rate", opts.ProduceRate))
	start := time.Now()

	var consumers sync.WaitGroup
	for id := 0; id < opts.Consumers; id++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			r.consumeLoop(ctx, id)
		}()
	}

	var producers sync.WaitGroup
	errs := make([]error, opts.Producers)
	for id := 0; id < opts.Producers; id++ {
		producers.Add(1)
		go func() {
			defer producers.Done()
			errs[id] = r.produceLoop(ctx, id)
		}()
	}

	producers.Wait()
	r.log.Info("all producers finished, signaling consumers",
		zap.Int64("produced", r.produced.Load()))
	q.Finish()

	consumers.Wait()

	stats := Stats{
		RunID:          runID,
		Produced:       r.produced.Load(),
		Consumed:       r.consumed.Load(),
		ConsumerErrors: r.failed.Load(),
		Stopped:        opts.Stop.Requested() || ctx.Err() != nil,
		Duration:       time.Since(start),
	}
	r.log.Info("run complete",
		zap.Int64("produced", stats.Produced),
		zap.Int64("consumed", stats.Consumed),
		zap.Int64("consumer_errors", stats.ConsumerErrors),
		zap.Bool("stopped", stats.Stopped),
		zap.Duration("duration", stats.Duration))

	return stats, errors.Join(errs...)
}

func (r *run[T]) produceLoop(ctx context.Context, id int) error {
	log := r.log.With(zap.Int("producer", id))

	var limiter *rate.Limiter
	if r.opts.ProduceRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.opts.ProduceRate), r.opts.ProduceBurst)
	}

	n := 0
	for seq := 0; seq < r.opts.ItemsPerProducer; seq++ {
		if r.opts.Stop.Requested() || ctx.Err() != nil {
			log.Info("producer stopping early", zap.Int("items", n))
			return nil
		}
		if limiter != nil {
			// Wait only fails once ctx is done or its deadline is too close
			// for another token.
			if err := limiter.Wait(ctx); err != nil {
				log.Info("producer stopping early", zap.Int("items", n), zap.Error(err))
				return nil
			}
		}

		v, err := r.produce(ctx, id, seq)
		if err != nil {
			r.opts.Stop.Request()
			log.Error("produce failed", zap.Int("seq", seq), zap.Error(err))
			return fmt.Errorf("producer %d item %d: %w", id, seq, err)
		}

		start := time.Now()
		if err := r.q.PushContext(ctx, v); err != nil {
			// Canceled ctx, or a queue finished by someone other than Run.
			log.Info("producer stopping early", zap.Int("items", n), zap.Error(err))
			return nil
		}
		r.opts.Metrics.RecordPush(id, time.Since(start))
		r.produced.Add(1)
		n++

		log.Debug("produced", zap.Int("seq", seq), zap.Any("item", v))
	}

	log.Info("producer finished", zap.Int("items", n))
	return nil
}

func (r *run[T]) consumeLoop(ctx context.Context, id int) {
	log := r.log.With(zap.Int("consumer", id))

	n := 0
	for {
		start := time.Now()
		v, ok := r.q.Pop()
		if !ok {
			log.Info("consumer finished (no more items)", zap.Int("items", n))
			return
		}
		r.opts.Metrics.RecordPop(id, time.Since(start))
		r.consumed.Add(1)
		n++

		if r.opts.Sampler.Tick() {
			depth := r.q.Len()
			r.opts.Metrics.SetDepth(depth)
			log.Debug("queue depth", zap.Int("depth", depth))
		}

		if err := r.consume(ctx, id, v); err != nil {
			r.failed.Add(1)
			r.opts.Metrics.RecordConsumerError(id)
			log.Warn("consume failed", zap.Error(err))
			continue
		}
		log.Debug("consumed", zap.Any("item", v))
	}
}
