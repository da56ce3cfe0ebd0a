package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boundedq"

// waitBuckets covers an uncontended lock (~µs) up to a producer parked on a
// full queue for seconds.
var waitBuckets = []float64{.00001, .0001, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// Metrics holds the collectors for one registry.
type Metrics struct {
	Pushed         *prometheus.CounterVec
	Popped         *prometheus.CounterVec
	ConsumerErrors *prometheus.CounterVec
	PushWait       prometheus.Histogram
	PopWait        prometheus.Histogram
	Depth          prometheus.Gauge
	Capacity       prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// Registering twice on the same registry panics, as with promauto.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Pushed: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_pushed_total",
				Help:      "Total number of items accepted by the queue",
			},
			[]string{"producer"},
		),
		Popped: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_popped_total",
				Help:      "Total number of items handed to consumers",
			},
			[]string{"consumer"},
		),
		ConsumerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "consumer_errors_total",
				Help:      "Total number of items a consumer failed to process",
			},
			[]string{"consumer"},
		),
		PushWait: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "push_wait_seconds",
				Help:      "Time producers spent in push, including backpressure",
				Buckets:   waitBuckets,
			},
		),
		PopWait: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pop_wait_seconds",
				Help:      "Time consumers spent in pop waiting for data",
				Buckets:   waitBuckets,
			},
		),
		Depth: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "depth",
				Help:      "Last sampled number of buffered items",
			},
		),
		Capacity: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "capacity",
				Help:      "Configured queue capacity",
			},
		),
	}
}

// NewUnregistered creates collectors on a private registry. Used when the
// caller does not expose metrics.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}

// RecordPush records an accepted item and how long the push took.
func (m *Metrics) RecordPush(producer int, wait time.Duration) {
	m.Pushed.WithLabelValues(strconv.Itoa(producer)).Inc()
	m.PushWait.Observe(wait.Seconds())
}

// RecordPop records a popped item and how long the pop took.
func (m *Metrics) RecordPop(consumer int, wait time.Duration) {
	m.Popped.WithLabelValues(strconv.Itoa(consumer)).Inc()
	m.PopWait.Observe(wait.Seconds())
}

// RecordConsumerError counts a failed consumer callback.
func (m *Metrics) RecordConsumerError(consumer int) {
	m.ConsumerErrors.WithLabelValues(strconv.Itoa(consumer)).Inc()
}

// SetDepth stores a sampled queue length.
func (m *Metrics) SetDepth(n int) {
	m.Depth.Set(float64(n))
}

// SetCapacity stores the configured capacity.
func (m *Metrics) SetCapacity(n int) {
	m.Capacity.Set(float64(n))
}
