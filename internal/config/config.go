package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all run configuration.
type Config struct {
	Queue    QueueConfig
	Workload WorkloadConfig
	Logging  LogConfig
	Metrics  MetricsConfig
}

// QueueConfig holds queue sizing.
type QueueConfig struct {
	Capacity int `envconfig:"QUEUE_CAPACITY" default:"5"`
}

// WorkloadConfig describes the producers and consumers driving the queue.
type WorkloadConfig struct {
	Producers        int           `envconfig:"PRODUCERS" default:"3"`
	Consumers        int           `envconfig:"CONSUMERS" default:"2"`
	ItemsPerProducer int           `envconfig:"ITEMS_PER_PRODUCER" default:"5"`
	ProduceRate      float64       `envconfig:"PRODUCE_RATE" default:"18"` // items/sec per producer, 0 = unpaced
	ProduceBurst     int           `envconfig:"PRODUCE_BURST" default:"1"`
	ConsumeDelayMin  time.Duration `envconfig:"CONSUME_DELAY_MIN" default:"50ms"`
	ConsumeDelayMax  time.Duration `envconfig:"CONSUME_DELAY_MAX" default:"150ms"`
	SampleInterval   time.Duration `envconfig:"SAMPLE_INTERVAL" default:"100ms"` // 0 disables depth sampling
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds the Prometheus endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR" default:""`
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Queue: QueueConfig{
			Capacity: 5,
		},
		Workload: WorkloadConfig{
			Producers:        3,
			Consumers:        2,
			ItemsPerProducer: 5,
			ProduceRate:      18,
			ProduceBurst:     1,
			ConsumeDelayMin:  50 * time.Millisecond,
			ConsumeDelayMax:  150 * time.Millisecond,
			SampleInterval:   100 * time.Millisecond,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Queue.Capacity < 1 {
		errs = append(errs, fmt.Errorf("QUEUE_CAPACITY must be at least 1, got %d", c.Queue.Capacity))
	}

	w := c.Workload
	if w.Producers < 1 {
		errs = append(errs, fmt.Errorf("PRODUCERS must be at least 1, got %d", w.Producers))
	}
	if w.Consumers < 1 {
		errs = append(errs, fmt.Errorf("CONSUMERS must be at least 1, got %d", w.Consumers))
	}
	if w.ItemsPerProducer < 0 {
		errs = append(errs, fmt.Errorf("ITEMS_PER_PRODUCER must not be negative, got %d", w.ItemsPerProducer))
	}
	if w.ProduceRate < 0 {
		errs = append(errs, fmt.Errorf("PRODUCE_RATE must not be negative, got %g", w.ProduceRate))
	}
	if w.ProduceRate > 0 && w.ProduceBurst < 1 {
		errs = append(errs, fmt.Errorf("PRODUCE_BURST must be at least 1 when paced, got %d", w.ProduceBurst))
	}
	if w.ConsumeDelayMin < 0 || w.ConsumeDelayMax < w.ConsumeDelayMin {
		errs = append(errs, fmt.Errorf("consume delay range [%v, %v] is invalid", w.ConsumeDelayMin, w.ConsumeDelayMax))
	}
	if w.SampleInterval < 0 {
		errs = append(errs, fmt.Errorf("SAMPLE_INTERVAL must not be negative, got %v", w.SampleInterval))
	}

	return errors.Join(errs...)
}
