package conveyor

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/conveyor/metrics"
)

// config holds Pipeline configuration.
type config struct {
	// Consumers defines the number of consumer goroutines draining the queue.
	// Default: 8
	Consumers uint

	// KeyStart and KeyEnd define the half-open key range [KeyStart, KeyEnd).
	// The range length is the item count; KeyEnd == KeyStart means zero items.
	// Default: 30 / 45 (15 items)
	KeyStart int
	KeyEnd   int

	// MaxSleep bounds the optional random delay the producer takes before a
	// push. Zero disables jitter entirely.
	// Default: 0 (no jitter)
	MaxSleep time.Duration

	// Seed drives the permutation and the producer jitter deterministically.
	// Default: 123456
	Seed int64

	// Logger receives structured pipeline events. Concurrent calls never
	// interleave as long as the configured writer serializes (zerolog does).
	// Default: zerolog.Nop()
	Logger zerolog.Logger

	// Metrics provides the instruments the pipeline records into.
	// Default: metrics.NewNoopProvider()
	Metrics metrics.Provider

	// Validator holds an optional post-join consistency check (stored as any
	// due to non-generic config; configured via WithValidator).
	Validator any
}

// defaultConfig centralizes default values for config.
// The key range and seed reproduce the reference Fibonacci scenario.
func defaultConfig() config {
	return config{
		Consumers: 8,
		KeyStart:  30,
		KeyEnd:    45,
		MaxSleep:  0, // jitter off; it is cosmetic, never a correctness lever
		Seed:      123456,
		Logger:    zerolog.Nop(),
		Metrics:   metrics.NewNoopProvider(),
		Validator: nil,
	}
}

// validateConfig performs lightweight invariants checks on the merged config.
func validateConfig(cfg *config) error {
	if cfg.Consumers == 0 {
		return errorc.With(ErrInvalidConfig, errorc.String("", "at least one consumer is required"))
	}
	if cfg.KeyEnd < cfg.KeyStart {
		return errorc.With(ErrInvalidConfig,
			errorc.String("keyStart", strconv.Itoa(cfg.KeyStart)),
			errorc.String("keyEnd", strconv.Itoa(cfg.KeyEnd)),
		)
	}
	return nil
}

// Option configures a Pipeline. Use New(compute, opts...) to construct one.
// Options return an error on invalid input instead of panicking.
type Option func(*config) error

// WithConsumers sets the number of consumer goroutines (must be > 0).
func WithConsumers(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithConsumers requires n > 0"))
		}
		cfg.Consumers = n
		return nil
	}
}

// WithKeyRange sets the half-open key range [start, end). The range length is
// the number of items produced; start == end produces nothing and the
// consumers observe closure on their first pop.
func WithKeyRange(start, end int) Option {
	return func(cfg *config) error {
		if end < start {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithKeyRange requires end >= start"))
		}
		cfg.KeyStart = start
		cfg.KeyEnd = end
		return nil
	}
}

// WithMaxSleep bounds the producer's random pre-push delay. Zero disables
// jitter (the default); the delay models variable arrival timing only and has
// no effect on correctness.
func WithMaxSleep(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxSleep requires d >= 0"))
		}
		cfg.MaxSleep = d
		return nil
	}
}

// WithSeed fixes the seed for the permutation and the producer jitter,
// making a run fully reproducible.
func WithSeed(seed int64) Option {
	return func(cfg *config) error { cfg.Seed = seed; return nil }
}

// WithLogger sets the logger pipeline events are emitted through.
// Pass a logger whose writer serializes concurrent writes (zerolog's standard
// writers do; wrap exotic ones in zerolog.SyncWriter).
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) error { cfg.Logger = logger; return nil }
}

// WithMetrics sets the metrics provider the pipeline records into.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithValidator sets the consistency check applied to the assembled results
// after all goroutines are joined. R must match the pipeline's result type;
// a mismatch is reported by New as ErrInvalidConfig.
func WithValidator[R any](v Validator[R]) Option {
	return func(cfg *config) error { cfg.Validator = v; return nil }
}
