package conveyor

import (
	"context"
	"math/rand"
	"sync"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/conveyor/metrics"
)

// Pipeline orchestrates one bounded production/consumption cycle: it builds
// the permutation, queue, and result store, spawns the producer and the
// consumer pool, joins them, and validates the assembled results.
// A Pipeline is reusable: each Run call executes an independent cycle with its
// own queue and store, so multiple pipelines (or runs) never share state.
type Pipeline[R any] struct {
	config  *config
	compute ComputeFunc[R]
	// validate is the typed view of config.Validator; nil means no check.
	validate Validator[R]
	inst     instruments
}

// instruments bundles the pipeline's metric handles, resolved once in New.
type instruments struct {
	produced      metrics.Counter
	consumed      metrics.Counter
	computeErrors metrics.Counter
	duration      metrics.Histogram
	depth         metrics.UpDownCounter
}

func newInstruments(p metrics.Provider) instruments {
	return instruments{
		produced:      p.Counter("conveyor_items_produced_total"),
		consumed:      p.Counter("conveyor_items_consumed_total"),
		computeErrors: p.Counter("conveyor_compute_errors_total"),
		duration:      p.Histogram("conveyor_compute_duration_seconds"),
		depth:         p.UpDownCounter("conveyor_queue_depth"),
	}
}

// New creates a Pipeline computing results of type R via the given function,
// configured by functional options on top of the defaults.
func New[R any](compute ComputeFunc[R], opts ...Option) (*Pipeline[R], error) {
	if compute == nil {
		return nil, errorc.With(ErrInvalidConfig, errorc.String("", "a compute function is required"))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	p := &Pipeline[R]{
		config:  &cfg,
		compute: compute,
		inst:    newInstruments(cfg.Metrics),
	}

	if cfg.Validator != nil {
		v, ok := cfg.Validator.(Validator[R])
		if !ok {
			return nil, errorc.With(ErrInvalidConfig,
				errorc.String("", "WithValidator type does not match the pipeline result type"))
		}
		p.validate = v
	}

	return p, nil
}

// Run executes one full cycle and returns the position-indexed results.
//
// Concurrency shape:
//   - one producer goroutine pushing the permuted key sequence, then closing
//     the queue (on every exit path);
//   - a fixed pool of consumer goroutines blocking in Queue.Pop until the
//     queue is closed and drained;
//   - this goroutine waiting at the join barrier, then validating.
//
// The join barrier is the only synchronization edge between consumer slot
// writes and the read below; no per-slot locking exists or is needed.
//
// On cancellation the producer stops early but still closes the queue, the
// consumers drain whatever was pushed, and Run reports the context error.
func (p *Pipeline[R]) Run(ctx context.Context) ([]R, error) {
	cfg := p.config
	n := cfg.KeyEnd - cfg.KeyStart

	// One seeded source drives both the permutation and the producer jitter.
	// It is used here first, then handed to the producer goroutine; the two
	// never touch it concurrently.
	rng := rand.New(rand.NewSource(cfg.Seed))
	perm := rng.Perm(n)

	queue := NewQueue[Item]()
	results := NewResults[R](n)

	cfg.Logger.Debug().
		Int("items", n).
		Uint("consumers", cfg.Consumers).
		Msg("starting pipeline run")

	var consumersWG sync.WaitGroup
	for i := 0; i < int(cfg.Consumers); i++ {
		log := cfg.Logger.With().Str("component", "consumer").Int("consumer", i).Logger()
		c := newConsumer(i, queue, results, p.compute,
			log, p.inst.consumed, p.inst.computeErrors, p.inst.duration, p.inst.depth)
		consumersWG.Add(1)
		go func() {
			defer consumersWG.Done()
			c.run()
		}()
	}

	prodLog := cfg.Logger.With().Str("component", "producer").Logger()
	prod := newProducer(queue, perm, cfg.KeyStart, cfg.MaxSleep, rng,
		prodLog, p.inst.produced, p.inst.depth)
	prodErr := make(chan error, 1)
	go func() {
		prodErr <- prod.run(ctx)
	}()

	// Join barrier. The producer's deferred Close guarantees the consumers
	// unblock, so waiting on them first cannot hang.
	consumersWG.Wait()
	if err := <-prodErr; err != nil {
		return nil, err
	}

	values, err := results.Values()
	if err != nil {
		return nil, err
	}
	if p.validate != nil {
		if err := p.validate(values); err != nil {
			return nil, err
		}
	}

	cfg.Logger.Debug().Int("items", n).Msg("pipeline run complete")
	return values, nil
}
