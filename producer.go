package conveyor

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/ygrebnov/conveyor/metrics"
)

// sleepPart controls how often jitter applies: with MaxSleep enabled, three
// pushes out of sleepPart are preceded by a random delay.
const sleepPart = 4

// producer pushes the permuted item sequence into the queue and closes it.
// It owns queue closure: Close is deferred, so the liveness precondition
// (consumers can always drain and exit) holds on every path, including
// cancellation and push errors. Exactly one producer per queue.
type producer struct {
	queue    *Queue[Item]
	perm     []int
	keyStart int
	maxSleep time.Duration
	rng      *rand.Rand

	log      zerolog.Logger
	produced metrics.Counter
	depth    metrics.UpDownCounter
}

func newProducer(
	queue *Queue[Item],
	perm []int,
	keyStart int,
	maxSleep time.Duration,
	rng *rand.Rand,
	log zerolog.Logger,
	produced metrics.Counter,
	depth metrics.UpDownCounter,
) *producer {
	return &producer{
		queue:    queue,
		perm:     perm,
		keyStart: keyStart,
		maxSleep: maxSleep,
		rng:      rng,
		log:      log,
		produced: produced,
		depth:    depth,
	}
}

// run pushes one item per permutation element, in permutation order, then
// closes the queue. Cancellation stops production early; the remaining items
// are never pushed, but the queue still closes so consumers drain and exit.
func (p *producer) run(ctx context.Context) error {
	defer p.queue.Close()

	p.log.Debug().Msg("starting")

	for _, position := range p.perm {
		if err := p.sleep(ctx); err != nil {
			p.log.Debug().Err(err).Msg("production cancelled")
			return err
		}

		item := Item{Position: position, Key: p.keyStart + position}
		if err := p.queue.Push(item); err != nil {
			return err
		}
		p.produced.Add(1)
		p.depth.Add(1)
		p.log.Debug().Int("position", item.Position).Int("key", item.Key).Msg("produced")
	}

	p.log.Debug().Msg("production finished, signalling end")
	return nil
}

// sleep takes the optional pre-push jitter delay: a uniform duration in
// [1ms, maxSleep], applied to three pushes out of sleepPart. It returns early
// with ctx.Err() if the context is cancelled first.
func (p *producer) sleep(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.maxSleep <= 0 || p.rng.Intn(sleepPart) == 0 {
		return nil
	}

	millis := int64(p.maxSleep / time.Millisecond)
	if millis < 1 {
		millis = 1
	}
	d := time.Duration(1+p.rng.Int63n(millis)) * time.Millisecond

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
