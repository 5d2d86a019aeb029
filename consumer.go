package conveyor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ygrebnov/conveyor/metrics"
)

// consumer drains the queue until it is closed and empty, computing one result
// per item into the slot the item names. Consumers never observe a context;
// the closed queue is their only termination signal.
type consumer[R any] struct {
	id      int
	queue   *Queue[Item]
	results *Results[R]
	compute ComputeFunc[R]

	log           zerolog.Logger
	consumed      metrics.Counter
	computeErrors metrics.Counter
	duration      metrics.Histogram
	depth         metrics.UpDownCounter
}

func newConsumer[R any](
	id int,
	queue *Queue[Item],
	results *Results[R],
	compute ComputeFunc[R],
	log zerolog.Logger,
	consumed metrics.Counter,
	computeErrors metrics.Counter,
	duration metrics.Histogram,
	depth metrics.UpDownCounter,
) *consumer[R] {
	return &consumer[R]{
		id:            id,
		queue:         queue,
		results:       results,
		compute:       compute,
		log:           log,
		consumed:      consumed,
		computeErrors: computeErrors,
		duration:      duration,
		depth:         depth,
	}
}

// run is the consumer loop. A compute failure is logged, counted, and skipped;
// the empty slot surfaces as ErrIncompleteResults after joins. A failing
// compute never takes the rest of the pool down with it.
func (c *consumer[R]) run() {
	c.log.Debug().Msg("starting")

	for {
		item, ok := c.queue.Pop()
		if !ok {
			break
		}
		c.depth.Add(-1)
		c.log.Debug().Int("key", item.Key).Msg("acquired item")

		started := time.Now()
		v, err := c.compute(item.Key)
		c.duration.Record(time.Since(started).Seconds())

		if err != nil {
			c.computeErrors.Add(1)
			c.log.Error().
				Err(err).
				Int("position", item.Position).
				Int("key", item.Key).
				Msg("compute failed, skipping item")
			continue
		}

		c.results.Set(item.Position, v)
		c.consumed.Add(1)
		c.log.Debug().Int("key", item.Key).Msg("computed")
	}

	c.log.Debug().Msg("ending")
}
