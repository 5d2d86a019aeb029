package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/conveyor"
	"github.com/ygrebnov/conveyor/metrics"
)

func TestMetrics_NominalRun(t *testing.T) {
	provider := metrics.NewBasicProvider()
	identity := func(key int) (int, error) { return key, nil }

	p, err := conveyor.New(identity,
		conveyor.WithConsumers(4),
		conveyor.WithKeyRange(0, 25),
		conveyor.WithMetrics(provider),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 25, provider.CounterValue("conveyor_items_produced_total"))
	require.EqualValues(t, 25, provider.CounterValue("conveyor_items_consumed_total"))
	require.EqualValues(t, 0, provider.CounterValue("conveyor_compute_errors_total"))
	require.EqualValues(t, 0, provider.UpDownValue("conveyor_queue_depth"),
		"queue depth must return to zero after a drained run")
	require.EqualValues(t, 25, provider.HistogramSnapshot("conveyor_compute_duration_seconds").Count)
}

func TestMetrics_ComputeErrorsCounted(t *testing.T) {
	provider := metrics.NewBasicProvider()
	failEven := func(key int) (int, error) {
		if key%2 == 0 {
			return 0, errors.New("even keys rejected")
		}
		return key, nil
	}

	p, err := conveyor.New(failEven,
		conveyor.WithConsumers(2),
		conveyor.WithKeyRange(0, 10),
		conveyor.WithMetrics(provider),
	)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	require.ErrorIs(t, err, conveyor.ErrIncompleteResults)

	require.EqualValues(t, 5, provider.CounterValue("conveyor_compute_errors_total"))
	require.EqualValues(t, 5, provider.CounterValue("conveyor_items_consumed_total"))
	require.EqualValues(t, 10, provider.CounterValue("conveyor_items_produced_total"))
	require.EqualValues(t, 10, provider.HistogramSnapshot("conveyor_compute_duration_seconds").Count,
		"failed computations are still measured")
}
