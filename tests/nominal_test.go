package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/conveyor"
)

// TestReferenceScenario runs the full reference workload: keys 30..44,
// 8 consumers, naive Fibonacci. The computation is deliberately expensive
// (that is its job), so the full range is skipped in -short mode.
func TestReferenceScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("naive fibonacci over keys 30..44 takes seconds; skipped in -short mode")
	}

	p, err := conveyor.New(
		conveyor.Fibonacci,
		conveyor.WithConsumers(8),
		conveyor.WithKeyRange(30, 45),
		conveyor.WithSeed(123456),
		conveyor.WithValidator(conveyor.FibonacciChainValidator(30)),
	)
	require.NoError(t, err)

	results, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 15)

	require.Equal(t, 832040, results[0], "fib(30)")
	require.Equal(t, 1346269, results[1], "fib(31)")
	for i := 2; i < len(results); i++ {
		require.Equalf(t, results[i-1]+results[i-2], results[i], "recurrence at slot %d", i)
	}
}

func TestFibonacciChain_SmallRange(t *testing.T) {
	tests := []struct {
		name      string
		consumers uint
		start     int
		end       int
		expected  []int
	}{
		{
			name:      "single_consumer",
			consumers: 1,
			start:     1,
			end:       11,
			expected:  []int{1, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		},
		{
			name:      "more_consumers_than_items",
			consumers: 8,
			start:     1,
			end:       6,
			expected:  []int{1, 1, 2, 3, 5},
		},
		{
			name:      "single_item",
			consumers: 4,
			start:     10,
			end:       11,
			expected:  []int{55},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := conveyor.New(
				conveyor.Fibonacci,
				conveyor.WithConsumers(tc.consumers),
				conveyor.WithKeyRange(tc.start, tc.end),
				conveyor.WithValidator(conveyor.FibonacciChainValidator(tc.start)),
			)
			require.NoError(t, err)

			results, err := p.Run(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.expected, results)
		})
	}
}
