// Command conveyor runs the demo pipeline: a producer pushing a randomly
// permuted key range through a shared queue into a pool of consumers computing
// naive Fibonacci numbers, with the chain validation applied after joins.
//
// Usage:
//
//	conveyor [-consumers N] [-start K] [-end K] [-max-sleep D] [-seed S] [-log-level L]
//
// The exit status is 0 when every slot was filled and the validation passed,
// 1 otherwise.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ygrebnov/conveyor"
)

func main() {
	if err := run(os.Args[1:], os.Stderr, os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, logOut, out io.Writer) error {
	fs := flag.NewFlagSet("conveyor", flag.ContinueOnError)
	fs.SetOutput(logOut)
	consumers := fs.Uint("consumers", 8, "number of consumer goroutines")
	start := fs.Int("start", 30, "first key of the half-open key range")
	end := fs.Int("end", 45, "one past the last key of the range")
	maxSleep := fs.Duration("max-sleep", 10*time.Millisecond, "upper bound on producer jitter (0 disables it)")
	seed := fs.Int64("seed", 123456, "seed for the permutation and the jitter")
	logLevel := fs.String("log-level", "info", "log level: trace, debug, info, warn, error, or disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return err
	}

	// ConsoleWriter alone is not safe for concurrent use; SyncWriter keeps
	// events from different goroutines from interleaving.
	writer := zerolog.SyncWriter(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.TimeOnly})
	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	p, err := conveyor.New(
		conveyor.Fibonacci,
		conveyor.WithConsumers(*consumers),
		conveyor.WithKeyRange(*start, *end),
		conveyor.WithMaxSleep(*maxSleep),
		conveyor.WithSeed(*seed),
		conveyor.WithLogger(logger),
		conveyor.WithValidator(conveyor.FibonacciChainValidator(*start)),
	)
	if err != nil {
		return err
	}

	logger.Info().Int("start", *start).Int("end", *end).Msg("starting pipeline")

	results, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	for i, v := range results {
		fmt.Fprintf(out, "fib(%d) = %d\n", *start+i, v)
	}
	logger.Info().Msg("results OK")
	return nil
}
