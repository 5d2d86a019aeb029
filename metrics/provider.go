// Package metrics defines the small instrument surface the pipeline records
// into, with an in-memory implementation for tests and a no-op default.
package metrics

// Provider constructs instruments by name. Requesting the same name twice
// returns the same instrument. Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string) Counter
	UpDownCounter(name string) UpDownCounter
	Histogram(name string) Histogram
}

// Counter records monotonic counts.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move both ways (e.g., current queue depth).
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements
// (e.g., durations in seconds).
type Histogram interface {
	Record(v float64)
}
