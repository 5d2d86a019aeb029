package metrics

// NoopProvider returns instruments that discard every measurement.
// It is the default provider.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(_ string) Counter             { return noopCounter{} }
func (NoopProvider) UpDownCounter(_ string) UpDownCounter { return noopUpDownCounter{} }
func (NoopProvider) Histogram(_ string) Histogram         { return noopHistogram{} }

type noopCounter struct{}

func (noopCounter) Add(_ int64) {}

type noopUpDownCounter struct{}

func (noopUpDownCounter) Add(_ int64) {}

type noopHistogram struct{}

func (noopHistogram) Record(_ float64) {}
