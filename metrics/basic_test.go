package metrics

import (
	"sync"
	"testing"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("items_produced")
	c2 := p.Counter("items_produced")
	if c1 != c2 {
		t.Fatalf("expected same counter instance for same name")
	}

	c1.Add(3)
	c2.Add(2)
	if got := p.CounterValue("items_produced"); got != 5 {
		t.Fatalf("counter value = %d; want 5", got)
	}

	if p.Counter("other") == c1 {
		t.Fatalf("expected different counter instance for different name")
	}
	if got := p.CounterValue("never_created"); got != 0 {
		t.Fatalf("missing counter value = %d; want 0", got)
	}
}

func TestBasicProvider_UpDownCounter_Moves(t *testing.T) {
	p := NewBasicProvider()

	u := p.UpDownCounter("queue_depth")
	u.Add(+3)
	u.Add(-1)
	u.Add(+10)
	if got := p.UpDownValue("queue_depth"); got != 12 {
		t.Fatalf("updown value = %d; want 12", got)
	}
}

func TestBasicProvider_Histogram_Aggregates(t *testing.T) {
	p := NewBasicProvider()

	h := p.Histogram("compute_duration")
	for _, v := range []float64{2.0, 0.5, 1.5} {
		h.Record(v)
	}

	s := p.HistogramSnapshot("compute_duration")
	if s.Count != 3 {
		t.Fatalf("count = %d; want 3", s.Count)
	}
	if s.Min != 0.5 || s.Max != 2.0 {
		t.Fatalf("min/max = %v/%v; want 0.5/2.0", s.Min, s.Max)
	}
	if s.Sum != 4.0 {
		t.Fatalf("sum = %v; want 4.0", s.Sum)
	}
	if got := s.Mean; got < 1.333 || got > 1.334 {
		t.Fatalf("mean = %v; want ~1.333", got)
	}
}

func TestBasicProvider_ConcurrentUse(t *testing.T) {
	p := NewBasicProvider()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Counter("shared").Add(1)
				p.UpDownCounter("depth").Add(1)
				p.UpDownCounter("depth").Add(-1)
				p.Histogram("dur").Record(1.0)
			}
		}()
	}
	wg.Wait()

	if got := p.CounterValue("shared"); got != 1600 {
		t.Fatalf("counter value = %d; want 1600", got)
	}
	if got := p.UpDownValue("depth"); got != 0 {
		t.Fatalf("updown value = %d; want 0", got)
	}
	if got := p.HistogramSnapshot("dur").Count; got != 1600 {
		t.Fatalf("histogram count = %d; want 1600", got)
	}
}
