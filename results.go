package conveyor

import (
	"fmt"

	"github.com/ygrebnov/errorc"
)

// Results is the fixed-size, position-indexed output buffer of a pipeline run.
// Slots are write-once and carry no locking: positions form a permutation, so
// no two in-flight items ever target the same slot, and the orchestrator reads
// only after the join barrier that orders all consumer writes before it.
type Results[R any] struct {
	values []R
	done   []bool
}

// NewResults constructs a store with n empty slots.
func NewResults[R any](n int) *Results[R] {
	return &Results[R]{
		values: make([]R, n),
		done:   make([]bool, n),
	}
}

// Set writes the value for the given position. A write outside [0, Len) or a
// second write to the same slot is a logic bug, not a recoverable runtime
// condition, and panics.
func (r *Results[R]) Set(position int, v R) {
	if position < 0 || position >= len(r.values) {
		panic(fmt.Sprintf("%s: result position %d out of range [0, %d)",
			Namespace, position, len(r.values)))
	}
	if r.done[position] {
		panic(fmt.Sprintf("%s: result slot %d written twice", Namespace, position))
	}
	r.values[position] = v
	r.done[position] = true
}

// Get returns the value at the given position and whether it has been written.
func (r *Results[R]) Get(position int) (R, bool) {
	return r.values[position], r.done[position]
}

// Len returns the number of slots.
func (r *Results[R]) Len() int { return len(r.values) }

// Missing returns the positions of slots that were never written, in order.
func (r *Results[R]) Missing() []int {
	var missing []int
	for i, ok := range r.done {
		if !ok {
			missing = append(missing, i)
		}
	}
	return missing
}

// Values returns the assembled slot values, or ErrIncompleteResults naming the
// unwritten positions. Call only after all writers have been joined.
func (r *Results[R]) Values() ([]R, error) {
	if missing := r.Missing(); len(missing) > 0 {
		return nil, errorc.With(ErrIncompleteResults,
			errorc.String("positions", fmt.Sprint(missing)))
	}
	return r.values, nil
}
