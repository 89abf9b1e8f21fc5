// Package batch runs many independent encoder.Encode calls concurrently
// over a worker pool, adapted from the teacher's pkg/search.WorkerPool:
// each payload line is one task, results accumulate in a mutex-guarded
// table, and the run can be checkpointed and resumed the same way a
// superoptimizer search checkpoints completed targets.
package batch

import (
	"sort"
	"sync"

	"github.com/gs1/barcode-engine/pkg/encoder"
)

// Job is one requested encode, carrying the caller's own index so a
// resumed run can tell which input line an Outcome belongs to regardless
// of completion order.
type Job struct {
	Index   int
	Request encoder.Request
}

// Outcome is one completed encode: either a row count (success) or an
// error message (failure). Rows themselves aren't retained -- a batch
// run reports shape and pass/fail, not full symbol output, the same way
// the teacher's Rule table records byte/cycle deltas rather than full
// instruction dumps.
type Outcome struct {
	Index    int
	Payload  string
	Variant  string
	RowCount int
	Err      string
}

// Table accumulates Outcomes from concurrent workers.
type Table struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Add inserts one completed Outcome.
func (t *Table) Add(o Outcome) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.outcomes = append(t.outcomes, o)
}

// Outcomes returns a copy of all recorded outcomes, sorted by Index so a
// report reads in the same order the input file was given regardless of
// which worker finished which job first.
func (t *Table) Outcomes() []Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Outcome, len(t.outcomes))
	copy(out, t.outcomes)
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Len returns the number of recorded outcomes.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.outcomes)
}
