package batch

import (
	"testing"

	"github.com/gs1/barcode-engine/pkg/encoder"
)

func TestWorkerPoolRunRecordsOutcomesForEveryJob(t *testing.T) {
	jobs := []Job{
		{Index: 0, Request: encoder.Request{Variant: encoder.VariantRSSExpanded, Payload: "0112345678901231"}},
		{Index: 1, Request: encoder.Request{Variant: encoder.Variant(99), Payload: "bogus"}},
	}
	wp := NewWorkerPool(2)
	wp.Run(jobs, false)

	if got := wp.Results.Len(); got != len(jobs) {
		t.Fatalf("Results.Len() = %d, want %d", got, len(jobs))
	}
	comp, fail := wp.Stats()
	if comp != int64(len(jobs)) {
		t.Errorf("completed = %d, want %d", comp, len(jobs))
	}
	if fail != 1 {
		t.Errorf("failed = %d, want 1 (the unknown-variant job)", fail)
	}

	outcomes := wp.Results.Outcomes()
	if outcomes[1].Err == "" {
		t.Error("job 1 (unknown variant) should have recorded an error")
	}
}

func TestNewWorkerPoolDefaultsWorkerCount(t *testing.T) {
	wp := NewWorkerPool(0)
	if wp.NumWorkers <= 0 {
		t.Errorf("NumWorkers = %d, want > 0", wp.NumWorkers)
	}
}
