package driver

import "testing"

func TestRowModuleWidth(t *testing.T) {
	r := Row{Widths: []int{1, 2, 3}, LeftPad: 4, RightPad: 5}
	if got := r.ModuleWidth(); got != 15 {
		t.Errorf("ModuleWidth() = %d, want 15", got)
	}
}

type recordingSink struct {
	rows      []Row
	finalized bool
}

func (s *recordingSink) AddRow(r Row) error {
	s.rows = append(s.rows, r)
	return nil
}

func (s *recordingSink) Finalize() error {
	s.finalized = true
	return nil
}

func TestRunFeedsAllRowsAndFinalizes(t *testing.T) {
	rows := []Row{{Widths: []int{1, 1}}, {Widths: []int{2, 2}}}
	sink := &recordingSink{}
	if err := Run(sink, rows); err != nil {
		t.Fatal(err)
	}
	if len(sink.rows) != 2 {
		t.Fatalf("AddRow called %d times, want 2", len(sink.rows))
	}
	if !sink.finalized {
		t.Error("Finalize was not called")
	}
}

type failingSink struct{}

func (failingSink) AddRow(Row) error { return errRowFailed }
func (failingSink) Finalize() error  { return nil }

var errRowFailed = &rowError{}

type rowError struct{}

func (*rowError) Error() string { return "row failed" }

func TestRunStopsAtFirstError(t *testing.T) {
	if err := Run(failingSink{}, []Row{{}}); err == nil {
		t.Fatal("expected an error")
	}
}
