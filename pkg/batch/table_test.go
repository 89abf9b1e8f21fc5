package batch

import "testing"

func TestTableAddAndOutcomesSortedByIndex(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Outcome{Index: 2, Payload: "b"})
	tbl.Add(Outcome{Index: 0, Payload: "a"})
	tbl.Add(Outcome{Index: 1, Payload: "c"})

	if got := tbl.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	out := tbl.Outcomes()
	for i, o := range out {
		if o.Index != i {
			t.Errorf("Outcomes()[%d].Index = %d, want %d", i, o.Index, i)
		}
	}
}

func TestTableOutcomesReturnsCopy(t *testing.T) {
	tbl := NewTable()
	tbl.Add(Outcome{Index: 0})
	out := tbl.Outcomes()
	out[0].Index = 99
	if tbl.Outcomes()[0].Index != 0 {
		t.Error("mutating the returned slice affected the table's internal state")
	}
}

func TestTableEmpty(t *testing.T) {
	tbl := NewTable()
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	if len(tbl.Outcomes()) != 0 {
		t.Error("Outcomes() should be empty")
	}
}
