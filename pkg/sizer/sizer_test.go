package sizer

import "testing"

var testTable = []Entry{
	{Bits: 20, DataCw: 2, EccCw: 3},
	{Bits: 40, DataCw: 4, EccCw: 4},
	{Bits: 80, DataCw: 8, EccCw: 5},
}

func TestPickExactFit(t *testing.T) {
	e, err := Pick(testTable, 20)
	if err != nil {
		t.Fatal(err)
	}
	if e.Bits != 20 {
		t.Errorf("Pick(20) = %+v, want Bits=20", e)
	}
}

func TestPickRoundsUp(t *testing.T) {
	e, err := Pick(testTable, 21)
	if err != nil {
		t.Fatal(err)
	}
	if e.Bits != 40 {
		t.Errorf("Pick(21) = %+v, want Bits=40", e)
	}
}

func TestPickOverflow(t *testing.T) {
	if _, err := Pick(testTable, 81); err == nil {
		t.Error("Pick(81): expected error, got nil")
	}
}

func TestUnused(t *testing.T) {
	if u := Unused(Entry{Bits: 40}, 33); u != 7 {
		t.Errorf("Unused = %d, want 7", u)
	}
}

func TestRSSExpandedRowsFloor(t *testing.T) {
	if r := RSSExpandedRows(1); r != 4 {
		t.Errorf("RSSExpandedRows(1) = %d, want 4 (floor 3, bumped even)", r)
	}
	if r := RSSExpandedRows(12); r != 4 {
		t.Errorf("RSSExpandedRows(12) = %d, want 4", r)
	}
}

func TestRSSExpandedRowsEvenBump(t *testing.T) {
	// 25 bits needs ceil(25/12)=3 rows; floor leaves it at 3 (already
	// >= 3) but 3 is odd so it bumps to 4.
	if r := RSSExpandedRows(25); r != 4 {
		t.Errorf("RSSExpandedRows(25) = %d, want 4", r)
	}
}

func TestRSSExpandedRowsNoFloorNeeded(t *testing.T) {
	// ceil(60/12)=5, already >=3, odd -> bumps to 6.
	if r := RSSExpandedRows(60); r != 6 {
		t.Errorf("RSSExpandedRows(60) = %d, want 6", r)
	}
}
