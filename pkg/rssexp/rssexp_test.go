package rssexp

import "testing"

func TestCombinsBasic(t *testing.T) {
	tests := []struct{ n, r, want int }{
		{5, 0, 1}, {5, 5, 1}, {5, 2, 10}, {10, 3, 120}, {0, 0, 1},
	}
	for _, tc := range tests {
		if got := Combins(tc.n, tc.r); got != tc.want {
			t.Errorf("Combins(%d,%d) = %d, want %d", tc.n, tc.r, got, tc.want)
		}
	}
}

func TestCombinsOutOfRange(t *testing.T) {
	if got := Combins(3, 5); got != 0 {
		t.Errorf("Combins(3,5) = %d, want 0", got)
	}
	if got := Combins(3, -1); got != 0 {
		t.Errorf("Combins(3,-1) = %d, want 0", got)
	}
}

func TestWidthsSumsCorrectly(t *testing.T) {
	elements, n := 4, 8
	total := Combins(n+elements-1, elements-1)
	for val := 0; val < total; val++ {
		w := Widths(val, n, elements)
		sum := 0
		for _, x := range w {
			sum += x
			if x < 1 {
				t.Fatalf("Widths(%d,%d,%d)[%v]: width < 1", val, n, elements, w)
			}
		}
		if sum != n+elements {
			t.Fatalf("Widths(%d,%d,%d) = %v, sum %d, want %d", val, n, elements, w, sum, n+elements)
		}
	}
}

func TestWidthsDistinctForDistinctVal(t *testing.T) {
	seen := map[[4]int]bool{}
	elements, n := 4, 8
	total := Combins(n+elements-1, elements-1)
	for val := 0; val < total; val++ {
		w := Widths(val, n, elements)
		key := [4]int{w[0], w[1], w[2], w[3]}
		if seen[key] {
			t.Fatalf("Widths(%d,...) collided with a previous value: %v", val, key)
		}
		seen[key] = true
	}
}

func TestSymCharWidthsTotal(t *testing.T) {
	for _, v := range []int{0, 1, 4095, 2048} {
		w := SymCharWidths(v)
		sum := 0
		for _, x := range w {
			sum += x
		}
		if sum != 17 {
			t.Errorf("SymCharWidths(%d) sums to %d, want 17", v, sum)
		}
	}
}

func TestFinderWidthsRange(t *testing.T) {
	if _, err := FinderWidths(0); err == nil {
		t.Error("FinderWidths(0): expected error")
	}
	if _, err := FinderWidths(7); err == nil {
		t.Error("FinderWidths(7): expected error")
	}
	for f := 1; f <= 6; f++ {
		if _, err := FinderWidths(f); err != nil {
			t.Errorf("FinderWidths(%d): unexpected error %v", f, err)
		}
	}
}

func TestBuildRowGuards(t *testing.T) {
	row, err := BuildRow([]Segment{{Left: 10, Right: 20, Finder: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 1 || row[len(row)-1] != 1 {
		t.Errorf("BuildRow guards = %d,%d, want 1,1", row[0], row[len(row)-1])
	}
	if len(row) != 1+8+3+8+1 {
		t.Errorf("len(row) = %d, want %d", len(row), 1+8+3+8+1)
	}
}

func TestParityDeterministic(t *testing.T) {
	a := Parity([]int{1, 2, 3, 4})
	b := Parity([]int{1, 2, 3, 4})
	if a != b {
		t.Errorf("Parity not deterministic: %d vs %d", a, b)
	}
	if a < 0 || a >= 211 {
		t.Errorf("Parity = %d, out of [0,211)", a)
	}
}

func TestSeparatorWidth(t *testing.T) {
	s := Separator(10)
	if len(s) != 10 {
		t.Fatalf("len(Separator(10)) = %d, want 10", len(s))
	}
	for _, w := range s {
		if w != 1 {
			t.Errorf("Separator element width = %d, want 1", w)
		}
	}
}
