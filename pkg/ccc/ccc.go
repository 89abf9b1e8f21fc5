// Package ccc implements CC-C row synthesis: the column/row/ECC-level
// selection algorithm unique to CC-C (it has no fixed size-class table
// the way CC-A/CC-B do — it searches for the narrowest symbol that
// fits the payload within PDF417's aspect-ratio constraint) and the
// per-row layout, including the row-indicator codewords that let a
// decoder recover row number and symbol shape without scanning every
// row first.
package ccc

import (
	"fmt"

	"github.com/gs1/barcode-engine/pkg/ccab"
)

// LeftPattern and RightPattern are CC-C's fixed start/stop element
// patterns, identical on every row regardless of size or content.
var (
	LeftPattern  = [9]int{2, 8, 1, 1, 1, 1, 1, 1, 3}
	RightPattern = [10]int{7, 1, 1, 3, 1, 1, 1, 2, 1, 2}
)

// eccMaxCW are the data-codeword ceilings for each ECC level (the
// level step doubles the ECC codeword budget, the standard PDF417
// error-correction level progression CC-C reuses).
var eccMaxCW = []int{40, 160, 320, 863}

// ErrLevel derives the PDF417-style error-correction level from an ECC
// codeword count: level 2 is the floor, each doubling of eccCw beyond
// 16 codewords steps the level up by one.
func ErrLevel(eccCw int) int {
	i := eccCw >> 4
	lvl := 2
	for i > 0 {
		i >>= 1
		lvl++
	}
	return lvl
}

// eccForLevel returns the ECC codeword count for a given level: 2^(level+1).
func eccForLevel(lvl int) int {
	return 1 << uint(lvl+1)
}

// Shape is one selected CC-C column/row/ECC combination.
type Shape struct {
	Cols, Rows, EccCw int
}

// Select searches ascending column counts for the narrowest CC-C shape
// that holds dataCw data codewords without breaching PDF417's
// width-to-height aspect constraint (columns may not outgrow roughly
// 4x the row count).
func Select(dataCw int) (Shape, error) {
	lvl := 0
	for lvl < len(eccMaxCW)-1 && dataCw > eccMaxCW[lvl] {
		lvl++
	}
	eccCw := eccForLevel(lvl + 2)
	for cols := 1; cols <= 30; cols++ {
		rows := (dataCw + eccCw + cols - 1) / cols
		if rows < 3 {
			rows = 3
		}
		if rows > 90 {
			continue
		}
		if cols+4 <= rows*4 && rows*cols >= dataCw+eccCw {
			return Shape{Cols: cols, Rows: rows, EccCw: eccCw}, nil
		}
	}
	return Shape{}, fmt.Errorf("ccc: no column/row combination fits %d data codewords at ECC level %d", dataCw, lvl+2)
}

// leftRowBase computes the three cluster-specific row-indicator bases
// a row's left-hand indicator codeword is offset from, derived from
// the symbol's row count, ECC level, and column count.
func leftRowBase(rows, errLvl, cols int) [3]int {
	base := ((rows-1)/3)*30 + errLvl*3
	return [3]int{base, base + cols - 1, base + 2*(cols-1)}
}

// Row is one synthesized CC-C element-width row.
type Row struct {
	Widths []int
}

// Layout lays out all rows of a CC-C symbol given its selected shape
// and ordered codewords (data followed by ECC). Cluster rotation
// advances 0,1,2 every row; each row's left-hand element is a
// row-indicator codeword encoding the row number, cluster, and column
// count so a decoder can recover symbol shape from any single row.
func Layout(shape Shape, codewords []int) ([]Row, error) {
	need := shape.Rows * shape.Cols
	if len(codewords) != need {
		return nil, fmt.Errorf("ccc: Layout: have %d codewords, need %d for a %dx%d symbol", len(codewords), need, shape.Rows, shape.Cols)
	}
	errLvl := ErrLevel(shape.EccCw)
	rows := make([]Row, shape.Rows)
	for r := 0; r < shape.Rows; r++ {
		cluster := r % ccab.NumClusters
		base := leftRowBase(shape.Rows, errLvl, shape.Cols)
		rowFactor := r / ccab.NumClusters
		indicatorVal := (rowFactor + base[cluster]) % ccab.CodewordSpace
		indicatorPat, err := ccab.BarPattern(cluster, indicatorVal)
		if err != nil {
			return nil, err
		}
		var widths []int
		widths = append(widths, LeftPattern[:]...)
		widths = append(widths, indicatorPat[:]...)
		for c := 0; c < shape.Cols; c++ {
			cw := codewords[r*shape.Cols+c]
			pat, err := ccab.BarPattern(cluster, cw)
			if err != nil {
				return nil, err
			}
			widths = append(widths, pat[:]...)
		}
		widths = append(widths, RightPattern[:]...)
		rows[r] = Row{Widths: widths}
	}
	return rows, nil
}
