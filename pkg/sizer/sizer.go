// Package sizer picks the smallest symbol size class that fits a given
// number of compacted data bits, and answers "how many bits are left
// over" queries that the compaction automaton needs both mid-stream
// (deciding how to finish a NUM-mode digit pair) and at the very end
// (deciding how to pad the final codeword).
//
// The actual per-family size-class tables (how many rows/columns/data
// codewords/ECC codewords each class has) live next to the row-layout
// code that consumes them (pkg/ccab, pkg/ccc) since picking a size and
// laying out its rows are two views of the same table. This package
// only implements the generic "scan ascending capacities, return first
// fit" logic and the DataBar Expanded row-count formula, which needs no
// literal table at all.
package sizer

import "fmt"

// Entry describes one size class's bit capacity and the codeword counts
// that capacity decomposes into.
type Entry struct {
	Bits   int // total data-bit capacity of this class
	DataCw int // data codewords
	EccCw  int // error-correction codewords
}

// Pick scans table, which must be sorted ascending by Bits, and returns
// the smallest entry able to hold `needed` bits. It errors if no class
// in the table is large enough.
func Pick(table []Entry, needed int) (Entry, error) {
	for _, e := range table {
		if e.Bits >= needed {
			return e, nil
		}
	}
	var max int
	if len(table) > 0 {
		max = table[len(table)-1].Bits
	}
	return Entry{}, fmt.Errorf("sizer: payload needs %d bits, exceeds largest class (%d bits)", needed, max)
}

// Unused returns how many bits of an already-picked class remain after
// `used` bits have been written.
func Unused(e Entry, used int) int {
	return e.Bits - used
}

// RSSExpandedRows computes the number of 12-bit DataBar Expanded
// segment-rows needed to hold `bits` bits of compacted data.
//
// The three-row floor is applied first, then the result is bumped to
// the next even count if it would otherwise leave a single unpaired
// segment on the last row (stacked DataBar Expanded always lays out
// rows in finder-symmetric pairs).
func RSSExpandedRows(bits int) int {
	rows := (bits + 11) / 12
	if rows < 3 {
		rows = 3
	}
	if rows%2 == 1 {
		rows++
	}
	return rows
}
