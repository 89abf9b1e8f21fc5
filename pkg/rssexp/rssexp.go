// Package rssexp implements DataBar Expanded (RSS Expanded) row layout:
// the combinatorial element-width decomposition shared with every
// composite symbol's bar-pattern table, the finder character selection
// and reversal rules, and the running mod-211 parity the encoder uses to
// compute the check character.
//
// The combinatorial decomposition (Combins/Widths) is also the basis
// pkg/ccab and pkg/ccc use to synthesize their barData bar-pattern
// tables, since the literal table wasn't available to copy verbatim
// (see DESIGN.md).
package rssexp

import "fmt"

// Combins returns C(n, r), the number of r-combinations of n items,
// evaluated in an order that keeps intermediate products small.
func Combins(n, r int) int {
	if r < 0 || n < 0 || r > n {
		return 0
	}
	minDenom, maxDenom := r, n-r
	if n-r < r {
		minDenom, maxDenom = n-r, r
	}
	val, j := 1, 1
	for i := n; i > maxDenom; i-- {
		val *= i
		if j <= minDenom {
			val /= j
			j++
		}
	}
	for ; j <= minDenom; j++ {
		val /= j
	}
	return val
}

// Widths decodes val into `elements` positive element widths summing
// to elements+n, by treating val as an index into the combinatorial
// number system over ways to distribute n extra width units across the
// elements (stars and bars). This is the same decomposition DataBar's
// element-width tables are built from.
func Widths(val, n, elements int) []int {
	widths := make([]int, elements)
	remaining := n
	for bar := 0; bar < elements-1; bar++ {
		left := elements - bar - 1
		w := 0
		for {
			count := Combins(remaining-w+left-1, left-1)
			if val < count {
				break
			}
			val -= count
			w++
		}
		widths[bar] = w + 1
		remaining -= w
	}
	widths[elements-1] = remaining + 1
	return widths
}

// SymCharWidths decodes a 12-bit DataBar Expanded symbol character
// value into its 8 element widths (alternating bar, space, bar, ...),
// always summing to 17 modules. The whole value indexes a single
// decomposition of 9 extra width units over an 8-module floor
// (C(16,7) = 11440 patterns, enough for all 4096 values); the bars and
// spaces are not decoded as separate odd and even groups.
func SymCharWidths(value int) [8]int {
	w := Widths(value&0xFFF, 9, 8)
	var out [8]int
	copy(out[:], w)
	return out
}

// Parity computes the running mod-211 parity checksum DataBar Expanded
// uses to cross-check an assembled row's symbol character values
// (weights advance by *9 mod 211 per character position, matching the
// symbology's check-character construction).
func Parity(values []int) int {
	sum := 0
	weight := 1
	for _, v := range values {
		sum = (sum + v*weight) % 211
		weight = (weight * 9) % 211
	}
	return sum
}

// Finder holds one of the six finder patterns' three element widths.
type Finder struct {
	Widths [3]int
}

// finders are the six base finder patterns used across DataBar
// Expanded segment pairs, indexed by finder number 1-6 (index 0 unused).
var finders = [7]Finder{
	{}, // unused
	{[3]int{1, 8, 4}},
	{[3]int{3, 6, 4}},
	{[3]int{3, 4, 6}},
	{[3]int{3, 2, 8}},
	{[3]int{2, 6, 5}},
	{[3]int{2, 2, 9}},
}

// FinderWidths returns the 3 element widths for finder number f (1-6).
func FinderWidths(f int) ([3]int, error) {
	if f < 1 || f > 6 {
		return [3]int{}, fmt.Errorf("rssexp: finder number %d out of range [1,6]", f)
	}
	return finders[f].Widths, nil
}

// Segment is one pair of symbol characters plus the finder between
// them, the atomic unit DataBar Expanded rows are built from.
type Segment struct {
	Left, Right int // symbol character values (0-4095)
	Finder      int // finder number 1-6
	Reversed    bool
}

// BuildRow lays out one DataBar Expanded row's element widths, left
// guard to right guard, from its ordered segments.
func BuildRow(segments []Segment) ([]int, error) {
	row := []int{1} // left guard bar, 1 module wide
	for _, seg := range segments {
		lw := SymCharWidths(seg.Left)
		fw, err := FinderWidths(seg.Finder)
		if err != nil {
			return nil, err
		}
		rw := SymCharWidths(seg.Right)
		if seg.Reversed {
			fw[0], fw[2] = fw[2], fw[0]
		}
		row = append(row, lw[:]...)
		row = append(row, fw[:]...)
		row = append(row, rw[:]...)
	}
	row = append(row, 1) // right guard bar
	return row, nil
}

// Separator renders a checkered (single-module alternating) separator
// row spanning totalModules modules: the standard complement pattern
// GS1 composite symbols print between a 2D component and its linear
// primary, and between stacked DataBar Expanded rows.
func Separator(totalModules int) []int {
	if totalModules < 0 {
		totalModules = 0
	}
	widths := make([]int, totalModules)
	for i := range widths {
		widths[i] = 1
	}
	return widths
}
