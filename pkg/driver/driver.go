// Package driver defines the row-sink contract the core encoding
// pipeline renders into, plus two concrete drivers (a BMP rasterizer and
// a plain-text bar dump). The core never does raster work itself (see
// spec.md §1's Non-goals): it produces element-width rows and hands
// them, one at a time, to whatever Sink the caller supplies.
package driver

import "fmt"

// Row is one element-width row of a symbol: a sequence of module-width
// bars/spaces plus the metadata a rasterizer needs to place it (quiet
// zones, starting colour, height, whether to draw row-separator guards).
type Row struct {
	// Widths alternates bar, space, bar, ... in module units, starting
	// with the colour WhtFirst declares.
	Widths []int
	// LeftPad, RightPad are additional quiet-zone modules beyond
	// Widths[0]/Widths[len-1], used to center short rows (DataBar
	// Expanded's reversed-finder symmetry padding, see spec.md §4.J).
	LeftPad, RightPad int
	// WhtFirst is true if Widths[0] is a white (space) module; false if
	// it's black (bar). Every CC-A/B/C/RSS row starts black; some
	// synthesized separator rows start white.
	WhtFirst bool
	// Reverse marks a DataBar Expanded segment printed with its finder
	// pattern mirrored (see spec.md §4.J's finder reversal rule).
	Reverse bool
	// Guards requests a row-separator pattern be rendered immediately
	// below this row (the "chex" checkerboard between a 2D composite
	// component and its linear primary, or between stacked DataBar
	// Expanded rows).
	Guards bool
	// Height is this row's height in X-module units, prior to the
	// driver's own pixel multiply (spec.md §9: pixel sizing is the
	// driver's concern, but the module-unit height is part of the row
	// data model).
	Height int
}

// ModuleWidth returns the total module width of the row, including its
// quiet-zone padding: the invariant every row must satisfy (spec.md §8
// invariant 5) is that Widths sums to the module width declared for the
// symbol's variant.
func (r Row) ModuleWidth() int {
	w := r.LeftPad + r.RightPad
	for _, x := range r.Widths {
		w += x
	}
	return w
}

// Sink receives a finished symbol's rows in top-to-bottom order. AddRow
// is called once per row; Finalize once after the last row, so a
// buffering driver (like the BMP rasterizer, which needs the full
// symbol's module width before it can allocate a raster) knows when the
// stream is complete.
type Sink interface {
	AddRow(Row) error
	Finalize() error
}

// Run feeds rows to sink in order and finalizes it, stopping at the
// first error -- the short-circuit-on-error policy spec.md §7 requires
// of the whole pipeline.
func Run(sink Sink, rows []Row) error {
	for i, r := range rows {
		if err := sink.AddRow(r); err != nil {
			return fmt.Errorf("driver: row %d: %w", i, err)
		}
	}
	return sink.Finalize()
}
