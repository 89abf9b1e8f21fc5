package driver

import (
	"fmt"
	"io"
	"strings"
)

// TextDriver renders rows as a plain-text bar dump, one line per row:
// '#' for a black module, ' ' for white, matching module widths
// literally with no pixel multiply. Used by the CLI's `encode --text`
// output and by tests that want to assert on a symbol's shape without
// decoding a BMP.
type TextDriver struct {
	w    io.Writer
	sep  string
	rows int
}

// NewTextDriver returns a driver writing one text line per row to w.
func NewTextDriver(w io.Writer) *TextDriver {
	return &TextDriver{w: w, sep: strings.Repeat("-", 1)}
}

// AddRow writes one row's line immediately; TextDriver needs no
// buffering since it doesn't have the BMP driver's whole-raster
// allocation to defer.
func (d *TextDriver) AddRow(r Row) error {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", r.LeftPad))
	black := !r.WhtFirst
	for _, width := range r.Widths {
		ch := byte(' ')
		if black {
			ch = '#'
		}
		b.WriteString(strings.Repeat(string(ch), width))
		black = !black
	}
	b.WriteString(strings.Repeat(" ", r.RightPad))
	if _, err := fmt.Fprintln(d.w, b.String()); err != nil {
		return err
	}
	d.rows++
	if r.Guards {
		if _, err := fmt.Fprintln(d.w, strings.Repeat("=", b.Len())); err != nil {
			return err
		}
	}
	return nil
}

// Finalize writes a trailing summary line.
func (d *TextDriver) Finalize() error {
	_, err := fmt.Fprintf(d.w, "(%d rows)\n", d.rows)
	return err
}
