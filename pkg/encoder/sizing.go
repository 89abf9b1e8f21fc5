package encoder

import (
	"fmt"
	"sort"

	"github.com/gs1/barcode-engine/pkg/base900"
	"github.com/gs1/barcode-engine/pkg/base928"
	"github.com/gs1/barcode-engine/pkg/ccab"
	"github.com/gs1/barcode-engine/pkg/ccc"
	"github.com/gs1/barcode-engine/pkg/sizer"
)

// ccbFlagCw is the two fixed flag/byte-mode-latch codewords spec.md
// §4.H prepends to every CC-B symbol's base-900 payload.
const ccbFlagCw = 2

// cccFlagCw is the length-indicator plus the two flag/latch codewords
// spec.md §4.I prepends to every CC-C symbol's base-900 payload.
const cccFlagCw = 3

// pickCCASize implements spec.md §4.G's size-fit query for CC-A: the
// smallest size class whose base-928 bit capacity holds `bits`,
// evaluated identically whether called mid-stream or at end-of-data
// (spec.md §9's cross-cutting design note).
func pickCCASize(bits int) (ccab.Size, sizer.Entry, error) {
	var best *ccab.Size
	var bestEntry sizer.Entry
	sizes := append([]ccab.Size(nil), ccab.ASizes...)
	sort.Slice(sizes, func(i, j int) bool { return sizes[i].DataCw < sizes[j].DataCw })
	for _, s := range sizes {
		entry := sizer.Entry{Bits: base928.Capacity(s.DataCw), DataCw: s.DataCw, EccCw: s.EccCw}
		if entry.Bits >= bits {
			sCopy := s
			best = &sCopy
			bestEntry = entry
			break
		}
	}
	if best == nil {
		return ccab.Size{}, sizer.Entry{}, fmt.Errorf("sizer: CC-A: %d bits exceeds the largest size class", bits)
	}
	return *best, bestEntry, nil
}

// pickCCBSize is pickCCASize's CC-B equivalent: base-900 capacity minus
// the two prepended flag codewords, scanning the requested column
// count's size table.
func pickCCBSize(cols, bits int) (ccab.Size, sizer.Entry, error) {
	sizes, ok := ccab.BSizes[cols]
	if !ok {
		return ccab.Size{}, sizer.Entry{}, fmt.Errorf("sizer: CC-B: unsupported column count %d", cols)
	}
	ordered := append([]ccab.Size(nil), sizes...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].DataCw < ordered[j].DataCw })
	for _, s := range ordered {
		payloadCw := s.DataCw - ccbFlagCw
		if payloadCw < 0 {
			continue
		}
		entry := sizer.Entry{Bits: base900.Capacity(payloadCw), DataCw: s.DataCw, EccCw: s.EccCw}
		if entry.Bits >= bits {
			return s, entry, nil
		}
	}
	return ccab.Size{}, sizer.Entry{}, fmt.Errorf("sizer: CC-B: %d bits exceeds the largest %d-column size class", bits, cols)
}

// pickCCCSize mirrors pickCCASize/pickCCBSize for CC-C, whose shape
// comes from a column/row search (pkg/ccc.Select) rather than a fixed
// table: it estimates the payload codeword budget a given bit length
// needs, asks ccc.Select for the narrowest shape that holds it plus its
// fixed 3-codeword overhead, then reports that shape's true bit
// capacity so the caller can tell whether `bits` actually fit (Select's
// search can return a shape slightly larger than the estimate demanded,
// which is fine -- the same "round up to the next class" behaviour
// CC-A/B's table scan has).
func pickCCCSize(bits int) (ccc.Shape, sizer.Entry, error) {
	byteLen := (bits + 7) / 8
	wantCw := byteLen - (byteLen/6)*1 // base900 shrinks every full 6-byte group by 1 codeword
	if wantCw < 0 {
		wantCw = 0
	}
	shape, err := ccc.Select(wantCw + cccFlagCw)
	if err != nil {
		return ccc.Shape{}, sizer.Entry{}, fmt.Errorf("sizer: CC-C: %w", err)
	}
	payloadCw := shape.Cols*shape.Rows - shape.EccCw - cccFlagCw
	if payloadCw < 0 {
		return ccc.Shape{}, sizer.Entry{}, fmt.Errorf("sizer: CC-C: selected shape has no room for the fixed overhead")
	}
	entry := sizer.Entry{Bits: base900.Capacity(payloadCw), DataCw: shape.Cols*shape.Rows - shape.EccCw, EccCw: shape.EccCw}
	if entry.Bits < bits {
		// The estimate undershot (possible near a codeword-group
		// boundary); retry once against a slightly larger budget.
		shape, err = ccc.Select(wantCw + cccFlagCw + 1)
		if err != nil {
			return ccc.Shape{}, sizer.Entry{}, fmt.Errorf("sizer: CC-C: %w", err)
		}
		payloadCw = shape.Cols*shape.Rows - shape.EccCw - cccFlagCw
		entry = sizer.Entry{Bits: base900.Capacity(payloadCw), DataCw: shape.Cols*shape.Rows - shape.EccCw, EccCw: shape.EccCw}
	}
	return shape, entry, nil
}
