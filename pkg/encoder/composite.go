package encoder

import (
	"fmt"

	"github.com/gs1/barcode-engine/pkg/base900"
	"github.com/gs1/barcode-engine/pkg/base928"
	"github.com/gs1/barcode-engine/pkg/bitbuf"
	"github.com/gs1/barcode-engine/pkg/ccab"
	"github.com/gs1/barcode-engine/pkg/ccc"
	"github.com/gs1/barcode-engine/pkg/compact"
	"github.com/gs1/barcode-engine/pkg/driver"
	"github.com/gs1/barcode-engine/pkg/gf929"
	"github.com/gs1/barcode-engine/pkg/method"
	"github.com/gs1/barcode-engine/pkg/sizer"
)

// cccCap is the bit-buffer capacity spec.md §3 gives CC-C (up to 1033 bytes).
const cccCap = 1033

// encodeComposite runs the 2D composite pipeline (spec.md §4.K step 4):
// method selection, general compaction, sizing/padding, codeword
// assembly (base-928 for CC-A, flag-prefixed base-900 for CC-B/C), ECC,
// and row layout.
func (c *Context) encodeComposite(data []byte, pixMult int) ([]driver.Row, error) {
	if err := validatePayload(data, true); err != nil {
		return nil, err
	}

	ais, _ := method.ParseAIs(data)
	m := method.SelectComposite(ais)

	capBytes := rssExpandedCap
	if c.Variant == VariantCCC {
		capBytes = cccCap
	}
	w := bitbuf.New(capBytes)
	if err := method.WriteCompositeHeader(w, m); err != nil {
		return nil, err
	}

	consumed, err := c.writeCompositeFixedFields(w, m, ais)
	if err != nil {
		return nil, err
	}
	c.tagSymbolType(ais)

	automaton := compact.New()
	pos := consumed
	for pos < len(data) {
		unused := c.compositeUnused(w.Len())
		next, err := automaton.Step(w, data, pos, unused)
		if err != nil {
			return nil, fmt.Errorf("encoder: composite compaction at byte %d: %w", pos, err)
		}
		pos = next
	}

	switch c.Variant {
	case VariantCCA:
		return c.finishCCA(w, pixMult)
	case VariantCCB:
		return c.finishCCB(w, pixMult)
	case VariantCCC:
		return c.finishCCC(w, pixMult)
	default:
		return nil, fmt.Errorf("encoder: encodeComposite requires a CC-A/B/C variant, got %v", c.Variant)
	}
}

// writeCompositeFixedFields packs the composite header's fixed fields
// (the date pair or the AI-90 alphanumeric run) and reports how many
// bytes of data they consumed.
func (c *Context) writeCompositeFixedFields(w *bitbuf.Buffer, m method.Composite, ais []method.AIField) (int, error) {
	switch m {
	case method.CompGeneral:
		return 0, nil

	case method.CompDate:
		if len(ais) < 1 {
			return 0, fmt.Errorf("encoder: composite date method requires a leading AI 11/17 field")
		}
		yy, mo, dd, err := splitYYMMDD(ais[0].Value)
		if err != nil {
			return 0, err
		}
		if err := method.PackCompositeDate(w, ais[0].AI, yy, mo, dd); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 1), nil

	case method.CompAI90:
		if len(ais) < 1 {
			return 0, fmt.Errorf("encoder: composite AI-90 method requires a leading AI 90 field")
		}
		value := []byte(ais[0].Value)
		ai90 := &compact.Automaton{Mode: compact.ModeAlph}
		p := 0
		for p < len(value) {
			next, err := ai90.Step(w, value, p, 0)
			if err != nil {
				return 0, fmt.Errorf("encoder: AI-90 compaction at byte %d: %w", p, err)
			}
			p = next
		}
		if err := ai90.FinishAlph(w, 5); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 1), nil

	default:
		return 0, fmt.Errorf("encoder: unhandled composite method %v", m)
	}
}

// tagSymbolType records whether the payload's leading AIs include one
// of the two "symbol type" AIs the encoder context model (spec.md §3)
// tracks (AI 21 or AI 8004), purely informational bookkeeping carried
// on the Context the same way the original threads a currentSymbolTypeAI
// global through its encode call.
func (c *Context) tagSymbolType(ais []method.AIField) {
	for _, f := range ais {
		switch f.AI {
		case "21":
			c.SymbolType = SymAI21
			return
		case "8004":
			c.SymbolType = SymAI8004
			return
		}
	}
}

// compositeUnused is the mid-stream half of the cross-cutting
// sizeFit(variant, bits) query (spec.md §9): the same pick functions
// finishCCA/B/C use at end-of-data are queried here, pure and with no
// side effects, so NUM mode's BCD-terminator decision sees exactly the
// slack the final pad will have.
func (c *Context) compositeUnused(bits int) int {
	switch c.Variant {
	case VariantCCA:
		if _, entry, err := pickCCASize(bits); err == nil {
			return sizer.Unused(entry, bits)
		}
	case VariantCCB:
		if _, entry, err := pickCCBSize(c.CCBCols, bits); err == nil {
			return sizer.Unused(entry, bits)
		}
	case VariantCCC:
		if _, entry, err := pickCCCSize(bits); err == nil {
			return sizer.Unused(entry, bits)
		}
	}
	return 0
}

// packBase928Stream chunks w's entire bit content into up to 69-bit
// groups and base-928-encodes each (spec.md §4.C), most-significant
// chunk first.
func packBase928Stream(w *bitbuf.Buffer) ([]int, error) {
	bits := w.Len()
	var out []int
	pos := 0
	for pos < bits {
		n := base928.MaxBits
		if bits-pos < n {
			n = bits - pos
		}
		chunk := make([]bool, n)
		for i := 0; i < n; i++ {
			v, err := w.GetBits(pos+i, 1)
			if err != nil {
				return nil, err
			}
			chunk[i] = v == 1
		}
		out = append(out, base928.Encode(chunk)...)
		pos += n
	}
	return out, nil
}

// packBase900Stream byte-aligns w's content (it must already be padded
// to a byte boundary by the caller) and base-900-encodes it in 6-byte
// groups (spec.md §4.D), the PDF417 byte-compaction rule CC-B/C share.
func packBase900Stream(w *bitbuf.Buffer) ([]int, bool) {
	bytes := w.Bytes()[:w.Len()/8]
	var out []int
	for i := 0; i < len(bytes); i += base900.GroupSize {
		end := i + base900.GroupSize
		if end > len(bytes) {
			end = len(bytes)
		}
		out = append(out, base900.Encode(bytes[i:end])...)
	}
	return out, len(bytes)%base900.GroupSize == 0 && len(bytes) > 0
}

func (c *Context) finishCCA(w *bitbuf.Buffer, pixMult int) ([]driver.Row, error) {
	size, entry, err := pickCCASize(w.Len())
	if err != nil {
		return nil, err
	}
	if err := compact.Finish(w, entry.Bits-w.Len()); err != nil {
		return nil, err
	}
	dataCw, err := packBase928Stream(w)
	if err != nil {
		return nil, err
	}
	if len(dataCw) != size.DataCw {
		return nil, fmt.Errorf("encoder: CC-A: packed %d codewords, want %d", len(dataCw), size.DataCw)
	}
	ecc := gf929.GenECC(dataCw, size.EccCw)
	codewords := append(append([]int(nil), dataCw...), ecc...)
	rows, err := ccab.Layout(size, codewords, 1)
	if err != nil {
		return nil, err
	}
	return toDriverRows(rowsCCAB(rows), pixMult), nil
}

func (c *Context) finishCCB(w *bitbuf.Buffer, pixMult int) ([]driver.Row, error) {
	size, entry, err := pickCCBSize(c.CCBCols, w.Len())
	if err != nil {
		return nil, err
	}
	if err := compact.Finish(w, entry.Bits-w.Len()); err != nil {
		return nil, err
	}
	payloadCw, wholeGroup := packBase900Stream(w)
	latch := 901
	if wholeGroup {
		latch = 924
	}
	dataCw := append([]int{920, latch}, payloadCw...)
	if len(dataCw) != size.DataCw {
		return nil, fmt.Errorf("encoder: CC-B: packed %d codewords, want %d", len(dataCw), size.DataCw)
	}
	ecc := gf929.GenECC(dataCw, size.EccCw)
	codewords := append(append([]int(nil), dataCw...), ecc...)
	rows, err := ccab.Layout(size, codewords, 1)
	if err != nil {
		return nil, err
	}
	return toDriverRows(rowsCCAB(rows), pixMult), nil
}

func (c *Context) finishCCC(w *bitbuf.Buffer, pixMult int) ([]driver.Row, error) {
	shape, entry, err := pickCCCSize(w.Len())
	if err != nil {
		return nil, err
	}
	if err := compact.Finish(w, entry.Bits-w.Len()); err != nil {
		return nil, err
	}
	payloadCw, wholeGroup := packBase900Stream(w)
	latch := 901
	if wholeGroup {
		latch = 924
	}
	want := shape.Cols*shape.Rows - shape.EccCw
	dataCw := append([]int{want, 920, latch}, payloadCw...)
	if len(dataCw) != want {
		return nil, fmt.Errorf("encoder: CC-C: packed %d codewords, want %d", len(dataCw), want)
	}
	ecc := gf929.GenECC(dataCw, shape.EccCw)
	codewords := append(append([]int(nil), dataCw...), ecc...)
	rows, err := ccc.Layout(shape, codewords)
	if err != nil {
		return nil, err
	}
	return toDriverRows(rowsCCC(rows), pixMult), nil
}

// rowsCCAB and rowsCCC adapt their package's Row shape (a bare Widths
// slice) to the common []rowWidths view toDriverRows consumes.
func rowsCCAB(rows []ccab.Row) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = r.Widths
	}
	return out
}

func rowsCCC(rows []ccc.Row) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = r.Widths
	}
	return out
}

// toDriverRows wraps raw element-width slices into driver.Rows, every
// CC-A/B/C row starting black with a fixed row height in modules.
func toDriverRows(widths [][]int, pixMult int) []driver.Row {
	if pixMult < 1 {
		pixMult = 1
	}
	rows := make([]driver.Row, len(widths))
	for i, ws := range widths {
		rows[i] = driver.Row{
			Widths:   ws,
			WhtFirst: false,
			Height:   pixMult * 2,
		}
	}
	return rows
}
