package encoder

import (
	"fmt"

	"github.com/gs1/barcode-engine/pkg/bitbuf"
	"github.com/gs1/barcode-engine/pkg/compact"
	"github.com/gs1/barcode-engine/pkg/driver"
	"github.com/gs1/barcode-engine/pkg/method"
	"github.com/gs1/barcode-engine/pkg/rssexp"
	"github.com/gs1/barcode-engine/pkg/sizer"
)

// rssExpandedCap is the bit capacity cap spec.md §3 gives DataBar
// Expanded (shared with CC-A/B): up to 148 bytes.
const rssExpandedCap = 148

// segmentsPerRow is how many double-segments (4 symbol characters) this
// implementation prints per stacked row. The symbology allows more per
// row for an "ordinary" (non-stacked) symbol, but a fixed small count
// keeps every symbol stacked uniformly, which is the common print case
// and the one spec.md's scenario table (§8, row 2) exercises.
const segmentsPerRow = 2

// encodeLinear runs the DataBar Expanded pipeline: method selection,
// general compaction, sizing/padding, and row synthesis (spec.md §4.K
// step 3).
func (c *Context) encodeLinear(data []byte, linked bool, pixMult int) ([]driver.Row, error) {
	if err := validatePayload(data, false); err != nil {
		return nil, err
	}

	ais, _ := method.ParseAIs(data)
	m := method.SelectLinear(ais)

	w := bitbuf.New(rssExpandedCap)
	if err := w.PutBits(boolBit(linked), 1); err != nil {
		return nil, err
	}

	vlsPos := -1
	switch m {
	case method.LinWeight310xDate, method.LinWeight320xDate:
		// The dated 3x0x header depends on which date AI follows, so
		// writeLinearFixedFields writes it once it has looked that up.
	default:
		if err := method.WriteLinearHeader(w, m); err != nil {
			return nil, err
		}
		if hasVLSBits(m) {
			vlsPos = w.Len()
			if err := w.PutBits(0, 2); err != nil { // placeholder, patched once the symbol is sized
				return nil, err
			}
		}
	}

	consumed, err := c.writeLinearFixedFields(w, m, ais)
	if err != nil {
		return nil, err
	}

	automaton := compact.New()
	pos := consumed
	for pos < len(data) {
		unused := c.rssExpandedUnused(w.Len())
		next, err := automaton.Step(w, data, pos, unused)
		if err != nil {
			return nil, fmt.Errorf("encoder: linear compaction at byte %d: %w", pos, err)
		}
		if next == pos && pos >= len(data) {
			break
		}
		pos = next
	}

	rows := sizer.RSSExpandedRows(w.Len())
	totalBits := rows * 12
	if totalBits > rssExpandedCap*8 {
		return nil, fmt.Errorf("encoder: linear payload needs %d bits, exceeds %d-byte capacity", totalBits, rssExpandedCap)
	}
	if err := compact.Finish(w, totalBits-w.Len()); err != nil {
		return nil, err
	}

	numChars := totalBits / 12
	if vlsPos >= 0 {
		if err := patchVLSBits(w, vlsPos, numChars); err != nil {
			return nil, err
		}
	}
	values := make([]int, numChars)
	for i := 0; i < numChars; i++ {
		v, err := w.GetBits(i*12, 12)
		if err != nil {
			return nil, err
		}
		values[i] = int(v)
	}

	parity := rssexp.Parity(values)
	checkVal := (numChars-3)*211 + parity
	all := append([]int{checkVal}, values...)
	if len(all)%2 != 0 {
		all = append(all, 0) // pad to a whole number of double-segments
	}

	segments := make([]rssexp.Segment, len(all)/2)
	for i := range segments {
		segIdx := i
		finder := (segIdx % 6) + 1
		reversed := (segIdx/6)%2 == 1
		segments[i] = rssexp.Segment{
			Left:     all[2*i],
			Right:    all[2*i+1],
			Finder:   finder,
			Reversed: reversed,
		}
	}

	return buildRSSRows(segments, pixMult)
}

// buildRSSRows groups segments into stacked rows of segmentsPerRow each
// and synthesizes their element widths via pkg/rssexp, inserting the
// checkered separator guard between stacked rows (spec.md §6).
func buildRSSRows(segments []rssexp.Segment, pixMult int) ([]driver.Row, error) {
	if pixMult < 1 {
		pixMult = 1
	}
	var rows []driver.Row
	for i := 0; i < len(segments); i += segmentsPerRow {
		end := i + segmentsPerRow
		if end > len(segments) {
			end = len(segments)
		}
		widths, err := rssexp.BuildRow(segments[i:end])
		if err != nil {
			return nil, fmt.Errorf("encoder: RSS Expanded row %d: %w", i/segmentsPerRow, err)
		}
		rows = append(rows, driver.Row{
			Widths:   widths,
			WhtFirst: false,
			Height:   pixMult * 34, // the symbology's fixed row height in modules
			Guards:   end < len(segments),
		})
	}
	return rows, nil
}

// hasVLSBits reports whether m's header is one of the four patterns
// (General, General+AI10, Amount 392x, Amount 393x) that carry a 2-bit
// "variable length symbol" field right after the header, whose value
// isn't known until the symbol is sized.
func hasVLSBits(m method.Linear) bool {
	switch m {
	case method.LinGeneral, method.LinGeneralWithAI10, method.LinAmount392x, method.LinAmount393x:
		return true
	default:
		return false
	}
}

// patchVLSBits overwrites the 2-bit variable-length-symbol placeholder
// reserved at pos once numChars (the final data-character count) is
// known, per gs1_RSSExp's bitField[0] patch-back: the high bit flags an
// odd symbol-character count once the check character is added
// (numChars even), the low bit flags a symbol wider than 13 chars.
func patchVLSBits(w *bitbuf.Buffer, pos, numChars int) error {
	high := uint32((numChars + 1) & 1)
	var low uint32
	if numChars > 13 {
		low = 1
	}
	return w.SetBits(pos, (high<<1)|low, 2)
}

// rssExpandedUnused is the cross-cutting "how many bits would be left
// over if the stream ended right now" query spec.md §9 asks for: it's
// used both mid-stream (NUM mode's BCD-terminator decision) and at the
// end (the final pad), always via this one pure function.
func (c *Context) rssExpandedUnused(bitsSoFar int) int {
	rows := sizer.RSSExpandedRows(bitsSoFar)
	return rows*12 - bitsSoFar
}

// writeLinearFixedFields packs the method-specific fixed fields after
// the header (spec.md §4.F's payload column) and returns how many bytes
// of the original data those fields consumed, so the caller resumes
// general compaction at the right offset.
func (c *Context) writeLinearFixedFields(w *bitbuf.Buffer, m method.Linear, ais []method.AIField) (int, error) {
	switch m {
	case method.LinGeneral:
		return 0, nil

	case method.LinGeneralWithAI10:
		if len(ais) < 1 {
			return 0, fmt.Errorf("encoder: method requires a leading AI 01 field")
		}
		if err := packGTIN(w, ais[0]); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 1), nil

	case method.LinFixedWeight3103, method.LinFixedWeight3202, method.LinFixedWeight3203:
		if len(ais) < 2 {
			return 0, fmt.Errorf("encoder: method requires AI 01 + a weight AI")
		}
		if err := packPID12(w, ais[0]); err != nil {
			return 0, err
		}
		weight, err := parseDigits(ais[1].AI, ais[1].Value)
		if err != nil {
			return 0, err
		}
		if ais[1].AI == "3203" {
			weight += 10000
		}
		if err := method.PackWeight(w, weight); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 2), nil

	case method.LinWeight310xNoDate, method.LinWeight320xNoDate:
		if len(ais) < 2 {
			return 0, fmt.Errorf("encoder: method requires AI 01 + a net weight AI")
		}
		if err := packPID12(w, ais[0]); err != nil {
			return 0, err
		}
		weight, err := parseDigits(ais[1].AI, ais[1].Value)
		if err != nil {
			return 0, err
		}
		if err := method.PackWeight(w, weight); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 2), nil

	case method.LinWeight310xDate, method.LinWeight320xDate:
		if len(ais) < 3 {
			return 0, fmt.Errorf("encoder: method requires AI 01 + a net weight AI + a production/expiry date AI")
		}
		if err := method.WriteWeightDateHeader(w, m == method.LinWeight320xDate, ais[2].AI); err != nil {
			return 0, err
		}
		if err := packPID12(w, ais[0]); err != nil {
			return 0, err
		}
		weight, err := parseDigits(ais[1].AI, ais[1].Value)
		if err != nil {
			return 0, err
		}
		if err := method.PackWeight(w, weight); err != nil {
			return 0, err
		}
		yy, mo, dd, err := splitYYMMDD(ais[2].Value)
		if err != nil {
			return 0, err
		}
		if err := method.PackDate(w, yy, mo, dd); err != nil {
			return 0, err
		}
		return method.ConsumedLen(ais, 3), nil

	case method.LinAmount392x:
		if len(ais) < 2 {
			return 0, fmt.Errorf("encoder: method requires AI 01 + an amount AI")
		}
		if err := packPID12(w, ais[0]); err != nil {
			return 0, err
		}
		decimalPos, err := amountDecimalPos(ais[1].AI)
		if err != nil {
			return 0, err
		}
		if err := w.PutBits(uint32(decimalPos), 2); err != nil {
			return 0, err
		}
		return ais[0].RawLen + len(ais[1].AI), nil

	case method.LinAmount393x:
		if len(ais) < 2 {
			return 0, fmt.Errorf("encoder: method requires AI 01 + an amount AI")
		}
		if err := packPID12(w, ais[0]); err != nil {
			return 0, err
		}
		decimalPos, err := amountDecimalPos(ais[1].AI)
		if err != nil {
			return 0, err
		}
		if err := w.PutBits(uint32(decimalPos), 2); err != nil {
			return 0, err
		}
		if len(ais[1].Value) < 3 {
			return 0, fmt.Errorf("encoder: AI %s value %q too short for a 3-digit ISO country code", ais[1].AI, ais[1].Value)
		}
		isoCode, err := parseDigits(ais[1].AI, ais[1].Value[:3])
		if err != nil {
			return 0, err
		}
		if err := w.PutBits(uint32(isoCode), 10); err != nil {
			return 0, err
		}
		return ais[0].RawLen + len(ais[1].AI) + 3, nil

	default:
		return 0, fmt.Errorf("encoder: unhandled linear method %v", m)
	}
}

// amountDecimalPos extracts the decimal-point-position digit that the
// 392x/393x amount AI family folds into its own code's last character
// (cc.c: `str[19]-'0'`, str[19] being AI 392x/393x's fourth digit).
func amountDecimalPos(ai string) (int, error) {
	if len(ai) != 4 {
		return 0, fmt.Errorf("encoder: amount AI %q malformed", ai)
	}
	d := int(ai[3] - '0')
	if d < 0 || d > 3 {
		return 0, fmt.Errorf("encoder: amount AI %q decimal position out of range", ai)
	}
	return d, nil
}

// packGTIN packs AI 01's 14-digit value as GS1's PID-13 (the indicator
// digit plus the 12-digit item reference; the trailing check digit is
// dropped) per method.PackGTIN's 44-bit compressed layout. Only the
// unqualified AI-01 fallback method (LinGeneralWithAI10) uses this; every
// weight- or amount-chained method uses the narrower packPID12 instead.
func packGTIN(w *bitbuf.Buffer, ai method.AIField) error {
	if ai.AI != "01" || len(ai.Value) != 14 {
		return fmt.Errorf("encoder: expected a 14-digit AI 01 field, got AI %q value %q", ai.AI, ai.Value)
	}
	return method.PackGTIN(w, ai.Value[:13])
}

// packPID12 packs AI 01's 14-digit value as GS1's PID-12 (the 12-digit
// item reference only; both the leading indicator digit and the
// trailing check digit are dropped) per method.PackPID12's 40-bit
// compressed layout.
func packPID12(w *bitbuf.Buffer, ai method.AIField) error {
	if ai.AI != "01" || len(ai.Value) != 14 {
		return fmt.Errorf("encoder: expected a 14-digit AI 01 field, got AI %q value %q", ai.AI, ai.Value)
	}
	return method.PackPID12(w, ai.Value[1:13])
}

// splitYYMMDD parses a 6-digit YYMMDD field into its three integer parts.
func splitYYMMDD(v string) (yy, mo, dd int, err error) {
	if len(v) != 6 {
		return 0, 0, 0, fmt.Errorf("encoder: date value %q is not 6 digits", v)
	}
	yy, err = parseDigits("date", v[0:2])
	if err != nil {
		return 0, 0, 0, err
	}
	mo, err = parseDigits("date", v[2:4])
	if err != nil {
		return 0, 0, 0, err
	}
	dd, err = parseDigits("date", v[4:6])
	if err != nil {
		return 0, 0, 0, err
	}
	return yy, mo, dd, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
