// Package method selects the header encodation method for a GS1 data
// string, both for linear DataBar Expanded symbols (which must choose
// among several fixed-field "compressed" headers before falling back to
// general-purpose AI compaction) and for 2D composite symbols (which
// choose among a narrower set of methods keyed on the leading AI).
//
// Every method other than General packs one or more leading AIs into a
// short fixed-width field instead of running them through pkg/compact,
// trading a few header bits for AIs whose value domain is small and
// well known (a net weight, a packing date, a currency amount). General
// is always a safe fallback: it defers everything to pkg/compact.
package method

import (
	"fmt"
	"strconv"

	"github.com/gs1/barcode-engine/pkg/bitbuf"
)

// Linear identifies a DataBar Expanded header method.
type Linear int

const (
	LinGeneral          Linear = iota // "00"    general-purpose AI compaction, no leading AI 01
	LinGeneralWithAI10                // "1"     AI 01 (+ optional AI 10) + general
	LinFixedWeight3103                // "0100"  AI 01 + AI 3103 (net weight, kg, 3dp)
	LinFixedWeight3202                // "0101"  AI 01 + AI 3202 (net weight, lb, 2dp)
	LinFixedWeight3203                // "0101"  AI 01 + AI 3203 (net weight, lb, 3dp, +10000 offset)
	LinWeight310xNoDate               // "0111000" AI 01 + AI 310x, no date
	LinWeight320xNoDate               // "0111001" AI 01 + AI 320x, no date
	LinWeight310xDate                 // AI 01 + AI 310x + AI 11/13/15/17 (dynamic header)
	LinWeight320xDate                 // AI 01 + AI 320x + AI 11/13/15/17 (dynamic header)
	LinAmount392x                     // "01100" AI 01 + AI 392x (price/amount, own currency)
	LinAmount393x                     // "01101" AI 01 + AI 393x (price/amount, ISO currency)
)

// linHeaders maps each statically-keyed method to its header bit pattern
// and width, re-derived directly from cc.c's doLinMethods putBits calls.
// LinWeight310xDate/LinWeight320xDate aren't here: their 7-bit header
// depends on which of AI 11/13/15/17 chains the weight field, so it's
// computed by WriteWeightDateHeader instead of looked up statically.
var linHeaders = map[Linear]struct {
	val uint32
	n   int
}{
	LinGeneral:          {0x0, 2},
	LinGeneralWithAI10:  {0x1, 1},
	LinFixedWeight3103:  {0x4, 4},
	LinFixedWeight3202:  {0x5, 4},
	LinFixedWeight3203:  {0x5, 4},
	LinWeight310xNoDate: {0x38, 7},
	LinWeight320xNoDate: {0x39, 7},
	LinAmount392x:       {0x0C, 5},
	LinAmount393x:       {0x0D, 5},
}

// WriteLinearHeader emits m's header bit pattern to w. It does not
// handle LinWeight310xDate/LinWeight320xDate; use WriteWeightDateHeader
// for those.
func WriteLinearHeader(w *bitbuf.Buffer, m Linear) error {
	h, ok := linHeaders[m]
	if !ok {
		return fmt.Errorf("method: unknown linear method %d", m)
	}
	return w.PutBits(h.val, h.n)
}

// weightDateOffset maps a chained production/expiry date AI to the
// offset doLinMethods adds into the dated 3x0x weight header's low bits
// (cc.c: `0x38 + (str[27]-'1') + (str[17]-'1')`, the first term keyed on
// which date AI follows, the second on 310x vs 320x).
var weightDateOffset = map[string]uint32{
	"11": 0,
	"13": 2,
	"15": 4,
	"17": 6,
}

// WriteWeightDateHeader emits the 7-bit header for a net weight field
// (AI 310x or 320x) chained to a production/expiry date AI (11/13/15/17).
// Unlike every other linear method this header can't live in a static
// table: its low bits depend on which date AI was matched.
func WriteWeightDateHeader(w *bitbuf.Buffer, weightFamily320x bool, dateAI string) error {
	offset, ok := weightDateOffset[dateAI]
	if !ok {
		return fmt.Errorf("method: WriteWeightDateHeader: AI %q is not a chainable production/expiry date (11/13/15/17)", dateAI)
	}
	val := uint32(0x38) + offset
	if weightFamily320x {
		val++
	}
	return w.PutBits(val, 7)
}

// isChainedDateAI reports whether ai is one of the four production/
// expiry date AIs doLinMethods chains a net weight field to.
func isChainedDateAI(ai string) bool {
	switch ai {
	case "11", "13", "15", "17":
		return true
	default:
		return false
	}
}

// SelectLinear inspects the leading AIs of a GS1 data string's decoded
// (ai, value) pairs and picks the best linear method.
func SelectLinear(ais []AIField) Linear {
	if len(ais) == 0 || ais[0].AI != "01" {
		return LinGeneral
	}
	if len(ais) == 1 {
		return LinGeneralWithAI10
	}
	is310x := len(ais[1].AI) == 4 && ais[1].AI[:3] == "310"
	is320x := len(ais[1].AI) == 4 && ais[1].AI[:3] == "320"
	if len(ais) >= 3 && isChainedDateAI(ais[2].AI) {
		switch {
		case is310x:
			return LinWeight310xDate
		case is320x:
			return LinWeight320xDate
		}
	}
	switch ais[1].AI {
	case "3103":
		return LinFixedWeight3103
	case "3202":
		return LinFixedWeight3202
	case "3203":
		return LinFixedWeight3203
	}
	switch {
	case is310x:
		return LinWeight310xNoDate
	case is320x:
		return LinWeight320xNoDate
	}
	if len(ais[1].AI) == 4 && ais[1].AI[:3] == "392" {
		return LinAmount392x
	}
	if len(ais[1].AI) == 4 && ais[1].AI[:3] == "393" {
		return LinAmount393x
	}
	if ais[1].AI == "10" {
		return LinGeneralWithAI10
	}
	return LinGeneral
}

// AIField is one decoded (AI, value) pair from a GS1 data string.
type AIField struct {
	AI    string
	Value string
	// RawLen is how many bytes of the original data this field occupied,
	// including its AI code and any trailing FNC1 consumed as a
	// separator. Populated by ParseAIs; zero for hand-built AIFields
	// such as the ones method_test.go constructs directly.
	RawLen int
}

// PackGTIN packs a 13-digit value (GS1's PID-13: the GTIN's leading
// indicator digit followed by its 12-digit item reference, check digit
// already stripped by the caller) into 44 bits as two PutBits calls,
// since the field is wider than bitbuf's single 32-bit write.
func PackGTIN(w *bitbuf.Buffer, gtin string) error {
	n, err := strconv.ParseUint(gtin, 10, 64)
	if err != nil {
		return fmt.Errorf("method: PackGTIN: %q: %w", gtin, err)
	}
	if n >= 1<<44 {
		return fmt.Errorf("method: PackGTIN: value overflows 44 bits")
	}
	if err := w.PutBits(uint32(n>>12), 32); err != nil {
		return err
	}
	return w.PutBits(uint32(n&0xFFF), 12)
}

// PackPID12 packs a 12-digit item reference (GS1's PID-12: the GTIN's
// indicator digit and check digit both already stripped by the caller)
// into 40 bits as four 10-bit, 3-decimal-digit groups. Every weight- and
// amount-chained linear method uses this 40-bit form instead of
// PackGTIN's 44-bit PID-13 -- only the unqualified AI-01 fallback method
// carries the indicator digit through.
func PackPID12(w *bitbuf.Buffer, pid12 string) error {
	if len(pid12) != 12 {
		return fmt.Errorf("method: PackPID12: value %q is not 12 digits", pid12)
	}
	for i := 0; i < 4; i++ {
		group := pid12[i*3 : i*3+3]
		n, err := strconv.Atoi(group)
		if err != nil {
			return fmt.Errorf("method: PackPID12: %q: %w", pid12, err)
		}
		if err := w.PutBits(uint32(n), 10); err != nil {
			return err
		}
	}
	return nil
}

// PackWeight packs a 3-decimal-place weight/amount value (0-99999) into
// a 20-bit field, GS1's standard compressed numeric field width for
// AI 310x/320x/392x family values.
func PackWeight(w *bitbuf.Buffer, value int) error {
	if value < 0 || value >= 1<<20 {
		return fmt.Errorf("method: PackWeight: value %d out of 20-bit range", value)
	}
	return w.PutBits(uint32(value), 20)
}

// PackDate packs a YYMMDD production/expiry date into GS1's standard
// 16-bit compressed date field: (year*384 + (month-1)*32 + day).
func PackDate(w *bitbuf.Buffer, year, month, day int) error {
	if year < 0 || year > 99 || month < 1 || month > 12 || day < 1 || day > 31 {
		return fmt.Errorf("method: PackDate: invalid date %02d-%02d-%02d", year, month, day)
	}
	v := year*384 + (month-1)*32 + day
	return w.PutBits(uint32(v), 16)
}

// Composite identifies a 2D composite (CC-A/B/C) header method, a
// narrower set than the linear header table since composite symbols
// carry far less of the payload in the fixed header -- most of the
// value comes from the bigger CC-A/B/C codeword budget, so there's less
// incentive to special-case AIs out of general compaction.
type Composite int

const (
	CompGeneral Composite = iota // "0" + general-purpose AI compaction
	CompDate                     // "10"  AI 11/17 production/expiry date
	CompAI90                     // "11"  AI 90 + data-identifier lookahead
)

// WriteCompositeHeader emits m's header bit pattern to w.
func WriteCompositeHeader(w *bitbuf.Buffer, m Composite) error {
	switch m {
	case CompGeneral:
		return w.PutBits(0x0, 1)
	case CompDate:
		return w.PutBits(0x2, 2)
	case CompAI90:
		return w.PutBits(0x3, 2)
	default:
		return fmt.Errorf("method: unknown composite method %d", m)
	}
}

// SelectComposite inspects the leading AI of a 2D composite data string
// and picks the composite header method.
func SelectComposite(ais []AIField) Composite {
	if len(ais) == 0 {
		return CompGeneral
	}
	switch ais[0].AI {
	case "11", "17":
		return CompDate
	case "90":
		return CompAI90
	default:
		return CompGeneral
	}
}

// PackCompositeDate packs AI 11 or 17's YYMMDD value as the 16-bit date
// field CompDate's header uses, followed by a 1-bit flag distinguishing
// which of the two AIs it was (0 for 11/production date, 1 for
// 17/expiry date).
func PackCompositeDate(w *bitbuf.Buffer, ai string, year, month, day int) error {
	if err := PackDate(w, year, month, day); err != nil {
		return err
	}
	var flag uint32
	switch ai {
	case "11":
		flag = 0
	case "17":
		flag = 1
	default:
		return fmt.Errorf("method: PackCompositeDate: AI %q is not 11 or 17", ai)
	}
	return w.PutBits(flag, 1)
}
