// Package compact implements the data-compaction automaton shared by
// every composite-component and DataBar Expanded symbol: a byte-class
// lookup table drives transitions between four compaction modes (NUM,
// ALNU, ISO, ALPH), each with its own bit-width-per-character rule.
//
// Unlike the automaton this is ported from, Step never mutates its
// input: it takes a cursor position and returns the next one, so the
// same []byte payload can be compacted, re-sized, and compacted again
// without rebuilding a string each time (see pkg/sizer's two-pass use:
// mid-stream NUM-mode padding decisions and the final end-of-data pad
// both query the same size class).
package compact

import (
	"fmt"

	"github.com/gs1/barcode-engine/pkg/bitbuf"
)

// class is a bitmask describing which compaction modes may encode a
// given byte directly.
type class uint8

const (
	IsNum class = 1 << iota
	IsFNC1
	IsAlnu
	IsIso
	IsSep
	IsFini
)

var classOf [256]class

func init() {
	for c := byte('0'); c <= '9'; c++ {
		classOf[c] = IsNum | IsAlnu | IsIso
	}
	for c := byte('A'); c <= 'Z'; c++ {
		classOf[c] |= IsAlnu | IsIso
	}
	for c := byte('a'); c <= 'z'; c++ {
		classOf[c] |= IsIso
	}
	for _, c := range []byte{'*', ',', '-', '.', '/', ' '} {
		classOf[c] |= IsAlnu | IsIso
	}
	for _, c := range []byte("!\"%&'()+:;<=>?_") {
		classOf[c] |= IsIso
	}
	// '#' is the data-entry placeholder for the FNC1 AI separator (the
	// byte pkg/method's ParseAIs also treats as the field boundary).
	classOf['#'] = IsFNC1
	// '^' is the 2D composite symbol separator, a distinct character
	// from FNC1 with its own escape code in ALNU/ISO mode; accepted
	// here (CC-A/B/C), rejected by the DataBar Expanded path
	// (Validate with allowCaret false).
	classOf['^'] = IsAlnu | IsIso | IsSep
	classOf[0] = IsFini
}

// Mode is one of the four compaction states.
type Mode int

const (
	ModeNum Mode = iota
	ModeAlnu
	ModeIso
	ModeAlph
)

func (m Mode) String() string {
	switch m {
	case ModeNum:
		return "NUM"
	case ModeAlnu:
		return "ALNU"
	case ModeIso:
		return "ISO"
	case ModeAlph:
		return "ALPH"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Automaton holds the compaction state machine's current mode. The
// zero value is not ready to use; call New.
type Automaton struct {
	Mode Mode
}

// New returns an Automaton starting in NUM mode, the mode every AI
// data string starts in (AIs themselves are numeric).
func New() *Automaton {
	return &Automaton{Mode: ModeNum}
}

// Step compacts one unit of input (usually one or two bytes) from
// data[pos:] into w according to the automaton's current mode, and
// returns the new cursor position. unused is the number of bits still
// free in the symbol's picked size class (sizer.Entry.Bits minus bits
// written so far); NUM mode consults it to decide whether a trailing
// odd digit gets a short BCD terminator instead of latching to ALNU.
//
// Step returns pos unchanged when it only emits a mode-latch with no
// data consumed; callers should loop until pos reaches len(data).
func (a *Automaton) Step(w *bitbuf.Buffer, data []byte, pos int, unused int) (int, error) {
	if pos > len(data) {
		return pos, fmt.Errorf("compact: Step: pos %d beyond data length %d", pos, len(data))
	}
	switch a.Mode {
	case ModeNum:
		return a.procNum(w, data, pos, unused)
	case ModeAlnu:
		return a.procAlnu(w, data, pos)
	case ModeIso:
		return a.procIso(w, data, pos)
	case ModeAlph:
		return a.procAlph(w, data, pos)
	default:
		return pos, fmt.Errorf("compact: Step: unknown mode %v", a.Mode)
	}
}

func (a *Automaton) procNum(w *bitbuf.Buffer, data []byte, pos int, unused int) (int, error) {
	if pos >= len(data) {
		return pos, nil
	}
	c := data[pos]
	if classOf[c]&IsFNC1 != 0 || classOf[c]&IsNum == 0 {
		if err := w.PutBits(0x0, 4); err != nil { // 0000: latch to ALNU
			return pos, err
		}
		a.Mode = ModeAlnu
		return pos, nil
	}
	if pos+1 < len(data) && classOf[data[pos+1]]&IsNum != 0 {
		d1 := int(c - '0')
		d2 := int(data[pos+1] - '0')
		if err := w.PutBits(uint32(d1*11+d2+8), 7); err != nil {
			return pos, err
		}
		return pos + 2, nil
	}
	// One digit left with nothing (or a non-digit) to pair it with. If
	// the symbol has 4-6 bits left, too few for a 7-bit digit pair, the
	// digit is written as a 4-bit value (digit+1) instead of latching away.
	if unused >= 4 && unused < 7 {
		d1 := int(c - '0')
		if err := w.PutBits(uint32(d1+1), 4); err != nil {
			return pos, err
		}
		return pos + 1, nil
	}
	if err := w.PutBits(0x0, 4); err != nil {
		return pos, err
	}
	a.Mode = ModeAlnu
	return pos, nil
}

var alnuPunctOffset = map[byte]int{',': 0, '-': 1, '.': 2, '/': 3, ' ': 4}

func (a *Automaton) procAlnu(w *bitbuf.Buffer, data []byte, pos int) (int, error) {
	if pos >= len(data) {
		return pos, nil
	}
	c := data[pos]
	cl := classOf[c]
	switch {
	case cl&IsFNC1 != 0:
		if err := w.PutBits(0xF, 5); err != nil {
			return pos, err
		}
		a.Mode = ModeNum
		return pos + 1, nil
	case cl&IsSep != 0:
		if err := w.PutBits(0x1F, 5); err != nil {
			return pos, err
		}
		a.Mode = ModeNum
		return pos + 1, nil
	case cl&IsIso != 0 && cl&IsAlnu == 0:
		if err := w.PutBits(0x04, 5); err != nil { // 00100: latch to ISO
			return pos, err
		}
		a.Mode = ModeIso
		return pos, nil
	case cl&IsNum != 0:
		run := 0
		for pos+run < len(data) && classOf[data[pos+run]]&IsNum != 0 {
			run++
		}
		if run >= 6 {
			if err := w.PutBits(0x0, 3); err != nil { // 000: latch to NUM
				return pos, err
			}
			a.Mode = ModeNum
			return pos, nil
		}
		if err := w.PutBits(uint32(int(c-'0')+5), 5); err != nil {
			return pos, err
		}
		return pos + 1, nil
	case c >= 'A' && c <= 'Z':
		if err := w.PutBits(uint32(0x20+int(c-'A')), 6); err != nil {
			return pos, err
		}
		return pos + 1, nil
	case c == '*':
		if err := w.PutBits(uint32(0x20+0x1A), 6); err != nil {
			return pos, err
		}
		return pos + 1, nil
	default:
		if off, ok := alnuPunctOffset[c]; ok {
			if err := w.PutBits(uint32(0x20+0x1B+off), 6); err != nil {
				return pos, err
			}
			return pos + 1, nil
		}
		return pos, fmt.Errorf("compact: ALNU mode: unexpected byte %q", c)
	}
}

// isoPunct assigns the fixed 8-bit codes ISO mode uses for punctuation
// outside the alphanumeric set, starting after the 7-bit letter range.
var isoPunct = map[byte]int{
	' ': 0xF8, '!': 0xF9, '"': 0xFA, '%': 0xFB, '&': 0xFC,
	'\'': 0xE0, '(': 0xE1, ')': 0xE2, '+': 0xE3, ',': 0xE4,
	'-': 0xE5, '.': 0xE6, '/': 0xE7, ':': 0xE8, ';': 0xE9,
	'<': 0xEA, '=': 0xEB, '>': 0xEC, '?': 0xED, '_': 0xEE,
	'*': 0xEF,
}

func (a *Automaton) procIso(w *bitbuf.Buffer, data []byte, pos int) (int, error) {
	if pos >= len(data) {
		return pos, nil
	}
	c := data[pos]
	cl := classOf[c]
	switch {
	case cl&IsFNC1 != 0:
		if err := w.PutBits(0xFD, 8); err != nil {
			return pos, err
		}
		a.Mode = ModeNum
		return pos + 1, nil
	case cl&IsSep != 0:
		if err := w.PutBits(0x1F, 8); err != nil {
			return pos, err
		}
		a.Mode = ModeNum
		return pos + 1, nil
	case cl&IsNum != 0:
		lookahead := data[pos:]
		if len(lookahead) > 10 {
			lookahead = lookahead[:10]
		}
		numCnt := 0
		for _, b := range lookahead {
			if classOf[b]&IsNum == 0 {
				break
			}
			numCnt++
		}
		if numCnt >= 4 {
			if err := w.PutBits(0x0, 3); err != nil { // latch to NUM
				return pos, err
			}
			a.Mode = ModeNum
			return pos, nil
		}
		if err := w.PutBits(uint32(c-'0'), 5); err != nil {
			return pos, err
		}
		return pos + 1, nil
	case c >= 'A' && c <= 'Z':
		if err := w.PutBits(uint32(0x40+int(c-'A')), 7); err != nil {
			return pos, err
		}
		return pos + 1, nil
	case c >= 'a' && c <= 'z':
		if err := w.PutBits(uint32(0x5A+int(c-'a')), 7); err != nil {
			return pos, err
		}
		return pos + 1, nil
	default:
		if v, ok := isoPunct[c]; ok {
			if err := w.PutBits(uint32(v), 8); err != nil {
				return pos, err
			}
			return pos + 1, nil
		}
		return pos, fmt.Errorf("compact: ISO mode: unsupported byte %q", c)
	}
}

// procAlph implements the narrower ALPH mode used by the AI-90
// alphanumeric method path (pkg/method): uppercase letters and digits
// only, plus an FNC1 escape back to NUM.
func (a *Automaton) procAlph(w *bitbuf.Buffer, data []byte, pos int) (int, error) {
	if pos >= len(data) {
		return pos, nil
	}
	c := data[pos]
	switch {
	case classOf[c]&IsFNC1 != 0:
		if err := w.PutBits(31, 5); err != nil {
			return pos, err
		}
		a.Mode = ModeNum
		return pos + 1, nil
	case c >= 'A' && c <= 'Z':
		if err := w.PutBits(uint32(c-'A'), 5); err != nil {
			return pos, err
		}
		return pos + 1, nil
	case c >= '0' && c <= '9':
		if err := w.PutBits(uint32(c-'0')+4, 6); err != nil {
			return pos, err
		}
		return pos + 1, nil
	default:
		return pos, fmt.Errorf("compact: ALPH mode: unexpected byte %q", c)
	}
}

// FinishAlph emits ALPH mode's end-of-data terminator -- up to 5 bits of
// value 31, truncated the same way Finish truncates its ALNU-latch pad
// -- and returns the automaton to NUM mode. Callers run this once after
// their Step loop exhausts an AI-90 value in ALPH mode, since Step's
// own pos>=len(data) branch never fires from a `for pos < len(data)`
// driving loop.
func (a *Automaton) FinishAlph(w *bitbuf.Buffer, unused int) error {
	n := 5
	if unused < n {
		n = unused
	}
	if n <= 0 {
		a.Mode = ModeNum
		return nil
	}
	val := uint32(31) >> uint(5-n)
	if err := w.PutBits(val, n); err != nil {
		return err
	}
	a.Mode = ModeNum
	return nil
}

// Validate checks every byte of data against the legal character-class
// table, returning an error naming the first illegal byte's index.
// allowCaret controls whether '^' (the symbol-separator placeholder) is
// accepted: CC-A/B/C accept it (see SPEC_FULL.md's open-question entry
// on '^'); the DataBar Expanded path calls Validate with allowCaret
// false, so '^' is rejected here.
func Validate(data []byte, allowCaret bool) error {
	for i, c := range data {
		cl := classOf[c]
		if cl == 0 {
			return fmt.Errorf("compact: illegal character %q at index %d", c, i)
		}
		if c == '^' && !allowCaret {
			return fmt.Errorf("compact: symbol separator '^' not allowed at index %d", i)
		}
	}
	return nil
}

// Finish pads out the remaining `unused` bits of the final codeword
// with the 00100 (ISO-latch) pattern repeated and truncated to fit,
// GS1's standard compaction pad value.
func Finish(w *bitbuf.Buffer, unused int) error {
	for unused > 0 {
		n := 5
		if unused < n {
			n = unused
		}
		val := uint32(0x04) >> uint(5-n)
		if err := w.PutBits(val, n); err != nil {
			return err
		}
		unused -= n
	}
	return nil
}
