package method

import "strings"

// fixedLenAI maps an Application Identifier to the fixed digit length of
// its value field (not counting the AI code itself), for the AIs the
// method selector needs to recognise by name. Everything else falls
// back to the variable-length, FNC1-terminated rule.
var fixedLenAI = map[string]int{
	"00": 18,
	"01": 14,
	"02": 14,
	"11": 6,
	"12": 6,
	"13": 6,
	"15": 6,
	"16": 6,
	"17": 6,
	"20": 2,
}

// variableMaxAI caps how many bytes a variable-length AI's value
// consumes when it runs to the end of the string without ever hitting
// an FNC1 separator (the last field in a data string is allowed to omit
// its trailing FNC1).
var variableMaxAI = map[string]int{
	"10": 20,
	"21": 20,
	"22": 20,
	"30": 8,
	"37": 8,
	"90": 30,
	"8004": 30,
}

// aiLen classifies an AI code, returning its fixed value length (>0) or
// 0 if the AI is variable-length / unrecognised.
func aiLen(ai string) (fixed int, isFixed bool) {
	if n, ok := fixedLenAI[ai]; ok {
		return n, true
	}
	// 310n-316n (net weight/measure family) and 320n-329n (same, other
	// unit) are 4-character AIs whose value is always a fixed 6 digits;
	// 392n/393n (amount payable) are the family's variable-length
	// exception, terminated by FNC1 like AI 10/21/90.
	if len(ai) == 4 && (strings.HasPrefix(ai, "31") || strings.HasPrefix(ai, "32")) {
		if ai[:2] == "39" { // unreachable given the HasPrefix guard, kept for clarity
			return 0, false
		}
		return 6, true
	}
	return 0, false
}

// aiCodeLen returns how many leading digits of data are the AI code
// itself: 4 for the weight/measure/amount family (31xx/32xx/39xx), 2
// otherwise. GS1's own AI table has 3-digit codes too, but none the
// method selector needs to recognise, so they fall through as
// unrecognised (variable, FNC1-terminated) AIs.
func aiCodeLen(data []byte, pos int) int {
	if pos+4 <= len(data) {
		p2 := string(data[pos : pos+2])
		if p2 == "31" || p2 == "32" || p2 == "39" {
			return 4
		}
	}
	return 2
}

// ParseAIs walks data from the start, splitting it into a leading chain
// of (AI, value) fields. It stops -- returning what it has so far -- at
// the first AI it cannot confidently bound (an unrecognised code whose
// value runs past an embedded FNC1 with no separator convention known),
// at an FNC1 that isn't followed by another AI, or at end of data.
//
// This never needs to be exhaustive: the method selector only inspects
// the first two or three fields, and whatever ParseAIs doesn't consume
// is left for the general compaction automaton to process as raw bytes
// starting at the returned offset, exactly as GS1 data strings are
// designed to be re-entrant at any FNC1 boundary.
func ParseAIs(data []byte) ([]AIField, int) {
	var fields []AIField
	pos := 0
	for pos < len(data) {
		if data[pos] == '#' || data[pos] == 0 {
			break
		}
		codeLen := aiCodeLen(data, pos)
		if pos+codeLen > len(data) {
			break
		}
		ai := string(data[pos : pos+codeLen])
		valStart := pos + codeLen
		fixed, isFixed := aiLen(ai)
		var valEnd int
		if isFixed {
			valEnd = valStart + fixed
			if valEnd > len(data) {
				break
			}
		} else {
			maxLen, ok := variableMaxAI[ai]
			if !ok {
				maxLen = 30 // GS1's own ceiling on a single AI's value length
			}
			valEnd = valStart
			for valEnd < len(data) && data[valEnd] != '#' && data[valEnd] != 0 && valEnd-valStart < maxLen {
				valEnd++
			}
		}
		fieldStart := pos
		pos = valEnd
		if !isFixed && pos < len(data) && data[pos] == '#' {
			pos++ // consume the FNC1 terminating a variable-length field
		}
		fields = append(fields, AIField{AI: ai, Value: string(data[valStart:valEnd]), RawLen: pos - fieldStart})
	}
	return fields, pos
}

// ConsumedLen sums the RawLen of the first n fields, the byte offset in
// the original data at which general compaction should resume once the
// method selector has packed those n leading fields into a fixed-width
// header.
func ConsumedLen(ais []AIField, n int) int {
	total := 0
	for i := 0; i < n && i < len(ais); i++ {
		total += ais[i].RawLen
	}
	return total
}
