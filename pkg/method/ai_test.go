package method

import (
	"testing"

	"github.com/gs1/barcode-engine/pkg/bitbuf"
)

func TestParseAIsFixedLength(t *testing.T) {
	data := []byte("011234567890123115310110")
	ais, consumed := ParseAIs(data)
	if len(ais) != 2 {
		t.Fatalf("ParseAIs: got %d fields, want 2: %+v", len(ais), ais)
	}
	if ais[0].AI != "01" || ais[0].Value != "12345678901231" {
		t.Errorf("field 0 = %+v, want AI 01 value 12345678901231", ais[0])
	}
	if ais[1].AI != "15" || ais[1].Value != "310110" {
		t.Errorf("field 1 = %+v, want AI 15 value 310110", ais[1])
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d", consumed, len(data))
	}
	if consumed != ConsumedLen(ais, len(ais)) {
		t.Errorf("consumed = %d, want %d", consumed, ConsumedLen(ais, len(ais)))
	}
}

func TestParseAIsVariableLengthWithSeparator(t *testing.T) {
	data := []byte("10LOT123#21SERIAL1")
	ais, consumed := ParseAIs(data)
	if len(ais) != 2 {
		t.Fatalf("ParseAIs: got %d fields, want 2: %+v", len(ais), ais)
	}
	if ais[0].AI != "10" || ais[0].Value != "LOT123" {
		t.Errorf("field 0 = %+v, want AI 10 value LOT123", ais[0])
	}
	if ais[1].AI != "21" || ais[1].Value != "SERIAL1" {
		t.Errorf("field 1 = %+v, want AI 21 value SERIAL1", ais[1])
	}
	if consumed != len(data) {
		t.Errorf("consumed = %d, want %d (whole string, last field has no trailing separator)", consumed, len(data))
	}
}

func TestParseAIsWeightFamily(t *testing.T) {
	data := []byte("01123456789012313103000200")
	ais, _ := ParseAIs(data)
	if len(ais) != 2 {
		t.Fatalf("ParseAIs: got %d fields, want 2: %+v", len(ais), ais)
	}
	if ais[1].AI != "3103" || ais[1].Value != "000200" {
		t.Errorf("field 1 = %+v, want AI 3103 value 000200", ais[1])
	}
}

func TestConsumedLenPartial(t *testing.T) {
	ais := []AIField{{RawLen: 16}, {RawLen: 6}, {RawLen: 7}}
	if got := ConsumedLen(ais, 2); got != 22 {
		t.Errorf("ConsumedLen(ais,2) = %d, want 22", got)
	}
	if got := ConsumedLen(ais, 0); got != 0 {
		t.Errorf("ConsumedLen(ais,0) = %d, want 0", got)
	}
	if got := ConsumedLen(ais, 10); got != 29 {
		t.Errorf("ConsumedLen(ais,10) = %d, want 29 (capped at len(ais))", got)
	}
}

func TestSelectCompositeDate(t *testing.T) {
	if m := SelectComposite([]AIField{{AI: "11", Value: "210101"}}); m != CompDate {
		t.Errorf("SelectComposite(AI 11) = %v, want CompDate", m)
	}
	if m := SelectComposite([]AIField{{AI: "17", Value: "210101"}}); m != CompDate {
		t.Errorf("SelectComposite(AI 17) = %v, want CompDate", m)
	}
}

func TestSelectCompositeAI90(t *testing.T) {
	if m := SelectComposite([]AIField{{AI: "90", Value: "ABC123"}}); m != CompAI90 {
		t.Errorf("SelectComposite(AI 90) = %v, want CompAI90", m)
	}
}

func TestSelectCompositeGeneralFallback(t *testing.T) {
	if m := SelectComposite(nil); m != CompGeneral {
		t.Errorf("SelectComposite(nil) = %v, want CompGeneral", m)
	}
	if m := SelectComposite([]AIField{{AI: "21", Value: "X"}}); m != CompGeneral {
		t.Errorf("SelectComposite(AI 21) = %v, want CompGeneral", m)
	}
}

func TestPackCompositeDateFlag(t *testing.T) {
	w := bitbuf.New(4)
	if err := PackCompositeDate(w, "17", 24, 6, 15); err != nil {
		t.Fatal(err)
	}
	if w.Len() != 17 {
		t.Fatalf("len = %d, want 17 (16-bit date + 1-bit AI flag)", w.Len())
	}
	flag, _ := w.GetBits(16, 1)
	if flag != 1 {
		t.Errorf("AI-17 flag = %d, want 1", flag)
	}
}

func TestWriteCompositeHeaderWidths(t *testing.T) {
	for m, wantBits := range map[Composite]int{CompGeneral: 1, CompDate: 2, CompAI90: 2} {
		w := bitbuf.New(4)
		if err := WriteCompositeHeader(w, m); err != nil {
			t.Fatalf("WriteCompositeHeader(%v): %v", m, err)
		}
		if w.Len() != wantBits {
			t.Errorf("WriteCompositeHeader(%v) wrote %d bits, want %d", m, w.Len(), wantBits)
		}
	}
}
