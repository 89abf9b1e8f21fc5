package method

import (
	"testing"

	"github.com/gs1/barcode-engine/pkg/bitbuf"
)

func TestSelectLinearGeneral(t *testing.T) {
	if m := SelectLinear(nil); m != LinGeneral {
		t.Errorf("SelectLinear(nil) = %v, want LinGeneral", m)
	}
	if m := SelectLinear([]AIField{{AI: "21", Value: "X"}}); m != LinGeneral {
		t.Errorf("SelectLinear with non-01 leading AI = %v, want LinGeneral", m)
	}
}

func TestSelectLinearFixedWeight(t *testing.T) {
	ais := []AIField{{AI: "01", Value: "12345678901231"}, {AI: "3103", Value: "000200"}}
	if m := SelectLinear(ais); m != LinFixedWeight3103 {
		t.Errorf("SelectLinear(01+3103) = %v, want LinFixedWeight3103", m)
	}
}

func TestSelectLinearChainedDate(t *testing.T) {
	ais := []AIField{
		{AI: "01", Value: "12345678901231"},
		{AI: "3102", Value: "000200"},
		{AI: "11", Value: "210101"},
	}
	if m := SelectLinear(ais); m != LinWeight310xDate {
		t.Errorf("SelectLinear(01+310x+11) = %v, want LinWeight310xDate", m)
	}
}

func TestSelectLinearChainedDateAcceptsAllFourDateAIs(t *testing.T) {
	for _, dateAI := range []string{"11", "13", "15", "17"} {
		ais := []AIField{
			{AI: "01", Value: "12345678901231"},
			{AI: "3202", Value: "000200"},
			{AI: dateAI, Value: "210101"},
		}
		if m := SelectLinear(ais); m != LinWeight320xDate {
			t.Errorf("SelectLinear(01+320x+%s) = %v, want LinWeight320xDate", dateAI, m)
		}
	}
}

func TestSelectLinearWeightNoDateFallsBackWithoutDateAI(t *testing.T) {
	ais := []AIField{
		{AI: "01", Value: "12345678901231"},
		{AI: "3102", Value: "000200"},
	}
	if m := SelectLinear(ais); m != LinWeight310xNoDate {
		t.Errorf("SelectLinear(01+310x) = %v, want LinWeight310xNoDate", m)
	}
}

func TestSelectLinear3202(t *testing.T) {
	ais := []AIField{{AI: "01", Value: "12345678901231"}, {AI: "3202", Value: "000200"}}
	if m := SelectLinear(ais); m != LinFixedWeight3202 {
		t.Errorf("SelectLinear(01+3202) = %v, want LinFixedWeight3202", m)
	}
}

func TestWriteWeightDateHeaderDistinguishesAllEightVariants(t *testing.T) {
	seen := map[uint32]bool{}
	for _, family320x := range []bool{false, true} {
		for _, dateAI := range []string{"11", "13", "15", "17"} {
			w := bitbuf.New(4)
			if err := WriteWeightDateHeader(w, family320x, dateAI); err != nil {
				t.Fatalf("WriteWeightDateHeader(%v,%s): %v", family320x, dateAI, err)
			}
			if w.Len() != 7 {
				t.Errorf("WriteWeightDateHeader(%v,%s): wrote %d bits, want 7", family320x, dateAI, w.Len())
			}
			val, err := w.GetBits(0, 7)
			if err != nil {
				t.Fatal(err)
			}
			if seen[val] {
				t.Errorf("WriteWeightDateHeader(%v,%s): header value 0x%x collides with another variant", family320x, dateAI, val)
			}
			seen[val] = true
		}
	}
	if err := WriteWeightDateHeader(bitbuf.New(4), false, "99"); err == nil {
		t.Error("WriteWeightDateHeader with an unsupported date AI: expected error")
	}
}

func TestSelectLinearAI10Fallback(t *testing.T) {
	ais := []AIField{{AI: "01", Value: "12345678901231"}, {AI: "10", Value: "LOT1"}}
	if m := SelectLinear(ais); m != LinGeneralWithAI10 {
		t.Errorf("SelectLinear(01+10) = %v, want LinGeneralWithAI10", m)
	}
}

func TestWriteLinearHeaderRoundTrip(t *testing.T) {
	for m, h := range linHeaders {
		w := bitbuf.New(4)
		if err := WriteLinearHeader(w, m); err != nil {
			t.Fatalf("WriteLinearHeader(%v): %v", m, err)
		}
		if w.Len() != h.n {
			t.Errorf("WriteLinearHeader(%v): wrote %d bits, want %d", m, w.Len(), h.n)
		}
	}
}

func TestPackGTINRoundTrip(t *testing.T) {
	w := bitbuf.New(6)
	if err := PackGTIN(w, "12345678901231"[:13]); err != nil { // indicator digit + item reference, check digit dropped
		t.Fatal(err)
	}
	if w.Len() != 44 {
		t.Fatalf("PackGTIN wrote %d bits, want 44", w.Len())
	}
}

func TestPackPID12RoundTrip(t *testing.T) {
	w := bitbuf.New(5)
	if err := PackPID12(w, "234567890123"); err != nil {
		t.Fatal(err)
	}
	if w.Len() != 40 {
		t.Fatalf("PackPID12 wrote %d bits, want 40", w.Len())
	}
	group, err := w.GetBits(0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if group != 234 {
		t.Errorf("first 10-bit group = %d, want 234", group)
	}
	if err := PackPID12(bitbuf.New(5), "12345"); err == nil {
		t.Error("PackPID12 with a non-12-digit value: expected error")
	}
}

func TestPackWeightRange(t *testing.T) {
	w := bitbuf.New(4)
	if err := PackWeight(w, 12345); err != nil {
		t.Fatal(err)
	}
	if err := PackWeight(w, -1); err == nil {
		t.Error("PackWeight(-1): expected error")
	}
	if err := PackWeight(w, 1<<20); err == nil {
		t.Error("PackWeight(2^20): expected error")
	}
}

func TestPackDateValidation(t *testing.T) {
	w := bitbuf.New(4)
	if err := PackDate(w, 24, 2, 29); err != nil {
		t.Fatal(err)
	}
	if err := PackDate(w, 24, 13, 1); err == nil {
		t.Error("PackDate(month=13): expected error")
	}
	if err := PackDate(w, 24, 1, 0); err == nil {
		t.Error("PackDate(day=0): expected error")
	}
}
