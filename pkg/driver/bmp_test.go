package driver

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestBMPDriverHeaderDimensions(t *testing.T) {
	var buf bytes.Buffer
	d := NewBMPDriver(&buf, 2, 2)
	rows := []Row{
		{Widths: []int{1, 1, 1}, Height: 10},
		{Widths: []int{1, 1, 1}, Height: 10, Guards: true},
	}
	for _, r := range rows {
		if err := d.AddRow(r); err != nil {
			t.Fatal(err)
		}
	}
	if err := d.Finalize(); err != nil {
		t.Fatal(err)
	}

	data := buf.Bytes()
	if len(data) < 54 {
		t.Fatalf("output too short for a BMP header: %d bytes", len(data))
	}
	if string(data[0:2]) != "BM" {
		t.Fatalf("magic = %q, want BM", data[0:2])
	}
	width := int32(binary.LittleEndian.Uint32(data[18:22]))
	height := int32(binary.LittleEndian.Uint32(data[22:26]))
	if width != 3*2 {
		t.Errorf("width = %d, want %d", width, 3*2)
	}
	// two rows of height 10*2=20 plus one guard gap of sepHeight=2
	wantHeight := 20 + 20 + 2
	if int(height) != wantHeight {
		t.Errorf("height = %d, want %d", height, wantHeight)
	}
	bpp := binary.LittleEndian.Uint16(data[28:30])
	if bpp != 24 {
		t.Errorf("bits per pixel = %d, want 24", bpp)
	}
}

func TestBMPDriverFinalizeNoRowsErrors(t *testing.T) {
	var buf bytes.Buffer
	d := NewBMPDriver(&buf, 1, 1)
	if err := d.Finalize(); err == nil {
		t.Fatal("expected an error finalizing with no rows")
	}
}

func TestNewBMPDriverDefaults(t *testing.T) {
	var buf bytes.Buffer
	d := NewBMPDriver(&buf, 0, 0)
	if d.pixMult != 1 {
		t.Errorf("pixMult = %d, want 1", d.pixMult)
	}
	if d.sepHeight != 1 {
		t.Errorf("sepHeight = %d, want 1", d.sepHeight)
	}
}
