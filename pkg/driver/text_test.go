package driver

import (
	"bytes"
	"strings"
	"testing"
)

func TestTextDriverRendersModules(t *testing.T) {
	var buf bytes.Buffer
	d := NewTextDriver(&buf)
	if err := d.AddRow(Row{Widths: []int{2, 3, 1}, LeftPad: 1, RightPad: 1}); err != nil {
		t.Fatal(err)
	}
	if err := d.Finalize(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (row + summary): %q", len(lines), lines)
	}
	want := " ##   # "
	if lines[0] != want {
		t.Errorf("row line = %q, want %q", lines[0], want)
	}
	if lines[1] != "(1 rows)" {
		t.Errorf("summary line = %q, want %q", lines[1], "(1 rows)")
	}
}

func TestTextDriverWhtFirst(t *testing.T) {
	var buf bytes.Buffer
	d := NewTextDriver(&buf)
	if err := d.AddRow(Row{Widths: []int{2, 2}, WhtFirst: true}); err != nil {
		t.Fatal(err)
	}
	got := strings.SplitN(buf.String(), "\n", 2)[0]
	if got != "  ##" {
		t.Errorf("row line = %q, want %q", got, "  ##")
	}
}

func TestTextDriverGuardsLine(t *testing.T) {
	var buf bytes.Buffer
	d := NewTextDriver(&buf)
	if err := d.AddRow(Row{Widths: []int{4}, Guards: true}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[1], "====") {
		t.Fatalf("expected a guard line of '=' after a Guards row, got %q", lines)
	}
}
