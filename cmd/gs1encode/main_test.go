package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLinesSkipsBlankAndCommentLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payloads.txt")
	content := "0112345678901231\n\n# a comment\n  \n21SERIAL1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := readLines(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0112345678901231", "21SERIAL1"}
	if len(lines) != len(want) {
		t.Fatalf("readLines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, err := readLines(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}
