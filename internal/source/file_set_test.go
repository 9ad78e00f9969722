package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.txt", []byte("ab\ncd\n"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Fatal("virtual flag not set")
	}
	if got := f.NumLines(); got != 2 {
		t.Fatalf("NumLines = %d, want 2", got)
	}
	if got := f.GetLine(1); got != "ab" {
		t.Errorf("GetLine(1) = %q", got)
	}
	if got := f.GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q", got)
	}

	start, end := f.LineSpan(2)
	if start != 3 || end != 5 {
		t.Errorf("LineSpan(2) = (%d, %d), want (3, 5)", start, end)
	}
}

func TestNumLinesWithoutTrailingNewline(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.txt", []byte("ab\ncd")))

	if got := f.NumLines(); got != 2 {
		t.Fatalf("NumLines = %d, want 2", got)
	}
	if got := f.GetLine(2); got != "cd" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestResolveSpanPositions(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.txt", []byte("ab\ncd\n"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{
			name:      "first line",
			span:      Span{File: id, Start: 0, End: 2},
			wantStart: LineCol{Line: 1, Col: 1},
			wantEnd:   LineCol{Line: 1, Col: 3},
		},
		{
			name:      "second line",
			span:      Span{File: id, Start: 3, End: 5},
			wantStart: LineCol{Line: 2, Col: 1},
			wantEnd:   LineCol{Line: 2, Col: 3},
		},
		{
			name:      "newline belongs to the line it terminates",
			span:      Span{File: id, Start: 2, End: 2},
			wantStart: LineCol{Line: 1, Col: 3},
			wantEnd:   LineCol{Line: 1, Col: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := fs.Resolve(tt.span)
			if start != tt.wantStart {
				t.Errorf("start = %+v, want %+v", start, tt.wantStart)
			}
			if end != tt.wantEnd {
				t.Errorf("end = %+v, want %+v", end, tt.wantEnd)
			}
		})
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	content := []byte("\xEF\xBB\xBFfirst\r\nsecond\r\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	f := fs.Get(id)

	if f.Flags&FileHadBOM == 0 {
		t.Error("BOM flag not set")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("CRLF flag not set")
	}
	if string(f.Content) != "first\nsecond\n" {
		t.Errorf("content = %q", f.Content)
	}
	if got := f.GetLine(2); got != "second" {
		t.Errorf("GetLine(2) = %q", got)
	}
}

func TestGetByPathReturnsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("mem.txt", []byte("old\n"))
	fs.AddVirtual("mem.txt", []byte("new\n"))

	f, ok := fs.GetByPath("mem.txt")
	if !ok {
		t.Fatal("path not found")
	}
	if string(f.Content) != "new\n" {
		t.Errorf("content = %q, want the latest entry", f.Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2 (both entries kept)", fs.Len())
	}
}
