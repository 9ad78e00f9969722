package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"typocheck/internal/diag"
	"typocheck/internal/source"
	"typocheck/internal/spell"
)

const testEntries = "tpyo->typo\nwich->which, witch,\nteh->the, common transposition\n"

func newTestChecker(t *testing.T) *spell.Checker {
	t.Helper()
	checker, err := spell.New(spell.Options{Builtin: []string{}})
	if err != nil {
		t.Fatalf("spell.New failed: %v", err)
	}
	if err := checker.Table().LoadReader("test", strings.NewReader(testEntries), nil); err != nil {
		t.Fatalf("LoadReader failed: %v", err)
	}
	return checker
}

func checkContent(t *testing.T, content string, opts CheckOptions) (*source.FileSet, *FileResult) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	result, err := CheckFile(context.Background(), fs, newTestChecker(t), path, opts)
	if err != nil {
		t.Fatalf("CheckFile failed: %v", err)
	}
	return fs, result
}

func TestCheckFileClassifiesFindings(t *testing.T) {
	fs, result := checkContent(t, "a tpyo\nwich one\nteh thing\n", CheckOptions{})

	items := result.Bag.Items()
	if len(items) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(items))
	}

	tests := []struct {
		code  diag.Code
		line  uint32
		col   uint32
		fixes int
		app   diag.FixApplicability
	}{
		{diag.TypoConfident, 1, 3, 1, diag.FixAlwaysSafe},
		{diag.TypoAmbiguous, 2, 1, 2, diag.FixNeedsReview},
		{diag.TypoReason, 3, 1, 1, diag.FixNeedsReview},
	}
	for i, tt := range tests {
		d := items[i]
		if d.Code != tt.code {
			t.Errorf("items[%d].Code = %s, want %s", i, d.Code.ID(), tt.code.ID())
		}
		start, _ := fs.Resolve(d.Primary)
		if start.Line != tt.line || start.Col != tt.col {
			t.Errorf("items[%d] at %d:%d, want %d:%d", i, start.Line, start.Col, tt.line, tt.col)
		}
		if len(d.Fixes) != tt.fixes {
			t.Errorf("items[%d] has %d fixes, want %d", i, len(d.Fixes), tt.fixes)
			continue
		}
		if d.Fixes[0].Applicability != tt.app {
			t.Errorf("items[%d] applicability = %s, want %s", i, d.Fixes[0].Applicability, tt.app)
		}
	}
}

func TestCheckFileFixEditsMatchWord(t *testing.T) {
	fs, result := checkContent(t, "a tpyo here\n", CheckOptions{})

	items := result.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	edit := items[0].Fixes[0].Edits[0]
	if edit.OldText != "tpyo" || edit.NewText != "typo" {
		t.Fatalf("edit = %q -> %q", edit.OldText, edit.NewText)
	}
	file := fs.Get(items[0].Primary.File)
	got := string(file.Content[edit.Span.Start:edit.Span.End])
	if got != "tpyo" {
		t.Fatalf("span slice = %q, want the misspelled word", got)
	}
}

func TestInlineDirectiveBareSkipsLine(t *testing.T) {
	_, result := checkContent(t, "tpyo here // typocheck:ignore\nwich there\n", CheckOptions{})

	items := result.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	if items[0].Code != diag.TypoAmbiguous {
		t.Fatalf("surviving code = %s, want the second line's finding", items[0].Code.ID())
	}
}

func TestInlineDirectiveWithWords(t *testing.T) {
	_, result := checkContent(t, "tpyo wich // typocheck:ignore wich\n", CheckOptions{})

	items := result.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(items))
	}
	if items[0].Code != diag.TypoConfident {
		t.Fatalf("surviving code = %s, want the tpyo finding", items[0].Code.ID())
	}
}

func TestInlineDirectiveWordListIsCaseInsensitive(t *testing.T) {
	_, result := checkContent(t, "WICH // typocheck:ignore Wich\n", CheckOptions{})
	if got := result.Bag.Len(); got != 0 {
		t.Fatalf("got %d diagnostics, want 0", got)
	}
}

func TestCheckFileRunLevelIgnoreWords(t *testing.T) {
	_, result := checkContent(t, "tpyo wich\n", CheckOptions{
		IgnoreWords: map[string]bool{"tpyo": true},
	})

	items := result.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.TypoAmbiguous {
		t.Fatalf("items = %d, want only the wich finding", len(items))
	}
}

func TestCheckFileMissingFile(t *testing.T) {
	fs := source.NewFileSet()
	result, err := CheckFile(context.Background(), fs, newTestChecker(t), filepath.Join(t.TempDir(), "absent.txt"), CheckOptions{})
	if err != nil {
		t.Fatalf("CheckFile returned a hard error: %v", err)
	}
	items := result.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("expected one IO diagnostic, got %+v", items)
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.txt", "a tpyo\n")
	write("b.txt", "clean text\n")
	write("c.bin", "binary\x00data")
	write(".hidden.txt", "tpyo\n")

	fs, results, err := CheckDir(context.Background(), dir, newTestChecker(t), CheckOptions{}, 2)
	if err != nil {
		t.Fatalf("CheckDir failed: %v", err)
	}
	if fs.Len() != 3 {
		t.Fatalf("fs.Len = %d, want 3 (hidden file excluded)", fs.Len())
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// результаты идут в отсортированном порядке путей
	if filepath.Base(results[0].Path) != "a.txt" {
		t.Errorf("results[0] = %s", results[0].Path)
	}
	if results[0].Bag.Len() != 1 {
		t.Errorf("a.txt diagnostics = %d, want 1", results[0].Bag.Len())
	}
	if results[1].Bag.Len() != 0 {
		t.Errorf("b.txt diagnostics = %d, want 0", results[1].Bag.Len())
	}
	if !results[2].Skipped {
		t.Error("binary file must be skipped")
	}
}

func TestCheckDirSkipPatterns(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "skip.log"), []byte("tpyo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("tpyo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, results, err := CheckDir(context.Background(), dir, newTestChecker(t), CheckOptions{
		SkipPatterns: []string{"*.log"},
	}, 0)
	if err != nil {
		t.Fatalf("CheckDir failed: %v", err)
	}
	if len(results) != 1 || filepath.Base(results[0].Path) != "keep.txt" {
		t.Fatalf("results = %+v", results)
	}
}

func TestMatchCase(t *testing.T) {
	tests := []struct {
		word      string
		candidate string
		want      string
	}{
		{"tpyo", "typo", "typo"},
		{"Tpyo", "typo", "Typo"},
		{"TPYO", "typo", "TYPO"},
		{"tPYO", "typo", "typo"},
	}
	for _, tt := range tests {
		if got := matchCase(tt.word, tt.candidate); got != tt.want {
			t.Errorf("matchCase(%q, %q) = %q, want %q", tt.word, tt.candidate, got, tt.want)
		}
	}
}

func TestDictionaryDigest(t *testing.T) {
	base := CheckOptions{Builtin: []string{"clear"}}
	d1, err := dictionaryDigest(base)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := dictionaryDigest(CheckOptions{Builtin: []string{"clear"}})
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Error("same inputs must produce the same digest")
	}

	d3, err := dictionaryDigest(CheckOptions{
		Builtin:     []string{"clear"},
		IgnoreWords: map[string]bool{"teh": true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d1 == d3 {
		t.Error("different ignore sets must change the digest")
	}
}
