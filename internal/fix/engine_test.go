package fix

import (
	"os"
	"path/filepath"
	"testing"

	"typocheck/internal/diag"
	"typocheck/internal/source"
)

func writeTempFile(t *testing.T, content string) (string, *source.FileSet, source.FileID) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	return path, fs, id
}

func replaceDiag(id source.FileID, start, end uint32, old, new, fixID string, app diag.FixApplicability) diag.Diagnostic {
	span := source.Span{File: id, Start: start, End: end}
	return diag.NewWarning(diag.TypoConfident, span, "test finding").WithFix(diag.Fix{
		ID:            fixID,
		Title:         "replace " + old + " with " + new,
		Applicability: app,
		Edits:         []diag.TextEdit{{Span: span, NewText: new, OldText: old}},
	})
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestApplyAllWritesSafeFixes(t *testing.T) {
	path, fs, id := writeTempFile(t, "a tpyo here\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 2, 6, "tpyo", "typo", "fix-1", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	if got := readFile(t, path); got != "a typo here\n" {
		t.Fatalf("file = %q", got)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 1 {
		t.Fatalf("file changes = %+v", res.FileChanges)
	}
}

func TestApplyAllSkipsNeedsReview(t *testing.T) {
	path, fs, id := writeTempFile(t, "wich one\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 0, 4, "wich", "which", "fix-1", diag.FixNeedsReview),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("expected ErrNoFixes")
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "applicability is needs-review" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := readFile(t, path); got != "wich one\n" {
		t.Fatalf("file modified: %q", got)
	}
}

func TestApplyShiftsLaterEdits(t *testing.T) {
	// Первая замена длиннее оригинала, смещения должны сдвинуться
	path, fs, id := writeTempFile(t, "teh wich\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 0, 3, "teh", "the actual", "fix-1", diag.FixAlwaysSafe),
		replaceDiag(id, 4, 8, "wich", "which", "fix-2", diag.FixAlwaysSafe),
	}

	if _, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := readFile(t, path); got != "the actual which\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestApplyOnce(t *testing.T) {
	path, fs, id := writeTempFile(t, "teh wich\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 0, 3, "teh", "the", "fix-1", diag.FixAlwaysSafe),
		replaceDiag(id, 4, 8, "wich", "which", "fix-2", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "fix-1" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if got := readFile(t, path); got != "the wich\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestApplyByIDSet(t *testing.T) {
	path, fs, id := writeTempFile(t, "teh wich\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 0, 3, "teh", "the", "fix-1", diag.FixAlwaysSafe),
		replaceDiag(id, 4, 8, "wich", "which", "fix-2", diag.FixNeedsReview),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{
		Mode:      ApplyModeIDs,
		TargetIDs: []string{"fix-2", "no-such-fix"},
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "fix-2" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].ID != "no-such-fix" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := readFile(t, path); got != "teh which\n" {
		t.Fatalf("file = %q", got)
	}
}

func TestApplyDryRun(t *testing.T) {
	path, fs, id := writeTempFile(t, "a tpyo here\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 2, 6, "tpyo", "typo", "fix-1", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll, DryRun: true})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	if got := readFile(t, path); got != "a tpyo here\n" {
		t.Fatalf("dry run modified the file: %q", got)
	}
}

func TestApplyRejectsStaleOldText(t *testing.T) {
	path, fs, id := writeTempFile(t, "a tpyo here\n")

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 2, 6, "oops", "typo", "fix-1", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("expected ErrNoFixes")
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "existing text does not match expected content" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
	if got := readFile(t, path); got != "a tpyo here\n" {
		t.Fatalf("file modified: %q", got)
	}
}

func TestApplySkipsConflictingFixes(t *testing.T) {
	_, fs, id := writeTempFile(t, "wich one\n")

	// два кандидата на один и тот же span
	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 0, 4, "wich", "which", "fix-1", diag.FixAlwaysSafe),
		replaceDiag(id, 0, 4, "wich", "witch", "fix-2", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(res.Applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(res.Applied))
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mem.txt", []byte("a tpyo here\n"))

	diagnostics := []diag.Diagnostic{
		replaceDiag(id, 2, 6, "tpyo", "typo", "fix-1", diag.FixAlwaysSafe),
	}

	res, err := Apply(fs, diagnostics, ApplyOptions{Mode: ApplyModeAll})
	if err == nil {
		t.Fatal("expected ErrNoFixes")
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Fatalf("skipped = %+v", res.Skipped)
	}
}
