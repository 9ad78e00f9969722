package diag

import (
	"typocheck/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the span's current content with NewText. OldText, when
// non-empty, is verified against the file before the edit is applied.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// FixApplicability tells the fix engine whether an edit is safe to apply
// without a human confirming it.
type FixApplicability uint8

const (
	// FixAlwaysSafe marks corrections with exactly one candidate and no reason.
	FixAlwaysSafe FixApplicability = iota
	// FixNeedsReview marks ambiguous corrections (several candidates or a reason).
	FixNeedsReview
)

func (a FixApplicability) String() string {
	switch a {
	case FixAlwaysSafe:
		return "always-safe"
	case FixNeedsReview:
		return "needs-review"
	}
	return "unknown"
}

// Fix is one way to resolve a diagnostic.
type Fix struct {
	ID            string
	Title         string
	Applicability FixApplicability
	Edits         []TextEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
