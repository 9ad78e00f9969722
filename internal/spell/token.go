package spell

import (
	"iter"

	"typocheck/internal/dictionary"
)

// Token is one candidate word produced by a tokenizer. Start is the
// zero-based byte offset of the token within the tokenized line.
type Token interface {
	Text() string
	Start() int
}

// Tokenizer splits a line into tokens. A simple regex over word characters
// is enough for most inputs; callers with language-aware needs can supply
// their own token type as long as it exposes the matched text and offset.
type Tokenizer[T Token] func(line string) iter.Seq[T]

// Issue is one detected misspelling. It keeps the token that produced the
// match so the caller can recover position and context.
type Issue[T Token] struct {
	// Word is the token text with its original casing.
	Word string
	// LWord is the lowercased form that matched the table.
	LWord string
	// Correction is the table entry for LWord.
	Correction *dictionary.Correction
	// Token is the tokenizer's token for this word.
	Token T
}
