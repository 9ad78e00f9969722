// Package tokenize provides the stock line tokenizers used by the driver:
// a regex word tokenizer mirroring the classic word pattern, and a UAX-29
// segmenter for text where simple word characters are not enough.
package tokenize

import (
	"iter"
	"regexp"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Word is a token produced by the stock tokenizers.
type Word struct {
	text  string
	start int
}

// Text returns the matched substring.
func (w Word) Text() string { return w.text }

// Start returns the zero-based byte offset of the token within its line.
func (w Word) Start() int { return w.start }

// wordPattern matches word-like runs: letters, digits, underscore, hyphen,
// and both apostrophe forms so contractions stay in one token.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_'’-]+`)

// Words lazily yields regex word tokens with their byte offsets.
func Words(line string) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		pos := 0
		for pos < len(line) {
			loc := wordPattern.FindStringIndex(line[pos:])
			if loc == nil {
				return
			}
			start := pos + loc[0]
			end := pos + loc[1]
			if !yield(Word{text: line[start:end], start: start}) {
				return
			}
			pos = end
		}
	}
}

// Unicode yields UAX-29 word segments that contain at least one letter or
// digit. Offsets come from cumulative segment lengths: the segmenter covers
// the whole line, so the running total is exact.
func Unicode(line string) iter.Seq[Word] {
	return func(yield func(Word) bool) {
		tokens := words.FromString(line)
		pos := 0
		for tokens.Next() {
			segment := tokens.Value()
			start := pos
			pos += len(segment)
			if !wordLike(segment) {
				continue
			}
			if !yield(Word{text: segment, start: start}) {
				return
			}
		}
	}
}

func wordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
