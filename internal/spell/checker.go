package spell

import (
	"iter"
	"strings"

	"typocheck/internal/dictionary"
)

// escapeLetters are the single-letter escape-sequence names: bell, backspace,
// form feed, newline, carriage return, tab, vertical tab.
const escapeLetters = "abfnrtv"

// Options configures a new Checker.
type Options struct {
	// Builtin lists the built-in dictionaries to merge at construction,
	// sealing the table. nil means the default set (clear, rare). An
	// explicitly empty slice skips the bulk load so the caller can control
	// manual load order and seal later via Table().LoadBuiltin.
	Builtin []string
	// IgnoreWordsCased is matched against token text before lowercasing.
	IgnoreWordsCased map[string]bool
}

// Checker owns the correction table and the engine-level ignore set.
//
// The table is mutated only by explicit load calls; checking is read-only.
// Concurrent loads, or a load concurrent with a check, must be serialized by
// the caller.
type Checker struct {
	table       *dictionary.Table
	ignoreCased map[string]bool
}

// New constructs a Checker, optionally performing the bulk built-in load.
func New(opts Options) (*Checker, error) {
	c := &Checker{
		table:       dictionary.NewTable(),
		ignoreCased: opts.IgnoreWordsCased,
	}
	if c.ignoreCased == nil {
		c.ignoreCased = make(map[string]bool)
	}

	builtin := opts.Builtin
	if builtin == nil {
		builtin = dictionary.DefaultBuiltin()
	}
	if len(builtin) > 0 {
		if err := c.table.LoadBuiltin(builtin, nil); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewFromTable wraps an already populated table, e.g. one restored from the
// dictionary disk cache.
func NewFromTable(table *dictionary.Table, ignoreCased map[string]bool) *Checker {
	if ignoreCased == nil {
		ignoreCased = make(map[string]bool)
	}
	return &Checker{table: table, ignoreCased: ignoreCased}
}

// Table exposes the underlying correction table for manual loads.
func (c *Checker) Table() *dictionary.Table {
	return c.table
}

// IgnoreWord adds a case-sensitive word to the engine-level ignore set.
func (c *Checker) IgnoreWord(word string) {
	c.ignoreCased[word] = true
}

// CheckLowerWord looks up an already lowercased word in the table.
func (c *Checker) CheckLowerWord(lword string) (*dictionary.Correction, bool) {
	return c.table.Lookup(lword)
}

// CheckLine tokenizes line and lazily yields every token whose lowercase form
// is a known misspelling. extraIgnore is a per-call set of lowercased words
// to skip, e.g. collected from an inline suppression directive; it may be
// nil. Each call re-evaluates the line; repeated calls over an unchanged
// table yield identical sequences.
func CheckLine[T Token](c *Checker, line string, tokenize Tokenizer[T], extraIgnore map[string]bool) iter.Seq[Issue[T]] {
	return func(yield func(Issue[T]) bool) {
		for token := range tokenize(line) {
			word := token.Text()
			if c.ignoreCased[word] {
				continue
			}
			lword := strings.ToLower(word)
			correction, ok := c.table.Lookup(lword)
			if !ok || extraIgnore[lword] {
				continue
			}
			if c.escapeFalsePositive(line, token.Start(), word, lword) {
				continue
			}
			issue := Issue[T]{
				Word:       word,
				LWord:      lword,
				Correction: correction,
				Token:      token,
			}
			if !yield(issue) {
				return
			}
		}
	}
}

// escapeFalsePositive reports whether the match is really a string escape
// sequence: the token directly follows a backslash, starts with one of the
// single-letter escape names, and the word minus its first letter is not a
// known misspelling on its own. Sequences like `\nabc` inside string
// literals would otherwise be flagged as the dictionary word "nabc".
func (c *Checker) escapeFalsePositive(line string, start int, word, lword string) bool {
	before := start - 1
	if before < 0 || before >= len(line) || line[before] != '\\' {
		return false
	}
	if word == "" || !strings.ContainsRune(escapeLetters, rune(word[0])) {
		return false
	}
	return !c.table.Contains(lword[1:])
}
