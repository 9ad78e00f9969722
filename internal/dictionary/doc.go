// Package dictionary implements the correction table at the heart of
// typocheck: parsing of `typo->correction[,reason]` dictionary files, the
// merged in-memory table with last-write-wins semantics, alternate-character
// expansion for typographic apostrophes, and the catalog of built-in
// dictionaries shipped with the tool.
package dictionary
