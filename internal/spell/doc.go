// Package spell holds the checking engine: a Checker owning a correction
// table plus ignore sets, and the line matcher that turns tokenized lines
// into detected misspellings. Tokenization itself is a capability supplied by
// the caller; package tokenize provides stock implementations.
package spell
