// Package diag defines the diagnostic model shared by the dictionary loader,
// the line checker, and the fix engine: a Diagnostic with a primary span,
// optional notes, and optional fixes, collected into a capped Bag.
package diag
