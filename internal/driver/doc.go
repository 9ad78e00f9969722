// Package driver glues the engine together for the CLI: it builds a checker
// from options (with an optional on-disk dictionary cache), scans files and
// directories, and converts detected misspellings into diagnostics with fix
// edits.
package driver
