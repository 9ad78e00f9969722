package dictionary

import "fmt"

// UnknownBuiltinError reports a built-in dictionary name with no catalog entry.
type UnknownBuiltinError struct {
	Name string
}

func (e *UnknownBuiltinError) Error() string {
	return fmt.Sprintf("unknown built-in dictionary: %s", e.Name)
}

// AlreadyLoadedError reports a second bulk built-in load on the same table.
// Allowing it would silently reorder correction precedence, so it is refused.
type AlreadyLoadedError struct{}

func (e *AlreadyLoadedError) Error() string {
	return "built-in dictionaries must not be loaded more than once"
}

// MalformedEntryError reports a dictionary line without the "->" separator.
// The table state after a partially consumed source is undefined; callers
// should rebuild the table from scratch.
type MalformedEntryError struct {
	Source string
	Line   int // 1-based
	Text   string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("%s:%d: malformed dictionary entry (missing %q): %q", e.Source, e.Line, "->", e.Text)
}
