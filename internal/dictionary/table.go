package dictionary

// Table maps lowercased misspelled words to their current correction.
// Later loads overwrite earlier entries for the same key; nothing is ever
// deleted. The table is not safe for concurrent mutation: populate it fully
// before sharing it for read-only lookups.
type Table struct {
	entries       map[string]*Correction
	builtinLoaded bool
}

// NewTable creates an empty, unsealed table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*Correction)}
}

// Lookup returns the correction for a lowercased word, if any.
func (t *Table) Lookup(lword string) (*Correction, bool) {
	c, ok := t.entries[lword]
	return c, ok
}

// Contains reports whether a lowercased word is a known misspelling.
func (t *Table) Contains(lword string) bool {
	_, ok := t.entries[lword]
	return ok
}

// Len returns the number of known misspellings.
func (t *Table) Len() int {
	return len(t.entries)
}

// BuiltinLoaded reports whether the one permitted bulk built-in load has
// completed for this table.
func (t *Table) BuiltinLoaded() bool {
	return t.builtinLoaded
}

func (t *Table) put(key string, c *Correction) {
	t.entries[key] = c
}

// Export copies the table contents for serialization.
func (t *Table) Export() map[string]Correction {
	out := make(map[string]Correction, len(t.entries))
	for k, c := range t.entries {
		out[k] = *c
	}
	return out
}

// Restore rebuilds a table from exported contents.
func Restore(entries map[string]Correction, builtinLoaded bool) *Table {
	t := &Table{
		entries:       make(map[string]*Correction, len(entries)),
		builtinLoaded: builtinLoaded,
	}
	for k, c := range entries {
		cc := c
		t.entries[k] = &cc
	}
	return t
}
