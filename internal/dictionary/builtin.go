package dictionary

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed data
var builtinData embed.FS

// englishLanguages are the natural-language tags the English dictionaries
// apply to.
var englishLanguages = []string{"en", "en_GB", "en_US", "en_CA", "en_AU"}

// Descriptor describes one built-in dictionary. The matcher only needs the
// name-to-suffix mapping; the language metadata is for surrounding tooling
// (help text, validation).
type Descriptor struct {
	// Name is the unique key used on the command line and in config files.
	Name string
	// Description is a one-line summary for help output.
	Description string
	// Suffix selects the data file: data/dictionary<Suffix>.txt.
	Suffix string
	// Languages lists the languages the misspellings belong to, when known.
	Languages []string
	// ReplacementLanguages lists the languages of the corrections, when they
	// differ per dictionary (e.g. the regional conversion set).
	ReplacementLanguages []string
}

// Builtins is the static catalog of dictionaries shipped with typocheck.
var Builtins = []Descriptor{
	{
		Name:        "clear",
		Description: "for unambiguous errors",
		Suffix:      "",
		Languages:   englishLanguages,
	},
	{
		Name:        "rare",
		Description: "for rare (but valid) words that are likely to be errors",
		Suffix:      "_rare",
	},
	{
		Name:                 "informal",
		Description:          "for making informal words more formal",
		Suffix:               "_informal",
		Languages:            englishLanguages,
		ReplacementLanguages: englishLanguages,
	},
	{
		Name:        "usage",
		Description: "for replacing phrasing with recommended terms",
		Suffix:      "_usage",
	},
	{
		Name:        "code",
		Description: "for words from code and/or mathematics that are likely to be typos in other contexts (such as uint)",
		Suffix:      "_code",
	},
	{
		Name:        "names",
		Description: "for valid proper names that might be typos",
		Suffix:      "_names",
	},
	{
		Name:                 "en-GB_to_en-US",
		Description:          "for corrections from en-GB to en-US",
		Suffix:               "_en-GB_to_en-US",
		Languages:            []string{"en_GB"},
		ReplacementLanguages: []string{"en_US"},
	},
}

// DefaultBuiltin returns the dictionaries loaded when the caller does not
// choose a set explicitly.
func DefaultBuiltin() []string {
	return []string{"clear", "rare"}
}

// Resolve finds the catalog entry for a built-in dictionary name.
func Resolve(name string) (Descriptor, error) {
	for _, d := range Builtins {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, &UnknownBuiltinError{Name: name}
}

// LoadBuiltin merges the named built-in dictionaries into the table and
// seals it. Names are de-duplicated and processed in lexicographic order so
// that conflicting keys always resolve the same way no matter how the caller
// ordered the set. A second call on the same table fails with
// AlreadyLoadedError before touching any entry; manual LoadFile/LoadReader
// calls stay permitted in either state.
func (t *Table) LoadBuiltin(names []string, ignore map[string]bool) error {
	if t.builtinLoaded {
		return &AlreadyLoadedError{}
	}

	seen := make(map[string]bool, len(names))
	ordered := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	// Resolve everything up front so an unknown name fails before any merge.
	descriptors := make([]Descriptor, len(ordered))
	for i, name := range ordered {
		d, err := Resolve(name)
		if err != nil {
			return err
		}
		descriptors[i] = d
	}

	for _, d := range descriptors {
		if err := t.loadBuiltinOne(d, ignore); err != nil {
			return err
		}
	}
	t.builtinLoaded = true
	return nil
}

func (t *Table) loadBuiltinOne(d Descriptor, ignore map[string]bool) (err error) {
	path := fmt.Sprintf("data/dictionary%s.txt", d.Suffix)
	f, err := builtinData.Open(path)
	if err != nil {
		return fmt.Errorf("built-in dictionary %s: %w", d.Name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return t.LoadReader("builtin:"+d.Name, f, ignore)
}
