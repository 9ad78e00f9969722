package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// altChars lists character substitutions applied to every entry: when the
// source character appears in a key, a second entry is synthesized with the
// substitution applied to both key and data. The built-in pair covers the
// typographic right single quote so one dictionary line matches both
// spellings of a contraction.
var altChars = [][2]string{
	{"'", "’"},
}

// LoadReader parses dictionary entries from r and merges them into the table.
// name identifies the source in error messages. Keys found in ignore are
// skipped entirely, including their alternate-character expansions.
//
// Entries loaded later overwrite earlier ones for the same key, regardless of
// which source they came from.
func (t *Table) LoadReader(name string, r io.Reader, ignore map[string]bool) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		key, data, found := strings.Cut(line, "->")
		if !found {
			return &MalformedEntryError{Source: name, Line: lineNum, Text: line}
		}
		// TODO: both halves are lowercased for now; fixing capitalized typos
		// in place would need the original casing kept around.
		key = strings.ToLower(key)
		data = strings.ToLower(data)

		if !ignore[key] {
			t.put(key, parseCorrection(data))
		}
		for _, pair := range altChars {
			if !strings.Contains(key, pair[0]) {
				continue
			}
			altKey := strings.ReplaceAll(key, pair[0], pair[1])
			altData := strings.ReplaceAll(data, pair[0], pair[1])
			if !ignore[altKey] {
				t.put(altKey, parseCorrection(altData))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// LoadFile reads a dictionary file from disk and merges it into the table.
// The file is closed on every exit path.
func (t *Table) LoadFile(path string, ignore map[string]bool) (err error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return t.LoadReader(path, f, ignore)
}
