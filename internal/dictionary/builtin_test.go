package dictionary

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadBuiltinSealsTable(t *testing.T) {
	table := NewTable()
	if err := table.LoadBuiltin(DefaultBuiltin(), nil); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if !table.BuiltinLoaded() {
		t.Fatal("table must report builtin loaded")
	}
	if table.Len() == 0 {
		t.Fatal("built-in dictionaries must not be empty")
	}

	sizeBefore := table.Len()
	err := table.LoadBuiltin([]string{"clear"}, nil)
	var already *AlreadyLoadedError
	if !errors.As(err, &already) {
		t.Fatalf("expected AlreadyLoadedError, got %v", err)
	}
	if table.Len() != sizeBefore {
		t.Fatal("refused load must not modify the table")
	}
}

func TestLoadBuiltinUnknownNameFailsBeforeMerge(t *testing.T) {
	table := NewTable()
	err := table.LoadBuiltin([]string{"clear", "no-such-set"}, nil)

	var unknown *UnknownBuiltinError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownBuiltinError, got %v", err)
	}
	if unknown.Name != "no-such-set" {
		t.Fatalf("unknown name = %q", unknown.Name)
	}
	if table.Len() != 0 || table.BuiltinLoaded() {
		t.Fatal("failed load must leave the table untouched and unsealed")
	}
}

func TestLoadBuiltinDeduplicatesNames(t *testing.T) {
	table := NewTable()
	if err := table.LoadBuiltin([]string{"rare", "clear", "rare", "clear"}, nil); err != nil {
		t.Fatalf("load with duplicates failed: %v", err)
	}

	other := NewTable()
	if err := other.LoadBuiltin([]string{"clear", "rare"}, nil); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if table.Len() != other.Len() {
		t.Fatalf("duplicate names changed the result: %d vs %d", table.Len(), other.Len())
	}
}

func TestManualLoadAfterSealPermitted(t *testing.T) {
	table := NewTable()
	if err := table.LoadBuiltin([]string{"clear"}, nil); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if err := table.LoadReader("custom", strings.NewReader("mycustomtypo->fixed\n"), nil); err != nil {
		t.Fatalf("manual load after seal failed: %v", err)
	}
	mustLookup(t, table, "mycustomtypo")
}

func TestResolveKnowsWholeCatalog(t *testing.T) {
	names := []string{"clear", "rare", "informal", "usage", "code", "names", "en-GB_to_en-US"}
	if len(Builtins) != len(names) {
		t.Fatalf("catalog size = %d, want %d", len(Builtins), len(names))
	}
	for _, name := range names {
		d, err := Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", name, err)
			continue
		}
		if d.Name != name {
			t.Errorf("Resolve(%q).Name = %q", name, d.Name)
		}
	}
}

func TestEveryBuiltinParses(t *testing.T) {
	for _, d := range Builtins {
		t.Run(d.Name, func(t *testing.T) {
			table := NewTable()
			if err := table.LoadBuiltin([]string{d.Name}, nil); err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if table.Len() == 0 {
				t.Fatal("dictionary is empty")
			}
		})
	}
}
