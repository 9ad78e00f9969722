package diag

import (
	"testing"

	"typocheck/internal/source"
)

func TestBagHonorsLimit(t *testing.T) {
	bag := NewBag(2)
	for i := range 3 {
		added := bag.Add(NewWarning(TypoConfident, source.Span{Start: uint32(i)}, "x"))
		if i < 2 && !added {
			t.Fatalf("add %d rejected below the limit", i)
		}
		if i == 2 && added {
			t.Fatal("add above the limit must be rejected")
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewWarning(TypoAmbiguous, source.Span{File: 0, Start: 10, End: 14}, "later"))
	bag.Add(NewWarning(TypoConfident, source.Span{File: 0, Start: 2, End: 6}, "earlier"))
	bag.Add(NewError(IOLoadFileError, source.Span{File: 0, Start: 2, End: 6}, "io"))

	bag.Sort()
	items := bag.Items()

	if items[0].Message != "io" {
		t.Errorf("items[0] = %q, want the error first at equal span", items[0].Message)
	}
	if items[1].Message != "earlier" {
		t.Errorf("items[1] = %q", items[1].Message)
	}
	if items[2].Message != "later" {
		t.Errorf("items[2] = %q", items[2].Message)
	}
}

func TestBagDedup(t *testing.T) {
	span := source.Span{File: 0, Start: 2, End: 6}
	bag := NewBag(10)
	bag.Add(NewWarning(TypoConfident, span, "dup"))
	bag.Add(NewWarning(TypoConfident, span, "dup"))
	bag.Add(NewWarning(TypoAmbiguous, span, "other code survives"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrows(t *testing.T) {
	a := NewBag(1)
	a.Add(NewWarning(TypoConfident, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewWarning(TypoConfident, source.Span{Start: 1}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after merge", a.Len())
	}
}

func TestCodeIDBands(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{DictMalformedEntry, "DIC1001"},
		{TypoConfident, "TYP2001"},
		{CfgInvalid, "CFG3001"},
		{IOLoadFileError, "IO4001"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
