package tokenize

import (
	"iter"
	"testing"
)

func collect(tokens func(string) iter.Seq[Word], line string) []Word {
	var out []Word
	for w := range tokens(line) {
		out = append(out, w)
	}
	return out
}

func TestWordsOffsets(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		texts []string
		start []int
	}{
		{
			name:  "plain words",
			line:  "foo, bar!",
			texts: []string{"foo", "bar"},
			start: []int{0, 5},
		},
		{
			name:  "hyphen and apostrophe stay in one token",
			line:  "well-known don't",
			texts: []string{"well-known", "don't"},
			start: []int{0, 11},
		},
		{
			name:  "typographic apostrophe",
			line:  "it’s fine",
			texts: []string{"it’s", "fine"},
			start: []int{0, 7},
		},
		{
			name:  "no words",
			line:  "... !!! ...",
			texts: nil,
			start: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := collect(Words, tt.line)
			if len(words) != len(tt.texts) {
				t.Fatalf("got %d tokens, want %d", len(words), len(tt.texts))
			}
			for i, w := range words {
				if w.Text() != tt.texts[i] {
					t.Errorf("token %d text = %q, want %q", i, w.Text(), tt.texts[i])
				}
				if w.Start() != tt.start[i] {
					t.Errorf("token %d start = %d, want %d", i, w.Start(), tt.start[i])
				}
			}
		})
	}
}

func TestWordsOffsetsIndexIntoLine(t *testing.T) {
	line := "a tpyo, then müsli"
	for w := range Words(line) {
		got := line[w.Start() : w.Start()+len(w.Text())]
		if got != w.Text() {
			t.Fatalf("offset mismatch: line slice %q vs token %q", got, w.Text())
		}
	}
}

func TestUnicodeOffsets(t *testing.T) {
	line := "héllo, wörld"
	var words []Word
	for w := range Unicode(line) {
		words = append(words, w)
	}
	if len(words) != 2 {
		t.Fatalf("got %d tokens, want 2", len(words))
	}
	if words[0].Text() != "héllo" || words[0].Start() != 0 {
		t.Errorf("first token = %q@%d", words[0].Text(), words[0].Start())
	}
	// "héllo" is 6 bytes, then ", " - the second word starts at byte 8
	if words[1].Text() != "wörld" || words[1].Start() != 8 {
		t.Errorf("second token = %q@%d", words[1].Text(), words[1].Start())
	}
}

func TestUnicodeFiltersNonWords(t *testing.T) {
	var count int
	for range Unicode("... 123 --- abc") {
		count++
	}
	// digits and letters survive, punctuation runs do not
	if count != 2 {
		t.Fatalf("got %d tokens, want 2", count)
	}
}
