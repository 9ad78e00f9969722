package driver

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sort"

	"typocheck/internal/dictionary"
	"typocheck/internal/spell"
	"typocheck/internal/tokenize"
)

// TokenizerName selects one of the stock tokenizers.
type TokenizerName string

const (
	// TokenizerWord is the regex word tokenizer (default).
	TokenizerWord TokenizerName = "word"
	// TokenizerUnicode is the UAX-29 segmenter.
	TokenizerUnicode TokenizerName = "unicode"
)

// CheckOptions configures checker construction and scanning.
type CheckOptions struct {
	// Builtin lists built-in dictionaries to load. nil means the default
	// set; an explicitly empty slice loads none.
	Builtin []string
	// Dictionaries are custom dictionary files, loaded after the built-ins
	// so their corrections take precedence.
	Dictionaries []string
	// IgnoreWords are lowercased words excluded both from dictionary
	// loading and from every scan.
	IgnoreWords map[string]bool
	// IgnoreWordsCased are matched against tokens before lowercasing.
	IgnoreWordsCased map[string]bool
	// Tokenizer picks the stock tokenizer. Empty means TokenizerWord.
	Tokenizer TokenizerName
	// MaxDiagnostics caps the number of findings collected per file.
	MaxDiagnostics int
	// EnableDiskCache caches the merged dictionary table on disk keyed by
	// its inputs, skipping re-parsing for large custom dictionary sets.
	EnableDiskCache bool
	// SkipPatterns are glob patterns (matched against base names) excluded
	// from directory scans.
	SkipPatterns []string
}

func (o *CheckOptions) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o *CheckOptions) tokenizer() (spell.Tokenizer[tokenize.Word], error) {
	switch o.Tokenizer {
	case "", TokenizerWord:
		return tokenize.Words, nil
	case TokenizerUnicode:
		return tokenize.Unicode, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer: %s", o.Tokenizer)
	}
}

// BuildChecker constructs the checker for opts, consulting the disk cache
// when enabled. Cache failures fall back to a plain build; the cache is an
// optimization, never a requirement.
func BuildChecker(opts CheckOptions) (*spell.Checker, error) {
	if !opts.EnableDiskCache {
		return buildCheckerUncached(opts)
	}

	cache, err := OpenDictCache("typocheck")
	if err != nil {
		return buildCheckerUncached(opts)
	}

	key, err := dictionaryDigest(opts)
	if err != nil {
		return nil, err
	}

	var payload DictPayload
	if ok, getErr := cache.Get(key, &payload); getErr == nil && ok {
		if table := payload.restore(); table != nil {
			return spell.NewFromTable(table, opts.IgnoreWordsCased), nil
		}
	}

	checker, err := buildCheckerUncached(opts)
	if err != nil {
		return nil, err
	}
	// Best effort: a failed Put only costs the next run a re-parse.
	_ = cache.Put(key, newDictPayload(checker.Table()))
	return checker, nil
}

func buildCheckerUncached(opts CheckOptions) (*spell.Checker, error) {
	checker, err := spell.New(spell.Options{
		Builtin:          opts.Builtin,
		IgnoreWordsCased: opts.IgnoreWordsCased,
	})
	if err != nil {
		return nil, err
	}
	for _, path := range opts.Dictionaries {
		if err := checker.Table().LoadFile(path, opts.IgnoreWords); err != nil {
			return nil, err
		}
	}
	return checker, nil
}

// dictionaryDigest fingerprints everything that shapes the merged table:
// the built-in set, custom dictionary contents, and the load-time ignore
// words.
func dictionaryDigest(opts CheckOptions) (Digest, error) {
	h := sha256.New()
	fmt.Fprintf(h, "schema:%d\n", dictCacheSchemaVersion)

	builtin := opts.Builtin
	if builtin == nil {
		builtin = dictionary.DefaultBuiltin()
	}
	for _, name := range sortedUnique(builtin) {
		fmt.Fprintf(h, "builtin:%s\n", name)
	}

	for _, path := range opts.Dictionaries {
		content, err := os.ReadFile(path)
		if err != nil {
			return Digest{}, err
		}
		fileHash := sha256.Sum256(content)
		fmt.Fprintf(h, "dict:%s:%x\n", path, fileHash)
	}

	for _, word := range sortedKeys(opts.IgnoreWords) {
		fmt.Fprintf(h, "ignore:%s\n", word)
	}

	var d Digest
	copy(d[:], h.Sum(nil))
	return d, nil
}

func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// mergedExtraIgnore combines the run-level lowercased ignore words with
// per-line directive words.
func mergedExtraIgnore(base map[string]bool, extra []string) map[string]bool {
	if len(extra) == 0 {
		return base
	}
	merged := make(map[string]bool, len(base)+len(extra))
	for w := range base {
		merged[w] = true
	}
	for _, w := range extra {
		merged[w] = true
	}
	return merged
}
