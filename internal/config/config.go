// Package config loads typocheck.toml, the per-project configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest looked up from the working directory upward.
const FileName = "typocheck.toml"

// Config mirrors the [check] section of typocheck.toml.
type Config struct {
	// Dictionaries are built-in dictionary names. Absent means the default
	// set; an explicit empty list disables built-ins.
	Dictionaries []string
	// DictionaryFiles are custom dictionary files, relative to the config
	// file's directory.
	DictionaryFiles []string
	// IgnoreWords are lowercased words never reported.
	IgnoreWords []string
	// IgnoreWordsCased are matched before lowercasing.
	IgnoreWordsCased []string
	// Tokenizer is "word" or "unicode".
	Tokenizer string
	// Skip are glob patterns excluded from directory scans.
	Skip []string
	// Jobs caps scan parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Cache enables the on-disk dictionary cache.
	Cache bool

	// Dir is the directory the config was loaded from, for resolving
	// relative paths. Empty for a default config.
	Dir string

	// dictionariesSet distinguishes an absent key from an empty list.
	dictionariesSet bool
}

type fileConfig struct {
	Check struct {
		Dictionaries     []string `toml:"dictionaries"`
		DictionaryFiles  []string `toml:"dictionary-files"`
		IgnoreWords      []string `toml:"ignore-words"`
		IgnoreWordsCased []string `toml:"ignore-words-cased"`
		Tokenizer        string   `toml:"tokenizer"`
		Skip             []string `toml:"skip"`
		Jobs             int      `toml:"jobs"`
		Cache            bool     `toml:"cache"`
	} `toml:"check"`
}

// Default returns the configuration used when no typocheck.toml exists.
func Default() *Config {
	return &Config{Tokenizer: "word", Cache: true}
}

// BuiltinDictionaries returns the configured built-in names, or nil when the
// key was absent and the engine default should apply.
func (c *Config) BuiltinDictionaries() []string {
	if !c.dictionariesSet {
		return nil
	}
	if c.Dictionaries == nil {
		return []string{}
	}
	return c.Dictionaries
}

// Find walks up from startDir to locate typocheck.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a typocheck.toml file.
func Load(path string) (*Config, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}

	c := &Config{
		Dictionaries:     cfg.Check.Dictionaries,
		DictionaryFiles:  cfg.Check.DictionaryFiles,
		IgnoreWords:      cfg.Check.IgnoreWords,
		IgnoreWordsCased: cfg.Check.IgnoreWordsCased,
		Tokenizer:        cfg.Check.Tokenizer,
		Skip:             cfg.Check.Skip,
		Jobs:             cfg.Check.Jobs,
		Cache:            cfg.Check.Cache,
		Dir:              filepath.Dir(path),
		dictionariesSet:  meta.IsDefined("check", "dictionaries"),
	}
	if c.Tokenizer == "" {
		c.Tokenizer = "word"
	}
	if !meta.IsDefined("check", "cache") {
		c.Cache = true
	}
	if err := c.validate(path); err != nil {
		return nil, err
	}

	// Пути словарей — относительно каталога конфига
	for i, f := range c.DictionaryFiles {
		if !filepath.IsAbs(f) {
			c.DictionaryFiles[i] = filepath.Join(c.Dir, f)
		}
	}
	return c, nil
}

// Discover finds and loads the nearest typocheck.toml, falling back to the
// default config.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate(path string) error {
	switch c.Tokenizer {
	case "word", "unicode":
	default:
		return fmt.Errorf("%s: unknown tokenizer %q (want \"word\" or \"unicode\")", path, c.Tokenizer)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%s: jobs must not be negative", path)
	}
	return nil
}

// WordSet converts a word list into the lookup form used by the checker.
func WordSet(words []string) map[string]bool {
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
