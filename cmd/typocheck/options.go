package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"typocheck/internal/config"
	"typocheck/internal/driver"
)

// registerScanFlags adds the flags shared by check and fix.
func registerScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("dict", nil, "built-in dictionaries to load (\"none\" disables them)")
	cmd.Flags().StringSlice("dict-file", nil, "additional dictionary files")
	cmd.Flags().StringSlice("ignore-words", nil, "lowercased words to never report")
	cmd.Flags().StringSlice("ignore-words-cased", nil, "case-sensitive words to never report")
	cmd.Flags().String("tokenizer", "", "tokenizer to use (word|unicode)")
	cmd.Flags().StringSlice("skip", nil, "glob patterns to skip in directory scans")
	cmd.Flags().Bool("no-cache", false, "disable the on-disk dictionary cache")
	cmd.Flags().String("config", "", "path to typocheck.toml (default: nearest upward)")
}

// resolveCheckOptions merges typocheck.toml with command-line flags; flags
// win over the config file.
func resolveCheckOptions(cmd *cobra.Command, target string) (driver.CheckOptions, *config.Config, error) {
	cfg, err := loadConfigFor(cmd, target)
	if err != nil {
		return driver.CheckOptions{}, nil, err
	}

	opts := driver.CheckOptions{
		Builtin:          cfg.BuiltinDictionaries(),
		Dictionaries:     cfg.DictionaryFiles,
		IgnoreWords:      lowerSet(cfg.IgnoreWords),
		IgnoreWordsCased: config.WordSet(cfg.IgnoreWordsCased),
		Tokenizer:        driver.TokenizerName(cfg.Tokenizer),
		SkipPatterns:     cfg.Skip,
		EnableDiskCache:  cfg.Cache,
	}

	flags := cmd.Flags()
	if flags.Changed("dict") {
		names, err := flags.GetStringSlice("dict")
		if err != nil {
			return opts, nil, err
		}
		if len(names) == 1 && names[0] == "none" {
			opts.Builtin = []string{}
		} else {
			opts.Builtin = names
		}
	}
	if flags.Changed("dict-file") {
		files, err := flags.GetStringSlice("dict-file")
		if err != nil {
			return opts, nil, err
		}
		opts.Dictionaries = append(opts.Dictionaries, files...)
	}
	if flags.Changed("ignore-words") {
		words, err := flags.GetStringSlice("ignore-words")
		if err != nil {
			return opts, nil, err
		}
		opts.IgnoreWords = mergeSet(opts.IgnoreWords, lowerSet(words))
	}
	if flags.Changed("ignore-words-cased") {
		words, err := flags.GetStringSlice("ignore-words-cased")
		if err != nil {
			return opts, nil, err
		}
		opts.IgnoreWordsCased = mergeSet(opts.IgnoreWordsCased, config.WordSet(words))
	}
	if flags.Changed("tokenizer") {
		name, err := flags.GetString("tokenizer")
		if err != nil {
			return opts, nil, err
		}
		opts.Tokenizer = driver.TokenizerName(name)
	}
	if flags.Changed("skip") {
		patterns, err := flags.GetStringSlice("skip")
		if err != nil {
			return opts, nil, err
		}
		opts.SkipPatterns = append(opts.SkipPatterns, patterns...)
	}
	if noCache, err := flags.GetBool("no-cache"); err == nil && noCache {
		opts.EnableDiskCache = false
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, nil, err
	}
	opts.MaxDiagnostics = maxDiagnostics

	return opts, cfg, nil
}

func loadConfigFor(cmd *cobra.Command, target string) (*config.Config, error) {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return config.Load(path)
	}

	startDir := target
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	return config.Discover(startDir)
}

func resolveJobs(cmd *cobra.Command, cfg *config.Config) (int, error) {
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return 0, err
	}
	if jobs == 0 && cfg != nil {
		jobs = cfg.Jobs
	}
	return jobs, nil
}

func lowerSet(words []string) map[string]bool {
	if len(words) == 0 {
		return nil
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = true
	}
	return set
}

func mergeSet(a, b map[string]bool) map[string]bool {
	if a == nil {
		return b
	}
	for w := range b {
		a[w] = true
	}
	return a
}
