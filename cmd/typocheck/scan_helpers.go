package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typocheck/internal/diag"
	"typocheck/internal/driver"
	"typocheck/internal/report"
	"typocheck/internal/source"
	"typocheck/internal/spell"
)

// scanOutcome aggregates a whole scan: the file set for span resolution, the
// merged diagnostics, and counters for the summary line.
type scanOutcome struct {
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Files    int
	Skipped  int
	Findings int
	IOErrors int
}

// runScan checks a single file or a whole directory and merges the
// per-file bags into one sorted, deduplicated bag.
func runScan(cmd *cobra.Command, checker *spell.Checker, target string, opts driver.CheckOptions, jobs int) (*scanOutcome, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}

	outcome := &scanOutcome{Bag: diag.NewBag(opts.MaxDiagnostics)}

	if info.IsDir() {
		fs, results, err := driver.CheckDir(cmd.Context(), target, checker, opts, jobs)
		if err != nil {
			return nil, err
		}
		outcome.FileSet = fs
		for _, r := range results {
			if r.Skipped {
				outcome.Skipped++
				continue
			}
			outcome.Files++
			outcome.Bag.Merge(r.Bag)
		}
	} else {
		fs := source.NewFileSet()
		result, err := driver.CheckFile(cmd.Context(), fs, checker, target, opts)
		if err != nil {
			return nil, err
		}
		outcome.FileSet = fs
		outcome.Files = 1
		outcome.Bag.Merge(result.Bag)
	}

	outcome.Bag.Sort()
	outcome.Bag.Dedup()

	for _, d := range outcome.Bag.Items() {
		switch {
		case d.Code >= diag.TypoInfo && d.Code < diag.CfgInfo:
			outcome.Findings++
		case d.Code == diag.IOLoadFileError:
			outcome.IOErrors++
		}
	}
	return outcome, nil
}

func parsePathMode(mode string) (report.PathMode, error) {
	switch mode {
	case "auto", "":
		return report.PathModeAuto, nil
	case "absolute":
		return report.PathModeAbsolute, nil
	case "relative":
		return report.PathModeRelative, nil
	case "basename":
		return report.PathModeBasename, nil
	}
	return report.PathModeAuto, fmt.Errorf("invalid path mode %q (auto|absolute|relative|basename)", mode)
}
