package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"typocheck/internal/driver"
	"typocheck/internal/observ"
	"typocheck/internal/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Scan a file or directory for misspellings",
	Long:  "Scan text files against the loaded dictionaries and report every known misspelling with its candidate corrections.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	registerScanFlags(checkCmd)
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().String("paths", "auto", "path display (auto|absolute|relative|basename)")
	checkCmd.Flags().Bool("show-fixes", false, "list candidate fixes under each finding")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("invalid --format value %q (pretty|short|json)", format)
	}

	pathsFlag, err := cmd.Flags().GetString("paths")
	if err != nil {
		return err
	}
	pathMode, err := parsePathMode(pathsFlag)
	if err != nil {
		return err
	}
	showFixes, err := cmd.Flags().GetBool("show-fixes")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}

	opts, cfg, err := resolveCheckOptions(cmd, target)
	if err != nil {
		return err
	}
	jobs, err := resolveJobs(cmd, cfg)
	if err != nil {
		return err
	}

	timer := observ.NewTimer()

	phase := timer.Begin("load-dicts")
	checker, err := driver.BuildChecker(opts)
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d entries", checker.Table().Len()))

	phase = timer.Begin("scan")
	outcome, err := runScan(cmd, checker, target, opts, jobs)
	if err != nil {
		return err
	}
	timer.End(phase, fmt.Sprintf("%d files", outcome.Files))

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = report.JSON(out, outcome.Bag, outcome.FileSet, report.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
			IncludeFixes:     showFixes,
		})
		if err != nil {
			return err
		}
	case "short":
		report.Short(out, outcome.Bag, outcome.FileSet, pathMode)
	default:
		report.Pretty(out, outcome.Bag, outcome.FileSet, report.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  pathMode,
			ShowNotes: true,
			ShowFixes: showFixes,
		})
	}

	if !quiet && format != "json" {
		printSummary(outcome)
	}
	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if outcome.Findings > 0 {
		return exitError{code: ExitFindings}
	}
	if outcome.IOErrors > 0 {
		return exitError{code: 1}
	}
	return nil
}

func printSummary(outcome *scanOutcome) {
	fmt.Printf("%d misspelling(s) in %d file(s)", outcome.Findings, outcome.Files)
	if outcome.Skipped > 0 {
		fmt.Printf(", %d binary file(s) skipped", outcome.Skipped)
	}
	if outcome.IOErrors > 0 {
		fmt.Printf(", %d file(s) unreadable", outcome.IOErrors)
	}
	fmt.Println()
}
