package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"typocheck/internal/diag"
	"typocheck/internal/driver"
	"typocheck/internal/fix"
	"typocheck/internal/source"
	"typocheck/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <file|directory>",
	Short: "Apply corrections to a file or directory",
	Long:  "Scan for misspellings, surface candidate corrections, and apply them according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	registerScanFlags(fixCmd)
	fixCmd.Flags().Bool("all", false, "apply all safe corrections")
	fixCmd.Flags().Bool("once", false, "apply the first available correction (default)")
	fixCmd.Flags().String("id", "", "apply the correction with a specific identifier")
	fixCmd.Flags().Bool("interactive", false, "review each correction in the terminal")
	fixCmd.Flags().Bool("dry-run", false, "show what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	interactive, err := cmd.Flags().GetBool("interactive")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}
	if interactive && (applyAll || applyOnceFlag || targetID != "") {
		return fmt.Errorf("--interactive cannot be combined with --all, --once, or --id")
	}
	if interactive && !isTerminal(os.Stdin) {
		return fmt.Errorf("--interactive requires a terminal")
	}

	opts, cfg, err := resolveCheckOptions(cmd, targetPath)
	if err != nil {
		return err
	}
	jobs, err := resolveJobs(cmd, cfg)
	if err != nil {
		return err
	}

	checker, err := driver.BuildChecker(opts)
	if err != nil {
		return err
	}

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	// id уникален в рамках одного прохода, для директории это ок,
	// но для предсказуемости ограничим одним файлом
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single file")
	}

	outcome, err := runScan(cmd, checker, targetPath, opts, jobs)
	if err != nil {
		return fmt.Errorf("fix: scan failed: %w", err)
	}
	diagnostics := outcome.Bag.Items()

	applyOpts := fix.ApplyOptions{DryRun: dryRun}
	switch {
	case interactive:
		ids, err := pickInteractively(outcome.FileSet, diagnostics)
		if err != nil {
			if errors.Is(err, ui.ErrAborted) {
				fmt.Fprintln(os.Stdout, "Aborted, nothing applied.")
				return nil
			}
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stdout, "Nothing selected, nothing applied.")
			return nil
		}
		applyOpts.Mode = fix.ApplyModeIDs
		applyOpts.TargetIDs = ids
	case targetID != "":
		applyOpts.Mode = fix.ApplyModeID
		applyOpts.TargetID = targetID
	case applyAll:
		applyOpts.Mode = fix.ApplyModeAll
	default:
		applyOpts.Mode = fix.ApplyModeOnce
	}

	res, applyErr := fix.Apply(outcome.FileSet, diagnostics, applyOpts)
	return handleApplyResult(res, applyErr, dryRun)
}

// pickInteractively walks the user through every finding that has at least
// one candidate correction and returns the chosen fix IDs.
func pickInteractively(fs *source.FileSet, diagnostics []diag.Diagnostic) ([]string, error) {
	items := make([]ui.PickItem, 0, len(diagnostics))
	for _, d := range diagnostics {
		options := make([]ui.PickOption, 0, len(d.Fixes))
		word := ""
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			if word == "" {
				word = f.Edits[0].OldText
			}
			options = append(options, ui.PickOption{
				FixID:       f.ID,
				Replacement: f.Edits[0].NewText,
			})
		}
		if len(options) == 0 {
			continue
		}

		file := fs.Get(d.Primary.File)
		startPos, _ := fs.Resolve(d.Primary)
		items = append(items, ui.PickItem{
			Location: fmt.Sprintf("%s:%d:%d", file.FormatPath("auto", fs.BaseDir()), startPos.Line, startPos.Col),
			Line:     file.GetLine(startPos.Line),
			Word:     word,
			Message:  d.Message,
			Options:  options,
		})
	}
	if len(items) == 0 {
		return nil, nil
	}

	choices, err := ui.RunPicker(items)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(choices))
	for _, id := range choices {
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func handleApplyResult(res *fix.ApplyResult, applyErr error, dryRun bool) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		verb := "Applied"
		if dryRun {
			verb = "Would apply"
		}
		fmt.Fprintf(os.Stdout, "%s %d correction(s):\n", verb, len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] - %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 && !dryRun {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped corrections:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable corrections found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No corrections applied.")
	}
	return nil
}
