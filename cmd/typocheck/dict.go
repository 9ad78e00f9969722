package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"typocheck/internal/dictionary"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect built-in and custom dictionaries",
}

var dictNameColor = color.New(color.FgCyan, color.Bold)

func init() {
	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictInfoCmd)
	dictCmd.AddCommand(dictLintCmd)
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in dictionaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		defaults := make(map[string]bool)
		for _, name := range dictionary.DefaultBuiltin() {
			defaults[name] = true
		}
		for _, d := range dictionary.Builtins {
			marker := " "
			if defaults[d.Name] {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-16s %s\n", marker, dictNameColor.Sprint(d.Name), d.Description)
		}
		fmt.Fprintln(out, "\n* loaded by default")
		return nil
	},
}

var dictInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details about one built-in dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := dictionary.Resolve(args[0])
		if err != nil {
			return err
		}

		table := dictionary.NewTable()
		if err := table.LoadBuiltin([]string{d.Name}, nil); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "name:        %s\n", dictNameColor.Sprint(d.Name))
		fmt.Fprintf(out, "description: %s\n", d.Description)
		fmt.Fprintf(out, "entries:     %d\n", table.Len())
		if len(d.Languages) > 0 {
			fmt.Fprintf(out, "languages:   %s\n", strings.Join(d.Languages, ", "))
		}
		if len(d.ReplacementLanguages) > 0 {
			fmt.Fprintf(out, "replaces to: %s\n", strings.Join(d.ReplacementLanguages, ", "))
		}
		return nil
	},
}

var dictLintCmd = &cobra.Command{
	Use:   "lint <file>",
	Short: "Validate a custom dictionary file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := dictionary.NewTable()
		if err := table.LoadFile(args[0], nil); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d entrie(s)\n", args[0], table.Len())
		return nil
	},
}
