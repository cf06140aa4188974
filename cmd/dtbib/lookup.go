package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
)

var (
	lookupJSONPath string
	lookupBibPath  string
)

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.PersistentFlags().StringVar(&lookupJSONPath, "json-path", "", "Override the structured JSON export path")
	lookupCmd.PersistentFlags().StringVar(&lookupBibPath, "bib-path", "", "Override the BibTeX export path")
	lookupCmd.AddCommand(lookupPathCmd)
	lookupCmd.AddCommand(lookupCitekeyCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Resolve bibliography metadata from the configured exports",
	Long: `Resolve bibliography metadata for a reference item.

The structured JSON export is consulted first, then the BibTeX export.
On failure, one diagnostic per attempted source is reported.

Examples:
  dtbib lookup path "/Users/me/Papers/Smith2024.pdf"
  dtbib lookup citekey smith2024deep
  dtbib lookup citekey smith2024deep --bib-path ~/refs.bib`,
}

var lookupPathCmd = &cobra.Command{
	Use:   "path <finder-path>",
	Short: "Find the entry whose attachment matches a local file path",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupPath,
}

var lookupCitekeyCmd = &cobra.Command{
	Use:   "citekey <key>",
	Short: "Find the entry with a citation key",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookupCitekey,
}

func lookupOptions() bibliography.Options {
	return bibliography.Options{JSONPath: lookupJSONPath, BibPath: lookupBibPath}
}

func runLookupPath(cmd *cobra.Command, args []string) error {
	resolver := bibliography.NewResolver()
	debugf("looking up attachment path %q", args[0])
	res := resolver.LookupByPath(args[0], lookupOptions())
	return emitResult(res)
}

func runLookupCitekey(cmd *cobra.Command, args []string) error {
	resolver := bibliography.NewResolver()
	debugf("looking up citation key %q", args[0])
	res := resolver.LookupByCitationKey(args[0], lookupOptions())
	return emitResult(res)
}

// emitResult writes a lookup result and exits non-zero on failure.
func emitResult(res bibliography.Result) error {
	if humanOutput {
		printResultHuman(res)
	} else {
		outputJSON(res)
	}
	if !res.Success {
		os.Exit(ExitDataError)
	}
	return nil
}
