// Package main provides the dtbib CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verboseOutput enables diagnostic messages on stderr
var verboseOutput bool

func main() {
	// Load .env file if present (for ZOTERO_JSON_PATH etc.)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dtbib",
	Short: "Bibliography metadata resolver for DEVONthink workflows",
	Long: `dtbib resolves bibliographic metadata from reference-manager exports.

Two possibly-stale export files back every query: a structured JSON export
and a plain-text BibTeX export. Entries can be found by local attachment
path or by citation key; the JSON export takes precedence when both match.

All commands output JSON by default for agent integration.
Use --human for human-readable output.

Environment Variables:
  ZOTERO_JSON_PATH       Structured JSON export file
  ZOTERO_BIB_PATH        BibTeX export file
  DEVONTHINK_INDEX_PATH  SQLite document index (docstore commands)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verboseOutput, "verbose", false, "Print diagnostic messages to stderr")
	rootCmd.Version = Version
}
