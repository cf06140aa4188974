package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// debugf prints a diagnostic message to stderr when --verbose is set.
func debugf(format string, args ...interface{}) {
	if verboseOutput {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// printResultHuman prints a lookup result in human-readable format.
func printResultHuman(res bibliography.Result) {
	if !res.Success {
		fmt.Println("No match found:")
		for _, e := range res.Errors {
			fmt.Printf("  - %s\n", e)
		}
		return
	}

	fmt.Printf("Matched in %s export (%s = %s)\n", res.Source, res.MatchType, res.MatchValue)
	if res.MatchedField != "" {
		fmt.Printf("  Field: %s\n", res.MatchedField)
	}
	if len(res.MatchPath) > 0 {
		fmt.Printf("  Path: %s\n", strings.Join(res.MatchPath, "."))
	}

	d := res.Descriptor
	if d == nil {
		return
	}
	if d.CitationKey != "" {
		fmt.Printf("  Citation key: %s\n", d.CitationKey)
	}
	if d.ExternalID != "" {
		fmt.Printf("  External ID: %s\n", d.ExternalID)
	}
	if d.Title != "" {
		fmt.Printf("  Title: %s\n", d.Title)
	}
	for _, p := range d.AttachmentPaths {
		fmt.Printf("  Attachment: %s\n", p)
	}
}
