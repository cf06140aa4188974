package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
	"github.com/TomBener/devonthink-mcp/internal/pdfmeta"
)

var (
	verifyJSONPath string
	verifyBibPath  string
)

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyJSONPath, "json-path", "", "Override the structured JSON export path")
	verifyCmd.Flags().StringVar(&verifyBibPath, "bib-path", "", "Override the BibTeX export path")
}

var verifyCmd = &cobra.Command{
	Use:   "verify <citekey>",
	Short: "Check that an entry's attachments exist on disk",
	Long: `Resolve an entry by citation key and verify its attachments.

Each attachment path is checked against the filesystem; for PDF
attachments a DOI is extracted from the first pages when possible.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

// AttachmentStatus reports one attachment's verification outcome.
type AttachmentStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	DOI    string `json:"doi,omitempty"`
}

// VerifyResponse is the verify command output.
type VerifyResponse struct {
	CitationKey string             `json:"citationKey"`
	Source      string             `json:"source"`
	Title       string             `json:"title,omitempty"`
	Attachments []AttachmentStatus `json:"attachments"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	resolver := bibliography.NewResolver()
	opts := bibliography.Options{JSONPath: verifyJSONPath, BibPath: verifyBibPath}
	res := resolver.LookupByCitationKey(args[0], opts)
	if !res.Success {
		if humanOutput {
			printResultHuman(res)
		} else {
			outputJSON(res)
		}
		os.Exit(ExitDataError)
	}

	d := res.Descriptor
	resp := VerifyResponse{
		CitationKey: d.CitationKey,
		Source:      d.Source,
		Title:       d.Title,
		Attachments: make([]AttachmentStatus, 0, len(d.AttachmentPaths)),
	}

	for _, p := range d.AttachmentPaths {
		status := AttachmentStatus{Path: p}
		if _, err := os.Stat(p); err == nil {
			status.Exists = true
			if strings.EqualFold(filepath.Ext(p), ".pdf") {
				if doi, err := pdfmeta.ExtractDOI(p); err == nil {
					status.DOI = doi
				} else {
					debugf("extracting DOI from %s: %v", p, err)
				}
			}
		}
		resp.Attachments = append(resp.Attachments, status)
	}

	if humanOutput {
		printVerifyHuman(resp)
		return nil
	}
	return outputJSON(resp)
}

// printVerifyHuman prints verification results in human-readable format.
func printVerifyHuman(resp VerifyResponse) {
	fmt.Printf("%s (%s)\n", resp.CitationKey, resp.Source)
	if resp.Title != "" {
		fmt.Printf("  %s\n", resp.Title)
	}
	if len(resp.Attachments) == 0 {
		fmt.Println("  No attachments.")
		return
	}
	for _, a := range resp.Attachments {
		mark := "missing"
		if a.Exists {
			mark = "ok"
		}
		if a.DOI != "" {
			fmt.Printf("  [%s] %s (doi: %s)\n", mark, a.Path, a.DOI)
		} else {
			fmt.Printf("  [%s] %s\n", mark, a.Path)
		}
	}
}
