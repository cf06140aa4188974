package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TomBener/devonthink-mcp/internal/config"
	"github.com/TomBener/devonthink-mcp/internal/docstore"
)

var (
	docstoreDBPath   string
	docstoreUUID     string
	docstoreName     string
	docstoreLocation string
)

func init() {
	rootCmd.AddCommand(docstoreCmd)
	docstoreCmd.PersistentFlags().StringVar(&docstoreDBPath, "db", "", "Document index path (default: DEVONTHINK_INDEX_PATH)")

	docstoreAddCmd.Flags().StringVar(&docstoreUUID, "uuid", "", "Record UUID (required)")
	docstoreAddCmd.Flags().StringVar(&docstoreName, "name", "", "Record display name")
	docstoreAddCmd.Flags().StringVar(&docstoreLocation, "location", "", "Group path inside the document database")
	docstoreAddCmd.MarkFlagRequired("uuid")

	docstoreCmd.AddCommand(docstoreAddCmd)
	docstoreCmd.AddCommand(docstoreSearchCmd)
}

var docstoreCmd = &cobra.Command{
	Use:   "docstore",
	Short: "Maintain and query the document record index",
	Long: `Maintain the SQLite index of document-management records and find
records whose location matches a file path. Query paths are expanded into
their representational variants before matching, so percent-encoded and
file-URL forms of a stored path are found as well.`,
}

var docstoreAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Index a document record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocstoreAdd,
}

var docstoreSearchCmd = &cobra.Command{
	Use:   "search <path>",
	Short: "Find records whose location matches a path",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocstoreSearch,
}

// DocstoreSearchResponse is the docstore search command output.
type DocstoreSearchResponse struct {
	Records []docstore.Record `json:"records"`
	Count   int               `json:"count"`
}

// mustOpenDocstore opens the document index, exiting when no path is
// configured. The caller is responsible for calling Close().
func mustOpenDocstore() *docstore.DB {
	path := docstoreDBPath
	if path == "" {
		path = config.DocstorePath()
	}
	if path == "" {
		exitWithError(ExitConfigError, "no document index configured: set %s or pass --db", config.EnvDocstorePath)
	}

	db, err := docstore.Open(path)
	if err != nil {
		exitWithError(ExitError, "opening document index: %v", err)
	}
	return db
}

func runDocstoreAdd(cmd *cobra.Command, args []string) error {
	db := mustOpenDocstore()
	defer db.Close()

	rec := docstore.Record{
		UUID:     docstoreUUID,
		Name:     docstoreName,
		Location: docstoreLocation,
		Path:     args[0],
	}
	if err := db.Add(rec); err != nil {
		exitWithError(ExitDataError, "indexing record: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %s\n", rec.UUID)
		return nil
	}
	return outputJSON(rec)
}

func runDocstoreSearch(cmd *cobra.Command, args []string) error {
	db := mustOpenDocstore()
	defer db.Close()

	records, err := db.SearchByPath(args[0])
	if err != nil {
		exitWithError(ExitError, "searching document index: %v", err)
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("No matching records.")
			os.Exit(ExitDataError)
		}
		for _, r := range records {
			fmt.Printf("%s  %s\n  %s\n", r.UUID, r.Name, r.Path)
		}
		return nil
	}
	return outputJSON(DocstoreSearchResponse{Records: records, Count: len(records)})
}
