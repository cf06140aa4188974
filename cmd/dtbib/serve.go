package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
	"github.com/TomBener/devonthink-mcp/internal/config"
	"github.com/TomBener/devonthink-mcp/internal/docstore"
	"github.com/TomBener/devonthink-mcp/internal/mcpserver"
)

var serveHTTPAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve MCP over HTTP on this address instead of stdio")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server exposing the lookups as tools",
	Long: `Run an MCP server over stdio (default) or HTTP.

Tools: lookup_attachment, lookup_citekey, clear_cache, search_docstore.
The parse cache lives for the lifetime of the server process; call
clear_cache after editing an export file.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	resolver := bibliography.NewResolver()

	var store *docstore.DB
	if path := config.DocstorePath(); path != "" {
		db, err := docstore.Open(path)
		if err != nil {
			exitWithError(ExitError, "opening document index: %v", err)
		}
		defer db.Close()
		store = db
		debugf("document index at %s", path)
	}

	srv := mcpserver.New(resolver, store)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveHTTPAddr != "" {
		debugf("serving MCP over HTTP on %s", serveHTTPAddr)
		return srv.RunHTTP(ctx, serveHTTPAddr)
	}
	return srv.Run(ctx)
}
