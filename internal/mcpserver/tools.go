package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
	"github.com/TomBener/devonthink-mcp/internal/config"
	"github.com/TomBener/devonthink-mcp/internal/docstore"
)

// docstoreEnvHint names the variable to set when search_docstore is called
// without a configured index.
var docstoreEnvHint = config.EnvDocstorePath

// LookupPathInput is the input schema for the lookup_attachment tool.
type LookupPathInput struct {
	Path     string `json:"path" jsonschema:"absolute Finder path of the attachment to resolve"`
	JSONPath string `json:"json_path,omitempty" jsonschema:"override for the structured JSON export path"`
	BibPath  string `json:"bib_path,omitempty" jsonschema:"override for the BibTeX export path"`
}

// LookupCitekeyInput is the input schema for the lookup_citekey tool.
type LookupCitekeyInput struct {
	Citekey  string `json:"citekey" jsonschema:"citation key of the entry to resolve"`
	JSONPath string `json:"json_path,omitempty" jsonschema:"override for the structured JSON export path"`
	BibPath  string `json:"bib_path,omitempty" jsonschema:"override for the BibTeX export path"`
}

// ClearCacheOutput is the output schema for the clear_cache tool.
type ClearCacheOutput struct {
	Cleared bool `json:"cleared"`
}

// SearchDocstoreInput is the input schema for the search_docstore tool.
type SearchDocstoreInput struct {
	Path string `json:"path" jsonschema:"filesystem path to search document records for"`
}

// SearchDocstoreOutput is the output schema for the search_docstore tool.
type SearchDocstoreOutput struct {
	Records []docstore.Record `json:"records"`
	Count   int               `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_attachment",
		Description: "Find the bibliography entry whose attachment matches a local file path",
	}, s.handleLookupPath)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_citekey",
		Description: "Find the bibliography entry with a citation key",
	}, s.handleLookupCitekey)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop memoized export content so changed files are re-read",
	}, s.handleClearCache)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docstore",
		Description: "Find document records whose location matches a file path",
	}, s.handleSearchDocstore)
}

// handleLookupPath handles the lookup_attachment tool invocation.
func (s *Server) handleLookupPath(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input LookupPathInput,
) (*mcp.CallToolResult, bibliography.Result, error) {
	opts := bibliography.Options{JSONPath: input.JSONPath, BibPath: input.BibPath}
	return nil, s.resolver.LookupByPath(input.Path, opts), nil
}

// handleLookupCitekey handles the lookup_citekey tool invocation.
func (s *Server) handleLookupCitekey(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input LookupCitekeyInput,
) (*mcp.CallToolResult, bibliography.Result, error) {
	opts := bibliography.Options{JSONPath: input.JSONPath, BibPath: input.BibPath}
	return nil, s.resolver.LookupByCitationKey(input.Citekey, opts), nil
}

// handleClearCache handles the clear_cache tool invocation.
func (s *Server) handleClearCache(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ClearCacheOutput, error) {
	s.resolver.ClearCache()
	return nil, ClearCacheOutput{Cleared: true}, nil
}

// handleSearchDocstore handles the search_docstore tool invocation.
func (s *Server) handleSearchDocstore(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchDocstoreInput,
) (*mcp.CallToolResult, SearchDocstoreOutput, error) {
	if s.store == nil {
		return nil, SearchDocstoreOutput{}, fmt.Errorf("no document index configured: set %s", docstoreEnvHint)
	}

	records, err := s.store.SearchByPath(input.Path)
	if err != nil {
		return nil, SearchDocstoreOutput{}, err
	}
	return nil, SearchDocstoreOutput{Records: records, Count: len(records)}, nil
}
