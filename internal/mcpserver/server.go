// Package mcpserver exposes the bibliography resolver and the document
// index as MCP tools over stdio or HTTP.
package mcpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/TomBener/devonthink-mcp/internal/bibliography"
	"github.com/TomBener/devonthink-mcp/internal/docstore"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for the bibliography resolver.
type Server struct {
	resolver *bibliography.Resolver
	store    *docstore.DB // nil when no document index is configured
	server   *mcp.Server
}

// New creates an MCP server over the given resolver. store may be nil.
func New(resolver *bibliography.Resolver, store *docstore.DB) *Server {
	impl := &mcp.Implementation{
		Name:    "devonthink-bibliography",
		Version: Version,
	}

	s := &Server{
		resolver: resolver,
		store:    store,
		server:   mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
