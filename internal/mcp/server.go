// ABOUTME: MCP server initialization and configuration for remix.
// ABOUTME: Sets up a stdio server exposing remix and saved-post tools to agents.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/remix/internal/llm"
	"github.com/2389-research/remix/internal/store"
)

// Server wraps the MCP server with the completion client and saved post store.
type Server struct {
	mcp   *gomcp.Server
	llm   llm.Client
	store store.Store
}

// NewServer creates an MCP server exposing generation and persistence tools.
// The completion client may be nil when no credential is configured; the
// remix_text tool then reports a configuration error instead of registering
// nothing.
func NewServer(client llm.Client, st store.Store) (*Server, error) {
	if st == nil {
		return nil, fmt.Errorf("saved post store is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "remix",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:   mcpServer,
		llm:   client,
		store: st,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
