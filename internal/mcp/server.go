// Package mcp exposes experiment history and costs to AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ewhitt/promptlab/internal/history"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes experiment lookup tools.
type Server struct {
	outputDir string
	store     *history.Store
	index     *history.Index
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server over one experiment output directory.
// store and index may be nil when prompt history is disabled; the history
// tools then report that to the caller instead of failing.
func NewServer(outputDir string, store *history.Store, index *history.Index) *Server {
	s := &Server{
		outputDir: outputDir,
		store:     store,
		index:     index,
	}

	s.mcp = server.NewMCPServer(
		"promptlab",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchHistoryTool, s.handleSearchHistory)
	s.mcp.AddTool(listHistoryTool, s.handleListHistory)
	s.mcp.AddTool(costSummaryTool, s.handleCostSummary)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
