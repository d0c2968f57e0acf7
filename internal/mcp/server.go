package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/ask-assistant/internal/page"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the assistant as a tool.
type Server struct {
	asker page.Asker
	mcp   *server.MCPServer
}

// NewServer creates a new MCP server answering through asker.
func NewServer(asker page.Asker) *Server {
	s := &Server{asker: asker}

	s.mcp = server.NewMCPServer(
		"assistant",
		Version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(askTool, s.handleAsk)

	return s
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
