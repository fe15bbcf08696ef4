package mcpadapter

import (
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "upstage-mcp"

// NewServer registers both document tools on a stdio MCP server.
func NewServer(version string, handler *ToolHandler) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)
	s.AddTool(parseDocumentTool(), handler.ParseDocument)
	s.AddTool(extractInformationTool(), handler.ExtractInformation)
	return s
}

// Serve blocks on the stdio transport until the host closes it.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
