// Package mcp exposes ArcSight's two analysis operations as MCP tools so
// an editor or agent can invoke them without shelling out to the CLI.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArcSightMCPServer creates a new MCP server with both analysis tools
// registered. projectPath is the default repository root used when a tool
// call omits its own path argument.
func NewArcSightMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"arcsight",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, projectPath)

	return s
}
