package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/aliasconfig"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/importscan"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/monorepo"
	"github.com/arcsight-ai/arcsight/internal/adapters/outbound/vcs"
	"github.com/arcsight-ai/arcsight/internal/application"
)

// registerTools registers ArcSight's MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	s.AddTool(
		mcplib.NewTool("arcsight_analyze_commit",
			mcplib.WithDescription("Returns the import graph and detected cycles for a single commit's working tree, as JSON"),
			mcplib.WithString("path",
				mcplib.Description("Repository path to analyze (defaults to the server's project path)"),
			),
		),
		handleAnalyzeCommit(projectPath),
	)

	s.AddTool(
		mcplib.NewTool("arcsight_analyze_pr",
			mcplib.WithDescription("Returns the import cycles a pull request introduces, attributed to the changed file that closed each one, as JSON"),
			mcplib.WithString("base", mcplib.Required(), mcplib.Description("Base commit SHA")),
			mcplib.WithString("head", mcplib.Required(), mcplib.Description("Head commit SHA")),
			mcplib.WithString("changed", mcplib.Description("Comma-separated list of changed file paths")),
			mcplib.WithString("path",
				mcplib.Description("Repository path to analyze (defaults to the server's project path)"),
			),
		),
		handleAnalyzePR(projectPath),
	)
}

func newOrchestrator() *application.Orchestrator {
	return application.New(
		importscan.New(),
		aliasconfig.New(),
		vcs.New(),
		nil,
		monorepo.New(),
	)
}

func handleAnalyzeCommit(defaultPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		repoPath := optionalStringArg(request, "path", defaultPath)

		result := newOrchestrator().AnalyzeCommit(ctx, repoPath)
		return jsonResult(result)
	}
}

func handleAnalyzePR(defaultPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		base, err := request.RequireString("base")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		head, err := request.RequireString("head")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		repoPath := optionalStringArg(request, "path", defaultPath)
		changed := splitChangedArg(optionalStringArg(request, "changed", ""))

		result := newOrchestrator().AnalyzePR(ctx, base, head, changed, repoPath)
		return jsonResult(result)
	}
}

func optionalStringArg(request mcplib.CallToolRequest, name, fallback string) string {
	if v, ok := request.Params.Arguments[name].(string); ok && v != "" {
		return v
	}
	return fallback
}

func splitChangedArg(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
