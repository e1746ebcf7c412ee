package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	pclubmcp "github.com/gorewood/pclubgit/internal/mcp"
	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run pclubgit as a Model Context Protocol (MCP) server over stdio.

This exposes the repository in the working directory as MCP tools that any
MCP-capable agent can call.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "pclubgit": {
        "command": "pclubgit",
        "args": ["serve", "-C", "/path/to/project"]
      }
    }
  }

Available tools: status, log, show, verify, add, rm, commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, func(_ *output.Printer, r *repo.Repository) error {
				server := pclubmcp.NewServer(buildVersion(), r)
				return server.Run(cmd.Context(), &mcp.StdioTransport{})
			})
		},
	}
}
