// Package mcp provides a Model Context Protocol server for pclubgit.
// It exposes repository operations as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pclubgit/internal/repo"
)

// NewServer creates an MCP server with all pclubgit tools registered.
func NewServer(version string, r *repo.Repository) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pclubgit",
		Version: version,
	}, nil)
	registerTools(server, r)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that change the staging
// index or add commits. Nothing they do destroys history.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all pclubgit tools to the server.
func registerTools(server *mcp.Server, r *repo.Repository) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "List the files staged for the next commit and the current head id.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "List commits from head back to the first one, newest first. Use limit to cap the count.",
		Annotations: readOnlyAnnotations(),
	}, handleLog(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show",
		Description: "Display one commit by id: parent, message, and the files it snapshotted.",
		Annotations: readOnlyAnnotations(),
	}, handleShow(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify",
		Description: "Check every commit for missing artifacts or snapshot files and list unreachable commit directories.",
		Annotations: readOnlyAnnotations(),
	}, handleVerify(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add",
		Description: "Stage a file (path relative to the working directory) for the next commit.",
		Annotations: writeAnnotations(),
	}, handleAdd(r))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rm",
		Description: "Unstage a file. The working copy and existing commits are not touched.",
		Annotations: writeAnnotations(),
	}, handleRemove(r))

	mcp.AddTool(server, &mcp.Tool{
		Name: "commit",
		Description: fmt.Sprintf("Snapshot every staged file into a new commit. "+
			"The message must contain %q.", r.Settings().Marker),
		Annotations: writeAnnotations(),
	}, handleCommit(r))
}
