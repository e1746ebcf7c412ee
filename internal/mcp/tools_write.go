package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pclubgit/internal/repo"
)

// FileInput names one working-tree file for the add and rm tools.
type FileInput struct {
	File string `json:"file" jsonschema:"path relative to the working directory, with forward slashes (required)"`
}

// FileOutput is the output for the add and rm tools.
type FileOutput struct {
	File   string   `json:"file"   jsonschema:"the file that was staged or unstaged"`
	Staged []string `json:"staged" jsonschema:"staged files after the change"`
}

func handleAdd(r *repo.Repository) mcp.ToolHandlerFor[FileInput, FileOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, FileOutput, error) {
		if input.File == "" {
			return nil, FileOutput{}, errors.New("file is required")
		}
		if err := r.Add(input.File); err != nil {
			return nil, FileOutput{}, fmt.Errorf("adding %s: %w", input.File, err)
		}
		return fileResult(r, input.File)
	}
}

func handleRemove(r *repo.Repository) mcp.ToolHandlerFor[FileInput, FileOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FileInput) (*mcp.CallToolResult, FileOutput, error) {
		if input.File == "" {
			return nil, FileOutput{}, errors.New("file is required")
		}
		if err := r.Remove(input.File); err != nil {
			return nil, FileOutput{}, fmt.Errorf("removing %s: %w", input.File, err)
		}
		return fileResult(r, input.File)
	}
}

// fileResult reports the staging index after a successful add or rm.
func fileResult(r *repo.Repository, file string) (*mcp.CallToolResult, FileOutput, error) {
	status, err := r.Status()
	if err != nil {
		return nil, FileOutput{}, fmt.Errorf("reading status: %w", err)
	}
	return nil, FileOutput{File: file, Staged: status.Files}, nil
}

// CommitInput is the input for the commit tool.
type CommitInput struct {
	Message string `json:"message" jsonschema:"commit message; must contain the repository marker (required)"`
}

// CommitOutput is the output for the commit tool.
type CommitOutput struct {
	Commit CommitSummary `json:"commit" jsonschema:"the created commit"`
}

func handleCommit(r *repo.Repository) mcp.ToolHandlerFor[CommitInput, CommitOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input CommitInput) (*mcp.CallToolResult, CommitOutput, error) {
		c, err := r.Commit(input.Message)
		if err != nil {
			return nil, CommitOutput{}, fmt.Errorf("committing: %w", err)
		}
		return nil, CommitOutput{Commit: toCommitSummary(c)}, nil
	}
}
