package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pclubgit/internal/repo"
)

// --- Shared types ---

// CommitSummary is a commit as reported by the log and show tools.
type CommitSummary struct {
	ID      string   `json:"id"              jsonschema:"commit id"`
	Parent  string   `json:"parent"          jsonschema:"id of the previous commit (all-zero for the first commit)"`
	Message string   `json:"message"         jsonschema:"commit message"`
	Files   []string `json:"files,omitempty" jsonschema:"files snapshotted by the commit (show only)"`
}

// toCommitSummary converts a repository commit for tool output.
func toCommitSummary(c *repo.Commit) CommitSummary {
	return CommitSummary{ID: c.ID, Parent: c.Parent, Message: c.Message, Files: c.Files}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Head  string   `json:"head"  jsonschema:"id of the most recent commit (all-zero when there is none)"`
	Files []string `json:"files" jsonschema:"staged files in the order they were added"`
}

func handleStatus(r *repo.Repository) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		status, err := r.Status()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("reading status: %w", err)
		}
		return nil, StatusOutput{Head: status.Head, Files: status.Files}, nil
	}
}

// --- Log tool ---

// LogInput is the input for the log tool.
type LogInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of commits to return (default all)"`
}

// LogOutput is the output for the log tool.
type LogOutput struct {
	Count   int             `json:"count"   jsonschema:"number of commits returned"`
	Commits []CommitSummary `json:"commits" jsonschema:"commits, newest first"`
}

func handleLog(r *repo.Repository) mcp.ToolHandlerFor[LogInput, LogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, LogOutput, error) {
		if input.Limit < 0 {
			return nil, LogOutput{}, fmt.Errorf("limit must not be negative, got %d", input.Limit)
		}
		commits, err := r.Log(input.Limit)
		if err != nil {
			return nil, LogOutput{}, fmt.Errorf("reading history: %w", err)
		}

		out := LogOutput{Count: len(commits), Commits: make([]CommitSummary, 0, len(commits))}
		for _, c := range commits {
			out.Commits = append(out.Commits, toCommitSummary(c))
		}
		return nil, out, nil
	}
}

// --- Show tool ---

// ShowInput is the input for the show tool.
type ShowInput struct {
	ID     string `json:"id,omitempty"     jsonschema:"commit id to display"`
	Latest bool   `json:"latest,omitempty" jsonschema:"show the most recent commit"`
}

// ShowOutput is the output for the show tool.
type ShowOutput struct {
	Commit CommitSummary `json:"commit" jsonschema:"the commit"`
}

func handleShow(r *repo.Repository) mcp.ToolHandlerFor[ShowInput, ShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
		if input.ID == "" && !input.Latest {
			return nil, ShowOutput{}, errors.New("specify id or set latest=true")
		}
		if input.ID != "" && input.Latest {
			return nil, ShowOutput{}, errors.New("cannot use both id and latest")
		}

		id := input.ID
		if input.Latest {
			head, err := r.Head()
			if err != nil {
				return nil, ShowOutput{}, fmt.Errorf("reading head: %w", err)
			}
			if r.Sequencer().IsSentinel(head) {
				return nil, ShowOutput{}, errors.New("no commits yet")
			}
			id = head
		}

		c, err := r.Show(id)
		if err != nil {
			return nil, ShowOutput{}, fmt.Errorf("getting commit: %w", err)
		}
		return nil, ShowOutput{Commit: toCommitSummary(c)}, nil
	}
}

// --- Verify tool ---

// VerifyInput is the input for the verify tool (no parameters needed).
type VerifyInput struct{}

// VerifyOutput is the output for the verify tool.
type VerifyOutput struct {
	OK       bool           `json:"ok"       jsonschema:"true when no problems were found"`
	Head     string         `json:"head"     jsonschema:"id of the most recent commit"`
	Commits  int            `json:"commits"  jsonschema:"number of commits reachable from head"`
	Problems []repo.Problem `json:"problems" jsonschema:"defects found, per commit"`
	Orphans  []string       `json:"orphans"  jsonschema:"commit directories not reachable from head"`
}

func handleVerify(r *repo.Repository) mcp.ToolHandlerFor[VerifyInput, VerifyOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ VerifyInput) (*mcp.CallToolResult, VerifyOutput, error) {
		rep, err := r.Verify()
		if err != nil {
			return nil, VerifyOutput{}, fmt.Errorf("verifying history: %w", err)
		}
		return nil, VerifyOutput{
			OK:       rep.OK(),
			Head:     rep.Head,
			Commits:  rep.Commits,
			Problems: rep.Problems,
			Orphans:  rep.Orphans,
		}, nil
	}
}
