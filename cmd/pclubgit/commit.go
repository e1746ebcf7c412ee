package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newCommitCmd creates the commit command.
func newCommitCmd() *cobra.Command {
	var messageFlag string

	cmd := &cobra.Command{
		Use:   "commit -m <message>",
		Short: "Snapshot the staged files",
		Long: `Copy every staged file into a new commit under the next id.

The message must contain the marker GO PCLUB! (configurable with the
marker setting or PCLUBGIT_MARKER). Nothing is printed on success; use
--json to get the new id.

Examples:
  pclubgit commit -m "GO PCLUB! first draft"
  pclubgit commit -m "GO PCLUB! fix typo" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				return runCommit(printer, r, messageFlag)
			})
		},
	}

	cmd.Flags().StringVarP(&messageFlag, "message", "m", "", "Commit message (required)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runCommit(printer *output.Printer, r *repo.Repository, message string) error {
	c, err := r.Commit(message)
	if err != nil {
		return err
	}
	if !printer.IsJSON() {
		return nil
	}
	files := c.Files
	if files == nil {
		files = []string{}
	}
	return printer.Success(map[string]any{
		"status": "ok",
		"id":     c.ID,
		"parent": c.Parent,
		"files":  files,
	})
}
