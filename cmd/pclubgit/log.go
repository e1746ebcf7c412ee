package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newLogCmd creates the log command.
func newLogCmd() *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the commit history",
		Long: `List commits from the newest back to the first, following parent links.

Each entry shows the commit id and its message. A broken chain (a missing
commit directory, message or parent) stops the listing with an error.

Examples:
  pclubgit log            # Full history
  pclubgit log -n 5       # Five most recent commits
  pclubgit log --json     # History as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				return runLog(printer, r, limitFlag)
			})
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Show at most N commits (0 for all)")

	return cmd
}

func runLog(printer *output.Printer, r *repo.Repository, limit int) error {
	if limit < 0 {
		return output.NewUserError("--limit must not be negative")
	}

	commits, err := r.Log(limit)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":   len(commits),
			"commits": commits,
		})
	}

	for i, c := range commits {
		if i > 0 {
			printer.Println()
		}
		printCommitEntry(printer, c)
	}
	return nil
}

// printCommitEntry prints the header line and the indented message.
func printCommitEntry(printer *output.Printer, c *repo.Commit) {
	printer.CommitHeader(c.ID)
	printer.Println()
	for line := range strings.SplitSeq(strings.TrimRight(c.Message, "\n"), "\n") {
		printer.Println("    " + line)
	}
}
