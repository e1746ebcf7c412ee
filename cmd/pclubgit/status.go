package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List the staged files",
		Long: `Print the files staged for the next commit, in the order they were added.

Examples:
  pclubgit status          # Human-readable list
  pclubgit status --json   # Head id and file list as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, runStatus)
		},
	}
}

func runStatus(printer *output.Printer, r *repo.Repository) error {
	status, err := r.Status()
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(status)
	}

	printer.Println(printer.Styles().Bold.Render("Tracked files:"))
	for _, name := range status.Files {
		printer.Println(name)
	}
	return nil
}
