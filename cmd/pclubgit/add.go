package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newAddCmd creates the add command.
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Stage a file for the next commit",
		Long: `Append a file to the staging index.

The name is a path relative to the working directory using forward slashes.
The file does not need to exist yet, but it must exist when you commit.

Examples:
  pclubgit add notes.txt
  pclubgit add src/main.c`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				if err := r.Add(args[0]); err != nil {
					return err
				}
				return fileResult(printer, "added", args[0])
			})
		},
	}
}

// newRmCmd creates the rm command.
func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>",
		Short: "Unstage a file",
		Long: `Remove a file from the staging index.

The working copy and existing commits are left alone.

Examples:
  pclubgit rm notes.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				if err := r.Remove(args[0]); err != nil {
					return err
				}
				return fileResult(printer, "removed", args[0])
			})
		},
	}
}

// fileResult reports a staging change. Human output is silent.
func fileResult(printer *output.Printer, action, file string) error {
	if !printer.IsJSON() {
		return nil
	}
	return printer.Success(map[string]any{
		"status": "ok",
		"action": action,
		"file":   file,
	})
}
