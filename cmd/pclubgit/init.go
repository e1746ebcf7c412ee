package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty repository",
		Long: `Create .pclubgit/ in the working directory with an empty staging index.

Running init again before the first commit starts over with an empty index.
Once the repository has commits, init refuses to run.

The commit id alphabet and width are read from configuration at this point
and frozen into .pclubgit/config.yaml.

Examples:
  pclubgit init                # Initialize the current directory
  pclubgit init -C ~/notes     # Initialize another directory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, runInit)
		},
	}
}

func runInit(printer *output.Printer, r *repo.Repository) error {
	if err := r.Init(); err != nil {
		return err
	}
	if !printer.IsJSON() {
		return nil
	}
	return printer.Success(map[string]any{
		"status": "ok",
		"head":   r.Sequencer().Sentinel(),
	})
}
