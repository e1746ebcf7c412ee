package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [<id>]",
		Short: "Display a single commit",
		Long: `Display one commit: its id, parent, message and the files it snapshotted.
Without an id, shows the most recent commit.

Examples:
  pclubgit show
  pclubgit show 0000000000000000000000000000000000000006 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				return runShow(printer, r, args)
			})
		},
	}
}

func runShow(printer *output.Printer, r *repo.Repository, args []string) error {
	var id string
	if len(args) > 0 {
		id = args[0]
	} else {
		head, err := r.Head()
		if err != nil {
			return err
		}
		if r.Sequencer().IsSentinel(head) {
			return output.NewUserError("no commits yet").WithKind(repo.KindUnknownCommit)
		}
		id = head
	}

	c, err := r.Show(id)
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		if c.Files == nil {
			c.Files = []string{}
		}
		return printer.WriteJSON(map[string]any{
			"id":      c.ID,
			"parent":  c.Parent,
			"message": c.Message,
			"files":   c.Files,
		})
	}

	printCommitEntry(printer, c)
	printer.Println()
	printer.KeyValue("Parent", c.Parent)
	printer.Section("Files")
	for _, name := range c.Files {
		printer.Println(name)
	}
	return nil
}
