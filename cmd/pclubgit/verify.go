package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newVerifyCmd creates the verify command.
func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the commit history for damage",
		Long: `Walk the whole history and check that every commit still holds its index,
parent, message and a snapshot of every file it recorded.

Commit directories that head does not reach (for example one left behind by
a crash before head moved) are listed as warnings. They are replaced by the
next commit.

Exits with status 2 when problems are found.

Examples:
  pclubgit verify
  pclubgit verify --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, runVerify)
		},
	}
}

func runVerify(printer *output.Printer, r *repo.Repository) error {
	rep, err := r.Verify()
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		if err := printer.WriteJSON(map[string]any{
			"ok":       rep.OK(),
			"head":     rep.Head,
			"commits":  rep.Commits,
			"problems": rep.Problems,
			"orphans":  rep.Orphans,
		}); err != nil {
			return err
		}
	} else {
		printVerifyReport(printer, rep)
	}

	if rep.OK() {
		return nil
	}
	return reportedError{output.NewSystemErrorWithCause(
		fmt.Sprintf("history has %d problem(s)", len(rep.Problems)),
		repo.ErrCorruptHistory,
	).WithKind(repo.KindCorruptHistory)}
}

func printVerifyReport(printer *output.Printer, rep *repo.Report) {
	for _, id := range rep.Orphans {
		printer.Warn("commit %s is not reachable from head", id)
	}

	if rep.OK() {
		_ = printer.Success(map[string]any{
			"message": fmt.Sprintf("History verified: %d commit(s), no problems", rep.Commits),
		})
		return
	}

	rows := make([][]string, 0, len(rep.Problems))
	for _, p := range rep.Problems {
		id := p.ID
		if id == "" {
			id = "-"
		}
		rows = append(rows, []string{id, p.Detail})
	}
	printer.Table([]string{"COMMIT", "PROBLEM"}, rows)
}
