package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/export"
	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var lastFlag int
	var formatFlag string
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export commits to structured formats",
		Long: `Export commits, newest first, with their messages and file lists.

Examples:
  pclubgit export                           # All commits as a JSON array on stdout
  pclubgit export --last 5 --out ./exports/ # Last 5 as markdown files
  pclubgit export --format json --out ./x/  # One JSON file per commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRepo(cmd, func(printer *output.Printer, r *repo.Repository) error {
				return runExport(printer, r, lastFlag, formatFlag, outFlag)
			})
		},
	}

	cmd.Flags().IntVar(&lastFlag, "last", 0, "Export the last N commits (0 for all)")
	cmd.Flags().StringVar(&formatFlag, "format", "", "Output format: json or md (default: json for stdout, md for --out)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output directory (if omitted, writes to stdout)")

	return cmd
}

// determineFormat picks json for stdout and md for a directory unless told otherwise.
func determineFormat(formatFlag, outFlag string) string {
	if formatFlag != "" {
		return formatFlag
	}
	if outFlag != "" {
		return "md"
	}
	return "json"
}

func runExport(printer *output.Printer, r *repo.Repository, last int, formatFlag, outFlag string) error {
	if last < 0 {
		return output.NewUserError("--last must not be negative")
	}
	format := determineFormat(formatFlag, outFlag)
	if format != "json" && format != "md" {
		return output.NewUserError(fmt.Sprintf("invalid --format %q: use json or md", format))
	}

	commits, err := r.Log(last)
	if err != nil {
		return err
	}
	// Log omits file lists; Show reads them from each commit's index.
	full := make([]*repo.Commit, 0, len(commits))
	for _, c := range commits {
		detailed, err := r.Show(c.ID)
		if err != nil {
			return err
		}
		full = append(full, detailed)
	}

	switch {
	case outFlag == "" && format == "json":
		return export.FormatJSON(printer, full)
	case outFlag == "":
		for i, c := range full {
			doc, err := export.FormatMarkdown(c)
			if err != nil {
				return output.NewSystemErrorWithCause(err.Error(), err)
			}
			if i > 0 {
				printer.Println()
			}
			printer.Print("%s", doc)
		}
		return nil
	case format == "json":
		err = export.WriteJSONFiles(full, outFlag)
	default:
		err = export.WriteMarkdownFiles(full, outFlag)
	}
	if err != nil {
		return err
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok", "count": len(full), "format": format, "dir": outFlag})
	}
	return printer.Success(map[string]any{"message": fmt.Sprintf("Exported %d commit(s) to %s", len(full), outFlag)})
}
