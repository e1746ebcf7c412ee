// Package main provides the entry point for the pclubgit CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/config"
	"github.com/gorewood/pclubgit/internal/envfile"
	"github.com/gorewood/pclubgit/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

// useColor resolves --color against TTY detection of the command's stdout.
func useColor(cmd *cobra.Command) bool {
	return output.ResolveColorMode(persistentFlag(cmd, "color"), output.IsTTY(cmd.OutOrStdout()))
}

// workDir returns the working directory given by --dir.
func workDir(cmd *cobra.Command) string {
	if dir := persistentFlag(cmd, "dir"); dir != "" {
		return dir
	}
	return "."
}

// persistentFlag looks a flag up on the command, then on the root.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the pclubgit CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pclubgit",
		Short: "A minimal single-user version control tool",
		Long: `pclubgit - A minimal single-user version control tool.

pclubgit keeps a list of staged files and snapshots them into immutable
commits with sequential ids:
  - add and rm maintain the staging index
  - commit copies every staged file under the next id
  - log walks the history from the newest commit back to the first

Repository data lives in .pclubgit/ inside the working directory.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'pclubgit --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := output.CheckColorMode(persistentFlag(cmd, "color")); err != nil {
			newPrinter(cmd).Error(err)
			return err
		}
		loadEnvFiles(workDir(cmd))
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Colorize output: auto, always, never")
	cmd.PersistentFlags().StringP("dir", "C", ".", "Working directory holding .pclubgit/")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. <dir>/.env.local      (per-repo override)
//  2. <dir>/.env            (per-repo)
//  3. ~/.config/pclubgit/env (global fallback)
func loadEnvFiles(dir string) {
	_, _ = envfile.Load(filepath.Join(dir, ".env.local"))
	_, _ = envfile.Load(filepath.Join(dir, ".env"))

	if cfg := config.Dir(); cfg != "" {
		_, _ = envfile.Load(filepath.Join(cfg, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "history", Title: "History Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newInitCmd(), "core")
	addGroupedCommand(cmd, newAddCmd(), "core")
	addGroupedCommand(cmd, newRmCmd(), "core")
	addGroupedCommand(cmd, newCommitCmd(), "core")
	addGroupedCommand(cmd, newStatusCmd(), "core")

	addGroupedCommand(cmd, newLogCmd(), "history")
	addGroupedCommand(cmd, newShowCmd(), "history")
	addGroupedCommand(cmd, newVerifyCmd(), "history")
	addGroupedCommand(cmd, newExportCmd(), "history")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
