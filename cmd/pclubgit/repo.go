package main

import (
	"errors"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gorewood/pclubgit/internal/config"
	"github.com/gorewood/pclubgit/internal/logging"
	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
	"github.com/gorewood/pclubgit/internal/store"
)

// newPrinter creates the printer for a command: stdout for results, stderr
// for human-readable errors and warnings.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// openRepo resolves settings for the repository under --dir and opens it.
// The operation log is only opened for an existing repository, or by init,
// so that a mistyped command never creates .pclubgit/. The returned function
// closes the log.
func openRepo(cmd *cobra.Command) (*repo.Repository, func(), error) {
	st := store.NewOS(workDir(cmd))

	global, err := config.LoadFile(afero.NewOsFs(), config.GlobalFile())
	if err != nil {
		return nil, nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	settings, err := repo.LoadSettings(st, global)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.Discard()
	closeLog := func() {}
	if st.IsInitialized() || cmd.Name() == "init" {
		level, _ := settings.SlogLevel()
		fileLogger, closeFn := logging.Open(st.OSPath(st.LogDir()), level)
		logger = fileLogger.With("cmd", cmd.Name())
		closeLog = func() { _ = closeFn() }
	}

	r, err := repo.New(st, settings, logger)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return r, closeLog, nil
}

// reportedError marks a failure the command has already printed in full.
// It only carries the exit code.
type reportedError struct {
	exitErr *output.ExitError
}

func (e reportedError) Error() string { return e.exitErr.Error() }
func (e reportedError) Unwrap() error { return e.exitErr }

// withRepo opens the repository and runs fn, printing any error.
func withRepo(cmd *cobra.Command, fn func(*output.Printer, *repo.Repository) error) error {
	printer := newPrinter(cmd)
	r, closeLog, err := openRepo(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer closeLog()

	if err := fn(printer, r); err != nil {
		if !errors.As(err, &reportedError{}) {
			printer.Error(err)
		}
		return err
	}
	return nil
}
