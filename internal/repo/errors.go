package repo

import (
	"errors"
	"fmt"

	"github.com/gorewood/pclubgit/internal/index"
	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/sequencer"
	"github.com/gorewood/pclubgit/internal/store"
)

// Sentinel errors. Every error returned by a Repository is an
// *output.ExitError whose cause chain contains exactly one of these, so
// callers can test with errors.Is.
var (
	ErrAlreadyTracked    = index.ErrAlreadyTracked
	ErrNotTracked        = index.ErrNotTracked
	ErrInvalidName       = index.ErrInvalidName
	ErrInvalidMessage    = errors.New("invalid commit message")
	ErrMissingStagedFile = errors.New("staged file cannot be read")
	ErrCorruptHistory    = errors.New("commit history is corrupt")
	ErrIOFailure         = errors.New("storage failure")
	ErrNotInitialized    = errors.New("not a pclubgit repository (run pclubgit init)")
	ErrLocked            = store.ErrLocked
	ErrHasCommits        = errors.New("repository already has commits")
	ErrUnknownCommit     = errors.New("no such commit")
	ErrInvalidID         = sequencer.ErrInvalidID
	ErrIDSpaceExhausted  = sequencer.ErrOverflow
)

// Kinds reported in JSON error output.
const (
	KindAlreadyTracked    = "already_tracked"
	KindNotTracked        = "not_tracked"
	KindInvalidName       = "invalid_name"
	KindInvalidMessage    = "invalid_message"
	KindMissingStagedFile = "missing_staged_file"
	KindCorruptHistory    = "corrupt_history"
	KindIOFailure         = "io_failure"
	KindNotInitialized    = "not_initialized"
	KindLocked            = "locked"
	KindHasCommits        = "has_commits"
	KindUnknownCommit     = "unknown_commit"
	KindInvalidID         = "invalid_id"
	KindIDSpaceExhausted  = "id_space_exhausted"
)

// ioFailure wraps a storage error. op names what was being attempted.
func ioFailure(op string, err error) *output.ExitError {
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("%s: %v", op, err),
		fmt.Errorf("%w: %w", ErrIOFailure, err),
	).WithKind(KindIOFailure)
}

// corrupt reports a broken commit chain at id.
func corrupt(id string, format string, args ...any) *output.ExitError {
	detail := fmt.Sprintf(format, args...)
	return output.NewSystemErrorWithCause(
		fmt.Sprintf("corrupt history at commit %s: %s", id, detail),
		fmt.Errorf("%w: commit %s: %s", ErrCorruptHistory, id, detail),
	).WithKind(KindCorruptHistory)
}

func notInitialized() *output.ExitError {
	return output.NewUserErrorWithCause(ErrNotInitialized.Error(), ErrNotInitialized).WithKind(KindNotInitialized)
}

func invalidMessage(format string, args ...any) *output.ExitError {
	detail := fmt.Sprintf(format, args...)
	return output.NewUserErrorWithCause(
		"invalid commit message: "+detail,
		fmt.Errorf("%w: %s", ErrInvalidMessage, detail),
	).WithKind(KindInvalidMessage)
}

func missingStagedFile(name string, err error) *output.ExitError {
	return output.NewUserErrorWithCause(
		fmt.Sprintf("cannot snapshot %s: %v", name, err),
		fmt.Errorf("%w: %s: %w", ErrMissingStagedFile, name, err),
	).WithKind(KindMissingStagedFile)
}

// indexError classifies an error returned by the staging index.
func indexError(op string, err error) *output.ExitError {
	switch {
	case errors.Is(err, ErrAlreadyTracked):
		return output.NewConflictErrorWithCause(err.Error(), err).WithKind(KindAlreadyTracked)
	case errors.Is(err, ErrNotTracked):
		return output.NewUserErrorWithCause(err.Error(), err).WithKind(KindNotTracked)
	case errors.Is(err, ErrInvalidName):
		return output.NewUserErrorWithCause(err.Error(), err).WithKind(KindInvalidName)
	default:
		return ioFailure(op, err)
	}
}

// lockError classifies a failure to take the repository lock.
func lockError(err error) *output.ExitError {
	if errors.Is(err, ErrLocked) {
		return output.NewConflictErrorWithCause(err.Error(), err).WithKind(KindLocked)
	}
	return ioFailure("lock repository", err)
}
