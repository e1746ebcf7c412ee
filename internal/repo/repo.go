// Package repo implements the pclubgit operations: init, add, rm, commit,
// status, log, show and verify.
//
// A Repository holds no state between calls. Every operation reads what it
// needs from the Store, does its work, and writes back. Mutating operations
// run under the Store's advisory lock.
package repo

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gorewood/pclubgit/internal/config"
	"github.com/gorewood/pclubgit/internal/index"
	"github.com/gorewood/pclubgit/internal/logging"
	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/sequencer"
	"github.com/gorewood/pclubgit/internal/store"
)

// maxArtifactBytes bounds reads of head, parent and message files.
// Messages are bounded on write by the max_message_bytes setting, which may
// have been larger when an old commit was made.
const maxArtifactBytes = 1 << 20

// Repository performs version-control operations against a Store.
type Repository struct {
	store    *store.Store
	index    *index.Index
	seq      *sequencer.Sequencer
	settings config.Settings
	logger   *slog.Logger
}

// New creates a Repository. settings should come from LoadSettings or
// config.Resolve. A nil logger discards records.
func New(s *store.Store, settings config.Settings, logger *slog.Logger) (*Repository, error) {
	if err := settings.Validate(); err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	seq, err := settings.Sequencer()
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Repository{
		store:    s,
		index:    index.New(s, settings.MaxFilenameBytes),
		seq:      seq,
		settings: settings,
		logger:   logger,
	}, nil
}

// LoadSettings resolves the settings for the repository in s: defaults, then
// global, then the repository's config.yaml, then the environment.
func LoadSettings(s *store.Store, global config.Settings) (config.Settings, error) {
	local, err := config.LoadFile(s.Fs(), s.ConfigPath())
	if err != nil {
		return config.Settings{}, output.NewUserErrorWithCause(err.Error(), err)
	}
	settings, err := config.Resolve(global, local)
	if err != nil {
		return config.Settings{}, output.NewUserErrorWithCause(err.Error(), err)
	}
	return settings, nil
}

// Settings returns the settings the repository was opened with.
func (r *Repository) Settings() config.Settings {
	return r.settings
}

// Sequencer returns the commit-id sequencer.
func (r *Repository) Sequencer() *sequencer.Sequencer {
	return r.seq
}

// Store returns the underlying store.
func (r *Repository) Store() *store.Store {
	return r.store
}

// Init creates the repository directory with an empty index and head set to
// the sentinel id. Running it again before the first commit starts over with
// an empty index. Once a commit exists, Init fails with ErrHasCommits.
func (r *Repository) Init() error {
	if err := r.store.Mkdir(r.store.Root()); err != nil {
		return ioFailure("create repository", err)
	}

	unlock, err := r.store.Lock()
	if err != nil {
		return lockError(err)
	}
	defer unlock()

	if r.store.Exists(r.store.HeadPath()) {
		head, err := r.readHead()
		if err != nil {
			return err
		}
		if !r.seq.IsSentinel(head) {
			return output.NewConflictErrorWithCause(
				fmt.Sprintf("%v (head is %s); refusing to reinitialize", ErrHasCommits, head),
				ErrHasCommits,
			).WithKind(KindHasCommits)
		}
	}

	if err := r.store.Mkdir(r.store.CommitsDir()); err != nil {
		return ioFailure("create commits directory", err)
	}
	if !r.store.Exists(r.store.ConfigPath()) {
		data, err := config.Marshal(r.settings.Frozen())
		if err != nil {
			return ioFailure("encode settings", err)
		}
		if err := r.store.WriteString(r.store.ConfigPath(), string(data)); err != nil {
			return ioFailure("write settings", err)
		}
	}
	if err := r.index.Reset(); err != nil {
		return ioFailure("create index", err)
	}
	if err := r.store.WriteString(r.store.HeadPath(), r.seq.Sentinel()); err != nil {
		return ioFailure("write head", err)
	}

	r.logger.Info("repository initialized",
		"alphabet", r.seq.Alphabet(), "width", r.seq.Width())
	return nil
}

// Head returns the id of the most recent commit, or the sentinel.
func (r *Repository) Head() (string, error) {
	if err := r.requireInit(); err != nil {
		return "", err
	}
	return r.readHead()
}

// Add stages name for the next commit.
func (r *Repository) Add(name string) error {
	if err := r.requireInit(); err != nil {
		return err
	}
	unlock, err := r.store.Lock()
	if err != nil {
		return lockError(err)
	}
	defer unlock()

	if err := r.index.Add(name); err != nil {
		return indexError("add "+name, err)
	}
	r.logger.Info("file added", "name", name)
	return nil
}

// Remove unstages name.
func (r *Repository) Remove(name string) error {
	if err := r.requireInit(); err != nil {
		return err
	}
	unlock, err := r.store.Lock()
	if err != nil {
		return lockError(err)
	}
	defer unlock()

	if err := r.index.Remove(name); err != nil {
		return indexError("remove "+name, err)
	}
	r.logger.Info("file removed", "name", name)
	return nil
}

// Status describes the staging area.
type Status struct {
	Head  string   `json:"head"`
	Files []string `json:"files"`
}

// Status returns head and the tracked filenames in insertion order.
func (r *Repository) Status() (*Status, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	names, err := r.index.List()
	if err != nil {
		return nil, ioFailure("read index", err)
	}
	if names == nil {
		names = []string{}
	}
	return &Status{Head: head, Files: names}, nil
}

func (r *Repository) requireInit() error {
	if !r.store.IsInitialized() {
		return notInitialized()
	}
	return nil
}

// readHead reads and validates the head pointer.
func (r *Repository) readHead() (string, error) {
	raw, err := r.store.ReadString(r.store.HeadPath(), maxArtifactBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", notInitialized()
		}
		return "", ioFailure("read head", err)
	}
	head := strings.TrimSpace(raw)
	if err := r.seq.Validate(head); err != nil {
		return "", corrupt("head", "%v", err)
	}
	return head, nil
}
