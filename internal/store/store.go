package store

import (
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
)

// DirName is the repository directory inside the working directory.
const DirName = ".pclubgit"

// Artifact names inside a commit directory.
const (
	IndexFile   = "index"
	ParentFile  = "parent"
	MessageFile = "message"
)

const (
	headFile   = "head"
	configFile = "config.yaml"
	lockFile   = "lock"
	commitsDir = "commits"
	tmpDir     = "tmp"
	logsDir    = "logs"
)

// Store resolves repository paths and performs filesystem operations against
// a working directory.
type Store struct {
	fs     afero.Fs
	locker Locker
	osRoot string

	// mu serializes Lock holders within this process.
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLocker sets the lock used around mutating operations.
func WithLocker(l Locker) Option {
	return func(s *Store) {
		s.locker = l
	}
}

// New creates a Store over fs. Paths are interpreted relative to the root of
// fs, which is the working directory holding the tracked files.
// Without WithLocker, locking is a no-op.
func New(fs afero.Fs, opts ...Option) *Store {
	s := &Store{fs: fs, locker: nopLocker{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOS creates a Store for the working directory dir on the OS filesystem,
// guarded by a flock-based lock file.
func NewOS(dir string) *Store {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	s := New(afero.NewBasePathFs(afero.NewOsFs(), abs),
		WithLocker(flock.New(filepath.Join(abs, DirName, lockFile))))
	s.osRoot = abs
	return s
}

// Fs returns the underlying filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// OSPath returns the real path of a repository-relative path for an OS-backed
// store, or "" for any other filesystem.
func (s *Store) OSPath(rel string) string {
	if s.osRoot == "" {
		return ""
	}
	return filepath.Join(s.osRoot, rel)
}

// Root returns the repository directory.
func (s *Store) Root() string {
	return DirName
}

// IndexPath returns the path of the staging index.
func (s *Store) IndexPath() string {
	return filepath.Join(DirName, IndexFile)
}

// HeadPath returns the path of the head pointer.
func (s *Store) HeadPath() string {
	return filepath.Join(DirName, headFile)
}

// ConfigPath returns the path of the repository settings file.
func (s *Store) ConfigPath() string {
	return filepath.Join(DirName, configFile)
}

// LogDir returns the directory holding operation logs.
func (s *Store) LogDir() string {
	return filepath.Join(DirName, logsDir)
}

// CommitsDir returns the directory holding all commits.
func (s *Store) CommitsDir() string {
	return filepath.Join(DirName, commitsDir)
}

// CommitDir returns the directory of commit id.
func (s *Store) CommitDir(id string) string {
	return filepath.Join(DirName, commitsDir, id)
}

// CommitPath returns the path of an artifact or snapshot inside commit id.
// name uses forward slashes, as stored in the index.
func (s *Store) CommitPath(id, name string) string {
	return filepath.Join(s.CommitDir(id), filepath.FromSlash(name))
}

// TmpDir returns the directory for commits under construction.
func (s *Store) TmpDir() string {
	return filepath.Join(DirName, tmpDir)
}

// StagingDir returns the construction directory for commit id.
func (s *Store) StagingDir(id string) string {
	return filepath.Join(DirName, tmpDir, id)
}

// WorkPath returns the working-tree path of a tracked filename.
func (s *Store) WorkPath(name string) string {
	return filepath.FromSlash(name)
}

// IsInitialized reports whether the repository directory, index and head exist.
func (s *Store) IsInitialized() bool {
	return s.DirExists(DirName) && s.Exists(s.IndexPath()) && s.Exists(s.HeadPath())
}
