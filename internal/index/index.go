// Package index maintains the staging index: the ordered set of filenames
// that the next commit will snapshot.
package index

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gorewood/pclubgit/internal/store"
)

// DefaultMaxName is the longest accepted filename in bytes.
const DefaultMaxName = 512

// ErrAlreadyTracked is returned by Add for a filename already in the index.
var ErrAlreadyTracked = errors.New("file already added")

// ErrNotTracked is returned by Remove for a filename not in the index.
var ErrNotTracked = errors.New("file not tracked")

// ErrInvalidName is returned for filenames that cannot be tracked.
var ErrInvalidName = errors.New("invalid filename")

// reserved names collide with commit artifacts at the top of a commit directory.
// They are matched without regard to case for case-insensitive filesystems.
var reserved = []string{store.IndexFile, store.ParentFile, store.MessageFile}

// Index reads and rewrites the staging index file of a Store.
type Index struct {
	store   *store.Store
	maxName int
}

// New creates an Index over s. A non-positive maxName selects DefaultMaxName.
func New(s *store.Store, maxName int) *Index {
	if maxName <= 0 {
		maxName = DefaultMaxName
	}
	return &Index{store: s, maxName: maxName}
}

// List returns the tracked filenames in insertion order.
func (ix *Index) List() ([]string, error) {
	return ix.load(ix.store.IndexPath())
}

// ListAt reads a frozen index file, such as the copy inside a commit.
func (ix *Index) ListAt(indexPath string) ([]string, error) {
	return ix.load(indexPath)
}

// Contains reports whether name is tracked.
func (ix *Index) Contains(name string) (bool, error) {
	names, err := ix.List()
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// Add appends name to the index.
// Returns ErrAlreadyTracked, leaving the index untouched, if name is present.
func (ix *Index) Add(name string) error {
	if err := ix.Validate(name); err != nil {
		return err
	}

	names, err := ix.List()
	if err != nil {
		return err
	}
	if slices.Contains(names, name) {
		return fmt.Errorf("%w: %s", ErrAlreadyTracked, name)
	}

	return ix.save(append(names, name))
}

// Remove deletes name from the index, keeping the order of the other entries.
// Returns ErrNotTracked, leaving the index untouched, if name is absent.
func (ix *Index) Remove(name string) error {
	names, err := ix.List()
	if err != nil {
		return err
	}

	pos := slices.Index(names, name)
	if pos < 0 {
		return fmt.Errorf("%w: %s", ErrNotTracked, name)
	}

	return ix.save(slices.Delete(names, pos, pos+1))
}

// Reset replaces the index with an empty one.
func (ix *Index) Reset() error {
	return ix.save(nil)
}

// Validate checks that name can be tracked and snapshotted.
func (ix *Index) Validate(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case len(name) > ix.maxName:
		return fmt.Errorf("%w: name is %d bytes, limit is %d", ErrInvalidName, len(name), ix.maxName)
	case strings.ContainsAny(name, "\n\r\x00"):
		return fmt.Errorf("%w: %q contains a line break or NUL", ErrInvalidName, name)
	case strings.Contains(name, `\`):
		return fmt.Errorf("%w: %q: use forward slashes", ErrInvalidName, name)
	case path.IsAbs(name) || filepath.IsAbs(name):
		return fmt.Errorf("%w: %q is absolute", ErrInvalidName, name)
	case path.Clean(name) != name:
		return fmt.Errorf("%w: %q is not a clean relative path", ErrInvalidName, name)
	}

	first, _, _ := strings.Cut(name, "/")
	switch {
	case first == "..":
		return fmt.Errorf("%w: %q leaves the working directory", ErrInvalidName, name)
	case strings.EqualFold(first, store.DirName):
		return fmt.Errorf("%w: %q is inside the repository directory", ErrInvalidName, name)
	case slices.ContainsFunc(reserved, func(r string) bool { return strings.EqualFold(r, first) }):
		return fmt.Errorf("%w: %q is reserved for commit metadata", ErrInvalidName, name)
	}
	return nil
}

// load parses an index file. Blank lines are ignored.
func (ix *Index) load(indexPath string) ([]string, error) {
	data, err := ix.store.ReadString(indexPath, 0)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var names []string
	for line := range strings.SplitSeq(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// save writes a full replacement index and swaps it in.
func (ix *Index) save(names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := ix.store.WriteString(ix.store.IndexPath(), b.String()); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}
