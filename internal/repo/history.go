package repo

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/store"
)

// errStop ends a Walk early without reporting an error.
var errStop = errors.New("stop walk")

// Walk visits commits from head back to the first one, newest first.
// Returning a non-nil error from fn stops the walk and returns that error.
//
// The walk always terminates: every parent must precede its child in id
// order, so a cycle or a forward link is reported as ErrCorruptHistory.
func (r *Repository) Walk(fn func(*Commit) error) error {
	id, err := r.Head()
	if err != nil {
		return err
	}

	for !r.seq.IsSentinel(id) {
		c, err := r.readCommit(id)
		if err != nil {
			return err
		}
		if r.seq.Compare(c.Parent, id) >= 0 {
			return corrupt(id, "parent %s does not precede it", c.Parent)
		}
		if err := fn(c); err != nil {
			return err
		}
		id = c.Parent
	}
	return nil
}

// Log returns the history, newest first. A positive limit caps the number of
// entries.
func (r *Repository) Log(limit int) ([]*Commit, error) {
	commits := []*Commit{}
	err := r.Walk(func(c *Commit) error {
		commits = append(commits, c)
		if limit > 0 && len(commits) >= limit {
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return commits, nil
}

// Show returns one commit including the files it snapshotted.
func (r *Repository) Show(id string) (*Commit, error) {
	if err := r.requireInit(); err != nil {
		return nil, err
	}
	if err := r.seq.Validate(id); err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err).WithKind(KindInvalidID)
	}
	if r.seq.IsSentinel(id) || !r.store.DirExists(r.store.CommitDir(id)) {
		return nil, output.NewUserErrorWithCause(
			fmt.Sprintf("%v: %s", ErrUnknownCommit, id),
			fmt.Errorf("%w: %s", ErrUnknownCommit, id),
		).WithKind(KindUnknownCommit)
	}

	c, err := r.readCommit(id)
	if err != nil {
		return nil, err
	}
	files, err := r.index.ListAt(r.store.CommitPath(id, store.IndexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, corrupt(id, "index snapshot missing")
		}
		return nil, ioFailure("read commit index", err)
	}
	c.Files = files
	return c, nil
}

// readCommit loads the message and parent of commit id.
func (r *Repository) readCommit(id string) (*Commit, error) {
	if !r.store.DirExists(r.store.CommitDir(id)) {
		return nil, corrupt(id, "commit directory missing")
	}

	message, err := r.readArtifact(id, store.MessageFile)
	if err != nil {
		return nil, err
	}
	rawParent, err := r.readArtifact(id, store.ParentFile)
	if err != nil {
		return nil, err
	}
	parent := strings.TrimSpace(rawParent)
	if err := r.seq.Validate(parent); err != nil {
		return nil, corrupt(id, "bad parent: %v", err)
	}

	return &Commit{ID: id, Parent: parent, Message: message}, nil
}

func (r *Repository) readArtifact(id, name string) (string, error) {
	data, err := r.store.ReadString(r.store.CommitPath(id, name), maxArtifactBytes)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", corrupt(id, "%s missing", name)
		}
		if errors.Is(err, store.ErrTooLarge) {
			return "", corrupt(id, "%s too large", name)
		}
		return "", ioFailure("read "+name+" of commit "+id, err)
	}
	return data, nil
}
