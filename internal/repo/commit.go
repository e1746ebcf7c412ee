package repo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/store"
)

// Commit is one snapshot in the history.
type Commit struct {
	ID      string   `json:"id"`
	Parent  string   `json:"parent"`
	Message string   `json:"message"`
	Files   []string `json:"files,omitempty"`
}

// CheckMessage reports whether message is acceptable for a commit.
func (r *Repository) CheckMessage(message string) error {
	if len(message) > r.settings.MaxMessageBytes {
		return invalidMessage("message is %d bytes, limit is %d", len(message), r.settings.MaxMessageBytes)
	}
	if !strings.Contains(message, r.settings.Marker) {
		return invalidMessage("message must contain %q", r.settings.Marker)
	}
	return nil
}

// Commit snapshots every staged file under the next id.
//
// The commit is assembled in a staging directory and renamed into commits/
// only when complete; head moves last. On any failure the staging directory
// is removed and head still names the previous commit.
func (r *Repository) Commit(message string) (*Commit, error) {
	if err := r.CheckMessage(message); err != nil {
		return nil, err
	}
	if err := r.requireInit(); err != nil {
		return nil, err
	}
	unlock, err := r.store.Lock()
	if err != nil {
		return nil, lockError(err)
	}
	defer unlock()

	parent, err := r.readHead()
	if err != nil {
		return nil, err
	}
	id, err := r.seq.Next(parent)
	if err != nil {
		return nil, r.nextIDError(parent, err)
	}
	names, err := r.index.List()
	if err != nil {
		return nil, ioFailure("read index", err)
	}
	// The index file may have been edited by hand since Add checked it.
	for _, name := range names {
		if err := r.index.Validate(name); err != nil {
			return nil, indexError("read index", err)
		}
	}

	// Nothing else can be building a commit while we hold the lock.
	if err := r.store.RemoveAll(r.store.TmpDir()); err != nil {
		return nil, ioFailure("clear staging area", err)
	}

	staging := r.store.StagingDir(id)
	if err := r.build(staging, parent, message, names); err != nil {
		_ = r.store.RemoveAll(r.store.TmpDir())
		return nil, err
	}
	if err := r.publish(staging, id); err != nil {
		_ = r.store.RemoveAll(r.store.TmpDir())
		return nil, err
	}

	r.logger.Info("commit created", "id", id, "parent", parent, "files", len(names))
	return &Commit{ID: id, Parent: parent, Message: message, Files: names}, nil
}

// build writes every artifact of a commit into dir.
func (r *Repository) build(dir, parent, message string, names []string) error {
	if err := r.store.Mkdir(dir); err != nil {
		return ioFailure("create staging directory", err)
	}
	if err := r.store.Copy(r.store.IndexPath(), filepath.Join(dir, store.IndexFile)); err != nil {
		return ioFailure("snapshot index", err)
	}
	if err := r.store.WriteString(filepath.Join(dir, store.ParentFile), parent); err != nil {
		return ioFailure("write parent", err)
	}
	if err := r.store.WriteString(filepath.Join(dir, store.MessageFile), message); err != nil {
		return ioFailure("write message", err)
	}

	for _, name := range names {
		src := r.store.WorkPath(name)
		if !r.store.IsFile(src) {
			return missingStagedFile(name, errors.New("not a regular file or does not exist"))
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		r.logger.Debug("snapshot file", "name", name, "dst", dst)
		if err := r.store.Copy(src, dst); err != nil {
			return missingStagedFile(name, err)
		}
	}
	return nil
}

// publish moves a complete commit into place and advances head to it.
func (r *Repository) publish(staging, id string) error {
	final := r.store.CommitDir(id)
	if r.store.DirExists(final) {
		// Left by a crash between the rename below and the head update.
		// Nothing references it.
		r.logger.Warn("replacing unreferenced commit directory", "id", id)
		if err := r.store.RemoveAll(final); err != nil {
			return ioFailure("remove unreferenced commit "+id, err)
		}
	}
	if err := r.store.Mkdir(r.store.CommitsDir()); err != nil {
		return ioFailure("create commits directory", err)
	}
	if err := r.store.Move(staging, final); err != nil {
		return ioFailure("publish commit "+id, err)
	}
	if err := r.store.WriteString(r.store.HeadPath(), id); err != nil {
		_ = r.store.RemoveAll(final)
		return ioFailure("advance head", err)
	}
	return nil
}

func (r *Repository) nextIDError(parent string, err error) error {
	if errors.Is(err, ErrIDSpaceExhausted) {
		return output.NewSystemErrorWithCause(
			fmt.Sprintf("no commit id follows %s", parent), err,
		).WithKind(KindIDSpaceExhausted)
	}
	return corrupt("head", "%v", err)
}
