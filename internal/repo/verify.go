package repo

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/store"
)

// Problem is one defect found by Verify. ID is empty for problems that are
// not tied to a single commit.
type Problem struct {
	ID     string `json:"id,omitempty"`
	Detail string `json:"detail"`
}

// Report is the outcome of Verify.
type Report struct {
	Head     string    `json:"head"`
	Commits  int       `json:"commits"`
	Problems []Problem `json:"problems"`
	// Orphans are commit directories not reachable from head, such as one
	// left by a crash before head was advanced.
	Orphans []string `json:"orphans"`
}

// OK reports whether the history is intact.
func (rep *Report) OK() bool {
	return len(rep.Problems) == 0
}

// Verify walks the whole history and checks that every commit holds its
// index, parent and message, and a snapshot of every file its index names.
// A broken chain is reported as a Problem, not as an error.
func (r *Repository) Verify() (*Report, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	rep := &Report{Head: head, Problems: []Problem{}, Orphans: []string{}}

	reachable := map[string]bool{}
	err = r.Walk(func(c *Commit) error {
		reachable[c.ID] = true
		rep.Commits++
		rep.Problems = append(rep.Problems, r.checkSnapshot(c.ID)...)
		return nil
	})
	if err != nil {
		var exitErr *output.ExitError
		if !errors.As(err, &exitErr) || exitErr.Kind != KindCorruptHistory {
			return nil, err
		}
		rep.Problems = append(rep.Problems, Problem{Detail: exitErr.Message})
	}

	names, err := r.store.ReadDirNames(r.store.CommitsDir())
	if err != nil {
		return nil, ioFailure("list commits", err)
	}
	for _, name := range names {
		if !reachable[name] {
			rep.Orphans = append(rep.Orphans, name)
		}
	}
	slices.SortFunc(rep.Orphans, r.seq.Compare)

	r.logger.Info("history verified",
		"commits", rep.Commits, "problems", len(rep.Problems), "orphans", len(rep.Orphans))
	return rep, nil
}

// checkSnapshot lists what is missing from commit id.
func (r *Repository) checkSnapshot(id string) []Problem {
	var problems []Problem
	indexPath := r.store.CommitPath(id, store.IndexFile)
	if !r.store.IsFile(indexPath) {
		return append(problems, Problem{ID: id, Detail: "index snapshot missing"})
	}
	files, err := r.index.ListAt(indexPath)
	if err != nil {
		return append(problems, Problem{ID: id, Detail: fmt.Sprintf("index snapshot unreadable: %v", err)})
	}
	for _, name := range files {
		if !r.store.IsFile(r.store.CommitPath(id, name)) {
			problems = append(problems, Problem{ID: id, Detail: "missing " + name})
		}
	}
	return problems
}
