package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/pclubgit/internal/config"
	"github.com/gorewood/pclubgit/internal/output"
)

// newShortRepo uses four-symbol ids so tests can write commit chains by hand.
func newShortRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	return newTestRepo(t, config.Settings{IDWidth: 4})
}

// writeCommit fabricates a commit directory.
func writeCommit(t *testing.T, dir, id, parent, message string) {
	t.Helper()
	base := ".pclubgit/commits/" + id + "/"
	writeFile(t, dir, base+"index", "")
	writeFile(t, dir, base+"parent", parent)
	writeFile(t, dir, base+"message", message)
}

func setHead(t *testing.T, dir, id string) {
	t.Helper()
	writeFile(t, dir, ".pclubgit/head", id)
}

func TestLog_Empty(t *testing.T) {
	r, _ := newTestRepo(t)
	log, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	if len(log) != 0 {
		t.Errorf("Log() = %v, want empty", log)
	}
}

func TestLog_FollowsParents(t *testing.T) {
	r, dir := newShortRepo(t)
	writeCommit(t, dir, "0006", "0000", "GO PCLUB! a")
	writeCommit(t, dir, "0001", "0006", "GO PCLUB! b")
	writeCommit(t, dir, "0060", "0001", "GO PCLUB! c")
	setHead(t, dir, "0060")

	log, err := r.Log(0)
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	var ids []string
	for _, c := range log {
		ids = append(ids, c.ID)
	}
	if got := strings.Join(ids, ","); got != "0060,0001,0006" {
		t.Errorf("ids = %s", got)
	}
}

func TestLog_CorruptHistory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "head names missing commit",
			setup: func(t *testing.T, dir string) {
				setHead(t, dir, "0006")
			},
		},
		{
			name: "message missing",
			setup: func(t *testing.T, dir string) {
				writeCommit(t, dir, "0006", "0000", "x")
				_ = os.Remove(filepath.Join(dir, ".pclubgit", "commits", "0006", "message"))
				setHead(t, dir, "0006")
			},
		},
		{
			name: "parent missing",
			setup: func(t *testing.T, dir string) {
				writeCommit(t, dir, "0006", "0000", "x")
				_ = os.Remove(filepath.Join(dir, ".pclubgit", "commits", "0006", "parent"))
				setHead(t, dir, "0006")
			},
		},
		{
			name: "parent is garbage",
			setup: func(t *testing.T, dir string) {
				writeCommit(t, dir, "0006", "zz", "x")
				setHead(t, dir, "0006")
			},
		},
		{
			name: "self loop",
			setup: func(t *testing.T, dir string) {
				writeCommit(t, dir, "0006", "0006", "x")
				setHead(t, dir, "0006")
			},
		},
		{
			name: "two commit cycle",
			setup: func(t *testing.T, dir string) {
				writeCommit(t, dir, "0006", "0001", "x")
				writeCommit(t, dir, "0001", "0006", "y")
				setHead(t, dir, "0001")
			},
		},
		{
			name: "head is garbage",
			setup: func(t *testing.T, dir string) {
				setHead(t, dir, "not an id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dir := newShortRepo(t)
			tt.setup(t, dir)

			_, err := r.Log(0)
			assertKind(t, err, ErrCorruptHistory, KindCorruptHistory, output.ExitSystemError)
		})
	}
}

func TestShow(t *testing.T) {
	r, dir := newShortRepo(t)
	writeFile(t, dir, "a.txt", "hello")
	writeFile(t, dir, "b.txt", "world")
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := r.Add(name); err != nil {
			t.Fatal(err)
		}
	}
	c, err := r.Commit("GO PCLUB! two files")
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Show(c.ID)
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got.Message != "GO PCLUB! two files" || got.Parent != "0000" {
		t.Errorf("Show() = %+v", got)
	}
	if strings.Join(got.Files, ",") != "a.txt,b.txt" {
		t.Errorf("Files = %v", got.Files)
	}
}

func TestShow_Errors(t *testing.T) {
	r, _ := newShortRepo(t)

	_, err := r.Show("0006")
	assertKind(t, err, ErrUnknownCommit, KindUnknownCommit, output.ExitUserError)

	_, err = r.Show("0000")
	assertKind(t, err, ErrUnknownCommit, KindUnknownCommit, output.ExitUserError)

	_, err = r.Show("06")
	assertKind(t, err, ErrInvalidID, KindInvalidID, output.ExitUserError)
}

func TestVerify_Clean(t *testing.T) {
	r, dir := newShortRepo(t)
	writeFile(t, dir, "a.txt", "hello")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if _, err := r.Commit("GO PCLUB! again"); err != nil {
			t.Fatal(err)
		}
	}

	rep, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !rep.OK() || rep.Commits != 3 || len(rep.Orphans) != 0 {
		t.Errorf("Verify() = %+v", rep)
	}
}

func TestVerify_FindsDefects(t *testing.T) {
	r, dir := newShortRepo(t)
	writeFile(t, dir, "a.txt", "hello")
	if err := r.Add("a.txt"); err != nil {
		t.Fatal(err)
	}
	c, err := r.Commit("GO PCLUB! one")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(dir, ".pclubgit", "commits", c.ID, "a.txt")); err != nil {
		t.Fatal(err)
	}
	writeCommit(t, dir, "0011", "0006", "GO PCLUB! orphan")

	rep, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if rep.OK() {
		t.Fatal("Verify() should report the missing snapshot")
	}
	if len(rep.Problems) != 1 || rep.Problems[0].ID != c.ID || rep.Problems[0].Detail != "missing a.txt" {
		t.Errorf("Problems = %+v", rep.Problems)
	}
	if strings.Join(rep.Orphans, ",") != "0011" {
		t.Errorf("Orphans = %v", rep.Orphans)
	}
}

func TestVerify_BrokenChainIsAProblem(t *testing.T) {
	r, dir := newShortRepo(t)
	writeCommit(t, dir, "0006", "0006", "GO PCLUB! loop")
	setHead(t, dir, "0006")

	rep, err := r.Verify()
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if rep.OK() {
		t.Error("Verify() should report the cycle")
	}
}
