package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/pclubgit/internal/config"
	"github.com/gorewood/pclubgit/internal/repo"
	"github.com/gorewood/pclubgit/internal/store"
)

// --- Test helpers ---

func makeTestRepo(t *testing.T) (*repo.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	r, err := repo.New(store.NewOS(dir), config.Defaults().Merge(config.Settings{IDWidth: 4}), nil)
	if err != nil {
		t.Fatalf("repo.New() error = %v", err)
	}
	if err := r.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return r, dir
}

func writeWorkFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

var req = &mcp.CallToolRequest{}

// --- Server ---

func TestNewServer(t *testing.T) {
	r, _ := makeTestRepo(t)
	if NewServer("test", r) == nil {
		t.Fatal("NewServer() returned nil")
	}
}

// --- Read tools ---

func TestHandleStatus_Empty(t *testing.T) {
	r, _ := makeTestRepo(t)

	_, out, err := handleStatus(r)(context.Background(), req, StatusInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Head != "0000" {
		t.Errorf("Head = %q, want %q", out.Head, "0000")
	}
	if out.Files == nil || len(out.Files) != 0 {
		t.Errorf("Files = %#v, want empty non-nil slice", out.Files)
	}
}

func TestHandleLog_NegativeLimit(t *testing.T) {
	r, _ := makeTestRepo(t)

	_, _, err := handleLog(r)(context.Background(), req, LogInput{Limit: -1})
	if err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestHandleShow_Validation(t *testing.T) {
	r, _ := makeTestRepo(t)
	handler := handleShow(r)

	tests := []struct {
		name  string
		input ShowInput
	}{
		{name: "neither id nor latest", input: ShowInput{}},
		{name: "both id and latest", input: ShowInput{ID: "0006", Latest: true}},
		{name: "latest without commits", input: ShowInput{Latest: true}},
		{name: "unknown id", input: ShowInput{ID: "0006"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := handler(context.Background(), req, tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// --- Write tools ---

func TestHandleAddRemove(t *testing.T) {
	r, _ := makeTestRepo(t)
	ctx := context.Background()

	_, out, err := handleAdd(r)(ctx, req, FileInput{File: "a.txt"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(out.Staged) != 1 || out.Staged[0] != "a.txt" {
		t.Errorf("Staged = %v", out.Staged)
	}

	_, _, err = handleAdd(r)(ctx, req, FileInput{File: "a.txt"})
	if !errors.Is(err, repo.ErrAlreadyTracked) {
		t.Errorf("second add error = %v, want ErrAlreadyTracked", err)
	}

	_, out, err = handleRemove(r)(ctx, req, FileInput{File: "a.txt"})
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	if len(out.Staged) != 0 {
		t.Errorf("Staged = %v, want empty", out.Staged)
	}

	_, _, err = handleRemove(r)(ctx, req, FileInput{File: "a.txt"})
	if !errors.Is(err, repo.ErrNotTracked) {
		t.Errorf("second rm error = %v, want ErrNotTracked", err)
	}

	if _, _, err := handleAdd(r)(ctx, req, FileInput{}); err == nil {
		t.Error("add without file should fail")
	}
}

func TestHandleCommit_RoundTrip(t *testing.T) {
	r, dir := makeTestRepo(t)
	ctx := context.Background()
	writeWorkFile(t, dir, "a.txt", "hello")

	if _, _, err := handleAdd(r)(ctx, req, FileInput{File: "a.txt"}); err != nil {
		t.Fatal(err)
	}

	_, _, err := handleCommit(r)(ctx, req, CommitInput{Message: "no marker"})
	if !errors.Is(err, repo.ErrInvalidMessage) {
		t.Fatalf("commit without marker error = %v, want ErrInvalidMessage", err)
	}

	_, created, err := handleCommit(r)(ctx, req, CommitInput{Message: "GO PCLUB! first"})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if created.Commit.ID != "0006" || created.Commit.Parent != "0000" {
		t.Errorf("Commit = %+v", created.Commit)
	}

	_, log, err := handleLog(r)(ctx, req, LogInput{})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if log.Count != 1 || log.Commits[0].Message != "GO PCLUB! first" {
		t.Errorf("log = %+v", log)
	}

	_, shown, err := handleShow(r)(ctx, req, ShowInput{Latest: true})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if shown.Commit.ID != "0006" || len(shown.Commit.Files) != 1 || shown.Commit.Files[0] != "a.txt" {
		t.Errorf("show = %+v", shown.Commit)
	}

	_, verified, err := handleVerify(r)(ctx, req, VerifyInput{})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.OK || verified.Commits != 1 {
		t.Errorf("verify = %+v", verified)
	}
}
