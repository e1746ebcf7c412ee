package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

func sampleCommits() []*repo.Commit {
	return []*repo.Commit{
		{ID: "0061", Parent: "0016", Message: "GO PCLUB! second\n", Files: []string{"README.md", "docs/intro.md"}},
		{ID: "0016", Parent: "0000", Message: "GO PCLUB! first"},
	}
}

func TestFormatMarkdown(t *testing.T) {
	got, err := FormatMarkdown(sampleCommits()[0])
	if err != nil {
		t.Fatalf("FormatMarkdown() error = %v", err)
	}

	head, body, ok := strings.Cut(strings.TrimPrefix(got, "---\n"), "---\n\n")
	if !strings.HasPrefix(got, "---\n") || !ok {
		t.Fatalf("FormatMarkdown() has no frontmatter:\n%s", got)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		t.Fatalf("frontmatter is not YAML: %v\n%s", err, head)
	}
	if fm.ID != "0061" || fm.Parent != "0016" {
		t.Errorf("frontmatter = %+v", fm)
	}
	if strings.Join(fm.Files, ",") != "README.md,docs/intro.md" {
		t.Errorf("frontmatter files = %v", fm.Files)
	}
	if !strings.Contains(head, `id: "0061"`) {
		t.Errorf("id should stay a quoted string:\n%s", head)
	}

	wantBody := "GO PCLUB! second\n" +
		"\n## Files\n\n" +
		"- README.md\n" +
		"- docs/intro.md\n"
	if body != wantBody {
		t.Errorf("body =\n%s\nwant\n%s", body, wantBody)
	}
}

func TestFormatMarkdown_NoFiles(t *testing.T) {
	got, err := FormatMarkdown(sampleCommits()[1])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "## Files") {
		t.Errorf("empty commit should have no Files section:\n%s", got)
	}
	if !strings.Contains(got, "files: []\n") {
		t.Errorf("empty commit should list no files:\n%s", got)
	}
	if !strings.HasSuffix(got, "GO PCLUB! first\n") {
		t.Errorf("message missing:\n%s", got)
	}
}

func TestWriteMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WriteMarkdownFiles(sampleCommits(), dir); err != nil {
		t.Fatalf("WriteMarkdownFiles() error = %v", err)
	}
	for _, id := range []string{"0061", "0016"} {
		data, err := os.ReadFile(filepath.Join(dir, id+".md"))
		if err != nil {
			t.Fatalf("read %s.md: %v", id, err)
		}
		if !strings.Contains(string(data), "id: \""+id+"\"") {
			t.Errorf("%s.md missing id:\n%s", id, data)
		}
	}
}

func TestWriteMarkdownFiles_MissingDir(t *testing.T) {
	err := WriteMarkdownFiles(sampleCommits(), filepath.Join(t.TempDir(), "nope"))
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatJSON(output.NewPrinter(&buf, true, false), sampleCommits()); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var got []repo.Commit
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].ID != "0061" || len(got[0].Files) != 2 {
		t.Errorf("FormatJSON() = %+v", got)
	}
}

func TestWriteJSONFiles(t *testing.T) {
	dir := t.TempDir()
	if err := WriteJSONFiles(sampleCommits(), dir); err != nil {
		t.Fatalf("WriteJSONFiles() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "0016.json"))
	if err != nil {
		t.Fatal(err)
	}
	var c repo.Commit
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatal(err)
	}
	if c.Parent != "0000" || c.Message != "GO PCLUB! first" {
		t.Errorf("0016.json = %+v", c)
	}
}
