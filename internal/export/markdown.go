package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// frontmatter is the YAML header of an exported commit.
type frontmatter struct {
	ID     string   `yaml:"id"`
	Parent string   `yaml:"parent"`
	Files  []string `yaml:"files"`
}

// FormatMarkdown renders one commit as a markdown document.
func FormatMarkdown(c *repo.Commit) (string, error) {
	var builder strings.Builder

	header, err := yaml.Marshal(frontmatter{ID: c.ID, Parent: c.Parent, Files: c.Files})
	if err != nil {
		return "", fmt.Errorf("encode frontmatter for %s: %w", c.ID, err)
	}
	builder.WriteString("---\n")
	builder.Write(header)
	builder.WriteString("---\n\n")

	builder.WriteString(strings.TrimRight(c.Message, "\n"))
	builder.WriteString("\n")

	if len(c.Files) > 0 {
		builder.WriteString("\n## Files\n\n")
		for _, name := range c.Files {
			fmt.Fprintf(&builder, "- %s\n", name)
		}
	}
	return builder.String(), nil
}

// WriteMarkdownFiles writes each commit to dir as <id>.md.
func WriteMarkdownFiles(commits []*repo.Commit, dir string) error {
	for _, c := range commits {
		content, err := FormatMarkdown(c)
		if err != nil {
			return output.NewSystemErrorWithCause(err.Error(), err)
		}
		filename := filepath.Join(dir, c.ID+".md")
		if err := os.WriteFile(filename, []byte(content), 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}
	return nil
}
