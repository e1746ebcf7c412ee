package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/pclubgit/internal/output"
	"github.com/gorewood/pclubgit/internal/repo"
)

// FormatJSON writes the commits as a JSON array to the printer.
func FormatJSON(printer *output.Printer, commits []*repo.Commit) error {
	return printer.WriteJSON(commits)
}

// WriteJSONFiles writes each commit to dir as <id>.json.
func WriteJSONFiles(commits []*repo.Commit, dir string) error {
	for _, c := range commits {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to marshal commit %s: %v", c.ID, err))
		}
		filename := filepath.Join(dir, c.ID+".json")
		if err := os.WriteFile(filename, append(data, '\n'), 0o600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}
	return nil
}
