// Package report renders board exports and writes them to a filesystem.
package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"teamboard/internal/models"
)

// TimeLayout is the timestamp format used inside reports.
const TimeLayout = time.RFC3339

// Writer stores rendered reports under a base directory.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter returns a Writer rooted at dir on fs. A nil fs means the OS
// filesystem.
func NewWriter(fs afero.Fs, dir string) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if dir == "" {
		dir = "out"
	}
	return &Writer{fs: fs, dir: dir}
}

// Path returns the report location for a board.
func (w *Writer) Path(boardID string) string {
	return filepath.Join(w.dir, fmt.Sprintf("board_%s.txt", boardID))
}

// WriteBoard renders the board with its tasks and writes it, replacing any
// previous export of the same board. It returns the written path.
func (w *Writer) WriteBoard(board models.Board, tasks []models.Task) (string, error) {
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := w.Path(board.ID)
	if err := afero.WriteFile(w.fs, path, []byte(Render(board, tasks)), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Render produces the report text: the board header, a blank line, the
// "Tasks:" label, then one block per task each followed by a blank line.
func Render(board models.Board, tasks []models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s\n", board.Name)
	fmt.Fprintf(&b, "Description: %s\n", board.Description)
	fmt.Fprintf(&b, "Creation Time: %s\n", board.CreationTime.Format(TimeLayout))
	fmt.Fprintf(&b, "Status: %s\n", board.Status)
	b.WriteString("\nTasks:\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "Task: %s\n", t.Title)
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
		fmt.Fprintf(&b, "Assigned to: %s\n", t.UserID)
		fmt.Fprintf(&b, "Status: %s\n", t.Status)
		fmt.Fprintf(&b, "Creation Time: %s\n\n", t.CreationTime.Format(TimeLayout))
	}
	return b.String()
}
