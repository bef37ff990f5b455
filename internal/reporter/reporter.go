package reporter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

// Reporter is the interface for output formatters
type Reporter interface {
	// Report generates output for the given scan summary
	Report(summary *models.ScanSummary) ([]byte, error)
}

// Get returns a reporter for the specified format. w is the destination the
// output will be written to; the terminal reporter only emits colors when w
// is a terminal. A nil w falls back to stdout detection.
func Get(format string, w io.Writer) (Reporter, error) {
	switch format {
	case "json":
		return &JSONReporter{}, nil
	case "terminal", "":
		r := &TerminalReporter{}
		if w != nil {
			r.Renderer = lipgloss.NewRenderer(w)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// relPath shows path relative to root when possible
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
