package persona

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Persona is the simulated identity and its grounding documents. Immutable
// after Load; conversations share it read-only.
type Persona struct {
	Name     string
	Summary  string
	LinkedIn string
	Resume   string
}

// Load reads the grounding documents from dir: linkedin.pdf, resume.pdf and
// summary.txt. A missing document is fatal; the process must not serve any
// conversation without its context.
func Load(name, dir string) (*Persona, error) {
	linkedin, err := extractText(filepath.Join(dir, "linkedin.pdf"))
	if err != nil {
		return nil, fmt.Errorf("loading linkedin profile: %w", err)
	}

	resume, err := extractText(filepath.Join(dir, "resume.pdf"))
	if err != nil {
		return nil, fmt.Errorf("loading resume: %w", err)
	}

	summary, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	if err != nil {
		return nil, fmt.Errorf("loading summary: %w", err)
	}

	return &Persona{
		Name:     name,
		Summary:  string(summary),
		LinkedIn: linkedin,
		Resume:   resume,
	}, nil
}

// extractText concatenates the plain text of every page in document order.
// Pages with no extractable text are skipped; a single bad page never fails
// the whole document.
func extractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("skipping unreadable pdf page", "path", path, "page", i, "error", err)
			continue
		}
		if text == "" {
			continue
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
