// Package fs provides file-based persistence for documents: each document
// becomes one JSON file under a category-specific directory.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/localready/readykit"
)

// Slug converts a document title into a filesystem-safe filename fragment.
// Example: "Weather Alert: Tornado Warning" → "weather_alert_tornado_warning"
func Slug(title string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Ensure Writer implements readykit.DocumentWriter at compile time.
var _ readykit.DocumentWriter = (*Writer)(nil)

// Writer writes documents as JSON files to a base directory, one
// subdirectory per category.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock overrides the clock used for filename timestamps and the
// fetchedAt field. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a new Writer that writes under the given base directory.
func NewWriter(baseDir string, opts ...Option) *Writer {
	w := &Writer{baseDir: baseDir, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateDocument writes a document to disk as a JSON file named after the
// title slug and the write timestamp.
func (w *Writer) CreateDocument(ctx context.Context, doc *readykit.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	ts := w.now().UTC()

	dir := filepath.Join(w.baseDir, string(doc.Category))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	out := *doc
	if out.FetchedAt.IsZero() {
		out.FetchedAt = ts
	}

	content, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.json", Slug(doc.Title), ts.Format("20060102T150405Z"))
	return os.WriteFile(filepath.Join(dir, name), content, 0644)
}
