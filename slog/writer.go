package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/localready/readykit"
)

// Ensure LoggingWriter implements readykit.DocumentWriter.
var _ readykit.DocumentWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a DocumentWriter with debug logging.
type LoggingWriter struct {
	next   readykit.DocumentWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next readykit.DocumentWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) CreateDocument(ctx context.Context, doc *readykit.Document) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("document write",
			"title", doc.Title,
			"category", doc.Category,
			"source", doc.Source,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.CreateDocument(ctx, doc)
}
