package mock

import (
	"context"

	"github.com/localready/readykit"
)

var _ readykit.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of readykit.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *readykit.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *readykit.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
