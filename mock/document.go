package mock

import (
	"context"

	"github.com/localready/readykit"
)

var _ readykit.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of readykit.DocumentService.
type DocumentService struct {
	CreateDocumentFn          func(ctx context.Context, doc *readykit.Document) error
	FindDocumentByIDFn        func(ctx context.Context, id string) (*readykit.Document, error)
	FindDocumentsFn           func(ctx context.Context, filter readykit.DocumentFilter) ([]*readykit.Document, error)
	DeleteDocumentsBySourceFn func(ctx context.Context, source string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *readykit.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*readykit.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter readykit.DocumentFilter) ([]*readykit.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocumentsBySource(ctx context.Context, source string) error {
	return s.DeleteDocumentsBySourceFn(ctx, source)
}
