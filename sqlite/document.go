package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/localready/readykit"
)

// Compile-time interface verification.
var _ readykit.DocumentService = (*DocumentService)(nil)

// DocumentService implements readykit.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashText computes xxHash of text and returns a hex string.
func hashText(text string) string {
	h := xxhash.Sum64String(text)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateDocument persists a new document, assigning ID, ContentHash, and
// FetchedAt.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *readykit.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.ContentHash = hashText(doc.Text)
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	extra, err := marshalExtra(doc.Extra)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, title, text, category, priority, source, location, content_hash, extra, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Title, doc.Text, string(doc.Category), string(doc.Priority), doc.Source,
		doc.Location, doc.ContentHash, extra, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*readykit.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, text, category, priority, source, location, content_hash, extra, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, readykit.Errorf(readykit.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter readykit.DocumentFilter) ([]*readykit.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, text, category, priority, source, location, content_hash, extra, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	switch filter.SortBy {
	case readykit.SortByCategory:
		query.WriteString(" ORDER BY category ASC, fetched_at DESC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*readykit.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocumentsBySource removes all documents attributed to a source.
func (s *DocumentService) DeleteDocumentsBySource(ctx context.Context, source string) error {
	if source == "" {
		return readykit.Errorf(readykit.EINVALID, "source required")
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE source = ?`, source)
	return err
}

// scanDocument reads one documents row through the given Scan function.
func scanDocument(scan func(dest ...any) error) (*readykit.Document, error) {
	var doc readykit.Document
	var category, priority, extra, fetchedAt string

	if err := scan(&doc.ID, &doc.Title, &doc.Text, &category, &priority, &doc.Source,
		&doc.Location, &doc.ContentHash, &extra, &fetchedAt); err != nil {
		return nil, err
	}

	doc.Category = readykit.Category(category)
	doc.Priority = readykit.Priority(priority)

	if extra != "" && extra != "{}" {
		if err := json.Unmarshal([]byte(extra), &doc.Extra); err != nil {
			return nil, fmt.Errorf("failed to parse extra: %w", err)
		}
	}

	var err error
	doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &doc, nil
}

func marshalExtra(extra map[string]string) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("failed to encode extra: %w", err)
	}
	return string(b), nil
}
