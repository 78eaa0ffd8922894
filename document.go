package readykit

import (
	"context"
	"strings"
	"time"
	"unicode"
)

// Category classifies a knowledge-base document.
type Category string

// Document categories.
const (
	CategoryWeather    Category = "weather"
	CategoryEmergency  Category = "emergency"
	CategoryGovernment Category = "government"
	CategoryHealth     Category = "health"
	CategoryLocalInfo  Category = "local_info"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryWeather, CategoryEmergency, CategoryGovernment, CategoryHealth, CategoryLocalInfo:
		return true
	}
	return false
}

// Priority indicates how urgently a document should surface to the user.
type Priority string

// Document priorities, highest first.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Valid reports whether the priority is one of the known values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Document represents one normalized knowledge-base entry. Documents are
// created only by NewDocument and are not mutated after creation, except for
// the storage fields (ID, ContentHash, FetchedAt) a DocumentService assigns
// on create.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	Source      string    `json:"source"`
	Location    string    `json:"location"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`

	// Extra holds provider-specific metadata (e.g. alert_type, severity).
	Extra map[string]string `json:"extra,omitempty"`
}

// Validate returns an error if the document violates the schema invariants.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.Text == "" {
		return Errorf(EINVALID, "document text required")
	}
	if !d.Category.Valid() {
		return Errorf(EINVALID, "unknown document category %q", d.Category)
	}
	if !d.Priority.Valid() {
		return Errorf(EINVALID, "unknown document priority %q", d.Priority)
	}
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	return nil
}

// NewDocument shapes provider output into a Document. It is the single
// construction path for documents: every provider builds its entries through
// it so the schema invariants hold uniformly.
func NewDocument(title, text string, category Category, priority Priority, source string, loc Location) *Document {
	return &Document{
		Title:    title,
		Text:     strings.TrimSpace(text),
		Category: category,
		Priority: priority,
		Source:   source,
		Location: loc.String(),
	}
}

// WithExtra returns the document with a provider-specific metadata key set.
// Empty values are dropped rather than stored.
func (d *Document) WithExtra(key, value string) *Document {
	if value == "" {
		return d
	}
	if d.Extra == nil {
		d.Extra = make(map[string]string)
	}
	d.Extra[key] = value
	return d
}

// JoinFragments concatenates the non-empty fragments with the separator.
// Providers use it to omit text for optional upstream fields (a missing
// phone number drops its sentence instead of producing "Phone: .").
func JoinFragments(sep string, fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, sep)
}

// Truncate returns at most n characters of s, cutting on a rune boundary.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace)
}

// DocumentWriter writes documents to storage.
type DocumentWriter interface {
	CreateDocument(ctx context.Context, doc *Document) error
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByCategory  SortOrder = "category"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID       *string   `json:"id"`
	Category *Category `json:"category"`
	Source   *string   `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// DocumentService represents a service for managing stored documents.
type DocumentService interface {
	// CreateDocument persists a new document, assigning its storage fields.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if the document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocumentsBySource removes all documents a provider previously
	// produced, so a refresh pass replaces rather than accumulates.
	DeleteDocumentsBySource(ctx context.Context, source string) error
}
