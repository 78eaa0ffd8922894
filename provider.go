package readykit

import "context"

// Provider is one external data source supplying documents for a location.
// Implementations derive their requests deterministically from the location,
// normalize responses through NewDocument, and never touch shared mutable
// state.
//
// A provider whose required credential is absent returns an empty slice and
// a nil error without performing network calls (degraded success, not a
// failure), unless it documents a fallback document instead.
type Provider interface {
	// Name identifies the provider in logs and document metadata.
	Name() string

	// Fetch returns zero or more normalized documents for the location.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, loc Location) ([]*Document, error)
}
