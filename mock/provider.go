package mock

import (
	"context"

	"github.com/localready/readykit"
)

var _ readykit.Provider = (*Provider)(nil)

// Provider is a mock implementation of readykit.Provider.
type Provider struct {
	NameFn  func() string
	FetchFn func(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error)
}

func (p *Provider) Name() string {
	return p.NameFn()
}

func (p *Provider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	return p.FetchFn(ctx, loc)
}
