// Package slog provides logging decorators for readykit interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/localready/readykit"
)

// Ensure LoggingProvider implements readykit.Provider.
var _ readykit.Provider = (*LoggingProvider)(nil)

// LoggingProvider wraps a Provider and reports every fetch outcome: the
// document count on success and the caught error otherwise.
type LoggingProvider struct {
	next   readykit.Provider
	logger *slog.Logger
}

// NewLoggingProvider creates a new LoggingProvider.
func NewLoggingProvider(next readykit.Provider, logger *slog.Logger) *LoggingProvider {
	return &LoggingProvider{next: next, logger: logger}
}

// Name delegates to the wrapped provider.
func (p *LoggingProvider) Name() string {
	return p.next.Name()
}

// Fetch delegates to the wrapped provider and logs the operation.
func (p *LoggingProvider) Fetch(ctx context.Context, loc readykit.Location) (docs []*readykit.Document, err error) {
	defer func(begin time.Time) {
		p.logger.Info("provider fetch",
			"provider", p.next.Name(),
			"location", loc.String(),
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Fetch(ctx, loc)
}
