// Package aggregate orchestrates one concurrent collection pass across all
// configured providers for a single location. It fans provider fetches out,
// isolates each provider's failure behind its own boundary, and fans results
// back in so that output order follows provider declaration order, never
// completion order.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/localready/readykit"
	"golang.org/x/sync/errgroup"
)

// DefaultProviderTimeout bounds each individual provider fetch.
const DefaultProviderTimeout = 10 * time.Second

// Failure records one provider's caught error during a pass.
type Failure struct {
	Provider string
	Err      error
}

// Result holds the outcome of a collection pass.
type Result struct {
	// Documents is the merged list, concatenated in declared provider order.
	Documents []*readykit.Document

	// Failures lists every provider whose fetch was caught at its boundary.
	// A non-empty list means the pass completed partially.
	Failures []Failure
}

// Aggregator runs collection passes over a fixed, ordered set of providers.
type Aggregator struct {
	providers []readykit.Provider
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithProviderTimeout sets the independent timeout applied to each provider
// fetch. Defaults to DefaultProviderTimeout.
func WithProviderTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		a.timeout = d
	}
}

// WithLogger sets the logger used to report caught provider failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		a.logger = logger
	}
}

// New creates an Aggregator over the given providers. The slice order is the
// document order of every pass. Configuring zero providers is a setup error
// and fails immediately rather than silently producing empty passes.
func New(providers []readykit.Provider, opts ...Option) (*Aggregator, error) {
	if len(providers) == 0 {
		return nil, readykit.Errorf(readykit.EINVALID, "at least one provider required")
	}

	a := &Aggregator{
		providers: append([]readykit.Provider(nil), providers...),
		timeout:   DefaultProviderTimeout,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// slot holds one provider's outcome, indexed by dispatch position.
type slot struct {
	docs []*readykit.Document
	err  error
}

// Collect fetches from every provider concurrently and returns the merged
// document list. Individual provider failures (network errors, timeouts,
// malformed payloads, panics) are caught, recorded in Result.Failures, and
// contribute zero documents; they never fail the pass. The only error return
// is cancellation of the caller's context.
func (a *Aggregator) Collect(ctx context.Context, loc readykit.Location) (*Result, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	results := make([]slot, len(a.providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range a.providers {
		g.Go(func() error {
			fctx := gctx
			if a.timeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(gctx, a.timeout)
				defer cancel()
			}
			docs, err := fetch(fctx, p, loc)
			results[i] = slot{docs: docs, err: err}
			return nil
		})
	}
	// Goroutines always return nil so one provider can never cancel the
	// others; Wait only synchronizes the join.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, s := range results {
		name := a.providers[i].Name()
		if s.err != nil {
			a.logger.Warn("provider fetch failed",
				"provider", name,
				"location", loc.String(),
				"err", s.err,
			)
			res.Failures = append(res.Failures, Failure{Provider: name, Err: s.err})
			continue
		}
		res.Documents = append(res.Documents, s.docs...)
	}
	return res, nil
}

// fetch invokes a provider behind a panic boundary, so a provider bug is
// recorded as that provider's failure rather than taking down the pass.
func fetch(ctx context.Context, p readykit.Provider, loc readykit.Location) (docs []*readykit.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			docs = nil
			err = fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.Fetch(ctx, loc)
}
