package main

import (
	"context"
	"fmt"

	"github.com/localready/readykit"
	"github.com/localready/readykit/fs"
	rkslog "github.com/localready/readykit/slog"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	loc := readykit.Location{
		City:      c.City,
		State:     c.State,
		ZIPCode:   c.ZIP,
		Latitude:  c.Lat,
		Longitude: c.Lon,
		Country:   c.Country,
	}
	if err := loc.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
		return err
	}

	agg, err := newAggregator(deps.Providers, deps.Logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
		return err
	}

	result, err := agg.Collect(deps.Ctx, loc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
		return err
	}

	if c.Replace {
		for _, source := range resultSources(result.Documents) {
			if err := deps.Documents.DeleteDocumentsBySource(deps.Ctx, source); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
				return err
			}
		}
	}

	var writer readykit.DocumentWriter = storeWriter{deps.Documents}
	writer = rkslog.NewLoggingWriter(writer, deps.Logger)

	var export readykit.DocumentWriter
	if c.ExportDir != "" {
		export = fs.NewWriter(c.ExportDir)
	}

	byCategory := map[readykit.Category]int{}
	for _, doc := range result.Documents {
		if err := writer.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
			return err
		}
		if export != nil {
			if err := export.CreateDocument(deps.Ctx, doc); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
				return err
			}
		}
		byCategory[doc.Category]++
	}

	fmt.Fprintf(deps.Stdout, "Collected %d documents for %s\n", len(result.Documents), loc.String())
	for _, category := range []readykit.Category{
		readykit.CategoryWeather,
		readykit.CategoryEmergency,
		readykit.CategoryGovernment,
		readykit.CategoryHealth,
		readykit.CategoryLocalInfo,
	} {
		if n := byCategory[category]; n > 0 {
			fmt.Fprintf(deps.Stdout, "  %-12s %d\n", category, n)
		}
	}

	for _, f := range result.Failures {
		fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", f.Provider, f.Err)
	}

	return nil
}

// resultSources returns the distinct sources present in docs, in order of
// first appearance.
func resultSources(docs []*readykit.Document) []string {
	seen := map[string]bool{}
	var sources []string
	for _, doc := range docs {
		if !seen[doc.Source] {
			seen[doc.Source] = true
			sources = append(sources, doc.Source)
		}
	}
	return sources
}

// storeWriter adapts a DocumentService to the DocumentWriter interface.
type storeWriter struct {
	svc readykit.DocumentService
}

func (w storeWriter) CreateDocument(ctx context.Context, doc *readykit.Document) error {
	return w.svc.CreateDocument(ctx, doc)
}
