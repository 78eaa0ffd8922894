package main

import (
	"fmt"

	"github.com/localready/readykit"
	"github.com/localready/readykit/static"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
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

	docs := static.Catalog(loc)
	for _, doc := range docs {
		if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Seeded %d readiness guides for %s\n", len(docs), loc.String())
	return nil
}
