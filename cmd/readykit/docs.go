package main

import (
	"fmt"

	"github.com/localready/readykit"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := readykit.DocumentFilter{
		Limit:  c.Limit,
		SortBy: readykit.SortByCategory,
	}
	if c.Category != "" {
		category := readykit.Category(c.Category)
		if !category.Valid() {
			fmt.Fprintf(deps.Stderr, "error: unknown category %q\n", c.Category)
			return readykit.Errorf(readykit.EINVALID, "unknown category %q", c.Category)
		}
		filter.Category = &category
	}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readykit.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents stored. Run 'readykit refresh' or 'readykit seed' first.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Stored documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		fmt.Fprintf(deps.Stdout, "  %d. [%s/%s] %s (%s)\n", i+1, doc.Category, doc.Priority, doc.Title, doc.Source)
		if c.Full {
			fmt.Fprintf(deps.Stdout, "     %s\n", doc.Text)
		}
	}

	return nil
}
