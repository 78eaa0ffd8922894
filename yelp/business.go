// Package yelp implements a readykit provider backed by the Yelp Fusion
// business search API. It sweeps a fixed set of readiness-relevant business
// categories with one search per category.
package yelp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
)

const defaultBaseURL = "https://api.yelp.com/v3"

// Source identifies the business provider in document metadata.
const Source = "yelp"

// perCategoryLimit caps how many businesses one category search returns.
const perCategoryLimit = 5

// searchCategories is the fixed sweep, in emission order. Aliases are Yelp
// category identifiers.
var searchCategories = []struct {
	alias string
	label string
}{
	{alias: "pharmacy", label: "Pharmacy"},
	{alias: "grocery", label: "Grocery Store"},
	{alias: "gasstations", label: "Gas Station"},
	{alias: "hardware", label: "Hardware Store"},
	{alias: "urgent_care", label: "Urgent Care"},
}

// Ensure BusinessProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*BusinessProvider)(nil)

// BusinessProvider fetches nearby essential businesses for a location.
type BusinessProvider struct {
	client  *rkhttp.Client
	apiKey  string
	baseURL string
}

// Option configures a BusinessProvider.
type Option func(*BusinessProvider)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(p *BusinessProvider) {
		p.baseURL = u
	}
}

// NewBusinessProvider creates a BusinessProvider. An empty apiKey disables
// the provider entirely (no fallback documents).
func NewBusinessProvider(client *rkhttp.Client, apiKey string, opts ...Option) *BusinessProvider {
	p := &BusinessProvider{
		client:  client,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements readykit.Provider.
func (p *BusinessProvider) Name() string { return "local-businesses" }

// searchPayload is the subset of the Fusion search response the provider
// reads.
type searchPayload struct {
	Businesses []struct {
		Name         string  `json:"name"`
		DisplayPhone string  `json:"display_phone"`
		Rating       float64 `json:"rating"`
		Location     struct {
			DisplayAddress []string `json:"display_address"`
		} `json:"location"`
	} `json:"businesses"`
}

// Fetch implements readykit.Provider. A failure in any category search
// fails the whole provider; the aggregation boundary converts that into
// zero business documents for the pass.
func (p *BusinessProvider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.apiKey)

	var docs []*readykit.Document
	for _, category := range searchCategories {
		values := url.Values{}
		values.Set("location", loc.Query())
		values.Set("categories", category.alias)
		values.Set("limit", fmt.Sprintf("%d", perCategoryLimit))

		var payload searchPayload
		if err := p.client.GetJSON(ctx, p.baseURL+"/businesses/search?"+values.Encode(), header, &payload); err != nil {
			return nil, fmt.Errorf("search %s: %w", category.alias, err)
		}

		for _, business := range payload.Businesses {
			if business.Name == "" {
				continue
			}

			rating := ""
			if business.Rating > 0 {
				rating = fmt.Sprintf("Rated %.1f/5 on Yelp.", business.Rating)
			}
			text := readykit.JoinFragments(" ",
				fmt.Sprintf("%s in %s.", category.label, loc.String()),
				fragment("Address", strings.Join(business.Location.DisplayAddress, ", ")),
				fragment("Phone", business.DisplayPhone),
				rating,
			)

			doc := readykit.NewDocument(
				fmt.Sprintf("%s: %s", category.label, business.Name),
				text,
				readykit.CategoryLocalInfo,
				readykit.PriorityLow,
				Source,
				loc,
			).WithExtra("business_category", category.alias)

			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func fragment(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value + "."
}
