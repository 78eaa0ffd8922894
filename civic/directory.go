// Package civic implements a readykit provider backed by the Google Civic
// Information API's representatives endpoint. Unlike the purely optional
// providers, a missing credential does not empty the result: the provider
// falls back to a single generic advisory document so the knowledge base
// always carries a government entry.
package civic

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
)

const defaultBaseURL = "https://www.googleapis.com/civicinfo/v2"

// Source identifies the directory provider in document metadata.
const Source = "google-civic"

// maxResults caps how many directory entries one pass emits.
const maxResults = 10

// Ensure DirectoryProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*DirectoryProvider)(nil)

// DirectoryProvider fetches local government contacts for a location.
type DirectoryProvider struct {
	client  *rkhttp.Client
	apiKey  string
	baseURL string
}

// Option configures a DirectoryProvider.
type Option func(*DirectoryProvider)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(p *DirectoryProvider) {
		p.baseURL = u
	}
}

// NewDirectoryProvider creates a DirectoryProvider.
func NewDirectoryProvider(client *rkhttp.Client, apiKey string, opts ...Option) *DirectoryProvider {
	p := &DirectoryProvider{
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
func (p *DirectoryProvider) Name() string { return "government-directory" }

// representativesPayload is the subset of the Civic Information
// representatives response the provider reads. Officials are referenced
// from offices by index.
type representativesPayload struct {
	Offices []struct {
		Name            string `json:"name"`
		OfficialIndices []int  `json:"officialIndices"`
	} `json:"offices"`
	Officials []struct {
		Name    string   `json:"name"`
		Phones  []string `json:"phones"`
		URLs    []string `json:"urls"`
		Address []struct {
			Line1 string `json:"line1"`
			City  string `json:"city"`
			State string `json:"state"`
			Zip   string `json:"zip"`
		} `json:"address"`
	} `json:"officials"`
}

// Fetch implements readykit.Provider.
func (p *DirectoryProvider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	if p.apiKey == "" {
		return []*readykit.Document{p.fallbackDocument(loc)}, nil
	}

	values := url.Values{}
	values.Set("address", loc.Query())
	values.Set("key", p.apiKey)

	var payload representativesPayload
	if err := p.client.GetJSON(ctx, p.baseURL+"/representatives?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	docs := make([]*readykit.Document, 0, maxResults)
	for _, office := range payload.Offices {
		for _, idx := range office.OfficialIndices {
			if len(docs) >= maxResults {
				return docs, nil
			}
			if idx < 0 || idx >= len(payload.Officials) {
				continue
			}
			official := payload.Officials[idx]
			if official.Name == "" {
				continue
			}

			phone := ""
			if len(official.Phones) > 0 {
				phone = official.Phones[0]
			}
			website := ""
			if len(official.URLs) > 0 {
				website = official.URLs[0]
			}
			address := ""
			if len(official.Address) > 0 {
				a := official.Address[0]
				address = readykit.JoinFragments(", ", a.Line1, a.City, a.State, a.Zip)
			}

			text := readykit.JoinFragments(" ",
				fmt.Sprintf("%s: %s.", office.Name, official.Name),
				fragment("Phone", phone),
				fragment("Website", website),
				fragment("Address", address),
			)

			doc := readykit.NewDocument(
				fmt.Sprintf("Local Government Contact: %s", official.Name),
				text,
				readykit.CategoryGovernment,
				readykit.PriorityMedium,
				Source,
				loc,
			).WithExtra("office", office.Name)

			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// fallbackDocument is the credential-absent substitute: one generic advisory
// entry pointing the user at universally available channels.
func (p *DirectoryProvider) fallbackDocument(loc readykit.Location) *readykit.Document {
	text := fmt.Sprintf(
		"For local government services in %s, contact %s city hall or the %s county clerk's office. "+
			"Directories of state and local agencies are available at usa.gov, and dialing 211 "+
			"connects to community service referrals in most areas.",
		loc.String(), loc.City, loc.State,
	)
	return readykit.NewDocument(
		fmt.Sprintf("Local Government Services - %s", loc.City),
		text,
		readykit.CategoryGovernment,
		readykit.PriorityMedium,
		Source,
		loc,
	)
}

func fragment(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value + "."
}
