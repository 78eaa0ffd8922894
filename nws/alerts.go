// Package nws implements a readykit provider backed by the National Weather
// Service active-alerts API. The API is open and requires no credential,
// only a descriptive User-Agent.
package nws

import (
	"context"
	"fmt"
	"net/url"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
)

const defaultBaseURL = "https://api.weather.gov"

// Source identifies the alerts provider in document metadata.
const Source = "nws"

// descriptionLimit caps how much of an alert's long description is carried
// into the document text.
const descriptionLimit = 200

// Ensure AlertsProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*AlertsProvider)(nil)

// AlertsProvider fetches active severe-weather alerts for a point, one
// document per alert feature.
type AlertsProvider struct {
	client  *rkhttp.Client
	baseURL string
}

// Option configures an AlertsProvider.
type Option func(*AlertsProvider)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(p *AlertsProvider) {
		p.baseURL = u
	}
}

// NewAlertsProvider creates an AlertsProvider.
func NewAlertsProvider(client *rkhttp.Client, opts ...Option) *AlertsProvider {
	p := &AlertsProvider{
		client:  client,
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements readykit.Provider.
func (p *AlertsProvider) Name() string { return "weather-alerts" }

// alertsPayload is the subset of the GeoJSON alerts response the provider
// reads.
type alertsPayload struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			Headline    string `json:"headline"`
			Description string `json:"description"`
			Severity    string `json:"severity"`
		} `json:"properties"`
	} `json:"features"`
}

// Fetch implements readykit.Provider.
func (p *AlertsProvider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	values := url.Values{}
	values.Set("point", loc.Point())

	var payload alertsPayload
	if err := p.client.GetJSON(ctx, p.baseURL+"/alerts/active?"+values.Encode(), nil, &payload); err != nil {
		return nil, err
	}

	docs := make([]*readykit.Document, 0, len(payload.Features))
	for _, feature := range payload.Features {
		props := feature.Properties

		headline := props.Headline
		if headline == "" {
			headline = props.Event
		}
		text := readykit.JoinFragments(" ",
			headline,
			readykit.Truncate(props.Description, descriptionLimit),
		)
		if text == "" {
			// Nothing to tell the user about; skip rather than emit an
			// empty document.
			continue
		}

		title := "Weather Alert"
		if props.Event != "" {
			title = fmt.Sprintf("Weather Alert: %s", props.Event)
		}

		doc := readykit.NewDocument(
			title,
			text,
			readykit.CategoryWeather,
			readykit.PriorityHigh,
			Source,
			loc,
		).
			WithExtra("alert_type", props.Event).
			WithExtra("severity", props.Severity)

		docs = append(docs, doc)
	}
	return docs, nil
}
