// Package openweather implements readykit providers backed by the
// OpenWeatherMap API (current conditions and the 3-hour forecast series).
// Both providers require an API key; without one they degrade to an empty
// result instead of failing.
package openweather

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Source identifies both OpenWeatherMap providers in document metadata.
const Source = "openweathermap"

type config struct {
	baseURL string
	now     func() time.Time
}

// Option configures an OpenWeatherMap provider.
type Option func(*config)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *config) {
		c.baseURL = u
	}
}

// WithClock overrides the clock the forecast provider anchors its +24h
// target to. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// Ensure CurrentProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*CurrentProvider)(nil)

// CurrentProvider fetches current weather conditions, one document per pass.
type CurrentProvider struct {
	client *rkhttp.Client
	apiKey string
	config
}

// NewCurrentProvider creates a CurrentProvider. An empty apiKey disables the
// provider (it returns no documents and performs no network calls).
func NewCurrentProvider(client *rkhttp.Client, apiKey string, opts ...Option) *CurrentProvider {
	p := &CurrentProvider{
		client: client,
		apiKey: apiKey,
		config: config{baseURL: defaultBaseURL},
	}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// Name implements readykit.Provider.
func (p *CurrentProvider) Name() string { return "weather-current" }

// conditionsPayload is the subset of the OpenWeatherMap current-weather
// response the provider reads.
type conditionsPayload struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// Fetch implements readykit.Provider.
func (p *CurrentProvider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	var payload conditionsPayload
	if err := p.client.GetJSON(ctx, currentURL(p.baseURL, p.apiKey, loc), nil, &payload); err != nil {
		return nil, err
	}

	description := ""
	if len(payload.Weather) > 0 {
		description = payload.Weather[0].Description
	}

	text := readykit.JoinFragments(" ",
		fmt.Sprintf("Current conditions for %s: %.0f°F.", loc.String(), payload.Main.Temp),
		sentence(description),
		fmt.Sprintf("Humidity %.0f%%.", payload.Main.Humidity),
		fmt.Sprintf("Wind %.0f mph.", payload.Wind.Speed),
	)

	doc := readykit.NewDocument(
		fmt.Sprintf("Current Weather Conditions - %s", loc.String()),
		text,
		readykit.CategoryWeather,
		readykit.PriorityMedium,
		Source,
		loc,
	).WithExtra("conditions", description)

	return []*readykit.Document{doc}, nil
}

func currentURL(baseURL, apiKey string, loc readykit.Location) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%.4f", loc.Latitude))
	values.Set("lon", fmt.Sprintf("%.4f", loc.Longitude))
	values.Set("appid", apiKey)
	values.Set("units", "imperial")
	return baseURL + "/weather?" + values.Encode()
}

// sentence capitalizes nothing and simply terminates a fragment, returning
// empty for empty input so JoinFragments drops it.
func sentence(s string) string {
	if s == "" {
		return ""
	}
	return "Conditions: " + s + "."
}
