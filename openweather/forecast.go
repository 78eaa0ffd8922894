package openweather

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
)

// minForecastEntries is the number of 3-hour slots needed for the series to
// reach 24 hours ahead. A shorter series cannot answer "tomorrow" and the
// provider fails closed instead of picking a nearer entry.
const minForecastEntries = 9

// Ensure ForecastProvider implements readykit.Provider at compile time.
var _ readykit.Provider = (*ForecastProvider)(nil)

// ForecastProvider fetches the 3-hour forecast series and emits one document
// for the entry nearest 24 hours from now.
type ForecastProvider struct {
	client *rkhttp.Client
	apiKey string
	config
}

// NewForecastProvider creates a ForecastProvider. An empty apiKey disables
// the provider.
func NewForecastProvider(client *rkhttp.Client, apiKey string, opts ...Option) *ForecastProvider {
	p := &ForecastProvider{
		client: client,
		apiKey: apiKey,
		config: config{baseURL: defaultBaseURL, now: time.Now},
	}
	for _, opt := range opts {
		opt(&p.config)
	}
	return p
}

// Name implements readykit.Provider.
func (p *ForecastProvider) Name() string { return "weather-forecast" }

// forecastPayload is the subset of the OpenWeatherMap 5-day/3-hour forecast
// response the provider reads.
type forecastPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// Fetch implements readykit.Provider.
func (p *ForecastProvider) Fetch(ctx context.Context, loc readykit.Location) ([]*readykit.Document, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	var payload forecastPayload
	if err := p.client.GetJSON(ctx, p.forecastURL(loc), nil, &payload); err != nil {
		return nil, err
	}

	// Sparse series: fail closed with an empty, successful result.
	if len(payload.List) < minForecastEntries {
		return nil, nil
	}

	target := p.now().Add(24 * time.Hour)
	best := 0
	bestDelta := time.Duration(1<<63 - 1)
	for i, entry := range payload.List {
		delta := target.Sub(time.Unix(entry.Dt, 0))
		if delta < 0 {
			delta = -delta
		}
		if delta < bestDelta {
			bestDelta = delta
			best = i
		}
	}
	entry := payload.List[best]

	description := ""
	if len(entry.Weather) > 0 {
		description = entry.Weather[0].Description
	}

	text := readykit.JoinFragments(" ",
		fmt.Sprintf("Forecast for %s, 24 hours out: %.0f°F.", loc.String(), entry.Main.Temp),
		sentence(description),
		fmt.Sprintf("Humidity %.0f%%.", entry.Main.Humidity),
		fmt.Sprintf("Wind %.0f mph.", entry.Wind.Speed),
	)

	doc := readykit.NewDocument(
		fmt.Sprintf("24-Hour Weather Forecast - %s", loc.String()),
		text,
		readykit.CategoryWeather,
		readykit.PriorityMedium,
		Source,
		loc,
	).WithExtra("conditions", description)

	return []*readykit.Document{doc}, nil
}

func (p *ForecastProvider) forecastURL(loc readykit.Location) string {
	values := url.Values{}
	values.Set("lat", fmt.Sprintf("%.4f", loc.Latitude))
	values.Set("lon", fmt.Sprintf("%.4f", loc.Longitude))
	values.Set("appid", p.apiKey)
	values.Set("units", "imperial")
	return p.baseURL + "/forecast?" + values.Encode()
}
