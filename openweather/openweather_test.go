package openweather_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/localready/readykit"
	rkhttp "github.com/localready/readykit/http"
	"github.com/localready/readykit/openweather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wichita = readykit.Location{
	Latitude:  37.6872,
	Longitude: -97.3301,
	ZIPCode:   "67205",
	City:      "Wichita",
	State:     "KS",
	Country:   "US",
}

func TestCurrentProvider_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("normalizes current conditions into one document", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/weather", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			assert.Equal(t, "imperial", r.URL.Query().Get("units"))
			_, _ = w.Write([]byte(`{
				"weather": [{"description": "scattered clouds"}],
				"main": {"temp": 72.4, "humidity": 45},
				"wind": {"speed": 10.4}
			}`))
		}))
		defer server.Close()

		p := openweather.NewCurrentProvider(rkhttp.NewClient(), "test-key", openweather.WithBaseURL(server.URL))

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		require.Len(t, docs, 1)

		doc := docs[0]
		assert.Equal(t, "Current Weather Conditions - Wichita, KS", doc.Title)
		assert.Contains(t, doc.Text, "72°F")
		assert.Contains(t, doc.Text, "scattered clouds")
		assert.Contains(t, doc.Text, "Humidity 45%")
		assert.Contains(t, doc.Text, "Wind 10 mph")
		assert.Equal(t, readykit.CategoryWeather, doc.Category)
		assert.Equal(t, readykit.PriorityMedium, doc.Priority)
		assert.Equal(t, openweather.Source, doc.Source)
		require.NoError(t, doc.Validate())
	})

	t.Run("omits conditions fragment when weather array is empty", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"weather": [], "main": {"temp": 60, "humidity": 50}, "wind": {"speed": 5}}`))
		}))
		defer server.Close()

		p := openweather.NewCurrentProvider(rkhttp.NewClient(), "test-key", openweather.WithBaseURL(server.URL))

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.NotContains(t, docs[0].Text, "Conditions:")
		require.NoError(t, docs[0].Validate())
	})

	t.Run("missing credential returns empty without a network call", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected network call with missing credential")
		}))
		defer server.Close()

		p := openweather.NewCurrentProvider(rkhttp.NewClient(), "", openweather.WithBaseURL(server.URL))

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("upstream failure surfaces as an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		p := openweather.NewCurrentProvider(rkhttp.NewClient(), "test-key", openweather.WithBaseURL(server.URL))

		_, err := p.Fetch(context.Background(), wichita)
		require.Error(t, err)
	})
}

// forecastSeries builds n 3-hour entries starting 3 hours after base.
func forecastSeries(base time.Time, n int) []byte {
	type entry struct {
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
	}

	list := make([]entry, 0, n)
	for i := 1; i <= n; i++ {
		var e entry
		e.Dt = base.Add(time.Duration(i) * 3 * time.Hour).Unix()
		e.Main.Temp = 50 + float64(i)
		e.Main.Humidity = 40
		e.Wind.Speed = 8
		e.Weather = []struct {
			Description string `json:"description"`
		}{{Description: fmt.Sprintf("entry %d", i)}}
		list = append(list, e)
	}

	body, _ := json.Marshal(map[string]any{"list": list})
	return body
}

func TestForecastProvider_Fetch(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return base }

	t.Run("selects the entry nearest 24 hours out", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/forecast", r.URL.Path)
			_, _ = w.Write(forecastSeries(base, 12))
		}))
		defer server.Close()

		p := openweather.NewForecastProvider(rkhttp.NewClient(), "test-key",
			openweather.WithBaseURL(server.URL), openweather.WithClock(clock))

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		require.Len(t, docs, 1)

		// Entry 8 sits exactly at base+24h.
		doc := docs[0]
		assert.Contains(t, doc.Text, "entry 8")
		assert.Contains(t, doc.Text, "58°F")
		assert.Equal(t, "24-Hour Weather Forecast - Wichita, KS", doc.Title)
		assert.Equal(t, readykit.PriorityMedium, doc.Priority)
		require.NoError(t, doc.Validate())
	})

	t.Run("series shorter than 24 hours fails closed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(forecastSeries(base, 8))
		}))
		defer server.Close()

		p := openweather.NewForecastProvider(rkhttp.NewClient(), "test-key",
			openweather.WithBaseURL(server.URL), openweather.WithClock(clock))

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("missing credential returns empty", func(t *testing.T) {
		t.Parallel()

		p := openweather.NewForecastProvider(rkhttp.NewClient(), "")

		docs, err := p.Fetch(context.Background(), wichita)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("malformed payload surfaces as an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"list": "not-an-array"}`))
		}))
		defer server.Close()

		p := openweather.NewForecastProvider(rkhttp.NewClient(), "test-key",
			openweather.WithBaseURL(server.URL), openweather.WithClock(clock))

		_, err := p.Fetch(context.Background(), wichita)
		require.Error(t, err)
	})
}
