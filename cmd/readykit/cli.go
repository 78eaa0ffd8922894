package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/localready/readykit"
	"github.com/localready/readykit/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents readykit.DocumentService
	Providers []readykit.Provider
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Refresh RefreshCmd `cmd:"" help:"Fetch readiness documents for a location from all sources"`
	Seed    SeedCmd    `cmd:"" help:"Store the built-in readiness guides for a location"`
	Docs    DocsCmd    `cmd:"" help:"List stored documents"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	City    string  `arg:"" help:"City name"`
	State   string  `arg:"" help:"Two-letter state code"`
	ZIP     string  `short:"z" name:"zip" help:"ZIP code (preferred for lookups when set)"`
	Lat     float64 `help:"Latitude in decimal degrees"`
	Lon     float64 `help:"Longitude in decimal degrees"`
	Country string  `default:"US" help:"Country code"`

	OpenWeatherKey string `env:"OPENWEATHER_API_KEY" help:"OpenWeatherMap API key"`
	CivicKey       string `env:"CIVIC_API_KEY" help:"Google Civic Information API key"`
	YelpKey        string `env:"YELP_API_KEY" help:"Yelp Fusion API key"`

	ExportDir string  `short:"e" name:"export" help:"Also write documents as JSON files under this directory"`
	RateLimit float64 `default:"2" help:"Max requests per second per host"`
	Replace   bool    `help:"Delete previously stored documents from each refreshed source"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	City    string  `arg:"" help:"City name"`
	State   string  `arg:"" help:"Two-letter state code"`
	ZIP     string  `short:"z" name:"zip" help:"ZIP code"`
	Lat     float64 `help:"Latitude in decimal degrees"`
	Lon     float64 `help:"Longitude in decimal degrees"`
	Country string  `default:"US" help:"Country code"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Category string `short:"c" help:"Filter by category"`
	Source   string `short:"s" help:"Filter by source"`
	Limit    int    `short:"n" help:"Limit the number of documents shown"`
	Full     bool   `help:"Show full document text"`
}
