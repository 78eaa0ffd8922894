package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/localready/readykit"
	"github.com/localready/readykit/aggregate"
	"github.com/localready/readykit/civic"
	rkhttp "github.com/localready/readykit/http"
	"github.com/localready/readykit/nws"
	"github.com/localready/readykit/openweather"
	rkslog "github.com/localready/readykit/slog"
	"github.com/localready/readykit/sqlite"
	"github.com/localready/readykit/static"
	"github.com/localready/readykit/yelp"
)

const userAgent = "readykit/1.0 (offline readiness assistant)"

func main() {
	ctx := context.Background()

	// Load .env if present; environment variables win.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService readykit.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := newLogger(stderr)

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readykit"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readykit --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set READYKIT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService

	// Wire command-specific dependencies based on command
	if cmd == "refresh" && deps.Providers == nil {
		client := rkhttp.NewClient(
			rkhttp.WithUserAgent(userAgent),
			rkhttp.WithRateLimit(cli.Refresh.RateLimit),
		)
		deps.Providers = buildProviders(client, cli.Refresh)
	}

	return kongCtx.Run(deps)
}

// buildProviders assembles the provider set in its fixed merge order.
func buildProviders(client *rkhttp.Client, c RefreshCmd) []readykit.Provider {
	return []readykit.Provider{
		openweather.NewCurrentProvider(client, c.OpenWeatherKey),
		openweather.NewForecastProvider(client, c.OpenWeatherKey),
		nws.NewAlertsProvider(client),
		civic.NewDirectoryProvider(client, c.CivicKey),
		static.NewEmergencyInfoProvider(),
		yelp.NewBusinessProvider(client, c.YelpKey),
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultDBPath() string {
	if path := os.Getenv("READYKIT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "readykit.db"
	}
	dir := filepath.Join(home, ".readykit")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "readykit.db")
}

// aggregateOptions keeps Collect wiring in one place for commands.
func newAggregator(providers []readykit.Provider, logger *slog.Logger) (*aggregate.Aggregator, error) {
	wrapped := make([]readykit.Provider, len(providers))
	for i, p := range providers {
		wrapped[i] = rkslog.NewLoggingProvider(p, logger)
	}
	return aggregate.New(wrapped, aggregate.WithLogger(logger))
}
