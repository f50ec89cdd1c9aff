// Package config loads the run configuration from the environment.
//
// Everything that used to be a process-wide toggle in earlier iterations
// of this pipeline (limited test window, shared browser defaults) lives
// here as explicit, run-scoped configuration. Validation is fail-fast: a
// bad configuration stops the run before any fetch begins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pintuSINGH2000/sraping/internal/source"
)

const defaultUserAgent = "activity-scraper/1.0 (github.com/pintuSINGH2000/sraping)"

// userAgentPool is rotated through when ROTATE_USER_AGENTS is on; some
// target sites throttle a repeated identity on rendered fetches.
var userAgentPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/91.0.4472.114 Safari/537.36",
}

// Config holds everything one run or one server instance needs.
type Config struct {
	HTTPAddr    string
	DatabaseDSN string

	// DryRun swaps the Postgres sink for the in-memory one.
	DryRun bool

	// Sources selects the adapters to run; empty means all registered.
	Sources []string

	// WindowLimitDays trims the current-month window to its first N days.
	// Zero means the whole month.
	WindowLimitDays int

	// ItemCap bounds capped listing sources.
	ItemCap int

	EnrichWorkers int
	PriceIndex    int

	UserAgent        string
	RotateUserAgents bool
	Headless         bool
	RenderWait       time.Duration

	GeocodeEnabled bool
}

// Load reads the environment (plus a .env file when present) into a
// Config. Call Validate before using it.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", ""),
		DryRun:           getEnvBool("DRY_RUN", false),
		Sources:          splitList(getEnv("SOURCES", "")),
		WindowLimitDays:  getEnvInt("WINDOW_LIMIT_DAYS", 0),
		ItemCap:          getEnvInt("ITEM_CAP", 0),
		EnrichWorkers:    getEnvInt("ENRICH_WORKERS", 4),
		PriceIndex:       getEnvInt("PRICE_INDEX", 0),
		UserAgent:        getEnv("USER_AGENT", defaultUserAgent),
		RotateUserAgents: getEnvBool("ROTATE_USER_AGENTS", false),
		Headless:         getEnvBool("HEADLESS", true),
		RenderWait:       time.Duration(getEnvInt("RENDER_WAIT_SECONDS", 15)) * time.Second,
		GeocodeEnabled:   getEnvBool("GEOCODE_ENABLED", true),
	}
}

// Validate reports the first configuration defect. Any error here is
// run-level: nothing has been fetched yet and nothing will be.
func (c *Config) Validate() error {
	if !c.DryRun && c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required unless DRY_RUN is set")
	}
	if c.WindowLimitDays < 0 {
		return fmt.Errorf("WINDOW_LIMIT_DAYS must be non-negative, got %d", c.WindowLimitDays)
	}
	if c.EnrichWorkers < 1 {
		return fmt.Errorf("ENRICH_WORKERS must be at least 1, got %d", c.EnrichWorkers)
	}
	known := make(map[string]bool)
	for _, n := range source.Names() {
		known[n] = true
	}
	for _, s := range c.Sources {
		if !known[s] {
			return fmt.Errorf("unknown source %q (registered: %s)", s, strings.Join(source.Names(), ", "))
		}
	}
	return nil
}

// Window resolves the discovery window for a run starting now: the current
// calendar month, optionally trimmed to its first WindowLimitDays days.
func (c *Config) Window(now time.Time) source.Window {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	if c.WindowLimitDays > 0 {
		limited := start.AddDate(0, 0, c.WindowLimitDays)
		if limited.Before(end) {
			end = limited
		}
	}
	return source.Window{Start: start, End: end, Limit: c.ItemCap}
}

// UserAgents returns the rotation pool, or nil when rotation is off.
func (c *Config) UserAgents() []string {
	if c.RotateUserAgents {
		return userAgentPool
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
