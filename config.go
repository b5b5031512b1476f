package folio

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/folio/views"
)

// SiteConfig holds all configuration for a folio server.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	APIURL       string // Content API base (default "http://localhost:5000/api")
	DatabasePath string // SQLite path for stored credentials (default "data/folio.db")

	SessionSecret string // Required: session cookie signing secret
	CookieSecure  bool   // Set true for HTTPS

	APITimeout    time.Duration // Per-request timeout against the API (default 15s)
	WorkflowTTL   time.Duration // Idle admin workflows are dropped after this (default 30m)
	FeedCacheTTL  time.Duration // RSS and sitemap data cache (default 5m)
	SessionMaxAge time.Duration // Lifetime of a stored credential (default 7 days)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.APIURL == "" {
		c.APIURL = "http://localhost:5000/api"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.APITimeout == 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.WorkflowTTL == 0 {
		c.WorkflowTTL = 30 * time.Minute
	}
	if c.FeedCacheTTL == 0 {
		c.FeedCacheTTL = 5 * time.Minute
	}
	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = 7 * 24 * time.Hour
	}
}

func (c SiteConfig) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithLoginLimit sets how many failed sign-ins an IP gets per window
// (default 5 per minute).
func WithLoginLimit(max int, window time.Duration) Option {
	return func(a *App) {
		a.loginMax, a.loginWindow = max, window
	}
}

// WithHTTPClient sets the http.Client used to reach the API.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *App) {
		a.httpClient = hc
	}
}
