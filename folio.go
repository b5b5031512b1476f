// Package folio is the server for a personal portfolio and blog. It renders
// the public pages, the sign-in forms and the admin panel with templ,
// and reads and writes every record through the content API in package api.
//
// Each visitor's API credential is kept server-side in SQLite, keyed by a
// signed session cookie, so the browser never holds the token.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/eringen/folio/api"
)

// App is the central folio application. It wires together the API client,
// credential store, workflows, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	API     *api.Client
	Feed    *FeedCache
	Pager   *Pager
	Log     *zap.Logger
	Metrics *prometheus.Registry

	workflows    *Workflows
	loginLimiter *LoginLimiter
	loginMax     int
	loginWindow  time.Duration
	httpClient   *http.Client
	customRoutes []func(*App)
	staticDir    string
	stops        []func()
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:      cfg,
		Echo:        echo.New(),
		Pager:       &Pager{},
		Log:         zap.NewNop(),
		Metrics:     prometheus.NewRegistry(),
		loginMax:    5,
		loginWindow: time.Minute,
		staticDir:   "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the credential store, builds the API client and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Init() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	var clientOpts []api.Option
	if a.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(a.httpClient))
	}
	clientOpts = append(clientOpts, api.WithTimeout(a.Config.APITimeout))
	client, err := api.New(a.Config.APIURL, clientOpts...)
	if err != nil {
		return fmt.Errorf("folio: init api client: %w", err)
	}
	a.API = client

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	a.Feed = NewFeedCache(a.API, a.Config.FeedCacheTTL)
	a.workflows = NewWorkflows(a.Config.WorkflowTTL)
	a.loginLimiter = NewLoginLimiter(a.loginMax, a.loginWindow)

	a.Metrics.MustRegister(
		api.Collector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.stops = append(a.stops,
		a.Store.StartCleanupScheduler(a.Config.SessionMaxAge, time.Hour, a.Log),
		a.workflows.StartSweeper(a.Config.WorkflowTTL/2),
		a.loginLimiter.Stop,
	)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Log.Info("listening", zap.String("addr", a.Config.Addr), zap.String("api", a.Config.APIURL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", a.handleStylesheet)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", a.handleHealth)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: a.Metrics}))

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/:id/", a.handleBlogPost)
	e.POST("/blog/:id/comments/", a.handleComment)
	e.GET("/projects/", a.handleProjects)
	e.GET("/projects/:id/", a.handleProject)

	// Accounts
	e.GET("/login/", a.handleLoginForm)
	e.POST("/login/", a.handleLogin)
	e.GET("/register/", a.handleRegisterForm)
	e.POST("/register/", a.handleRegister)
	e.POST("/logout/", a.handleLogout)

	// Admin
	g := e.Group("/admin", a.requireAdmin)
	g.GET("/", a.handleAdmin)
	g.POST("/tab/:kind/", a.handleAdminTab)
	g.GET("/new/", a.handleAdminNew)
	g.GET("/edit/:id/", a.handleAdminEdit)
	g.POST("/save/", a.handleAdminSave)
	g.POST("/cancel/", a.handleAdminCancel)
	g.GET("/delete/:kind/:id/", a.handleAdminDeleteConfirm)
	g.POST("/delete/:kind/:id/", a.handleAdminDelete)
	g.GET("/notice/", a.handleAdminNotice)
}

// Close stops background work and closes the store. Call this when the app
// is shutting down.
func (a *App) Close() error {
	for _, stop := range a.stops {
		stop()
	}
	a.stops = nil
	if a.Store != nil {
		a.Store.Close()
	}
	_ = a.Log.Sync()
	return nil
}
