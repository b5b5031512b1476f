package folio

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/eringen/folio/auth"
)

const (
	sessionName  = "folio_session"
	sessionIDKey = "sid"
	authKey      = "folio.auth"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			a.Log.Info("request", fields...)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	if mw, err := (echoprometheus.MiddlewareConfig{
		Subsystem:  "folio",
		Registerer: a.Metrics,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}).ToMiddleware(); err != nil {
		a.Log.Warn("request metrics disabled", zap.Error(err))
	} else {
		e.Use(mw)
	}

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		CookieHTTPOnly: true,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper:      isBarePath,
	}))

	e.Use(cacheControlMiddleware)
	e.Use(a.sessionMiddleware)
}

// isBarePath reports paths served without a trailing slash.
func isBarePath(c echo.Context) bool {
	path := c.Request().URL.Path
	return strings.HasPrefix(path, "/public") ||
		path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt" ||
		path == "/metrics" || path == "/healthz" || path == "/favicon.svg"
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		default:
			// Pages depend on who is signed in.
			c.Response().Header().Set("Cache-Control", "private, no-store")
		}
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(a.Config.SessionMaxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// sessionMiddleware restores the visitor's auth.Session from the stored
// credential before the handler runs. A failed restore leaves the visitor
// signed out for this request.
func (a *App) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if isBarePath(c) {
			return next(c)
		}
		s := auth.New(a.API, &cookieCredentials{app: a, c: c})
		if err := s.Hydrate(c.Request().Context()); err != nil {
			a.Log.Warn("session restore failed", zap.Error(err))
		}
		c.Set(authKey, s)
		return next(c)
	}
}

// SessionFrom returns the visitor's session, or nil outside the session
// middleware.
func SessionFrom(c echo.Context) *auth.Session {
	s, _ := c.Get(authKey).(*auth.Session)
	return s
}

// IsAdmin reports whether the visitor is signed in with the admin role.
func IsAdmin(c echo.Context) bool {
	s := SessionFrom(c)
	return s != nil && s.IsAdmin()
}

// sessionID returns the browser's session id, or "" before sign-in.
func sessionID(c echo.Context) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	id, _ := sess.Values[sessionIDKey].(string)
	return id
}

// rotateSessionID issues a fresh session id into the cookie.
func rotateSessionID(c echo.Context) (string, error) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	sess.Values[sessionIDKey] = id
	return id, sess.Save(c.Request(), c.Response())
}

func clearSessionID(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	delete(sess.Values, sessionIDKey)
	return sess.Save(c.Request(), c.Response())
}

// cookieCredentials stores the API credential in SQLite under the session
// id carried by the signed cookie. Saving always issues a new session id.
type cookieCredentials struct {
	app *App
	c   echo.Context
}

func (cc *cookieCredentials) Load(ctx context.Context) (string, error) {
	id := sessionID(cc.c)
	if id == "" {
		return "", nil
	}
	notBefore := cc.app.Store.now().Add(-cc.app.Config.SessionMaxAge)
	return cc.app.Store.LoadToken(ctx, id, notBefore)
}

func (cc *cookieCredentials) Save(ctx context.Context, token string) error {
	if old := sessionID(cc.c); old != "" {
		if err := cc.app.Store.DeleteToken(ctx, old); err != nil {
			return err
		}
		cc.app.workflows.Drop(old)
	}
	id, err := rotateSessionID(cc.c)
	if err != nil {
		return err
	}
	return cc.app.Store.SaveToken(ctx, id, token)
}

func (cc *cookieCredentials) Clear(ctx context.Context) error {
	id := sessionID(cc.c)
	if id == "" {
		return nil
	}
	cc.app.workflows.Drop(id)
	if err := cc.app.Store.DeleteToken(ctx, id); err != nil {
		return err
	}
	return clearSessionID(cc.c)
}

// Flash keys.
const (
	flashComment = "comment"
)

// setFlash stores a one-shot message for the next page the visitor loads.
func setFlash(c echo.Context, key, msg string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(msg, key)
	return sess.Save(c.Request(), c.Response())
}

// takeFlash returns and clears the message stored under key.
func takeFlash(c echo.Context, key string) string {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return ""
	}
	flashes := sess.Flashes(key)
	if len(flashes) == 0 {
		return ""
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return ""
	}
	msg, _ := flashes[len(flashes)-1].(string)
	return msg
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
