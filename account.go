package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/validate"
	"github.com/eringen/folio/views"
)

const (
	msgAuthFailed      = "An error occurred"
	msgTooManyAttempts = "Too many attempts. Try again later."
	msgBadUsername     = "Use 3-30 letters, numbers or underscores"
)

// safeNext returns next when it is a local path, else "/".
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func (a *App) signedIn(c echo.Context) bool {
	s := SessionFrom(c)
	return s != nil && s.IsAuthenticated()
}

func (a *App) renderAuth(c echo.Context, code int, d views.AuthView) error {
	d.CSRF = CsrfToken(c)
	title, active := "Login", "login"
	if d.Register {
		title = "Register"
	}
	return a.renderPage(c, code, views.PageMeta{Title: title}, active, views.AuthPage(d))
}

func (a *App) handleLoginForm(c echo.Context) error {
	next := safeNext(c.QueryParam("next"))
	if a.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return a.renderAuth(c, http.StatusOK, views.AuthView{Next: next})
}

func (a *App) handleRegisterForm(c echo.Context) error {
	if a.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return a.renderAuth(c, http.StatusOK, views.AuthView{Register: true})
}

func (a *App) handleLogin(c echo.Context) error {
	next := safeNext(c.FormValue("next"))
	if a.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, next)
	}
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	d := views.AuthView{Email: email, Next: next}

	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		d.Error = msgTooManyAttempts
		return a.renderAuth(c, http.StatusTooManyRequests, d)
	}

	values := map[string]string{"email": email, "password": password}
	if errs := validate.Errors(values, validate.LoginRules); len(errs) > 0 {
		d.FieldErrors = errs
		return a.renderAuth(c, http.StatusOK, d)
	}

	if err := SessionFrom(c).Login(c.Request().Context(), email, password); err != nil {
		a.loginLimiter.Record(ip)
		d.Error = a.apiFailed(c, err, msgAuthFailed)
		return a.renderAuth(c, http.StatusOK, d)
	}
	a.loginLimiter.Reset(ip)
	return c.Redirect(http.StatusSeeOther, next)
}

func (a *App) handleRegister(c echo.Context) error {
	if a.signedIn(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	username := strings.TrimSpace(c.FormValue("username"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")
	d := views.AuthView{Register: true, Username: username, Email: email}

	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		d.Error = msgTooManyAttempts
		return a.renderAuth(c, http.StatusTooManyRequests, d)
	}

	values := map[string]string{"username": username, "email": email, "password": password}
	errs := validate.Errors(values, validate.RegisterRules)
	if _, bad := errs["username"]; !bad && !validate.Username(username) {
		errs["username"] = msgBadUsername
	}
	if len(errs) > 0 {
		d.FieldErrors = errs
		return a.renderAuth(c, http.StatusOK, d)
	}

	if err := SessionFrom(c).Register(c.Request().Context(), username, email, password); err != nil {
		a.loginLimiter.Record(ip)
		d.Error = a.apiFailed(c, err, msgAuthFailed)
		return a.renderAuth(c, http.StatusOK, d)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleLogout(c echo.Context) error {
	if s := SessionFrom(c); s != nil {
		if err := s.Logout(c.Request().Context()); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/")
}
