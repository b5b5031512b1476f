package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// renderPage wraps body in the layout for the current visitor. htmx
// requests get the body alone.
func (a *App) renderPage(c echo.Context, code int, meta views.PageMeta, active string, body templ.Component) error {
	if isHTMX(c) {
		return RenderStatus(c, code, body)
	}
	page := views.Page{
		Site: a.Config.site(),
		Meta: meta,
		Nav:  a.nav(c, active),
	}
	return RenderStatus(c, code, views.Layout(page, body))
}

func (a *App) nav(c echo.Context, active string) views.Nav {
	n := views.Nav{CSRF: CsrfToken(c), Active: active}
	if s := SessionFrom(c); s != nil && s.IsAuthenticated() {
		n.Authenticated = true
		n.Admin = s.IsAdmin()
		n.Username = s.User().Username
	}
	return n
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
