package folio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/admin"
	"github.com/eringen/folio/views"
)

// requireAdmin sends visitors who are not signed in to the login page and
// signed-in non-admins home.
func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IsAdmin(c) {
			return next(c)
		}
		target := "/"
		if !a.signedIn(c) {
			target = "/login/?next=" + views.QueryEscape("/admin/")
		}
		if isHTMX(c) {
			c.Response().Header().Set("HX-Redirect", target)
			return c.NoContent(http.StatusOK)
		}
		return c.Redirect(http.StatusSeeOther, target)
	}
}

func (a *App) workflowFor(c echo.Context) *admin.Workflow {
	return a.workflows.Get(sessionID(c))
}

// backendFor returns the admin's authenticated API client.
func backendFor(c echo.Context) admin.Backend {
	return SessionFrom(c).Client()
}

// ensureLoaded fetches the active list the first time the panel needs it.
// A failure is already recorded as the workflow's error notice.
func (a *App) ensureLoaded(c echo.Context, wf *admin.Workflow) {
	if wf.Loaded() {
		return
	}
	if err := wf.Reload(c.Request().Context(), backendFor(c)); err != nil {
		a.logAdminError(c, "reload", err)
	}
}

func (a *App) logAdminError(c echo.Context, op string, err error) {
	if c.Request().Context().Err() != nil {
		return
	}
	a.Log.Warn("admin operation failed", zap.String("op", op), zap.Error(err))
}

func (a *App) renderDashboard(c echo.Context, wf *admin.Workflow) error {
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Admin"}, "admin",
		views.AdminDashboard(wf.Snapshot(), CsrfToken(c)))
}

func backToAdmin(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdmin(c echo.Context) error {
	wf := a.workflowFor(c)
	a.ensureLoaded(c, wf)
	return a.renderDashboard(c, wf)
}

func (a *App) handleAdminTab(c echo.Context) error {
	kind, ok := admin.ParseKind(c.Param("kind"))
	if !ok {
		return echo.ErrNotFound
	}
	if err := a.workflowFor(c).SelectKind(c.Request().Context(), backendFor(c), kind); err != nil {
		a.logAdminError(c, "select", err)
	}
	return backToAdmin(c)
}

func (a *App) handleAdminNew(c echo.Context) error {
	a.workflowFor(c).AddNew()
	return backToAdmin(c)
}

func (a *App) handleAdminEdit(c echo.Context) error {
	wf := a.workflowFor(c)
	a.ensureLoaded(c, wf)
	if err := wf.Edit(c.Param("id")); err != nil {
		if errors.Is(err, admin.ErrUnknownRecord) {
			return echo.ErrNotFound
		}
		return err
	}
	return backToAdmin(c)
}

func (a *App) handleAdminSave(c echo.Context) error {
	wf := a.workflowFor(c)
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := wf.Update(values); err != nil {
		// No form open, e.g. after an idle workflow expired.
		return backToAdmin(c)
	}
	fieldErrs, err := wf.Submit(c.Request().Context(), backendFor(c))
	switch {
	case len(fieldErrs) > 0:
		return a.renderDashboard(c, wf)
	case err != nil:
		a.logAdminError(c, "save", err)
	default:
		a.Feed.Invalidate()
	}
	return backToAdmin(c)
}

func (a *App) handleAdminCancel(c echo.Context) error {
	a.workflowFor(c).Cancel()
	return backToAdmin(c)
}

func (a *App) handleAdminDeleteConfirm(c echo.Context) error {
	kind, ok := admin.ParseKind(c.Param("kind"))
	if !ok {
		return echo.ErrNotFound
	}
	wf := a.workflowFor(c)
	a.ensureLoaded(c, wf)
	id := c.Param("id")
	title, ok := wf.Title(kind, id)
	if !ok {
		return echo.ErrNotFound
	}
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Admin"}, "admin",
		views.DeleteConfirm(kind, id, title, CsrfToken(c)))
}

// handleAdminDelete deletes the record kind named in the URL, which is the
// kind shown on the confirmation page.
func (a *App) handleAdminDelete(c echo.Context) error {
	kind, ok := admin.ParseKind(c.Param("kind"))
	if !ok {
		return echo.ErrNotFound
	}
	wf := a.workflowFor(c)
	if err := wf.Delete(c.Request().Context(), backendFor(c), kind, c.Param("id"), true); err != nil {
		a.logAdminError(c, "delete", err)
	} else {
		a.Feed.Invalidate()
	}
	return backToAdmin(c)
}

// handleAdminNotice serves the notice area alone for htmx polling.
func (a *App) handleAdminNotice(c echo.Context) error {
	return Render(c, views.AdminNotice(a.workflowFor(c).Snapshot()))
}
