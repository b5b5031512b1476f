package folio

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/views"
)

// Error lines shown when a read view cannot reach the API.
const (
	msgProjectsFailed = "Failed to load projects"
	msgPostsFailed    = "Failed to load blog posts"
	msgPostFailed     = "Failed to load blog post"
	msgProjectFailed  = "Failed to load project"
	msgCommentsFailed = "Failed to load comments"
	msgCommentEmpty   = "Comment cannot be empty"
	msgCommentFailed  = "Failed to post comment"
)

// apiFailed logs an upstream failure and returns the text to show. A
// cancelled request logs nothing.
func (a *App) apiFailed(c echo.Context, err error, fallback string) string {
	if c.Request().Context().Err() == nil {
		a.Log.Warn("api request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", api.StatusOf(err)),
			zap.Error(err))
	}
	return api.Message(err, fallback)
}

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	client := a.clientFor(c)
	d := views.HomeView{Site: a.Config.site()}

	var g errgroup.Group
	g.Go(func() error {
		projects, err := client.ListProjects(ctx, api.ProjectFilter{Featured: true})
		if err != nil {
			d.ProjectsError = a.apiFailed(c, err, msgProjectsFailed)
			return nil
		}
		d.Projects = projects
		return nil
	})
	g.Go(func() error {
		posts, err := client.FeaturedBlogs(ctx)
		if err != nil {
			d.PostsError = a.apiFailed(c, err, msgPostsFailed)
			return nil
		}
		d.Posts = posts
		return nil
	})
	_ = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	meta := views.PageMeta{URL: views.SiteURL(a.Config.site())}
	return a.renderPage(c, http.StatusOK, meta, "home", views.HomePage(d))
}

func (a *App) handleBlogList(c echo.Context) error {
	requested, _ := strconv.Atoi(c.QueryParam("page"))
	page := a.Pager.Clamp(requested)

	res, err := a.clientFor(c).ListBlogs(c.Request().Context(), page, BlogPageSize)
	if err != nil {
		if c.Request().Context().Err() != nil {
			return err
		}
		d := views.BlogList{Page: page, Error: a.apiFailed(c, err, msgPostsFailed)}
		return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Blog"}, "blog", views.BlogListPage(d))
	}
	a.Pager.Observe(res.TotalPages)
	if res.TotalPages > 0 && page > res.TotalPages {
		return c.Redirect(http.StatusSeeOther, "/blog/?page="+strconv.Itoa(res.TotalPages))
	}

	prev, next := Links(page, res.TotalPages)
	d := views.BlogList{
		Posts:      res.Blogs,
		Page:       page,
		TotalPages: res.TotalPages,
		Prev:       prev,
		Next:       next,
	}
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Blog"}, "blog", views.BlogListPage(d))
}

func (a *App) handleBlogPost(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	client := a.clientFor(c)
	s := SessionFrom(c)
	d := views.PostView{
		Site:       a.Config.site(),
		CanComment: s != nil && s.IsAuthenticated(),
		CSRF:       CsrfToken(c),
	}

	var (
		g       errgroup.Group
		postErr error
	)
	g.Go(func() error {
		post, err := client.GetBlog(ctx, id)
		if err != nil {
			postErr = err
			return nil
		}
		d.Post = &post
		return nil
	})
	g.Go(func() error {
		comments, err := client.ListComments(ctx, id)
		if err != nil {
			d.CommentsError = a.apiFailed(c, err, msgCommentsFailed)
			return nil
		}
		d.Comments = comments
		return nil
	})
	_ = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if postErr != nil {
		if api.IsNotFound(postErr) {
			return echo.ErrNotFound
		}
		d.Error = a.apiFailed(c, postErr, msgPostFailed)
		return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Blog"}, "blog", views.BlogPostPage(d))
	}
	d.CommentError = takeFlash(c, flashComment)
	meta := views.PageMeta{
		Title:       d.Post.Title,
		Description: views.PostSummary(*d.Post),
		URL:         views.PostURL(a.Config.site(), d.Post.ID),
		OGType:      "article",
	}
	return a.renderPage(c, http.StatusOK, meta, "blog", views.BlogPostPage(d))
}

// handleComment creates a comment. htmx callers get the new comment as a
// fragment to prepend; plain form posts are redirected back to the post.
func (a *App) handleComment(c echo.Context) error {
	id := c.Param("id")
	back := "/blog/" + views.PathEscape(id) + "/"
	s := SessionFrom(c)
	if s == nil || !s.IsAuthenticated() {
		if isHTMX(c) {
			c.Response().Header().Set("HX-Redirect", "/login/?next="+back)
			return c.NoContent(http.StatusOK)
		}
		return c.Redirect(http.StatusSeeOther, "/login/?next="+back)
	}

	body := strings.TrimSpace(c.FormValue("body"))
	fail := func(msg string) error {
		if isHTMX(c) {
			c.Response().Header().Set("HX-Retarget", "#comment-form")
			c.Response().Header().Set("HX-Reswap", "outerHTML")
			return Render(c, views.CommentForm(id, CsrfToken(c), body, msg))
		}
		if err := setFlash(c, flashComment, msg); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, back+"#comment-form")
	}
	if body == "" {
		return fail(msgCommentEmpty)
	}

	comment, err := s.Client().CreateComment(c.Request().Context(), id, body)
	if err != nil {
		if c.Request().Context().Err() != nil {
			return err
		}
		return fail(a.apiFailed(c, err, msgCommentFailed))
	}
	if comment.Author == nil {
		comment.Author = s.User()
	}
	if isHTMX(c) {
		return Render(c, views.CommentCreated(comment, id, CsrfToken(c)))
	}
	return c.Redirect(http.StatusSeeOther, back+"#comment-"+comment.ID)
}

func (a *App) handleProjects(c echo.Context) error {
	category := api.ParseCategory(c.QueryParam("category"))
	d := views.ProjectList{Active: category}
	projects, err := a.clientFor(c).ListProjects(c.Request().Context(), api.ProjectFilter{Category: category})
	if err != nil {
		if c.Request().Context().Err() != nil {
			return err
		}
		d.Error = a.apiFailed(c, err, msgProjectsFailed)
	} else {
		d.Projects = projects
	}
	return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Projects"}, "projects", views.ProjectsPage(d))
}

func (a *App) handleProject(c echo.Context) error {
	d := views.ProjectView{Site: a.Config.site()}
	p, err := a.clientFor(c).GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		if c.Request().Context().Err() != nil {
			return err
		}
		if api.IsNotFound(err) {
			return echo.ErrNotFound
		}
		d.Error = a.apiFailed(c, err, msgProjectFailed)
		return a.renderPage(c, http.StatusOK, views.PageMeta{Title: "Projects"}, "projects", views.ProjectDetailsPage(d))
	}
	d.Project = &p
	meta := views.PageMeta{
		Title:       p.Title,
		Description: views.ProjectSummary(p),
		URL:         views.ProjectURL(a.Config.site(), p.ID),
	}
	return a.renderPage(c, http.StatusOK, meta, "projects", views.ProjectDetailsPage(d))
}

// clientFor returns the API client carrying the visitor's credential.
func (a *App) clientFor(c echo.Context) *api.Client {
	if s := SessionFrom(c); s != nil {
		return s.Client()
	}
	return a.API
}

func (a *App) handleSitemap(c echo.Context) error {
	ctx := c.Request().Context()
	posts, err := a.Feed.Posts(ctx)
	if err != nil {
		return err
	}
	projects, err := a.Feed.Projects(ctx)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, projects)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Feed.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleHealth(c echo.Context) error {
	if err := a.Store.db.PingContext(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleStylesheet serves site.css from the static directory when present,
// else the embedded default.
func (a *App) handleStylesheet(c echo.Context) error {
	local := filepath.Join(a.staticDir, "site.css")
	if _, err := os.Stat(local); err == nil {
		return c.File(local)
	}
	b, err := fs.ReadFile(EmbeddedAssets, "embedded/site.css")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", b)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.staticDir, "favicon.svg"))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /admin/\n")
	b.WriteString("Sitemap: " + strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, context.Canceled) && c.Request().Context().Err() != nil {
		// The visitor went away; nothing to render.
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.renderPage(c, http.StatusNotFound, views.PageMeta{Title: "Not found"}, "", views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
		_ = a.renderPage(c, code, views.PageMeta{Title: "Error"}, "", views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
