package folio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func buildSitemap(site views.SiteConfig, posts []api.BlogPost, projects []api.Project) sitemapURLSet {
	urls := []sitemapURL{
		{Loc: views.SiteURL(site)},
		{Loc: views.SectionURL(site, "projects")},
		{Loc: views.SectionURL(site, "blog")},
	}
	for _, p := range projects {
		urls = append(urls, sitemapURL{Loc: views.ProjectURL(site, p.ID)})
	}
	for _, p := range posts {
		u := sitemapURL{Loc: views.PostURL(site, p.ID)}
		if !p.PublishedAt.IsZero() {
			u.LastMod = p.PublishedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func (a *App) renderSitemap(c echo.Context, posts []api.BlogPost, projects []api.Project) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(buildSitemap(a.Config.site(), posts, projects))
}
