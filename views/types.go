package views

// SiteConfig holds site-wide settings every page needs.
type SiteConfig struct {
	Name        string // site name shown in the navbar and <title>
	URL         string // canonical base URL
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Nav is the session state the navigation shell is rendered from.
type Nav struct {
	Authenticated bool
	Admin         bool
	Username      string
	CSRF          string
	Active        string // "home", "projects", "blog", "login", "admin"
}

// Page bundles what the layout needs around a page body.
type Page struct {
	Site SiteConfig
	Meta PageMeta
	Nav  Nav
}
