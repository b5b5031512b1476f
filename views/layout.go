package views

import "github.com/a-h/templ"

// HTMXSrc is where the layout loads htmx from. Every form also works
// without it.
const HTMXSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout wraps body in the document shell and navigation.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(w *writer) {
		title := p.Site.Name
		if p.Meta.Title != "" {
			title = p.Meta.Title + " | " + p.Site.Name
		}
		desc := p.Meta.Description
		if desc == "" {
			desc = p.Site.Description
		}
		ogType := p.Meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		w.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.f(`<title>%s</title>`, title)
		w.f(`<meta name="description" content="%s">`, desc)
		w.f(`<meta property="og:title" content="%s">`, title)
		w.f(`<meta property="og:type" content="%s">`, ogType)
		if p.Meta.URL != "" {
			w.f(`<link rel="canonical" href="%s"><meta property="og:url" content="%s">`, p.Meta.URL, p.Meta.URL)
		}
		w.f(`<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">`, p.Site.Name)
		w.raw(`<link rel="stylesheet" href="/public/site.css">`)
		w.f(`<script src="%s" defer></script>`, HTMXSrc)
		w.raw(`</head><body>`)
		w.child(Navbar(p.Site, p.Nav))
		w.raw(`<main class="container">`)
		w.child(body)
		w.raw(`</main>`)
		w.f(`<footer class="footer"><p>&copy; %s</p></footer>`, p.Site.Name)
		w.raw(`</body></html>`)
	})
}

// Navbar renders the navigation shell. Login or the user's name and logout
// appear depending on the session; admins also get the admin link.
func Navbar(site SiteConfig, nav Nav) templ.Component {
	return component(func(w *writer) {
		link := func(key, path, label string) {
			cls := ""
			if nav.Active == key {
				cls = ` class="active"`
			}
			w.f(`<li><a href="%s"`, path)
			w.raw(cls)
			w.f(`>%s</a></li>`, label)
		}
		w.raw(`<nav class="navbar"><div class="container navbar-content">`)
		w.f(`<a href="/" class="navbar-brand">%s</a><ul class="navbar-menu">`, site.Name)
		link("home", "/", "Home")
		link("projects", "/projects/", "Projects")
		link("blog", "/blog/", "Blog")
		if nav.Authenticated {
			if nav.Admin {
				link("admin", "/admin/", "Admin")
			}
			w.f(`<li class="navbar-user"><span>Welcome, %s</span></li>`, nav.Username)
			w.f(`<li><form method="post" action="/logout/"><input type="hidden" name="_csrf" value="%s">`, nav.CSRF)
			w.raw(`<button type="submit" class="btn btn-secondary">Logout</button></form></li>`)
		} else {
			link("login", "/login/", "Login")
		}
		w.raw(`</ul></div></nav>`)
	})
}

// Banner renders an error or success line; empty text renders nothing.
func Banner(kind, text string) templ.Component {
	return component(func(w *writer) {
		if text == "" {
			return
		}
		w.f(`<div class="%s-message" role="status">%s</div>`, kind, text)
	})
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="error-page"><h1>Page not found</h1>`)
		w.raw(`<p>The page you are looking for does not exist.</p><a href="/" class="btn btn-primary">Go home</a></section>`)
	})
}

// ServerError is the 500 page body.
func ServerError() templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="error-page"><h1>Something went wrong</h1>`)
		w.raw(`<p>Please try again in a moment.</p><a href="/" class="btn btn-primary">Go home</a></section>`)
	})
}
