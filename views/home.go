package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/api"
)

// HomeView is the data behind the landing page. Each featured section
// fails independently.
type HomeView struct {
	Site          SiteConfig
	Projects      []api.Project
	ProjectsError string
	Posts         []api.BlogPost
	PostsError    string
}

// HomePage renders the hero and the featured projects and posts.
func HomePage(d HomeView) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="hero">`)
		w.f(`<h1>Welcome to %s</h1>`, d.Site.Name)
		if d.Site.Description != "" {
			w.f(`<p>%s</p>`, d.Site.Description)
		} else {
			w.raw(`<p>View my projects, read the blog, and join the conversation.</p>`)
		}
		w.raw(`<div class="hero-buttons"><a href="/projects/" class="btn btn-primary">View Projects</a>`)
		w.raw(`<a href="/blog/" class="btn btn-secondary">Read Blog</a></div></section>`)

		if len(d.Projects) > 0 || d.ProjectsError != "" {
			w.raw(`<section class="featured"><h2>Featured Projects</h2>`)
			w.child(Banner("error", d.ProjectsError))
			w.raw(`<div class="projects-grid">`)
			for _, p := range d.Projects {
				w.child(projectCard(p))
			}
			w.raw(`</div></section>`)
		}
		if len(d.Posts) > 0 || d.PostsError != "" {
			w.raw(`<section class="featured"><h2>Featured Posts</h2>`)
			w.child(Banner("error", d.PostsError))
			w.raw(`<div class="blog-grid">`)
			for _, p := range d.Posts {
				w.child(postCard(p))
			}
			w.raw(`</div></section>`)
		}
		jsonLD(w, WebsiteJsonLD(d.Site))
	})
}
