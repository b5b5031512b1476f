package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/folio/api"
)

// ProjectList is the data behind the showcase page.
type ProjectList struct {
	Projects []api.Project
	Active   api.Category
	Error    string
}

// ProjectsPage renders the category filter and the project grid.
func ProjectsPage(d ProjectList) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="projects-page"><h1>My Projects</h1><div class="filter-buttons">`)
		filters := append([]api.Category{api.CategoryAll}, api.Categories...)
		for _, c := range filters {
			cls := "filter-btn"
			if c == d.Active {
				cls += " active"
			}
			w.f(`<a class="%s" href="/projects/?category=%s">%s</a>`, cls, string(c), CategoryLabel(c))
		}
		w.raw(`</div>`)
		w.child(Banner("error", d.Error))
		if len(d.Projects) == 0 {
			if d.Error == "" {
				w.raw(`<p class="no-projects">No projects found</p>`)
			}
			w.raw(`</section>`)
			return
		}
		w.raw(`<div class="projects-grid">`)
		for _, p := range d.Projects {
			w.child(projectCard(p))
		}
		w.raw(`</div></section>`)
	})
}

func projectCard(p api.Project) templ.Component {
	return component(func(w *writer) {
		link := "/projects/" + PathEscape(p.ID) + "/"
		w.raw(`<article class="project-card"><div class="project-image">`)
		if p.ImageURL != "" {
			w.f(`<img src="%s" alt="%s" loading="lazy">`, href(p.ImageURL), p.Title)
		} else {
			w.raw(`<div class="placeholder-image">&#128640;</div>`)
		}
		w.raw(`</div><div class="project-content">`)
		w.f(`<h3><a href="%s">%s</a></h3>`, link, p.Title)
		w.f(`<p>%s</p>`, ProjectSummary(p))
		techList(w, p.Technologies)
		w.f(`<a href="%s" class="btn btn-primary">View Details</a></div></article>`, link)
	})
}

func techList(w *writer, techs []string) {
	if len(techs) == 0 {
		return
	}
	w.raw(`<div class="project-tech">`)
	for _, t := range techs {
		w.f(`<span class="tech-tag">%s</span>`, t)
	}
	w.raw(`</div>`)
}

// ProjectView is the data behind a project details page.
type ProjectView struct {
	Site    SiteConfig
	Project *api.Project
	Error   string
}

// ProjectDetailsPage renders one project.
func ProjectDetailsPage(d ProjectView) templ.Component {
	return component(func(w *writer) {
		if d.Project == nil {
			w.raw(`<section class="project-details-page">`)
			w.child(Banner("error", d.Error))
			w.raw(`<a href="/projects/" class="btn btn-secondary">Back to Projects</a></section>`)
			return
		}
		p := d.Project
		w.raw(`<article class="project-details">`)
		if p.ImageURL != "" {
			w.f(`<div class="project-hero"><img src="%s" alt="%s"></div>`, href(p.ImageURL), p.Title)
		}
		w.f(`<h1>%s</h1><span class="project-category">%s</span>`, p.Title, CategoryLabel(p.Category))
		w.raw(`<div class="project-description">`)
		for _, para := range Paragraphs(p.Description) {
			w.f(`<p>%s</p>`, para)
		}
		w.raw(`</div>`)
		if len(p.Technologies) > 0 {
			w.raw(`<h2>Technologies</h2>`)
			techList(w, p.Technologies)
		}
		if p.LiveURL != "" || p.RepoURL != "" {
			w.raw(`<div class="project-links">`)
			if p.LiveURL != "" {
				w.f(`<a href="%s" class="btn btn-primary" target="_blank" rel="noopener noreferrer">View Live</a>`, href(p.LiveURL))
			}
			if p.RepoURL != "" {
				w.f(`<a href="%s" class="btn btn-secondary" target="_blank" rel="noopener noreferrer">View Code</a>`, href(p.RepoURL))
			}
			w.raw(`</div>`)
		}
		w.raw(`<a href="/projects/" class="back-link">&larr; Back to Projects</a></article>`)
		jsonLD(w, ProjectJsonLD(d.Site, *p))
	})
}
