package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/admin"
	"github.com/eringen/folio/api"
)

// AdminDashboard renders the admin panel from a workflow snapshot.
func AdminDashboard(v admin.View, csrf string) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="admin-dashboard"><h1>Admin Dashboard</h1><div class="admin-tabs">`)
		for _, k := range admin.Kinds {
			cls := "tab-btn"
			if k == v.Kind {
				cls += " active"
			}
			w.f(`<form method="post" action="/admin/tab/%s/"><input type="hidden" name="_csrf" value="%s">`, string(k), csrf)
			w.f(`<button type="submit" class="%s">%s</button></form>`, cls, k.TabLabel())
		}
		w.raw(`</div>`)
		w.child(AdminNotice(v))

		if v.Form != nil {
			w.child(AdminForm(v, csrf))
			w.raw(`</section>`)
			return
		}
		w.f(`<a href="/admin/new/" class="btn btn-primary">Add New %s</a>`, v.Kind.Label())
		if !v.Loaded {
			w.raw(`<p class="loading">Loading...</p></section>`)
			return
		}
		switch v.Kind {
		case admin.KindProject:
			projectTable(w, v.Projects)
		default:
			blogTable(w, v.Blogs)
		}
		w.raw(`</section>`)
	})
}

// AdminNotice renders the notice slots. While a notice is showing, htmx
// polls /admin/notice/ to drop it once it expires.
func AdminNotice(v admin.View) templ.Component {
	return component(func(w *writer) {
		if v.Success == "" && v.Error == "" {
			w.raw(`<div id="admin-notice"></div>`)
			return
		}
		w.f(`<div id="admin-notice" hx-get="/admin/notice/" hx-trigger="load delay:%ss" hx-swap="outerHTML">`,
			strconv.Itoa(int(admin.NoticeTTL.Seconds())))
		w.child(Banner("success", v.Success))
		w.child(Banner("error", v.Error))
		w.raw(`</div>`)
	})
}

func rowActions(w *writer, kind admin.Kind, id string) {
	w.f(`<td class="actions"><a href="/admin/edit/%s/" class="btn btn-sm">Edit</a>`, PathEscape(id))
	w.f(`<a href="/admin/delete/%s/%s/" class="btn btn-sm btn-danger">Delete</a></td>`, string(kind), PathEscape(id))
}

func blogTable(w *writer, posts []api.BlogPost) {
	if len(posts) == 0 {
		w.raw(`<p class="empty">No blog posts yet.</p>`)
		return
	}
	w.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Author</th><th>Published</th><th>Views</th><th>Actions</th></tr></thead><tbody>`)
	for _, p := range posts {
		w.f(`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td>`,
			p.Title, p.AuthorName(), YesNo(p.Published), strconv.Itoa(p.Views))
		rowActions(w, admin.KindBlog, p.ID)
		w.raw(`</tr>`)
	}
	w.raw(`</tbody></table>`)
}

func projectTable(w *writer, projects []api.Project) {
	if len(projects) == 0 {
		w.raw(`<p class="empty">No projects yet.</p>`)
		return
	}
	w.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Category</th><th>Featured</th><th>Actions</th></tr></thead><tbody>`)
	for _, p := range projects {
		w.f(`<tr><td>%s</td><td>%s</td><td>%s</td>`, p.Title, CategoryLabel(p.Category), YesNo(p.Featured))
		rowActions(w, admin.KindProject, p.ID)
		w.raw(`</tr>`)
	}
	w.raw(`</tbody></table>`)
}

// AdminForm renders the create or edit form for the open record.
func AdminForm(v admin.View, csrf string) templ.Component {
	return component(func(w *writer) {
		verb := "Create"
		if v.Editing() {
			verb = "Edit"
		}
		w.f(`<div class="admin-form"><h2>%s %s</h2>`, verb, v.Form.Kind().Label())
		w.f(`<form method="post" action="/admin/save/" novalidate><input type="hidden" name="_csrf" value="%s">`, csrf)
		errs := v.FieldErrors
		switch f := v.Form.(type) {
		case *admin.BlogForm:
			field(w, "Title", "text", "title", f.Title, errs)
			textArea(w, "Content", "content", f.Content, 10, errs)
			textArea(w, "Excerpt", "excerpt", f.Excerpt, 3, errs)
			field(w, "Tags (comma-separated)", "text", "tags", f.Tags, errs)
			field(w, "Featured Image URL", "url", "featuredImage", f.FeaturedImage, errs)
			checkbox(w, "Published", "published", f.Published)
		case *admin.ProjectForm:
			field(w, "Title", "text", "title", f.Title, errs)
			textArea(w, "Description", "description", f.Description, 6, errs)
			textArea(w, "Short Description", "shortDescription", f.ShortDescription, 2, errs)
			field(w, "Technologies (comma-separated)", "text", "technologies", f.Technologies, errs)
			field(w, "Image URL", "url", "imageUrl", f.ImageURL, errs)
			field(w, "Live URL", "url", "liveUrl", f.LiveURL, errs)
			field(w, "Repository URL", "url", "repoUrl", f.RepoURL, errs)
			categorySelect(w, f.Category, errs)
			checkbox(w, "Featured", "featured", f.Featured)
			field(w, "Display Order", "number", "displayOrder", f.DisplayOrder, errs)
		}
		label := verb
		if v.State == admin.StateSubmitting {
			label = "Saving..."
		}
		w.f(`<div class="form-actions"><button type="submit" class="btn btn-primary">%s</button></div></form>`, label)
		w.f(`<form class="cancel-form" method="post" action="/admin/cancel/"><input type="hidden" name="_csrf" value="%s">`, csrf)
		w.raw(`<button type="submit" class="btn btn-secondary">Cancel</button></form></div>`)
	})
}

func textArea(w *writer, label, name, value string, rows int, errs map[string]string) {
	w.f(`<div class="form-group"><label for="%s">%s</label>`, name, label)
	w.f(`<textarea id="%s" name="%s" rows="%d">%s</textarea>`, name, name, rows, value)
	if msg := errs[name]; msg != "" {
		w.f(`<span class="field-error">%s</span>`, msg)
	}
	w.raw(`</div>`)
}

func checkbox(w *writer, label, name string, checked bool) {
	w.f(`<div class="form-group checkbox"><label><input type="checkbox" name="%s" value="on"`, name)
	w.raw(attrIf(checked, "checked"))
	w.f(`> %s</label></div>`, label)
}

func categorySelect(w *writer, current string, errs map[string]string) {
	w.raw(`<div class="form-group"><label for="category">Category</label><select id="category" name="category">`)
	for _, c := range api.Categories {
		w.f(`<option value="%s"`, string(c))
		w.raw(attrIf(string(c) == current, "selected"))
		w.f(`>%s</option>`, CategoryLabel(c))
	}
	w.raw(`</select>`)
	if msg := errs["category"]; msg != "" {
		w.f(`<span class="field-error">%s</span>`, msg)
	}
	w.raw(`</div>`)
}

// DeleteConfirm asks before a record is deleted. Only the POST deletes.
func DeleteConfirm(kind admin.Kind, id, title, csrf string) templ.Component {
	return component(func(w *writer) {
		w.f(`<section class="confirm-delete"><h1>Delete %s</h1>`, kind.Label())
		w.f(`<p>Are you sure you want to delete &ldquo;%s&rdquo;?</p>`, title)
		w.f(`<form method="post" action="/admin/delete/%s/%s/"><input type="hidden" name="_csrf" value="%s">`, string(kind), PathEscape(id), csrf)
		w.raw(`<button type="submit" class="btn btn-danger">Delete</button> <a href="/admin/" class="btn btn-secondary">Cancel</a></form></section>`)
	})
}
