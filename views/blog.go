package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/api"
)

// BlogList is the data behind the paginated blog page.
type BlogList struct {
	Posts      []api.BlogPost
	Page       int
	TotalPages int
	Prev, Next int // 0 hides the link
	Error      string
}

// BlogListPage renders one page of posts with Previous/Next navigation.
func BlogListPage(d BlogList) templ.Component {
	return component(func(w *writer) {
		w.raw(`<section class="blog-page"><h1>Blog Posts</h1>`)
		w.child(Banner("error", d.Error))
		if len(d.Posts) == 0 {
			if d.Error == "" {
				w.raw(`<p class="no-posts">No blog posts available</p>`)
			}
			w.raw(`</section>`)
			return
		}
		w.raw(`<div class="blog-grid">`)
		for _, p := range d.Posts {
			w.child(postCard(p))
		}
		w.raw(`</div>`)
		if d.TotalPages > 1 {
			w.raw(`<div class="pagination">`)
			pageLink(w, d.Prev, "Previous")
			w.f(`<span>Page %d of %d</span>`, d.Page, d.TotalPages)
			pageLink(w, d.Next, "Next")
			w.raw(`</div>`)
		}
		w.raw(`</section>`)
	})
}

func pageLink(w *writer, page int, label string) {
	if page == 0 {
		w.f(`<span class="btn btn-secondary disabled" aria-disabled="true">%s</span>`, label)
		return
	}
	w.f(`<a class="btn btn-secondary" href="/blog/?page=%s">%s</a>`, strconv.Itoa(page), label)
}

func postCard(p api.BlogPost) templ.Component {
	return component(func(w *writer) {
		link := "/blog/" + PathEscape(p.ID) + "/"
		w.raw(`<article class="blog-card"><div class="blog-image">`)
		if p.FeaturedImage != "" {
			w.f(`<img src="%s" alt="%s" loading="lazy">`, href(p.FeaturedImage), p.Title)
		} else {
			w.raw(`<div class="placeholder-image">&#128221;</div>`)
		}
		w.raw(`</div><div class="blog-content">`)
		w.f(`<h2><a href="%s">%s</a></h2>`, link, p.Title)
		w.f(`<div class="blog-meta"><span>By %s</span><span>%s</span><span>%s</span></div>`,
			p.AuthorName(), FormatDateShort(p.PublishedAt), ViewCount(p.Views))
		w.f(`<p class="blog-excerpt">%s</p>`, PostSummary(p))
		tagList(w, p.Tags)
		w.f(`<a href="%s" class="read-more">Read More</a></div></article>`, link)
	})
}

func tagList(w *writer, tags []string) {
	if len(tags) == 0 {
		return
	}
	w.raw(`<div class="blog-tags">`)
	for _, t := range tags {
		w.f(`<span class="tag">%s</span>`, t)
	}
	w.raw(`</div>`)
}

// PostView is the data behind a single post page.
type PostView struct {
	Site          SiteConfig
	Post          *api.BlogPost
	Comments      []api.Comment
	Error         string
	CommentsError string
	CommentError  string
	CommentBody   string
	CanComment    bool
	CSRF          string
}

// BlogPostPage renders a post, its comments and, for signed-in visitors,
// the comment form. New comments are prepended to #comment-list by htmx.
func BlogPostPage(d PostView) templ.Component {
	return component(func(w *writer) {
		if d.Post == nil {
			w.raw(`<section class="blog-post-page">`)
			w.child(Banner("error", d.Error))
			w.raw(`<a href="/blog/" class="btn btn-secondary">Back to Blog</a></section>`)
			return
		}
		p := d.Post
		w.raw(`<article class="blog-post">`)
		if p.FeaturedImage != "" {
			w.f(`<div class="post-image"><img src="%s" alt="%s"></div>`, href(p.FeaturedImage), p.Title)
		}
		w.f(`<h1>%s</h1>`, p.Title)
		w.f(`<div class="post-meta"><span>By %s</span><span>%s</span><span>%s</span></div>`,
			p.AuthorName(), FormatDate(p.PublishedAt), ViewCount(p.Views))
		tagList(w, p.Tags)
		w.raw(`<div class="post-body">`)
		for _, para := range Paragraphs(p.Content) {
			w.f(`<p>%s</p>`, para)
		}
		w.raw(`</div></article>`)
		jsonLD(w, BlogPostingJsonLD(d.Site, *p))

		w.raw(`<section class="comments"><h2>Comments</h2>`)
		if d.CanComment {
			w.child(CommentForm(p.ID, d.CSRF, d.CommentBody, d.CommentError))
		} else {
			w.f(`<p class="login-prompt"><a href="/login/?next=%s">Log in</a> to leave a comment.</p>`,
				"/blog/"+PathEscape(p.ID)+"/")
		}
		w.child(Banner("error", d.CommentsError))
		w.raw(`<div id="comment-list" class="comment-list">`)
		for _, c := range d.Comments {
			w.child(CommentItem(c))
		}
		w.raw(`</div>`)
		if len(d.Comments) == 0 && d.CommentsError == "" {
			w.raw(`<p id="no-comments" class="no-comments">No comments yet. Be the first to share!</p>`)
		}
		w.raw(`</section>`)
	})
}

// CommentForm renders the comment box. It posts normally without htmx.
func CommentForm(postID, csrf, body, errText string) templ.Component {
	return commentForm(postID, csrf, body, errText, false)
}

func commentForm(postID, csrf, body, errText string, oob bool) templ.Component {
	return component(func(w *writer) {
		action := "/blog/" + PathEscape(postID) + "/comments/"
		w.f(`<form id="comment-form" class="comment-form" method="post" action="%s" hx-post="%s"`, action, action)
		w.raw(` hx-target="#comment-list" hx-swap="afterbegin"`)
		w.raw(attrIf(oob, `hx-swap-oob="true"`))
		w.f(`><input type="hidden" name="_csrf" value="%s">`, csrf)
		w.child(Banner("error", errText))
		w.f(`<textarea name="body" rows="4" placeholder="Share your thoughts..." required>%s</textarea>`, body)
		w.raw(`<button type="submit" class="btn btn-primary">Post Comment</button></form>`)
	})
}

// CommentCreated is the htmx response to a new comment: the comment to
// prepend, plus an emptied form and removal of the empty-list note swapped
// out of band.
func CommentCreated(c api.Comment, postID, csrf string) templ.Component {
	return component(func(w *writer) {
		w.child(CommentItem(c))
		w.child(commentForm(postID, csrf, "", "", true))
		w.raw(`<p id="no-comments" hx-swap-oob="delete"></p>`)
	})
}

// CommentItem renders one comment; it is also the htmx response to a new
// comment.
func CommentItem(c api.Comment) templ.Component {
	return component(func(w *writer) {
		w.f(`<div class="comment" id="comment-%s"><div class="comment-header"><strong>%s</strong><span title="%s">%s</span></div><p>%s</p></div>`,
			c.ID, c.AuthorName(), FormatDate(c.CreatedAt), Ago(c.CreatedAt), c.Body)
	})
}
