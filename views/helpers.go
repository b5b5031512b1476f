package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/api"
)

// SummaryLength is how much of a project description the list shows when
// the project has no short description.
const SummaryLength = 150

var titleCaser = cases.Title(language.English)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PathEscape wraps url.PathEscape for use in links.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// QueryEscape wraps url.QueryEscape for use in links.
func QueryEscape(s string) string {
	return url.QueryEscape(s)
}

// SiteURL is the canonical URL of the home page.
func SiteURL(cfg SiteConfig) string {
	return buildURL(cfg.URL)
}

// SectionURL is the canonical URL of a top-level section such as "blog".
func SectionURL(cfg SiteConfig, section string) string {
	return buildURL(cfg.URL, section)
}

// PostURL is the canonical URL of a blog post.
func PostURL(cfg SiteConfig, id string) string {
	return buildURL(cfg.URL, "blog", id)
}

// ProjectURL is the canonical URL of a project.
func ProjectURL(cfg SiteConfig, id string) string {
	return buildURL(cfg.URL, "projects", id)
}

// Truncate shortens s to max characters and appends "..." when it cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "..."
}

// ProjectSummary is the list-view blurb for p.
func ProjectSummary(p api.Project) string {
	if p.ShortDescription != "" {
		return p.ShortDescription
	}
	return Truncate(p.Description, SummaryLength)
}

// PostSummary is the list-view blurb for a post: its excerpt, or the start
// of its content.
func PostSummary(p api.BlogPost) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return Truncate(p.Content, SummaryLength)
}

// Paragraphs splits free text on line breaks, dropping blank lines.
func Paragraphs(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// FormatDate renders t as "January 2, 2006", or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// FormatDateShort renders t as "Jan 2, 2006", or "" for the zero time.
func FormatDateShort(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// Ago renders t relative to now, e.g. "3 days ago".
func Ago(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.Time(t)
}

// ViewCount renders a view counter with thousands separators.
func ViewCount(n int) string {
	if n == 1 {
		return "1 view"
	}
	return humanize.Comma(int64(n)) + " views"
}

// CategoryLabel is the display label of a project category filter.
func CategoryLabel(c api.Category) string {
	return titleCaser.String(string(c))
}

// YesNo renders a flag for admin tables.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post api.BlogPost) string {
	postURL := PostURL(cfg, post.ID)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": PostSummary(post),
		"url":         postURL,
		"author": map[string]string{
			"@type": "Person",
			"name":  post.AuthorName(),
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if !post.PublishedAt.IsZero() {
		data["datePublished"] = post.PublishedAt.Format(time.RFC3339)
	}
	if post.FeaturedImage != "" {
		data["image"] = post.FeaturedImage
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJsonLD(data)
}

// ProjectJsonLD produces a Schema.org CreativeWork JSON-LD block for a project.
func ProjectJsonLD(cfg SiteConfig, p api.Project) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        p.Title,
		"description": ProjectSummary(p),
		"url":         ProjectURL(cfg, p.ID),
	}
	if len(p.Technologies) > 0 {
		data["keywords"] = strings.Join(p.Technologies, ", ")
	}
	if cfg.Author != "" {
		data["creator"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	// json.Marshal escapes <, > and & so the block cannot close its <script>.
	return string(b)
}
