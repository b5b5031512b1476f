package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/validate"
)

// Kind is a record kind managed by the admin panel.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindProject Kind = "project"
)

// Kinds lists the admin tabs in display order.
var Kinds = []Kind{KindBlog, KindProject}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindBlog:
		return KindBlog, true
	case KindProject:
		return KindProject, true
	}
	return "", false
}

// Label is the singular display name, e.g. "Blog Post".
func (k Kind) Label() string {
	if k == KindProject {
		return "Project"
	}
	return "Blog Post"
}

// TabLabel is the plural tab caption.
func (k Kind) TabLabel() string {
	if k == KindProject {
		return "Projects"
	}
	return "Blog Posts"
}

// Form is the in-progress edit of one record. It is either a *BlogForm or a
// *ProjectForm; callers type-switch on it.
type Form interface {
	Kind() Kind
	// RecordID is the identifier of the record being edited, or "" when
	// creating.
	RecordID() string
	// Values returns the form fields as strings keyed by field name.
	Values() map[string]string

	apply(values url.Values)
	check() validate.FieldErrors
	clone() Form
}

// NewForm returns an empty form with the defaults for kind.
func NewForm(kind Kind) Form {
	if kind == KindProject {
		return &ProjectForm{Category: string(api.CategoryWeb), DisplayOrder: "0"}
	}
	return &BlogForm{}
}

// BlogForm holds blog post fields as the form displays them. Tags is the
// comma-joined display string.
type BlogForm struct {
	ID            string
	Title         string
	Content       string
	Excerpt       string
	Tags          string
	FeaturedImage string
	Published     bool
}

func blogFormFrom(p api.BlogPost) *BlogForm {
	return &BlogForm{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		Tags:          JoinList(p.Tags),
		FeaturedImage: p.FeaturedImage,
		Published:     p.Published,
	}
}

func (f *BlogForm) Kind() Kind       { return KindBlog }
func (f *BlogForm) RecordID() string { return f.ID }

func (f *BlogForm) Values() map[string]string {
	return map[string]string{
		"title":         f.Title,
		"content":       f.Content,
		"excerpt":       f.Excerpt,
		"tags":          f.Tags,
		"featuredImage": f.FeaturedImage,
		"published":     strconv.FormatBool(f.Published),
	}
}

func (f *BlogForm) apply(v url.Values) {
	f.Title = v.Get("title")
	f.Content = v.Get("content")
	f.Excerpt = v.Get("excerpt")
	f.Tags = v.Get("tags")
	f.FeaturedImage = strings.TrimSpace(v.Get("featuredImage"))
	f.Published = v.Get("published") != ""
}

func (f *BlogForm) check() validate.FieldErrors {
	return validate.Errors(f.Values(), validate.BlogRules)
}

func (f *BlogForm) clone() Form {
	cp := *f
	return &cp
}

// Input converts the form into an API body, splitting Tags back into a set.
func (f *BlogForm) Input() api.BlogInput {
	return api.BlogInput{
		Title:         f.Title,
		Content:       f.Content,
		Excerpt:       f.Excerpt,
		Tags:          SplitList(f.Tags),
		FeaturedImage: f.FeaturedImage,
		Published:     f.Published,
	}
}

// ProjectForm holds project fields as the form displays them. Technologies
// is the comma-joined display string and DisplayOrder the raw input.
type ProjectForm struct {
	ID               string
	Title            string
	Description      string
	ShortDescription string
	Technologies     string
	ImageURL         string
	LiveURL          string
	RepoURL          string
	Category         string
	Featured         bool
	DisplayOrder     string
}

func projectFormFrom(p api.Project) *ProjectForm {
	category := string(p.Category)
	if !p.Category.Valid() {
		category = string(api.CategoryWeb)
	}
	return &ProjectForm{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Technologies:     JoinList(p.Technologies),
		ImageURL:         p.ImageURL,
		LiveURL:          p.LiveURL,
		RepoURL:          p.RepoURL,
		Category:         category,
		Featured:         p.Featured,
		DisplayOrder:     strconv.Itoa(p.DisplayOrder),
	}
}

func (f *ProjectForm) Kind() Kind       { return KindProject }
func (f *ProjectForm) RecordID() string { return f.ID }

func (f *ProjectForm) Values() map[string]string {
	return map[string]string{
		"title":            f.Title,
		"description":      f.Description,
		"shortDescription": f.ShortDescription,
		"technologies":     f.Technologies,
		"imageUrl":         f.ImageURL,
		"liveUrl":          f.LiveURL,
		"repoUrl":          f.RepoURL,
		"category":         f.Category,
		"featured":         strconv.FormatBool(f.Featured),
		"displayOrder":     f.DisplayOrder,
	}
}

func (f *ProjectForm) apply(v url.Values) {
	f.Title = v.Get("title")
	f.Description = v.Get("description")
	f.ShortDescription = v.Get("shortDescription")
	f.Technologies = v.Get("technologies")
	f.ImageURL = strings.TrimSpace(v.Get("imageUrl"))
	f.LiveURL = strings.TrimSpace(v.Get("liveUrl"))
	f.RepoURL = strings.TrimSpace(v.Get("repoUrl"))
	f.Category = v.Get("category")
	f.Featured = v.Get("featured") != ""
	f.DisplayOrder = strings.TrimSpace(v.Get("displayOrder"))
}

func (f *ProjectForm) check() validate.FieldErrors {
	errs := validate.Errors(f.Values(), validate.ProjectRules)
	if !api.Category(f.Category).Valid() {
		errs["category"] = "Invalid category"
	}
	if f.DisplayOrder != "" {
		if _, err := strconv.Atoi(f.DisplayOrder); err != nil {
			errs["displayOrder"] = "Must be a whole number"
		}
	}
	return errs
}

func (f *ProjectForm) clone() Form {
	cp := *f
	return &cp
}

// Input converts the form into an API body, splitting Technologies back into
// a set. An empty display order is 0.
func (f *ProjectForm) Input() api.ProjectInput {
	order, _ := strconv.Atoi(f.DisplayOrder)
	return api.ProjectInput{
		Title:            f.Title,
		Description:      f.Description,
		ShortDescription: f.ShortDescription,
		Technologies:     SplitList(f.Technologies),
		ImageURL:         f.ImageURL,
		LiveURL:          f.LiveURL,
		RepoURL:          f.RepoURL,
		Category:         api.Category(f.Category),
		Featured:         f.Featured,
		DisplayOrder:     order,
	}
}

// SplitList parses a comma-separated display string into a set, trimming
// entries and dropping empty ones. Entry order is kept.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList formats a set as the comma-separated display string.
func JoinList(items []string) string {
	return strings.Join(items, ", ")
}
