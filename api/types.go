package api

import (
	"encoding/json"
	"time"
)

// Role values returned by the API for User.Role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the account the API reports for a session.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UnmarshalJSON accepts either a populated user object or the bare id the
// API sends for an unpopulated author reference.
func (u *User) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*u = User{ID: id}
		return nil
	}
	type plain User
	return json.Unmarshal(b, (*plain)(u))
}

// IsAdmin reports whether u may use the admin panel.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// BlogPost is a post as served by the API. Views and PublishedAt are
// maintained by the server.
type BlogPost struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Tags          []string  `json:"tags"`
	FeaturedImage string    `json:"featuredImage,omitempty"`
	Published     bool      `json:"published"`
	Author        *User     `json:"author,omitempty"`
	Views         int       `json:"views"`
	PublishedAt   time.Time `json:"publishedAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuthorName returns the author's username, or "Admin" when the API did not
// populate it.
func (p BlogPost) AuthorName() string {
	if p.Author == nil || p.Author.Username == "" {
		return "Admin"
	}
	return p.Author.Username
}

// BlogPage is one page of the public blog list.
type BlogPage struct {
	Blogs      []BlogPost `json:"blogs"`
	TotalPages int        `json:"totalPages"`
}

// BlogInput is the body of a blog create or update.
type BlogInput struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
	FeaturedImage string   `json:"featuredImage"`
	Published     bool     `json:"published"`
}

// Category groups projects on the showcase page.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryOther   Category = "other"
)

// Categories lists the project categories in display order, without "all".
var Categories = []Category{CategoryWeb, CategoryMobile, CategoryDesktop, CategoryOther}

// ParseCategory returns the category named by s. Empty or unknown values map
// to CategoryAll.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryAll
}

// Valid reports whether c is one of the storable categories.
func (c Category) Valid() bool {
	return ParseCategory(string(c)) == c && c != CategoryAll
}

// Project is a showcase entry.
type Project struct {
	ID               string   `json:"_id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Technologies     []string `json:"technologies"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	LiveURL          string   `json:"liveUrl,omitempty"`
	RepoURL          string   `json:"repoUrl,omitempty"`
	Category         Category `json:"category"`
	Featured         bool     `json:"featured"`
	DisplayOrder     int      `json:"displayOrder"`
}

// ProjectInput is the body of a project create or update.
type ProjectInput struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Technologies     []string `json:"technologies"`
	ImageURL         string   `json:"imageUrl"`
	LiveURL          string   `json:"liveUrl"`
	RepoURL          string   `json:"repoUrl"`
	Category         Category `json:"category"`
	Featured         bool     `json:"featured"`
	DisplayOrder     int      `json:"displayOrder"`
}

// ProjectFilter narrows GET /projects. Zero values omit the parameter.
type ProjectFilter struct {
	Category Category
	Featured bool
}

// Comment belongs to exactly one blog post.
type Comment struct {
	ID        string    `json:"_id"`
	Body      string    `json:"body"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorName returns the commenter's username or "Anonymous".
func (c Comment) AuthorName() string {
	if c.Author == nil || c.Author.Username == "" {
		return "Anonymous"
	}
	return c.Author.Username
}
