package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/login", "/auth/login", nil, in, &out)
	return out, err
}

// Register creates an account and returns its session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResponse, error) {
	var out AuthResponse
	in := map[string]string{"username": username, "email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/register", "/auth/register", nil, in, &out)
	return out, err
}

// Me returns the user the client's token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/me", "/auth/me", nil, nil, &out)
	return out, err
}

// ListBlogs returns one page of published posts.
func (c *Client) ListBlogs(ctx context.Context, page, limit int) (BlogPage, error) {
	var out BlogPage
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	err := c.do(ctx, http.MethodGet, "/blog", "/blog", q, nil, &out)
	return out, err
}

// GetBlog returns a single post.
func (c *Client) GetBlog(ctx context.Context, id string) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodGet, "/blog/:id", "/blog/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// FeaturedBlogs returns the posts promoted on the home page.
func (c *Client) FeaturedBlogs(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	err := c.do(ctx, http.MethodGet, "/blog/featured/list", "/blog/featured/list", nil, nil, &out)
	return out, err
}

// ListComments returns the comments on a post.
func (c *Client) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	var out []Comment
	err := c.do(ctx, http.MethodGet, "/blog/:id/comments", "/blog/"+url.PathEscape(postID)+"/comments", nil, nil, &out)
	return out, err
}

// CreateComment posts a comment as the token's user.
func (c *Client) CreateComment(ctx context.Context, postID, body string) (Comment, error) {
	var out Comment
	in := map[string]string{"body": body}
	err := c.do(ctx, http.MethodPost, "/blog/:id/comments", "/blog/"+url.PathEscape(postID)+"/comments", nil, in, &out)
	return out, err
}

// AdminListBlogs returns every post including drafts. Requires an admin token.
func (c *Client) AdminListBlogs(ctx context.Context) ([]BlogPost, error) {
	var out []BlogPost
	err := c.do(ctx, http.MethodGet, "/blog/admin/list", "/blog/admin/list", nil, nil, &out)
	return out, err
}

// CreateBlog creates a post.
func (c *Client) CreateBlog(ctx context.Context, in BlogInput) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodPost, "/blog", "/blog", nil, in, &out)
	return out, err
}

// UpdateBlog replaces the editable fields of a post.
func (c *Client) UpdateBlog(ctx context.Context, id string, in BlogInput) (BlogPost, error) {
	var out BlogPost
	err := c.do(ctx, http.MethodPut, "/blog/:id", "/blog/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/blog/:id", "/blog/"+url.PathEscape(id), nil, nil, nil)
}

// ListProjects returns projects matching f.
func (c *Client) ListProjects(ctx context.Context, f ProjectFilter) ([]Project, error) {
	var out []Project
	q := url.Values{}
	if f.Category != "" && f.Category != CategoryAll {
		q.Set("category", string(f.Category))
	}
	if f.Featured {
		q.Set("featured", "true")
	}
	err := c.do(ctx, http.MethodGet, "/projects", "/projects", q, nil, &out)
	return out, err
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, "/projects/:id", "/projects/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPost, "/projects", "/projects", nil, in, &out)
	return out, err
}

// UpdateProject replaces the editable fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectInput) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPut, "/projects/:id", "/projects/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/:id", "/projects/"+url.PathEscape(id), nil, nil, nil)
}
