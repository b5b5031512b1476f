package folio

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/folio/api"
)

// feedPostLimit is how many recent posts the RSS feed and sitemap carry.
const feedPostLimit = 50

// FeedSource is the part of the API the feed cache reads.
type FeedSource interface {
	ListBlogs(ctx context.Context, page, limit int) (api.BlogPage, error)
	ListProjects(ctx context.Context, f api.ProjectFilter) ([]api.Project, error)
}

// FeedCache is an in-memory cache of recent posts and all projects for the
// RSS feed and sitemap, refreshed from the API after a TTL.
type FeedCache struct {
	mu       sync.RWMutex
	posts    []api.BlogPost
	projects []api.Project
	fetched  time.Time
	ttl      time.Duration
	src      FeedSource
	now      func() time.Time
}

// NewFeedCache creates a FeedCache reading from src.
func NewFeedCache(src FeedSource, ttl time.Duration) *FeedCache {
	return &FeedCache{src: src, ttl: ttl, now: time.Now}
}

func (c *FeedCache) valid() bool {
	return c.posts != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *FeedCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.projects = nil
	c.mu.Unlock()
}

func (c *FeedCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	page, err := c.src.ListBlogs(ctx, 1, feedPostLimit)
	if err != nil {
		return err
	}
	projects, err := c.src.ListProjects(ctx, api.ProjectFilter{})
	if err != nil {
		return err
	}
	c.posts = page.Blogs
	if c.posts == nil {
		c.posts = []api.BlogPost{}
	}
	c.projects = projects
	c.fetched = c.now()
	return nil
}

// ensureLoaded returns cached posts and projects after ensuring the cache
// is fresh. It tries a read lock first; only takes a write lock if a
// reload is needed.
func (c *FeedCache) ensureLoaded(ctx context.Context) ([]api.BlogPost, []api.Project, error) {
	c.mu.RLock()
	if c.valid() {
		posts, projects := c.posts, c.projects
		c.mu.RUnlock()
		return posts, projects, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.posts, c.projects, nil
}

// Posts returns the most recent published posts.
func (c *FeedCache) Posts(ctx context.Context) ([]api.BlogPost, error) {
	posts, _, err := c.ensureLoaded(ctx)
	return posts, err
}

// Projects returns every project.
func (c *FeedCache) Projects(ctx context.Context) ([]api.Project, error) {
	_, projects, err := c.ensureLoaded(ctx)
	return projects, err
}
