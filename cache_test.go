package folio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/api"
)

type fakeFeedSource struct {
	blogCalls    int
	projectCalls int
	limit        int
	err          error
}

func (f *fakeFeedSource) ListBlogs(ctx context.Context, page, limit int) (api.BlogPage, error) {
	f.blogCalls++
	f.limit = limit
	if f.err != nil {
		return api.BlogPage{}, f.err
	}
	return api.BlogPage{Blogs: []api.BlogPost{{ID: "b1", Title: "First"}}, TotalPages: 1}, nil
}

func (f *fakeFeedSource) ListProjects(ctx context.Context, _ api.ProjectFilter) ([]api.Project, error) {
	f.projectCalls++
	return []api.Project{{ID: "p1", Title: "Folio"}}, nil
}

func TestFeedCacheServesWithinTTL(t *testing.T) {
	src := &fakeFeedSource{}
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	c := NewFeedCache(src, 5*time.Minute)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	posts, err := c.Posts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	projects, err := c.Projects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, 1, src.blogCalls)
	assert.Equal(t, 1, src.projectCalls)
	assert.Equal(t, feedPostLimit, src.limit)

	now = now.Add(6 * time.Minute)
	_, err = c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.blogCalls)
}

func TestFeedCacheInvalidate(t *testing.T) {
	src := &fakeFeedSource{}
	c := NewFeedCache(src, time.Hour)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Posts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, src.blogCalls)
}

func TestFeedCacheErrorNotCached(t *testing.T) {
	src := &fakeFeedSource{err: errors.New("down")}
	c := NewFeedCache(src, time.Hour)
	ctx := context.Background()

	_, err := c.Posts(ctx)
	require.Error(t, err)
	src.err = nil
	posts, err := c.Posts(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
