package folio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/views"
)

var testSite = views.SiteConfig{
	Name:        "Eren's Folio",
	URL:         "https://example.com",
	Description: "Projects and writing",
}

func TestBuildRSS(t *testing.T) {
	posts := []api.BlogPost{
		{
			ID:          "b1",
			Title:       "Hello",
			Excerpt:     "Short",
			Tags:        []string{"go"},
			PublishedAt: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC),
			Author:      &api.User{Username: "eren"},
		},
		{ID: "b2", Title: "Draft-ish", Content: "Body text"},
	}

	feed := buildRSS(testSite, posts)
	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "Eren's Folio", feed.Channel.Title)
	assert.Equal(t, "https://example.com", feed.Channel.Link)
	require.Len(t, feed.Channel.Items, 2)

	first := feed.Channel.Items[0]
	assert.Equal(t, "https://example.com/blog/b1/", first.Link)
	assert.Equal(t, first.Link, first.GUID)
	assert.Equal(t, "Short", first.Description)
	assert.Equal(t, "eren", first.Author)
	assert.Equal(t, "Sat, 09 Mar 2024 10:00:00 +0000", first.PubDate)

	second := feed.Channel.Items[1]
	assert.Equal(t, "Body text", second.Description)
	assert.Equal(t, "Admin", second.Author)
	assert.Empty(t, second.PubDate)
}

func TestBuildSitemap(t *testing.T) {
	posts := []api.BlogPost{{ID: "b1", PublishedAt: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)}}
	projects := []api.Project{{ID: "p 1"}}

	sm := buildSitemap(testSite, posts, projects)
	locs := make([]string, len(sm.URLs))
	for i, u := range sm.URLs {
		locs[i] = u.Loc
	}
	assert.Equal(t, []string{
		"https://example.com",
		"https://example.com/projects/",
		"https://example.com/blog/",
		"https://example.com/projects/p%201/",
		"https://example.com/blog/b1/",
	}, locs)
	assert.Equal(t, "2024-03-09", sm.URLs[4].LastMod)
}
