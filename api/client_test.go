package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/api")
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("/api")
	assert.Error(t, err)
}

func TestWithTimeoutAppliesToReplacedClient(t *testing.T) {
	hc := &http.Client{}
	c, err := New("http://localhost/api", WithHTTPClient(hc), WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.http.Timeout)
	assert.Zero(t, hc.Timeout, "caller's client is not modified")
}

func TestBearerHeaderOnlyWithToken(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"_id":"u1","username":"eren","role":"admin"}`))
	})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	u, err := c.WithToken("tok-123").Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer tok-123"}, got)
	assert.True(t, u.IsAdmin())
	assert.Empty(t, c.Token(), "WithToken must not mutate the receiver")
}

func TestListBlogsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/blog", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "9", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(BlogPage{
			Blogs:      []BlogPost{{ID: "b1", Title: "Hello"}},
			TotalPages: 4,
		})
	})

	page, err := c.ListBlogs(context.Background(), 2, 9)
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalPages)
	require.Len(t, page.Blogs, 1)
	assert.Equal(t, "Hello", page.Blogs[0].Title)
	assert.Equal(t, "Admin", page.Blogs[0].AuthorName())
}

func TestListProjectsOmitsAllCategory(t *testing.T) {
	var queries []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		queries = append(queries, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := context.Background()
	_, err := c.ListProjects(ctx, ProjectFilter{Category: CategoryAll})
	require.NoError(t, err)
	_, err = c.ListProjects(ctx, ProjectFilter{})
	require.NoError(t, err)
	_, err = c.ListProjects(ctx, ProjectFilter{Category: CategoryMobile, Featured: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "", "category=mobile&featured=true"}, queries)
}

func TestHTTPErrorCarriesServerMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Title is required"}`))
	})

	_, err := c.WithToken("t").CreateBlog(context.Background(), BlogInput{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrHTTP, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "/blog", apiErr.Endpoint)
	assert.Equal(t, "Title is required", Message(err, "Failed to save item"))
}

func TestHTTPErrorWithoutMessageFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetProject(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Failed to load project", Message(err, "Failed to load project"))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := New(srv.URL)
	require.NoError(t, err)
	srv.Close()

	err = c.DeleteBlog(context.Background(), "b1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrTransport, apiErr.Kind)
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, "Failed to delete item", Message(err, "Failed to delete item"))
}

func TestDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.FeaturedBlogs(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrDecode, apiErr.Kind)
}

func TestAuthorMayBeBareID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/blog/admin/list":
			_, _ = w.Write([]byte(`[{"_id":"b1","title":"One","author":"64f0c2a1e1"},{"_id":"b2","title":"Two","author":{"_id":"u1","username":"ada"}},{"_id":"b3","title":"Three","author":null}]`))
		default:
			_, _ = w.Write([]byte(`[{"_id":"c1","body":"hi","author":"64f0c2a1e1"}]`))
		}
	})
	admin := c.WithToken("t")

	posts, err := admin.AdminListBlogs(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "64f0c2a1e1", posts[0].Author.ID)
	assert.Equal(t, "Admin", posts[0].AuthorName())
	assert.Equal(t, "ada", posts[1].AuthorName())
	assert.Nil(t, posts[2].Author)

	comments, err := c.ListComments(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Anonymous", comments[0].AuthorName())
}

func TestCreateCommentBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/blog/p%201/comments", r.URL.EscapedPath())
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "nice post", in["body"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"c9","body":"nice post","author":{"username":"ada"}}`))
	})

	cm, err := c.WithToken("t").CreateComment(context.Background(), "p 1", "nice post")
	require.NoError(t, err)
	assert.Equal(t, "c9", cm.ID)
	assert.Equal(t, "ada", cm.AuthorName())
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryWeb, ParseCategory("web"))
	assert.Equal(t, CategoryAll, ParseCategory(""))
	assert.Equal(t, CategoryAll, ParseCategory("games"))
	assert.True(t, CategoryDesktop.Valid())
	assert.False(t, CategoryAll.Valid())
	assert.False(t, Category("games").Valid())
}
