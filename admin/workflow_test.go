package admin

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/api"
)

type fakeBackend struct {
	mu       sync.Mutex
	blogs    []api.BlogPost
	projects []api.Project
	listErr  error
	saveErr  error
	delErr   error
	calls    []string
	lastBlog api.BlogInput
	lastProj api.ProjectInput
	lastID   string
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) AdminListBlogs(context.Context) ([]api.BlogPost, error) {
	f.record("list-blogs")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.blogs, nil
}

func (f *fakeBackend) CreateBlog(_ context.Context, in api.BlogInput) (api.BlogPost, error) {
	f.record("create-blog")
	f.lastBlog = in
	return api.BlogPost{ID: "new"}, f.saveErr
}

func (f *fakeBackend) UpdateBlog(_ context.Context, id string, in api.BlogInput) (api.BlogPost, error) {
	f.record("update-blog")
	f.lastID, f.lastBlog = id, in
	return api.BlogPost{ID: id}, f.saveErr
}

func (f *fakeBackend) DeleteBlog(_ context.Context, id string) error {
	f.record("delete-blog")
	f.lastID = id
	return f.delErr
}

func (f *fakeBackend) ListProjects(context.Context, api.ProjectFilter) ([]api.Project, error) {
	f.record("list-projects")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.projects, nil
}

func (f *fakeBackend) CreateProject(_ context.Context, in api.ProjectInput) (api.Project, error) {
	f.record("create-project")
	f.lastProj = in
	return api.Project{ID: "new"}, f.saveErr
}

func (f *fakeBackend) UpdateProject(_ context.Context, id string, in api.ProjectInput) (api.Project, error) {
	f.record("update-project")
	f.lastID, f.lastProj = id, in
	return api.Project{ID: id}, f.saveErr
}

func (f *fakeBackend) DeleteProject(_ context.Context, id string) error {
	f.record("delete-project")
	f.lastID = id
	return f.delErr
}

// fakeClock collects AfterFunc callbacks so tests fire them by hand.
type fakeClock struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f, d: d}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) fire(i int) {
	if !c.timers[i].stopped {
		c.timers[i].f()
	}
}

func sampleProjects() []api.Project {
	return []api.Project{
		{ID: "p1", Title: "Folio", Description: "Site", Technologies: []string{"React", "Node", "Go"}, Category: api.CategoryWeb, DisplayOrder: 2},
		{ID: "p2", Title: "Pocket", Description: "App", Category: api.CategoryMobile, Featured: true},
	}
}

func newProjectWorkflow(t *testing.T, b *fakeBackend) (*Workflow, *fakeClock) {
	t.Helper()
	clk := &fakeClock{}
	w := NewWorkflow(WithClock(clk))
	require.NoError(t, w.SelectKind(context.Background(), b, KindProject))
	return w, clk
}

func TestSelectKindLoadsList(t *testing.T) {
	b := &fakeBackend{blogs: []api.BlogPost{{ID: "b1", Title: "Hello"}}, projects: sampleProjects()}
	w := NewWorkflow(WithClock(&fakeClock{}))
	ctx := context.Background()

	require.NoError(t, w.Reload(ctx, b))
	v := w.Snapshot()
	assert.Equal(t, KindBlog, v.Kind)
	assert.True(t, v.Loaded)
	assert.Len(t, v.Blogs, 1)

	w.AddNew()
	require.NoError(t, w.SelectKind(ctx, b, KindProject))
	v = w.Snapshot()
	assert.Equal(t, KindProject, v.Kind)
	assert.Nil(t, v.Form, "switching tabs discards the form")
	assert.Len(t, v.Projects, 2)
	assert.Equal(t, []string{"list-blogs", "list-projects"}, b.calls)
}

func TestAddNewUsesKindDefaults(t *testing.T) {
	w, _ := newProjectWorkflow(t, &fakeBackend{})
	w.AddNew()

	v := w.Snapshot()
	assert.Equal(t, StateEditing, v.State)
	assert.False(t, v.Editing())
	pf, ok := v.Form.(*ProjectForm)
	require.True(t, ok)
	assert.Equal(t, "web", pf.Category)
	assert.Equal(t, "0", pf.DisplayOrder)
	assert.False(t, pf.Featured)
}

func TestEditPrepopulatesJoinedTechnologies(t *testing.T) {
	w, _ := newProjectWorkflow(t, &fakeBackend{projects: sampleProjects()})

	require.NoError(t, w.Edit("p1"))
	v := w.Snapshot()
	assert.True(t, v.Editing())
	pf := v.Form.(*ProjectForm)
	assert.Equal(t, "React, Node, Go", pf.Technologies)
	assert.Equal(t, "2", pf.DisplayOrder)

	assert.ErrorIs(t, w.Edit("missing"), ErrUnknownRecord)
}

func TestEditSubmitRoundTripKeepsSet(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, _ := newProjectWorkflow(t, b)
	ctx := context.Background()

	require.NoError(t, w.Edit("p1"))
	values := url.Values{}
	for k, v := range w.Snapshot().Form.Values() {
		values.Set(k, v)
	}
	values.Del("featured")
	require.NoError(t, w.Update(values))

	errs, err := w.Submit(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, "p1", b.lastID)
	assert.Equal(t, []string{"React", "Node", "Go"}, b.lastProj.Technologies)
	assert.Equal(t, 2, b.lastProj.DisplayOrder)
}

func TestSubmitCreateSplitsTechnologies(t *testing.T) {
	b := &fakeBackend{}
	w, clk := newProjectWorkflow(t, b)
	ctx := context.Background()

	w.AddNew()
	require.NoError(t, w.Update(url.Values{
		"title":        {"Folio"},
		"description":  {"Portfolio site"},
		"technologies": {"React, Node, , Go"},
		"category":     {"desktop"},
		"featured":     {"on"},
		"displayOrder": {""},
	}))

	errs, err := w.Submit(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, []string{"React", "Node", "Go"}, b.lastProj.Technologies)
	assert.Equal(t, api.CategoryDesktop, b.lastProj.Category)
	assert.True(t, b.lastProj.Featured)
	assert.Equal(t, 0, b.lastProj.DisplayOrder)
	assert.Equal(t, []string{"list-projects", "create-project", "list-projects"}, b.calls)

	v := w.Snapshot()
	assert.Nil(t, v.Form)
	assert.Equal(t, StateListing, v.State)
	assert.Equal(t, MsgCreated, v.Success)

	require.Len(t, clk.timers, 1)
	assert.Equal(t, NoticeTTL, clk.timers[0].d)
	clk.fire(0)
	assert.Empty(t, w.Snapshot().Success)
}

func TestSubmitBlogUpdate(t *testing.T) {
	b := &fakeBackend{blogs: []api.BlogPost{{ID: "b1", Title: "Hello", Content: "Body", Tags: []string{"go", "web"}, Published: true}}}
	w := NewWorkflow(WithClock(&fakeClock{}))
	ctx := context.Background()
	require.NoError(t, w.Reload(ctx, b))

	require.NoError(t, w.Edit("b1"))
	bf := w.Snapshot().Form.(*BlogForm)
	assert.Equal(t, "go, web", bf.Tags)
	assert.True(t, bf.Published)

	require.NoError(t, w.Update(url.Values{
		"title":   {"Hello again"},
		"content": {"Body"},
		"tags":    {" go ,web,,htmx "},
	}))
	_, err := w.Submit(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "b1", b.lastID)
	assert.Equal(t, []string{"go", "web", "htmx"}, b.lastBlog.Tags)
	assert.False(t, b.lastBlog.Published, "unchecked box unpublishes")
	assert.Equal(t, MsgUpdated, w.Snapshot().Success)
}

func TestSubmitValidationKeepsFormAndSendsNothing(t *testing.T) {
	b := &fakeBackend{}
	w, _ := newProjectWorkflow(t, b)

	w.AddNew()
	require.NoError(t, w.Update(url.Values{
		"title":        {"  "},
		"description":  {"x"},
		"liveUrl":      {"not a url"},
		"category":     {"games"},
		"displayOrder": {"first"},
	}))
	errs, err := w.Submit(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, "title is required", errs["title"])
	assert.Equal(t, "Invalid URL format", errs["liveUrl"])
	assert.Equal(t, "Invalid category", errs["category"])
	assert.Equal(t, "Must be a whole number", errs["displayOrder"])

	v := w.Snapshot()
	assert.NotNil(t, v.Form)
	assert.Equal(t, errs, v.FieldErrors)
	assert.Equal(t, []string{"list-projects"}, b.calls)
}

func TestSubmitFailureShowsServerMessage(t *testing.T) {
	b := &fakeBackend{saveErr: &api.APIError{Kind: api.ErrHTTP, Status: 409, Message: "Title already exists"}}
	w, clk := newProjectWorkflow(t, b)

	w.AddNew()
	require.NoError(t, w.Update(url.Values{"title": {"A"}, "description": {"B"}, "category": {"web"}}))
	_, err := w.Submit(context.Background(), b)
	require.Error(t, err)

	v := w.Snapshot()
	assert.Equal(t, "Title already exists", v.Error)
	assert.Equal(t, StateEditing, v.State)
	assert.NotNil(t, v.Form, "form stays open for another try")

	clk.fire(len(clk.timers) - 1)
	assert.Empty(t, w.Snapshot().Error)
}

func TestSubmitFailureGenericMessage(t *testing.T) {
	b := &fakeBackend{saveErr: &api.APIError{Kind: api.ErrTransport, Err: errors.New("dial tcp: refused")}}
	w, _ := newProjectWorkflow(t, b)

	w.AddNew()
	require.NoError(t, w.Update(url.Values{"title": {"A"}, "description": {"B"}, "category": {"web"}}))
	_, err := w.Submit(context.Background(), b)
	require.Error(t, err)
	assert.Equal(t, MsgSaveFailed, w.Snapshot().Error)
}

func TestSubmitWithoutForm(t *testing.T) {
	w := NewWorkflow(WithClock(&fakeClock{}))
	_, err := w.Submit(context.Background(), &fakeBackend{})
	assert.ErrorIs(t, err, ErrNoForm)
	assert.ErrorIs(t, w.Update(url.Values{}), ErrNoForm)
}

func TestDeleteWithoutConfirmationIsNoop(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, _ := newProjectWorkflow(t, b)

	require.NoError(t, w.Delete(context.Background(), b, KindProject, "p1", false))
	assert.Equal(t, []string{"list-projects"}, b.calls)
	assert.Len(t, w.Snapshot().Projects, 2)
	assert.Empty(t, w.Snapshot().Success)
}

func TestDeleteConfirmedReloads(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, _ := newProjectWorkflow(t, b)

	b.projects = b.projects[1:]
	require.NoError(t, w.Delete(context.Background(), b, KindProject, "p1", true))
	assert.Equal(t, []string{"list-projects", "delete-project", "list-projects"}, b.calls)
	assert.Equal(t, "p1", b.lastID)

	v := w.Snapshot()
	assert.Len(t, v.Projects, 1)
	assert.Equal(t, MsgDeleted, v.Success)
}

func TestDeleteUsesConfirmedKindNotActiveTab(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects(), blogs: []api.BlogPost{{ID: "b1", Title: "Hello"}}}
	w, _ := newProjectWorkflow(t, b)

	require.NoError(t, w.Delete(context.Background(), b, KindBlog, "b1", true))
	assert.Equal(t, []string{"list-projects", "delete-blog", "list-projects"}, b.calls)
	assert.Equal(t, "b1", b.lastID)
	assert.Equal(t, KindProject, w.Kind())
}

func TestDeleteFailure(t *testing.T) {
	b := &fakeBackend{blogs: []api.BlogPost{{ID: "b1"}}, delErr: errors.New("boom")}
	w := NewWorkflow(WithClock(&fakeClock{}))
	require.NoError(t, w.Reload(context.Background(), b))

	require.Error(t, w.Delete(context.Background(), b, KindBlog, "b1", true))
	v := w.Snapshot()
	assert.Equal(t, MsgDeleteFailed, v.Error)
	assert.Len(t, v.Blogs, 1)
}

func TestFailedReloadKeepsStaleList(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, _ := newProjectWorkflow(t, b)

	b.listErr = errors.New("upstream down")
	require.Error(t, w.Reload(context.Background(), b))

	v := w.Snapshot()
	assert.Len(t, v.Projects, 2, "list is not cleared")
	assert.Equal(t, MsgLoadFailed, v.Error)
}

func TestCancelledReloadSetsNoNotice(t *testing.T) {
	b := &fakeBackend{listErr: context.Canceled}
	w := NewWorkflow(WithClock(&fakeClock{}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, w.Reload(ctx, b))
	assert.Empty(t, w.Snapshot().Error)
}

func TestNewNoticeCancelsPreviousTimer(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, clk := newProjectWorkflow(t, b)
	ctx := context.Background()

	require.NoError(t, w.Delete(ctx, b, KindProject, "p1", true))
	require.NoError(t, w.Delete(ctx, b, KindProject, "p2", true))
	require.Len(t, clk.timers, 2)
	assert.True(t, clk.timers[0].stopped)

	// A stale callback that raced past Stop must not clear the newer text.
	clk.timers[0].f()
	assert.Equal(t, MsgDeleted, w.Snapshot().Success)

	clk.fire(1)
	assert.Empty(t, w.Snapshot().Success)
}

func TestCancelDiscardsEdits(t *testing.T) {
	b := &fakeBackend{projects: sampleProjects()}
	w, _ := newProjectWorkflow(t, b)

	require.NoError(t, w.Edit("p2"))
	require.NoError(t, w.Update(url.Values{"title": {"changed"}}))
	w.Cancel()

	v := w.Snapshot()
	assert.Nil(t, v.Form)
	assert.Equal(t, StateListing, v.State)
	assert.Equal(t, "Pocket", v.Projects[1].Title)
}

func TestTitle(t *testing.T) {
	w, _ := newProjectWorkflow(t, &fakeBackend{projects: sampleProjects()})
	title, ok := w.Title(KindProject, "p2")
	assert.True(t, ok)
	assert.Equal(t, "Pocket", title)
	_, ok = w.Title(KindProject, "zzz")
	assert.False(t, ok)
	_, ok = w.Title(KindBlog, "p2")
	assert.False(t, ok)
}

func TestSplitJoinList(t *testing.T) {
	assert.Equal(t, []string{"React", "Node", "Go"}, SplitList("React, Node, , Go"))
	assert.Equal(t, []string{}, SplitList(""))
	assert.Equal(t, "React, Node, Go", JoinList([]string{"React", "Node", "Go"}))
	assert.Equal(t, "", JoinList(nil))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("project")
	assert.True(t, ok)
	assert.Equal(t, KindProject, k)
	_, ok = ParseKind("message")
	assert.False(t, ok)
	assert.Equal(t, "Blog Posts", KindBlog.TabLabel())
	assert.Equal(t, "Project", KindProject.Label())
}
