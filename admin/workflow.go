// Package admin implements the admin panel's list/create/edit/delete
// workflow for blog posts and projects, independent of HTTP and rendering.
package admin

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/validate"
)

// NoticeTTL is how long a success or error notice stays visible.
const NoticeTTL = 3 * time.Second

// Notice texts.
const (
	MsgCreated      = "Item created successfully"
	MsgUpdated      = "Item updated successfully"
	MsgDeleted      = "Item deleted successfully"
	MsgSaveFailed   = "Failed to save item"
	MsgDeleteFailed = "Failed to delete item"
	MsgLoadFailed   = "Failed to load data"
)

var (
	// ErrNoForm is returned by Submit when no form is open.
	ErrNoForm = errors.New("admin: no form open")
	// ErrUnknownRecord is returned by Edit for an id not in the current list.
	ErrUnknownRecord = errors.New("admin: record not in list")
)

// Backend is the subset of the API the workflow needs. *api.Client
// satisfies it; callers pass one carrying the admin's credential.
type Backend interface {
	AdminListBlogs(ctx context.Context) ([]api.BlogPost, error)
	CreateBlog(ctx context.Context, in api.BlogInput) (api.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, in api.BlogInput) (api.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error
	ListProjects(ctx context.Context, f api.ProjectFilter) ([]api.Project, error)
	CreateProject(ctx context.Context, in api.ProjectInput) (api.Project, error)
	UpdateProject(ctx context.Context, id string, in api.ProjectInput) (api.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// State is the workflow's coarse state.
type State int

const (
	StateListing State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	}
	return "listing"
}

// notice is one self-clearing message slot.
type notice struct {
	text  string
	gen   uint64
	timer Timer
}

// View is a point-in-time copy of the workflow for rendering.
type View struct {
	Kind        Kind
	State       State
	Loaded      bool
	Blogs       []api.BlogPost
	Projects    []api.Project
	Form        Form
	FieldErrors validate.FieldErrors
	Success     string
	Error       string
}

// Editing reports whether the open form edits an existing record.
func (v View) Editing() bool {
	return v.Form != nil && v.Form.RecordID() != ""
}

// Workflow is one visitor's admin panel. It is safe for concurrent use;
// list fetches and mutations are each serialized.
type Workflow struct {
	clock Clock
	ttl   time.Duration

	fetchMu  sync.Mutex
	mutateMu sync.Mutex

	mu        sync.Mutex
	kind      Kind
	state     State
	loaded    map[Kind]bool
	blogs     []api.BlogPost
	projects  []api.Project
	form      Form
	fieldErrs validate.FieldErrors
	success   notice
	failure   notice
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithClock replaces the clock used for notice timers.
func WithClock(c Clock) Option {
	return func(w *Workflow) {
		w.clock = c
	}
}

// WithNoticeTTL changes how long notices stay visible.
func WithNoticeTTL(d time.Duration) Option {
	return func(w *Workflow) {
		w.ttl = d
	}
}

// NewWorkflow returns a workflow on the blog tab with nothing loaded.
func NewWorkflow(opts ...Option) *Workflow {
	w := &Workflow{
		clock:  realClock{},
		ttl:    NoticeTTL,
		kind:   KindBlog,
		loaded: map[Kind]bool{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Kind returns the active record kind.
func (w *Workflow) Kind() Kind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.kind
}

// Loaded reports whether the active kind's list has been fetched once.
func (w *Workflow) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded[w.kind]
}

// SelectKind switches tabs, discarding any open form, and reloads the list
// for kind.
func (w *Workflow) SelectKind(ctx context.Context, b Backend, kind Kind) error {
	w.mu.Lock()
	w.kind = kind
	w.closeFormLocked()
	w.mu.Unlock()
	return w.Reload(ctx, b)
}

// Reload fetches the active kind's list and replaces the current one
// wholesale. On failure the previous list stays and an error notice is set.
func (w *Workflow) Reload(ctx context.Context, b Backend) error {
	w.fetchMu.Lock()
	defer w.fetchMu.Unlock()

	kind := w.Kind()
	var (
		blogs    []api.BlogPost
		projects []api.Project
		err      error
	)
	switch kind {
	case KindProject:
		projects, err = b.ListProjects(ctx, api.ProjectFilter{})
	default:
		blogs, err = b.AdminListBlogs(ctx)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		if ctx.Err() == nil {
			w.setNoticeLocked(&w.failure, MsgLoadFailed)
		}
		return err
	}
	switch kind {
	case KindProject:
		w.projects = projects
	default:
		w.blogs = blogs
	}
	w.loaded[kind] = true
	return nil
}

// AddNew opens an empty form for the active kind.
func (w *Workflow) AddNew() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = NewForm(w.kind)
	w.fieldErrs = nil
	w.state = StateEditing
}

// Edit opens a form pre-populated from the listed record with the given id.
func (w *Workflow) Edit(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var form Form
	switch w.kind {
	case KindProject:
		for _, p := range w.projects {
			if p.ID == id {
				form = projectFormFrom(p)
				break
			}
		}
	default:
		for _, p := range w.blogs {
			if p.ID == id {
				form = blogFormFrom(p)
				break
			}
		}
	}
	if form == nil {
		return ErrUnknownRecord
	}
	w.form = form
	w.fieldErrs = nil
	w.state = StateEditing
	return nil
}

// Update copies submitted field values into the open form.
func (w *Workflow) Update(values url.Values) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.form == nil {
		return ErrNoForm
	}
	w.form.apply(values)
	return nil
}

// Submit validates the open form and sends a create or update. Field errors
// keep the form open and send nothing. On success the form closes, the list
// reloads and a success notice is set; on failure an error notice carries
// the server's message.
func (w *Workflow) Submit(ctx context.Context, b Backend) (validate.FieldErrors, error) {
	w.mutateMu.Lock()
	defer w.mutateMu.Unlock()

	w.mu.Lock()
	if w.form == nil {
		w.mu.Unlock()
		return nil, ErrNoForm
	}
	if errs := w.form.check(); len(errs) > 0 {
		w.fieldErrs = errs
		w.mu.Unlock()
		return errs, nil
	}
	form := w.form.clone()
	w.fieldErrs = nil
	w.state = StateSubmitting
	w.clearNoticeLocked(&w.success)
	w.clearNoticeLocked(&w.failure)
	w.mu.Unlock()

	// The mutation outlives the request that triggered it.
	mctx := context.WithoutCancel(ctx)
	var err error
	switch f := form.(type) {
	case *BlogForm:
		if f.ID == "" {
			_, err = b.CreateBlog(mctx, f.Input())
		} else {
			_, err = b.UpdateBlog(mctx, f.ID, f.Input())
		}
	case *ProjectForm:
		if f.ID == "" {
			_, err = b.CreateProject(mctx, f.Input())
		} else {
			_, err = b.UpdateProject(mctx, f.ID, f.Input())
		}
	}

	w.mu.Lock()
	if err != nil {
		w.state = StateEditing
		w.setNoticeLocked(&w.failure, api.Message(err, MsgSaveFailed))
		w.mu.Unlock()
		return nil, err
	}
	msg := MsgCreated
	if form.RecordID() != "" {
		msg = MsgUpdated
	}
	w.closeFormLocked()
	w.setNoticeLocked(&w.success, msg)
	w.mu.Unlock()

	_ = w.Reload(ctx, b)
	return nil, nil
}

// Delete removes the record of the given kind. Nothing is sent unless
// confirmed is true. The kind is the one the admin confirmed, which may
// differ from the active tab.
func (w *Workflow) Delete(ctx context.Context, b Backend, kind Kind, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	w.mutateMu.Lock()
	defer w.mutateMu.Unlock()

	mctx := context.WithoutCancel(ctx)
	var err error
	switch kind {
	case KindProject:
		err = b.DeleteProject(mctx, id)
	default:
		err = b.DeleteBlog(mctx, id)
	}

	w.mu.Lock()
	if err != nil {
		w.setNoticeLocked(&w.failure, MsgDeleteFailed)
		w.mu.Unlock()
		return err
	}
	w.setNoticeLocked(&w.success, MsgDeleted)
	w.mu.Unlock()

	_ = w.Reload(ctx, b)
	return nil
}

// Cancel discards the open form.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeFormLocked()
}

// Title returns the title of the listed record of kind with id, for
// confirmation prompts.
func (w *Workflow) Title(kind Kind, id string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch kind {
	case KindProject:
		for _, p := range w.projects {
			if p.ID == id {
				return p.Title, true
			}
		}
	default:
		for _, p := range w.blogs {
			if p.ID == id {
				return p.Title, true
			}
		}
	}
	return "", false
}

// Snapshot copies the current state for rendering.
func (w *Workflow) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := View{
		Kind:     w.kind,
		State:    w.state,
		Loaded:   w.loaded[w.kind],
		Blogs:    append([]api.BlogPost(nil), w.blogs...),
		Projects: append([]api.Project(nil), w.projects...),
		Success:  w.success.text,
		Error:    w.failure.text,
	}
	if w.form != nil {
		v.Form = w.form.clone()
	}
	if len(w.fieldErrs) > 0 {
		v.FieldErrors = validate.FieldErrors{}
		for k, msg := range w.fieldErrs {
			v.FieldErrors[k] = msg
		}
	}
	return v
}

// Stop cancels pending notice timers. The workflow remains usable.
func (w *Workflow) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopTimerLocked(&w.success)
	w.stopTimerLocked(&w.failure)
}

func (w *Workflow) closeFormLocked() {
	w.form = nil
	w.fieldErrs = nil
	w.state = StateListing
}

// setNoticeLocked shows text in slot n and schedules its removal. A pending
// removal for the slot's previous text is cancelled first, and the
// generation check ignores a timer that already fired.
func (w *Workflow) setNoticeLocked(n *notice, text string) {
	w.stopTimerLocked(n)
	n.gen++
	n.text = text
	gen := n.gen
	n.timer = w.clock.AfterFunc(w.ttl, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if n.gen == gen {
			n.text = ""
			n.timer = nil
		}
	})
}

func (w *Workflow) clearNoticeLocked(n *notice) {
	w.stopTimerLocked(n)
	n.gen++
	n.text = ""
}

func (w *Workflow) stopTimerLocked(n *notice) {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
