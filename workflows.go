package folio

import (
	"sync"
	"time"

	"github.com/eringen/folio/admin"
)

// Workflows keeps one admin workflow per browser session. Entries idle for
// longer than the TTL are dropped by Sweep.
type Workflows struct {
	mu      sync.Mutex
	entries map[string]*workflowEntry
	ttl     time.Duration
	now     func() time.Time
	opts    []admin.Option
}

type workflowEntry struct {
	wf   *admin.Workflow
	seen time.Time
}

// NewWorkflows creates an empty registry. opts are passed to every new
// workflow.
func NewWorkflows(ttl time.Duration, opts ...admin.Option) *Workflows {
	return &Workflows{
		entries: make(map[string]*workflowEntry),
		ttl:     ttl,
		now:     time.Now,
		opts:    opts,
	}
}

// Get returns the workflow for sessionID, creating it on first use, and
// marks it as recently used.
func (r *Workflows) Get(sessionID string) *admin.Workflow {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sessionID]
	if !ok {
		e = &workflowEntry{wf: admin.NewWorkflow(r.opts...)}
		r.entries[sessionID] = e
	}
	e.seen = r.now()
	return e.wf
}

// Drop discards the workflow for sessionID, cancelling its notice timers.
func (r *Workflows) Drop(sessionID string) {
	r.mu.Lock()
	e, ok := r.entries[sessionID]
	delete(r.entries, sessionID)
	r.mu.Unlock()
	if ok {
		e.wf.Stop()
	}
}

// Sweep drops every workflow idle for longer than the TTL and returns how
// many were removed.
func (r *Workflows) Sweep() int {
	cutoff := r.now().Add(-r.ttl)
	var stale []*admin.Workflow

	r.mu.Lock()
	for id, e := range r.entries {
		if e.seen.Before(cutoff) {
			stale = append(stale, e.wf)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, wf := range stale {
		wf.Stop()
	}
	return len(stale)
}

// Len returns the number of live workflows.
func (r *Workflows) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// StartSweeper runs Sweep every interval. Returns a stop function.
func (r *Workflows) StartSweeper(interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
