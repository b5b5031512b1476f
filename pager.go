package folio

import "sync"

// BlogPageSize is how many posts one blog page shows.
const BlogPageSize = 9

// Pager remembers the last total page count the API reported for the blog
// list so requested pages can be clamped before they are fetched.
type Pager struct {
	mu    sync.RWMutex
	total int
}

// Clamp bounds page to [1, last known total]. Until a total is known only
// the lower bound applies.
func (p *Pager) Clamp(page int) int {
	if page < 1 {
		page = 1
	}
	p.mu.RLock()
	total := p.total
	p.mu.RUnlock()
	if total > 0 && page > total {
		page = total
	}
	return page
}

// Observe records the total page count from a list response.
func (p *Pager) Observe(total int) {
	if total < 0 {
		total = 0
	}
	p.mu.Lock()
	p.total = total
	p.mu.Unlock()
}

// Total returns the last known total page count, 0 when unknown.
func (p *Pager) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.total
}

// Links returns the previous and next page numbers for page out of total.
// A zero means there is no such page.
func Links(page, total int) (prev, next int) {
	if page > 1 {
		prev = page - 1
	}
	if page < total {
		next = page + 1
	}
	return prev, next
}
