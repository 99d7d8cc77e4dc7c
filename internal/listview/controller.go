// Package listview owns the query/result state every paginated resource
// screen shares: search, filters, sort, page, loading and the keep-stale
// read-error policy. One controller instance serves one screen.
package listview

import (
	"context"
	"errors"
	"log"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"leavepanel/internal/domain/models"
)

type Sort string

const (
	SortNone Sort = ""
	SortAsc  Sort = "ASC"
	SortDesc Sort = "DESC"
)

// Query is the input state a list screen derives its fetch from.
type Query struct {
	Page    int
	Search  string
	Filters map[string]string
	Sort    Sort
}

func NewQuery() Query {
	return Query{Page: 1, Filters: map[string]string{}}
}

func (q Query) Clone() Query {
	cp := q
	cp.Filters = make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		cp.Filters[k] = v
	}
	return cp
}

// Values renders the query as request parameters. Filter keys are emitted
// even when empty so every screen sends the same parameter set.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("search", q.Search)
	v.Set("sort", string(q.Sort))

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, q.Filters[k])
	}
	return v
}

// Result is the output state of the most recent successful fetch.
type Result[T any] struct {
	Items []T
	Meta  models.PageMeta
}

type FetchFunc[T any] func(ctx context.Context, q Query) (Result[T], error)

type RemoveFunc func(ctx context.Context, id string) error

// ErrRemoveCancelled reports that the confirmation step declined the delete.
var ErrRemoveCancelled = errors.New("remove cancelled")

type Controller[T any] struct {
	fetch  FetchFunc[T]
	remove RemoveFunc

	mu      sync.Mutex
	query   Query
	result  Result[T]
	loading bool
	seq     uint64
	lastErr error
}

func NewController[T any](fetch FetchFunc[T], remove RemoveFunc) *Controller[T] {
	return &Controller[T]{
		fetch:  fetch,
		remove: remove,
		query:  NewQuery(),
		result: Result[T]{Meta: models.PageMeta{CurrentPage: 1, LastPage: 1}},
	}
}

// Restore re-establishes query state carried across a navigation (page,
// search, filters, sort from the URL) without fetching. Page defaults to 1.
func (c *Controller[T]) Restore(q Query) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if q.Page < 1 {
		q.Page = 1
	}
	c.query = q.Clone()
}

// SetSearch updates the search term, resets to page 1 and refetches.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	c.query.Search = term
	c.query.Page = 1
	c.mu.Unlock()
	return c.load(ctx)
}

// SetFilter updates one named filter, resets to page 1 and refetches.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if c.query.Filters == nil {
		c.query.Filters = map[string]string{}
	}
	c.query.Filters[key] = value
	c.query.Page = 1
	c.mu.Unlock()
	return c.load(ctx)
}

// SetSort updates the sort order, resets to page 1 and refetches.
func (c *Controller[T]) SetSort(ctx context.Context, s Sort) error {
	c.mu.Lock()
	c.query.Sort = s
	c.query.Page = 1
	c.mu.Unlock()
	return c.load(ctx)
}

// ChangePage moves to page n with all other query state retained. The server
// is authoritative for the valid page range, so n is not validated here.
func (c *Controller[T]) ChangePage(ctx context.Context, n int) error {
	c.mu.Lock()
	c.query.Page = n
	c.mu.Unlock()
	return c.load(ctx)
}

// Refresh refetches at the current page and filters. Used after mutations so
// the list reflects server state instead of local edits.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.load(ctx)
}

// Remove deletes one record after the confirmation step accepts. On success
// the list is refreshed at the current page; on failure local data is left
// untouched.
func (c *Controller[T]) Remove(ctx context.Context, id string, confirm func() bool) error {
	if c.remove == nil {
		return errors.New("remove not supported for this resource")
	}
	if confirm != nil && !confirm() {
		return ErrRemoveCancelled
	}

	c.setLoading(true)
	err := c.remove(ctx, id)
	c.setLoading(false)
	if err != nil {
		return err
	}
	return c.Refresh(ctx)
}

func (c *Controller[T]) load(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	my := c.seq
	q := c.query.Clone()
	c.loading = true
	c.mu.Unlock()

	res, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if my == c.seq {
		c.loading = false
	}

	// Never apply a result for a view that navigated away.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	// A newer fetch superseded this one; its result wins.
	if my != c.seq {
		return nil
	}

	if err != nil {
		// Keep the prior result on read failures so a transient blip does
		// not flash an empty table.
		c.lastErr = err
		log.Printf("[LISTVIEW] action=fetch msg=fetch failed, keeping previous result: %v", err)
		return err
	}

	c.lastErr = nil
	c.result = res
	return nil
}

func (c *Controller[T]) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

func (c *Controller[T]) Result() Result[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
