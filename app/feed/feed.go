// Package feed implements the controller of the paginated headlines feed.
// The controller owns the query parameters and the accumulated list of
// articles, issues fetches and merges their results.
package feed

import (
	"context"
	"errors"
	"sync"

	"github.com/Semior001/newsdesk/app/news"
	"github.com/Semior001/newsdesk/app/store"
	"golang.org/x/exp/slog"
)

// DefaultPageSize is the number of articles requested per page.
const DefaultPageSize = 6

// Messages shown for failed fetches.
const (
	MsgNoAPIKey     = "API key is missing."
	MsgRemoteFailed = "Error fetching news."
	MsgNetwork      = "Network error"
)

// Status is a state of the last fetch.
type Status int

// Fetch states.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Params are the query parameters of the feed.
type Params struct {
	Region   string
	Category string
	Query    string
	Page     int
}

// Ticket is a fetch issued by the controller, stamped with the generation
// of the state it was issued for.
type Ticket struct {
	Gen    uint64
	Params Params
}

// Result is an outcome of a fetch.
type Result struct {
	Ticket Ticket
	Page   news.Page
	Err    error
}

// Snapshot is an immutable copy of the controller state.
type Snapshot struct {
	Params   Params
	Articles []store.Article
	Total    int
	Status   Status
	Err      string
}

// Loading returns true while a fetch is in flight.
func (s Snapshot) Loading() bool { return s.Status == StatusLoading }

// NoResults returns true when nothing is loaded, nothing is loading and
// there is no error to show.
func (s Snapshot) NoResults() bool {
	return len(s.Articles) == 0 && !s.Loading() && s.Err == ""
}

// HasMore returns true if the source reported more articles than loaded.
func (s Snapshot) HasMore() bool { return len(s.Articles) < s.Total }

// CanLoadMore returns true if the next page may be requested.
func (s Snapshot) CanLoadMore() bool { return !s.Loading() && len(s.Articles) > 0 }

// Options defines initial parameters of the controller.
type Options struct {
	Region   string
	Category string
	PageSize int
}

// Controller owns the feed state. It is safe for concurrent use.
type Controller struct {
	log      *slog.Logger
	src      news.Source
	pageSize int

	mu       sync.Mutex
	gen      uint64
	params   Params
	articles []store.Article
	loaded   int // pages in articles
	total    int
	status   Status
	errMsg   string
}

// NewController makes a new feed controller in idle state.
func NewController(lg *slog.Logger, src news.Source, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Region == "" {
		opts.Region = Regions[0]
	}

	return &Controller{
		log:      lg,
		src:      src,
		pageSize: opts.PageSize,
		params:   Params{Region: opts.Region, Category: opts.Category, Page: 1},
	}
}

// SetRegion changes the region, resets the feed and starts a fetch.
func (c *Controller) SetRegion(code string) Ticket {
	return c.reset(func(p *Params) { p.Region = code })
}

// SetCategory changes the category, resets the feed and starts a fetch.
// Empty category means all categories.
func (c *Controller) SetCategory(cat string) Ticket {
	return c.reset(func(p *Params) { p.Category = cat })
}

// SetQuery changes the free-text query, resets the feed and starts a fetch.
func (c *Controller) SetQuery(text string) Ticket {
	return c.reset(func(p *Params) { p.Query = text })
}

// Refresh starts a fetch of the first page with current parameters.
// The list is kept until the response replaces it, a failed refresh
// leaves the page number of the kept list.
func (c *Controller) Refresh() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.params.Page = 1
	return c.begin()
}

// LoadMore starts a fetch of the next page, which will be appended.
// It refuses while a fetch is in flight or when nothing is loaded yet.
func (c *Controller) LoadMore() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusLoading || len(c.articles) == 0 {
		return Ticket{}, false
	}

	c.params.Page++
	return c.begin(), true
}

func (c *Controller) reset(change func(p *Params)) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	change(&c.params)
	c.params.Page = 1
	c.articles = nil
	c.loaded = 0
	c.total = 0
	return c.begin()
}

// begin must be called under the lock.
func (c *Controller) begin() Ticket {
	c.gen++
	c.status = StatusLoading
	c.errMsg = ""
	return Ticket{Gen: c.gen, Params: c.params}
}

// Fetch requests the page described by the ticket. It does not touch the state.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Result {
	page, err := c.src.TopHeadlines(ctx, news.Query{
		Country:  t.Params.Region,
		Category: t.Params.Category,
		Text:     t.Params.Query,
		PageSize: c.pageSize,
		Page:     t.Params.Page,
	})
	if err != nil {
		c.log.WarnCtx(ctx, "failed to fetch headlines",
			slog.Any("params", t.Params), slog.Any("err", err))
	}
	return Result{Ticket: t, Page: page, Err: err}
}

// Apply merges the result into the state. Results of outdated tickets
// are discarded, in which case Apply returns false.
func (c *Controller) Apply(res Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if res.Ticket.Gen != c.gen {
		c.log.Debug("stale headlines discarded",
			slog.Uint64("gen", res.Ticket.Gen), slog.Uint64("current", c.gen))
		return false
	}

	if res.Err != nil {
		c.status = StatusFailed
		c.errMsg = Message(res.Err)
		// next load-more asks for the page after the kept list
		c.params.Page = max(c.loaded, 1)
		return true
	}

	if res.Ticket.Params.Page == 1 {
		c.articles = append([]store.Article(nil), res.Page.Articles...)
	} else {
		c.articles = append(c.articles, res.Page.Articles...)
	}
	c.loaded = res.Ticket.Params.Page
	c.total = res.Page.TotalResults
	c.status = StatusReady
	return true
}

// Run fetches the ticket, applies the result and returns the state after it.
func (c *Controller) Run(ctx context.Context, t Ticket) Snapshot {
	c.Apply(c.Fetch(ctx, t))
	return c.Snapshot()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Params:   c.params,
		Articles: append([]store.Article(nil), c.articles...),
		Total:    c.total,
		Status:   c.status,
		Err:      c.errMsg,
	}
}

// Message returns a user-facing message for the fetch error.
func Message(err error) string {
	var apiErr *news.APIError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, news.ErrNoAPIKey):
		return MsgNoAPIKey
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgRemoteFailed
	default:
		return MsgNetwork
	}
}
