// Package bot contains routers and controllers for the telegram front end.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/favorites"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/Semior001/newsdesk/pkg/botx/botmw"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	API            botx.API
	Feed           *feed.Controller
	Favorites      *favorites.Manager
	View           *view.Selector
	Detail         *detail.View
	CacheStat      func() revisor.Stats // optional
	OwnerIDs       []string
	HandlerTimeout time.Duration

	mu sync.Mutex // guards View
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(),
		botmw.Recover(c.Logger),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
		c.ensureOwner,
	)

	rtr.NotFound(c.help)
	rtr.Add("/start", c.help)
	rtr.Add("/help", c.help)

	rtr.Add("/news", c.news)
	rtr.Add("/favorites", c.favorites)
	rtr.Add("/region", c.region)
	rtr.Add("/category", c.category)
	rtr.Add("/search", c.search)
	rtr.Add("/more", c.more)
	rtr.Add("/refresh", c.refresh)

	rtr.Add("/read", c.read)
	rtr.Add("/last", c.last)
	rtr.Add("/fav", c.fav)
	rtr.Add("/share", c.share)
	rtr.Add("/full", c.full)

	rtr.Add("/cache", c.cacheStats)

	return rtr
}

const helpText = `*News desk*

/news - top headlines
/favorites - saved articles
/region <us|gb|in|au> - change the region
/category <name|all> - change the category
/search <text> - filter headlines, empty to reset
/more - load more headlines
/refresh - fetch the first page again
/read <n> - open the article
/last - open the last viewed article
/fav <n> - add or remove from favorites
/share <n> - share the article
/full <n> - full text and summary`

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return []botx.Response{{ChatID: req.Chat.ID, Text: helpText}}, nil
}

func (c *Ctrl) news(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	c.mu.Lock()
	c.View.SetMode(view.ModeFeed)
	c.mu.Unlock()

	snap := c.Feed.Snapshot()
	if snap.Status == feed.StatusIdle {
		snap = c.Feed.Run(ctx, c.Feed.Refresh())
	}

	return c.list(req, snap), nil
}

func (c *Ctrl) favorites(_ context.Context, req botx.Request) ([]botx.Response, error) {
	c.mu.Lock()
	c.View.SetMode(view.ModeFavorites)
	c.mu.Unlock()

	return c.list(req, c.Feed.Snapshot()), nil
}

func (c *Ctrl) region(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	code := strings.ToLower(req.Args())
	if !feed.ValidRegion(code) {
		return reply(req, "Unknown region %q, choose one of: %s.",
			code, strings.Join(feed.Regions, ", ")), nil
	}

	return c.fetch(ctx, req, c.Feed.SetRegion(code)), nil
}

func (c *Ctrl) category(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	cat := strings.ToLower(req.Args())
	if cat == "all" {
		cat = ""
	}

	if !feed.ValidCategory(cat) {
		return reply(req, "Unknown category %q, choose one of: all, %s.",
			cat, strings.Join(feed.Categories[1:], ", ")), nil
	}

	return c.fetch(ctx, req, c.Feed.SetCategory(cat)), nil
}

func (c *Ctrl) search(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.fetch(ctx, req, c.Feed.SetQuery(req.Args())), nil
}

func (c *Ctrl) refresh(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	return c.fetch(ctx, req, c.Feed.Refresh()), nil
}

func (c *Ctrl) more(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	t, ok := c.Feed.LoadMore()
	if !ok {
		if c.Feed.Snapshot().Loading() {
			return reply(req, "Still loading, please wait."), nil
		}
		return reply(req, "Nothing to continue yet, try /news first."), nil
	}

	return c.fetch(ctx, req, t), nil
}

// fetch runs the feed ticket and shows the feed.
func (c *Ctrl) fetch(ctx context.Context, req botx.Request, t feed.Ticket) []botx.Response {
	c.mu.Lock()
	c.View.SetMode(view.ModeFeed)
	c.mu.Unlock()

	return c.list(req, c.Feed.Run(ctx, t))
}

func (c *Ctrl) read(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	a, resp, ok := c.pick(req)
	if !ok {
		return resp, nil
	}

	a, err := c.Detail.Resolve(ctx, &a)
	if err != nil {
		return nil, fmt.Errorf("resolve article: %w", err)
	}

	return c.article(req, a), nil
}

func (c *Ctrl) last(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	a, err := c.Detail.Resolve(ctx, nil)
	if errors.Is(err, detail.ErrNoArticle) {
		return reply(req, "No article found."), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve last article: %w", err)
	}

	return c.article(req, a), nil
}

func (c *Ctrl) fav(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	a, resp, ok := c.pick(req)
	if !ok {
		return resp, nil
	}

	if c.Favorites.Toggle(ctx, a) {
		return reply(req, "Added to favorites: %s", escapeMarkdown(a.Title)), nil
	}
	return reply(req, "Removed from favorites: %s", escapeMarkdown(a.Title)), nil
}

func (c *Ctrl) share(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	a, resp, ok := c.pick(req)
	if !ok {
		return resp, nil
	}

	out, err := c.Detail.Share(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("share article: %w", err)
	}

	if out.Shared {
		return []botx.Response{{
			ChatID:  req.Chat.ID,
			Text:    "*" + escapeMarkdown(a.Title) + "*",
			Buttons: [][]botx.Button{{{Text: "Share", URL: out.Message}}},
		}}, nil
	}

	return reply(req, "%s", out.Message), nil
}

func (c *Ctrl) full(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	a, resp, ok := c.pick(req)
	if !ok {
		return resp, nil
	}

	if err := c.API.SendMessage(ctx, botx.Response{
		ChatID: req.Chat.ID,
		Text:   "I'm working on it, please wait...",
	}); err != nil {
		c.Logger.WarnCtx(ctx, "failed to send progress message", slog.Any("err", err))
	}

	exp, err := c.Detail.Expand(ctx, a)
	if errors.Is(err, detail.ErrNoExpander) {
		return reply(req, "Full text is not available, article expansion is not configured."), nil
	}
	if err != nil {
		return nil, fmt.Errorf("expand article: %w", err)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: renderExpansion(a, exp)}}, nil
}

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	if c.CacheStat == nil {
		return reply(req, "Article expansion is not configured."), nil
	}

	st := c.CacheStat()
	return reply(req, "pages: hits %d, misses %d, added %d, evicted %d\n"+
		"summaries: hits %d, misses %d, added %d, evicted %d",
		st.Pages.Hits, st.Pages.Misses, st.Pages.Added, st.Pages.Evicted,
		st.Summaries.Hits, st.Summaries.Misses, st.Summaries.Added, st.Summaries.Evicted), nil
}

// pick returns the article by its number in the current list.
// If there is no such article, the response explains why.
func (c *Ctrl) pick(req botx.Request) (store.Article, []botx.Response, bool) {
	n, err := strconv.Atoi(req.Args())
	if err != nil {
		return store.Article{}, reply(req, "Please, send the number of the article, e.g. `%s 1`.", req.Command()), false
	}

	arts := c.articles(c.Feed.Snapshot())
	if n < 1 || n > len(arts) {
		return store.Article{}, reply(req, "There is no article #%d in the list.", n), false
	}

	return arts[n-1], nil, true
}

func (c *Ctrl) articles(snap feed.Snapshot) []store.Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.View.Articles(snap, c.Favorites.List())
}

func (c *Ctrl) ensureOwner(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.OwnerIDs, req.Chat.ID) {
			c.Logger.WarnCtx(ctx, "request from a stranger ignored",
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username))
			return nil, nil
		}

		return h(ctx, req)
	}
}

func reply(req botx.Request, format string, args ...any) []botx.Response {
	return []botx.Response{{ChatID: req.Chat.ID, Text: fmt.Sprintf(format, args...)}}
}
