package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/favorites"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/news"
	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const owner = "42"

var headlines = []store.Article{
	{
		Source:      store.Source{ID: "bbc-news", Name: "BBC News"},
		Title:       "Election results live",
		Description: "Counting continues across the country.",
		URL:         "https://www.bbc.co.uk/news/live/election",
		PublishedAt: time.Date(2024, 7, 5, 6, 12, 0, 0, time.UTC),
		Content:     "Counting continues across the country.",
	},
	{
		Source: store.Source{Name: "Reuters"},
		Title:  "Markets steady ahead of results",
		URL:    "https://www.reuters.com/markets/steady",
	},
}

type fakeAPI struct {
	mu   sync.Mutex
	sent []botx.Response
}

func (f *fakeAPI) Updates() <-chan botx.Request { return nil }

func (f *fakeAPI) SendMessage(_ context.Context, resp botx.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, resp)
	return nil
}

type env struct {
	ctrl  *Ctrl
	api   *fakeAPI
	src   *news.SourceMock
	store *store.Bolt
}

func newEnv(t *testing.T, opts ...detail.Option) *env {
	t.Helper()

	s, err := store.NewBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	lg := slog.New(logx.NoOp())
	ctx := context.Background()
	src := &news.SourceMock{TopHeadlinesFunc: func(context.Context, news.Query) (news.Page, error) {
		return news.Page{TotalResults: 38, Articles: headlines}, nil
	}}
	api := &fakeAPI{}

	return &env{
		ctrl: &Ctrl{
			Logger:         lg,
			API:            api,
			Feed:           feed.NewController(lg, src, feed.Options{}),
			Favorites:      favorites.Load(ctx, lg, s),
			View:           view.NewSelector(ctx, lg, s),
			Detail:         detail.New(lg, s, append([]detail.Option{detail.WithSharer(ShareLink{})}, opts...)...),
			OwnerIDs:       []string{owner},
			HandlerTimeout: time.Second,
		},
		api:   api,
		src:   src,
		store: s,
	}
}

func (e *env) send(t *testing.T, text string) botx.Response {
	t.Helper()
	resps, err := e.ctrl.Routes().Handle(context.Background(), botx.Request{
		Chat: botx.Chat{ID: owner, Username: "owner"},
		Text: text,
	})
	require.NoError(t, err)
	require.Len(t, resps, 1)
	return resps[0]
}

func TestCtrl_StrangerIgnored(t *testing.T) {
	e := newEnv(t)

	resps, err := e.ctrl.Routes().Handle(context.Background(), botx.Request{
		Chat: botx.Chat{ID: "13", Username: "stranger"},
		Text: "/news",
	})
	require.NoError(t, err)
	assert.Empty(t, resps)
	assert.Empty(t, e.src.TopHeadlinesCalls())
}

func TestCtrl_Help(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, helpText, e.send(t, "/start").Text)
	assert.Equal(t, helpText, e.send(t, "hello").Text)
}

func TestCtrl_News(t *testing.T) {
	e := newEnv(t)

	resp := e.send(t, "/news")
	assert.Equal(t, owner, resp.ChatID)
	assert.Contains(t, resp.Text, "*Top headlines* · USA · All")
	assert.Contains(t, resp.Text, "1. Election results live\n")
	assert.Contains(t, resp.Text, "2. Markets steady ahead of results\n")
	assert.Equal(t, [][]botx.Button{
		{{Text: "1", Data: "/read 1"}, {Text: "2", Data: "/read 2"}},
		{{Text: "More", Data: "/more"}},
	}, resp.Buttons)

	require.Len(t, e.src.TopHeadlinesCalls(), 1)
	assert.Equal(t, news.Query{Country: "us", PageSize: feed.DefaultPageSize, Page: 1}, e.src.TopHeadlinesCalls()[0].Q)

	// loaded feed is shown as is
	e.send(t, "/news")
	assert.Len(t, e.src.TopHeadlinesCalls(), 1)

	resp = e.send(t, "/more")
	assert.Contains(t, resp.Text, "4. Markets steady ahead of results\n")
	assert.Equal(t, 2, e.src.TopHeadlinesCalls()[1].Q.Page)

	e.send(t, "/refresh")
	assert.Equal(t, 1, e.src.TopHeadlinesCalls()[2].Q.Page)
}

func TestCtrl_FeedParams(t *testing.T) {
	e := newEnv(t)

	assert.Contains(t, e.send(t, "/region xx").Text, `Unknown region "xx"`)
	assert.Contains(t, e.send(t, "/category cooking").Text, `Unknown category "cooking"`)
	assert.Empty(t, e.src.TopHeadlinesCalls())

	assert.Contains(t, e.send(t, "/region GB").Text, "UK · All")
	assert.Contains(t, e.send(t, "/category sports").Text, "UK · Sports")
	assert.Contains(t, e.send(t, "/search election day").Text, `"election day"`)
	assert.Contains(t, e.send(t, "/category all").Text, "UK · All")

	calls := e.src.TopHeadlinesCalls()
	require.Len(t, calls, 4)
	assert.Equal(t, news.Query{Country: "gb", PageSize: 6, Page: 1}, calls[0].Q)
	assert.Equal(t, news.Query{Country: "gb", Category: "sports", PageSize: 6, Page: 1}, calls[1].Q)
	assert.Equal(t, news.Query{Country: "gb", Category: "sports", Text: "election day", PageSize: 6, Page: 1}, calls[2].Q)
	assert.Equal(t, news.Query{Country: "gb", Text: "election day", PageSize: 6, Page: 1}, calls[3].Q)
}

func TestCtrl_MoreBeforeNews(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "Nothing to continue yet, try /news first.", e.send(t, "/more").Text)
	assert.Empty(t, e.src.TopHeadlinesCalls())
}

func TestCtrl_FetchErrors(t *testing.T) {
	e := newEnv(t)
	e.src.TopHeadlinesFunc = func(context.Context, news.Query) (news.Page, error) {
		return news.Page{}, news.ErrNoAPIKey
	}

	resp := e.send(t, "/news")
	assert.Contains(t, resp.Text, "API key is missing.")
	assert.NotContains(t, resp.Text, "No articles found.")

	e.src.TopHeadlinesFunc = func(context.Context, news.Query) (news.Page, error) {
		return news.Page{}, nil
	}
	assert.Contains(t, e.send(t, "/refresh").Text, "No articles found.")
}

func TestCtrl_ReadAndLast(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, "No article found.", e.send(t, "/last").Text)

	e.send(t, "/news")
	assert.Contains(t, e.send(t, "/read").Text, "send the number of the article")
	assert.Equal(t, "There is no article #9 in the list.", e.send(t, "/read 9").Text)

	resp := e.send(t, "/read 2")
	assert.True(t, strings.HasPrefix(resp.Text, "*Markets steady ahead of results*\n_Reuters_"), resp.Text)
	assert.True(t, strings.HasSuffix(resp.Text, detail.NoContent), resp.Text)
	require.Len(t, resp.Buttons, 1)
	assert.Equal(t, []botx.Button{
		{Text: "☆ Favorite", Data: "/fav 2"},
		{Text: "Share", Data: "/share 2"},
		{Text: "Full text", Data: "/full 2"},
		{Text: "Open", URL: "https://www.reuters.com/markets/steady"},
	}, resp.Buttons[0])

	assert.Equal(t, resp.Text, e.send(t, "/last").Text)

	resp = e.send(t, "/read 1")
	assert.Contains(t, resp.Text, "_BBC News_\n05 Jul 2024 06:12 UTC\n\nCounting continues across the country.")
}

func TestCtrl_Favorites(t *testing.T) {
	e := newEnv(t)
	e.send(t, "/news")

	assert.Equal(t, "Added to favorites: Election results live", e.send(t, "/fav 1").Text)
	assert.Contains(t, e.send(t, "/news").Text, "1. Election results live ⭐\n")

	resp := e.send(t, "/favorites")
	assert.Contains(t, resp.Text, "*Favorites* (1)")
	assert.Contains(t, resp.Text, "1. Election results live\n")
	assert.NotContains(t, resp.Text, "Markets")

	// numbers refer to the favorites list now
	assert.Equal(t, "Removed from favorites: Election results live", e.send(t, "/fav 1").Text)
	assert.Contains(t, e.send(t, "/favorites").Text, "No articles found.")

	assert.Empty(t, favorites.Load(context.Background(), slog.New(logx.NoOp()), e.store).List())
	assert.Len(t, e.src.TopHeadlinesCalls(), 1, "switching views does not refetch")
}

func TestCtrl_Share(t *testing.T) {
	e := newEnv(t)
	e.send(t, "/news")

	resp := e.send(t, "/share 1")
	require.Len(t, resp.Buttons, 1)
	require.Len(t, resp.Buttons[0], 1)
	assert.Equal(t, "Share", resp.Buttons[0][0].Text)
	assert.True(t, strings.HasPrefix(resp.Buttons[0][0].URL, "https://t.me/share/url?"))
	assert.Contains(t, resp.Buttons[0][0].URL, "url=https%3A%2F%2Fwww.bbc.co.uk%2Fnews%2Flive%2Felection")
}

func TestCtrl_Full(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		e := newEnv(t)
		e.send(t, "/news")
		assert.Equal(t, "Full text is not available, article expansion is not configured.", e.send(t, "/full 1").Text)
		assert.Equal(t, "Article expansion is not configured.", e.send(t, "/cache").Text)
	})

	t.Run("expanded", func(t *testing.T) {
		exp := &detail.ExpanderMock{ExpandFunc: func(_ context.Context, a store.Article) (revisor.Expansion, error) {
			return revisor.Expansion{
				Title:    a.Title,
				SiteName: "BBC",
				Text:     "Polls closed at 10pm.",
				Summary:  "- counting_continues",
			}, nil
		}}
		e := newEnv(t, detail.WithExpander(exp))
		e.ctrl.CacheStat = func() revisor.Stats { return revisor.Stats{} }
		e.send(t, "/news")

		resp := e.send(t, "/full 1")
		assert.Equal(t, "*Election results live*\n_BBC_\n\n- counting\\_continues\n\nPolls closed at 10pm.\n\n"+
			"[source](https://www.bbc.co.uk/news/live/election)", resp.Text)
		require.Len(t, e.api.sent, 1)
		assert.Equal(t, "I'm working on it, please wait...", e.api.sent[0].Text)

		assert.Contains(t, e.send(t, "/cache").Text, "pages: hits 0")
	})
}

func TestCtrl_PanicRecovered(t *testing.T) {
	e := newEnv(t)
	e.ctrl.Feed = nil

	resps, err := e.ctrl.Routes().Handle(context.Background(), botx.Request{
		Chat: botx.Chat{ID: owner},
		Text: "/news",
	})
	assert.Error(t, err)
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, "Something went wrong")
}

func TestShareLink(t *testing.T) {
	link, err := ShareLink{}.Share(context.Background(), detail.ShareData{
		Title: "Election", Text: "Counting", URL: "https://example.com/a",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/share/url?text=Election%0A%0ACounting&url=https%3A%2F%2Fexample.com%2Fa", link)

	_, err = ShareLink{}.Share(context.Background(), detail.ShareData{Title: "no url"})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "привет…", truncate("приветствую", 7))
}
