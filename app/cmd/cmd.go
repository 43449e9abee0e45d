// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/favorites"
	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/news"
	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/app/view"
	"github.com/Semior001/newsdesk/pkg/logx"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// CommonOpts are the options shared by all front ends.
type CommonOpts struct {
	News struct {
		APIKey   string        `long:"api-key" env:"API_KEY" description:"newsapi.org API key"`
		BaseURL  string        `long:"base-url" env:"BASE_URL" default:"https://newsapi.org" description:"base url of the headlines service"`
		PageSize int           `long:"page-size" env:"PAGE_SIZE" default:"6" description:"articles per page"`
		Region   string        `long:"region" env:"REGION" default:"us" choice:"us" choice:"gb" choice:"in" choice:"au" description:"initial region"`
		Category string        `long:"category" env:"CATEGORY" description:"initial category, empty for all"`
		Timeout  time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"timeout for headlines requests"`
		RPS      float64       `long:"rps" env:"RPS" default:"1" description:"max requests per second to the headlines service"`
		Burst    int           `long:"burst" env:"BURST" default:"3" description:"burst of requests to the headlines service"`
	} `group:"news" namespace:"news" env-namespace:"NEWS"`

	Store struct {
		Engine string `long:"engine" env:"ENGINE" default:"bolt" choice:"bolt" choice:"sqlite" description:"storage engine"`
		Path   string `long:"path" env:"PATH" description:"dir for the database file, defaults to the user config dir"`
	} `group:"store" namespace:"store" env-namespace:"STORE"`

	Revisor struct {
		Enabled bool          `long:"enabled" env:"ENABLED" description:"fetch full text of articles"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"15s" description:"timeout for article pages"`

		OpenAI struct {
			Token     string        `long:"token" env:"TOKEN" description:"OpenAI token, summaries are disabled without it"`
			MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens for OpenAI"`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"1m" description:"timeout for OpenAI calls"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"revisor" namespace:"revisor" env-namespace:"REVISOR"`
}

// app is a set of wired components.
type app struct {
	store     store.Storage
	feed      *feed.Controller
	favorites *favorites.Manager
	view      *view.Selector
	revisor   *revisor.Service // nil if disabled
}

// build makes the components. Caller must close the store.
func (c CommonOpts) build(ctx context.Context, lg *slog.Logger) (*app, error) {
	if c.News.Category != "" && !feed.ValidCategory(c.News.Category) {
		return nil, fmt.Errorf("unknown category %q", c.News.Category)
	}

	dir, err := c.storeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve store dir: %w", err)
	}

	s, err := store.Open(store.Engine(c.Store.Engine), dir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.Store.Engine, err)
	}

	lg.InfoCtx(ctx, "store opened", slog.String("engine", c.Store.Engine), slog.String("dir", dir))

	if c.News.APIKey == "" {
		lg.WarnCtx(ctx, "news API key is not set, headlines will not be loaded")
	}

	newsLog := lg.With(slog.String("prefix", "news"))
	src := news.NewClient(newsLog,
		http.Client{Timeout: c.News.Timeout},
		c.News.BaseURL,
		c.News.APIKey,
		news.RateLimit(rate.NewLimiter(rate.Limit(c.News.RPS), c.News.Burst)),
		logx.LoggingRoundTripper(newsLog, logx.RoundTripperOpts{
			Level:         slog.LevelDebug,
			SecretHeaders: []string{news.APIKeyHeader},
		}),
	)

	a := &app{
		store: s,
		feed: feed.NewController(lg.With(slog.String("prefix", "feed")), src, feed.Options{
			Region:   c.News.Region,
			Category: c.News.Category,
			PageSize: c.News.PageSize,
		}),
		favorites: favorites.Load(ctx, lg.With(slog.String("prefix", "favorites")), s),
		view:      view.NewSelector(ctx, lg.With(slog.String("prefix", "view")), s),
	}

	if c.Revisor.Enabled {
		revLog := lg.With(slog.String("prefix", "revisor"))
		a.revisor = revisor.NewService(revLog,
			http.Client{Timeout: c.Revisor.Timeout},
			revisor.NewChatGPT(
				lg.With(slog.String("prefix", "chatgpt")),
				&http.Client{Timeout: c.Revisor.OpenAI.Timeout},
				c.Revisor.OpenAI.Token,
				c.Revisor.OpenAI.MaxTokens,
			),
			logx.LoggingRoundTripper(revLog, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		)
	}

	return a, nil
}

// detailOpts returns the options of the detail view with the revisor, if enabled.
func (a *app) detailOpts(opts ...detail.Option) []detail.Option {
	if a.revisor != nil {
		opts = append(opts, detail.WithExpander(a.revisor))
	}
	return opts
}

func (c CommonOpts) storeDir() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(cfg, "newsdesk")
	if err = os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("make dir: %w", err)
	}

	return dir, nil
}
