// Package revisor enriches articles with their full text, taken from the
// article page, and a short summary.
package revisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Semior001/newsdesk/app/store"
	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Expansion is an article with its full text and summary.
type Expansion struct {
	Title    string
	Author   string
	SiteName string
	Image    string
	Text     string
	Summary  string // empty if summaries are disabled or the article is too long
}

// Service fetches article pages and summarizes them.
type Service struct {
	log       *slog.Logger
	rq        *requester.Requester
	chatGPT   *ChatGPT
	extractor Extractor
	pages     cache.Cache[string, Extracted]
}

// NewService makes new service, chatGPT may be nil.
func NewService(lg *slog.Logger, cl http.Client, chatGPT *ChatGPT, mws ...middleware.RoundTripperHandler) *Service {
	return &Service{
		log:     lg,
		rq:      requester.New(cl, mws...),
		chatGPT: chatGPT,
		pages:   cache.NewCache[string, Extracted]().WithTTL(30 * time.Minute).WithMaxKeys(50),
	}
}

// Stats are the stats of the service caches.
type Stats struct {
	Pages     cache.Stats
	Summaries cache.Stats
}

// CacheStat returns cache stats.
func (s *Service) CacheStat() Stats {
	return Stats{Pages: s.pages.Stat(), Summaries: s.chatGPT.CacheStat()}
}

// Extract fetches the page and extracts its readable part.
func (s *Service) Extract(ctx context.Context, u string) (Extracted, error) {
	if res, ok := s.pages.Get(u); ok {
		return res, nil
	}

	s.log.DebugCtx(ctx, "extracting article", slog.String("url", u))

	pageURL, err := url.Parse(u)
	if err != nil {
		return Extracted{}, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Extracted{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.rq.Do(req)
	if err != nil {
		return Extracted{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Extracted{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	res, err := s.extractor.Extract(resp.Body, pageURL)
	if err != nil {
		return Extracted{}, fmt.Errorf("extract article: %w", err)
	}

	s.pages.Set(u, res, 0)
	return res, nil
}

// Expand returns the full text of the article and, if possible, its summary.
// Missing summary is not an error.
func (s *Service) Expand(ctx context.Context, a store.Article) (Expansion, error) {
	page, err := s.Extract(ctx, a.URL)
	if err != nil {
		return Expansion{}, err
	}

	res := expansion(a, page)

	res.Summary, err = s.chatGPT.Summarize(ctx, Summary{
		URL:    a.URL,
		Title:  res.Title,
		Author: res.Author,
		Text:   res.Text,
	})
	switch {
	case errors.Is(err, ErrDisabled):
	case errors.Is(err, ErrTooManyTokens):
		s.log.InfoCtx(ctx, "article is too long for a summary", slog.String("url", a.URL))
	case err != nil:
		s.log.WarnCtx(ctx, "failed to summarize article",
			slog.String("url", a.URL), slog.Any("err", err))
	}

	return res, nil
}

// expansion fills the extracted page, falling back to what the article
// itself carries.
func expansion(a store.Article, page Extracted) Expansion {
	res := Expansion{
		Title:    lo.Ternary(page.Title != "", page.Title, a.Title),
		Author:   lo.Ternary(page.Author != "", page.Author, a.Author),
		SiteName: page.SiteName,
		Image:    page.Image,
		Text:     page.Text,
	}
	if res.Text == "" {
		res.Text = page.Excerpt
	}
	if res.Text == "" {
		res.Text = a.Description
	}
	return res
}
