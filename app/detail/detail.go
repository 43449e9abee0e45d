// Package detail resolves and presents a single article: it keeps the
// last viewed article for navigation recovery and shares article links.
package detail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Semior001/newsdesk/app/revisor"
	"github.com/Semior001/newsdesk/app/store"
	"golang.org/x/exp/slog"
)

// ErrNoArticle is returned when there is neither a handed over article
// nor a last viewed one.
var ErrNoArticle = errors.New("no article found")

// ErrNoExpander is returned by Expand when no revisor is configured.
var ErrNoExpander = errors.New("article expansion is not configured")

// NoticeTTL is how long the "link copied" confirmation stays visible.
const NoticeTTL = 2 * time.Second

// NoContent is shown when the article has neither content nor description.
const NoContent = "No content available."

// CopiedMessage confirms that the link is in the clipboard.
const CopiedMessage = "Link copied to clipboard!"

//go:generate moq -out mock_detail.go . Sharer Clipboard Expander

// Sharer is a platform capability to share a link.
// It returns an optional message to show to the user.
type Sharer interface {
	Share(ctx context.Context, d ShareData) (string, error)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Expander fetches the full text and the summary of an article.
type Expander interface {
	Expand(ctx context.Context, a store.Article) (revisor.Expansion, error)
}

// ShareData is what is passed to the platform share capability.
type ShareData struct {
	Title string
	Text  string
	URL   string
}

// Outcome is a result of a share or copy action.
type Outcome struct {
	Shared  bool
	Copied  bool
	Message string
	Until   time.Time // zero means the message does not expire
}

// Visible reports whether the outcome message is still to be shown.
func (o Outcome) Visible(now time.Time) bool {
	if o.Message == "" {
		return false
	}
	return o.Until.IsZero() || now.Before(o.Until)
}

// View resolves articles for the detail view and acts on them.
type View struct {
	log *slog.Logger
	st  store.Interface
	Options
}

// New makes a new detail view.
func New(lg *slog.Logger, st store.Interface, opts ...Option) *View {
	options := Options{Now: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	return &View{log: lg, st: st, Options: options}
}

// Open remembers the article as the last viewed one and returns it.
// Failing to persist is only logged.
func (v *View) Open(ctx context.Context, a store.Article) store.Article {
	if err := store.PutJSON(ctx, v.st, store.KeyLastArticle, a); err != nil {
		v.log.WarnCtx(ctx, "failed to persist last viewed article", slog.Any("err", err))
	}
	return a
}

// Resolve returns the article to display: the handed over one, which is
// remembered as the last viewed, or the last viewed one.
func (v *View) Resolve(ctx context.Context, handed *store.Article) (store.Article, error) {
	if handed != nil {
		return v.Open(ctx, *handed), nil
	}
	return v.Last(ctx)
}

// Last returns the last viewed article.
func (v *View) Last(ctx context.Context) (store.Article, error) {
	var a store.Article
	err := store.GetJSON(ctx, v.st, store.KeyLastArticle, &a)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return store.Article{}, ErrNoArticle
	case err != nil:
		v.log.WarnCtx(ctx, "last viewed article is unreadable", slog.Any("err", err))
		return store.Article{}, ErrNoArticle
	}

	return a, nil
}

// Body returns the text to show for the article.
func Body(a store.Article) string {
	switch {
	case a.Content != "":
		return a.Content
	case a.Description != "":
		return a.Description
	default:
		return NoContent
	}
}

// Share shares the article with the platform capability if there is one,
// otherwise copies its link to the clipboard.
func (v *View) Share(ctx context.Context, a store.Article) (Outcome, error) {
	if v.Sharer == nil {
		return v.CopyLink(ctx, a)
	}

	msg, err := v.Sharer.Share(ctx, ShareData{Title: a.Title, Text: a.Description, URL: a.URL})
	if err != nil {
		return Outcome{}, fmt.Errorf("share: %w", err)
	}

	return Outcome{Shared: true, Message: msg}, nil
}

// CopyLink puts the article link to the clipboard. The confirmation
// message expires after NoticeTTL.
func (v *View) CopyLink(ctx context.Context, a store.Article) (Outcome, error) {
	if v.Clipboard == nil {
		return Outcome{}, errors.New("no clipboard available")
	}

	if err := v.Clipboard.WriteText(a.URL); err != nil {
		return Outcome{}, fmt.Errorf("copy link: %w", err)
	}

	v.log.DebugCtx(ctx, "link copied", slog.String("url", a.URL))
	return Outcome{Copied: true, Message: CopiedMessage, Until: v.Now().Add(NoticeTTL)}, nil
}

// Expand returns the full text and the summary of the article.
func (v *View) Expand(ctx context.Context, a store.Article) (revisor.Expansion, error) {
	if v.Expander == nil {
		return revisor.Expansion{}, ErrNoExpander
	}

	exp, err := v.Expander.Expand(ctx, a)
	if err != nil {
		return revisor.Expansion{}, fmt.Errorf("expand article: %w", err)
	}

	return exp, nil
}
