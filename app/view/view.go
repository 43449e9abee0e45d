// Package view selects which list is displayed and how.
package view

import (
	"context"
	"errors"

	"github.com/Semior001/newsdesk/app/feed"
	"github.com/Semior001/newsdesk/app/store"
	"golang.org/x/exp/slog"
)

// Mode is a displayed list.
type Mode string

// Supported modes.
const (
	ModeFeed      Mode = "feed"
	ModeFavorites Mode = "favorites"
)

// Theme is a display theme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Selector holds display state. Switching modes never touches the data
// behind the lists. Selector is not safe for concurrent use.
type Selector struct {
	log   *slog.Logger
	store store.Interface
	mode  Mode
	theme Theme
}

// NewSelector makes a selector in feed mode with the theme restored from
// the store, light by default.
func NewSelector(ctx context.Context, lg *slog.Logger, s store.Interface) *Selector {
	sel := &Selector{log: lg, store: s, mode: ModeFeed, theme: ThemeLight}

	bts, err := s.Get(ctx, store.KeyTheme)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		lg.WarnCtx(ctx, "failed to read theme", slog.Any("err", err))
	case Theme(bts) == ThemeDark:
		sel.theme = ThemeDark
	}

	return sel
}

// Mode returns the current mode.
func (s *Selector) Mode() Mode { return s.mode }

// SetMode switches to the given mode.
func (s *Selector) SetMode(m Mode) { s.mode = m }

// Toggle switches between feed and favorites.
func (s *Selector) Toggle() Mode {
	if s.mode == ModeFeed {
		s.mode = ModeFavorites
	} else {
		s.mode = ModeFeed
	}
	return s.mode
}

// FeedControls reports whether region, category, query and load-more
// controls are shown.
func (s *Selector) FeedControls() bool { return s.mode == ModeFeed }

// Articles returns the list to display in the current mode.
func (s *Selector) Articles(snap feed.Snapshot, favorites []store.Article) []store.Article {
	if s.mode == ModeFavorites {
		return favorites
	}
	return snap.Articles
}

// Empty reports whether the "no articles" state must be shown.
func (s *Selector) Empty(snap feed.Snapshot, favorites []store.Article) bool {
	if s.mode == ModeFavorites {
		return len(favorites) == 0
	}
	return snap.NoResults()
}

// Theme returns the current theme.
func (s *Selector) Theme() Theme { return s.theme }

// ToggleTheme switches between light and dark themes and persists the choice.
func (s *Selector) ToggleTheme(ctx context.Context) Theme {
	if s.theme == ThemeDark {
		s.theme = ThemeLight
	} else {
		s.theme = ThemeDark
	}

	if err := s.store.Put(ctx, store.KeyTheme, []byte(s.theme)); err != nil {
		s.log.WarnCtx(ctx, "failed to persist theme", slog.Any("err", err))
	}

	return s.theme
}
