// Package favorites keeps the user-curated set of articles and persists it
// in full on every change.
package favorites

import (
	"context"
	"errors"
	"sync"

	"github.com/Semior001/newsdesk/app/store"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Manager owns the set of favorite articles, unique by URL.
// Persistence is best-effort: write failures are logged and never
// returned to the caller.
type Manager struct {
	log   *slog.Logger
	store store.Interface

	mu    sync.RWMutex
	items []store.Article
}

// Load reads the set from the store. Missing or unparsable value yields
// an empty set.
func Load(ctx context.Context, lg *slog.Logger, s store.Interface) *Manager {
	m := &Manager{log: lg, store: s}

	var items []store.Article
	err := store.GetJSON(ctx, s, store.KeyFavorites, &items)
	switch {
	case errors.Is(err, store.ErrNotFound):
		lg.DebugCtx(ctx, "no favorites stored yet")
	case err != nil:
		lg.WarnCtx(ctx, "stored favorites are unreadable, starting empty", slog.Any("err", err))
	default:
		m.items = lo.UniqBy(items, func(a store.Article) string { return a.URL })
	}

	return m
}

// Toggle removes the article if an article with the same URL is in the set,
// otherwise appends it. Returns true if the article is a favorite afterwards.
func (m *Manager) Toggle(ctx context.Context, a store.Article) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, idx, found := lo.FindIndexOf(m.items, a.SameAs)

	// never mutate the backing array, snapshots share it
	if found {
		m.items = append(append([]store.Article(nil), m.items[:idx]...), m.items[idx+1:]...)
	} else {
		m.items = append(append([]store.Article(nil), m.items...), a)
	}

	if err := store.PutJSON(ctx, m.store, store.KeyFavorites, m.items); err != nil {
		m.log.WarnCtx(ctx, "failed to persist favorites", slog.Any("err", err))
	}

	return !found
}

// IsFavorite returns true if an article with the same URL is in the set.
func (m *Manager) IsFavorite(a store.Article) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.ContainsBy(m.items, a.SameAs)
}

// List returns the favorites in the order they were added.
func (m *Manager) List() []store.Article {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]store.Article(nil), m.items...)
}

// Len returns the number of favorites.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
