package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorages(t *testing.T) {
	for _, engine := range []Engine{EngineBolt, EngineSQLite} {
		engine := engine
		t.Run(string(engine), func(t *testing.T) {
			dir := t.TempDir()
			ctx := context.Background()

			s, err := Open(engine, dir)
			require.NoError(t, err)

			_, err = s.Get(ctx, KeyTheme)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Put(ctx, KeyTheme, []byte("dark")))
			require.NoError(t, s.Put(ctx, KeyTheme, []byte("light")))

			v, err := s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, "light", string(v))

			require.NoError(t, s.Close())

			// values survive reopening
			s, err = Open(engine, dir)
			require.NoError(t, err)
			defer func() { require.NoError(t, s.Close()) }()

			v, err = s.Get(ctx, KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, "light", string(v))

			require.NoError(t, s.Delete(ctx, KeyTheme))
			_, err = s.Get(ctx, KeyTheme)
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting a missing key is not an error
			require.NoError(t, s.Delete(ctx, KeyTheme))
		})
	}
}

func TestOpen_UnknownEngine(t *testing.T) {
	_, err := Open("mongo", t.TempDir())
	require.Error(t, err)
}

func TestJSON(t *testing.T) {
	s, err := NewBolt(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	in := Article{
		Source:      Source{Name: "BBC News"},
		Title:       "title",
		URL:         "https://example.com/a",
		ImageURL:    "https://example.com/a.png",
		PublishedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, PutJSON(ctx, s, KeyLastArticle, in))

	raw, err := s.Get(ctx, KeyLastArticle)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"urlToImage":"https://example.com/a.png"`)

	var out Article
	require.NoError(t, GetJSON(ctx, s, KeyLastArticle, &out))
	assert.Equal(t, in, out)

	require.NoError(t, s.Put(ctx, KeyFavorites, []byte("{broken")))
	var list []Article
	assert.Error(t, GetJSON(ctx, s, KeyFavorites, &list))

	assert.ErrorIs(t, GetJSON(ctx, s, "missing", &list), ErrNotFound)
}
