package botmw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var req = botx.Request{Chat: botx.Chat{ID: "42", Username: "owner"}, Text: "/news"}

func TestRequestID(t *testing.T) {
	var ids []string
	h := botx.Handler(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		id, ok := logx.RequestIDFromContext(ctx)
		require.True(t, ok)
		ids = append(ids, id)
		return nil, nil
	}).With(RequestID())

	_, err := h(context.Background(), req)
	require.NoError(t, err)
	_, err = h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])

	_, err = h(logx.ContextWithRequestID(context.Background(), "given"), req)
	require.NoError(t, err)
	assert.Equal(t, "given", ids[2])
}

func TestAppendRequestIDOnError(t *testing.T) {
	ctx := logx.ContextWithRequestID(context.Background(), "abc")

	t.Run("no responses", func(t *testing.T) {
		h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
			return nil, errors.New("failed")
		}).With(AppendRequestIDOnError())

		resps, err := h(ctx, req)
		assert.EqualError(t, err, "failed")
		assert.Equal(t, []botx.Response{{
			ChatID: "42",
			Text:   "Something went wrong, please try again later.\n\nRequest ID: `abc`",
		}}, resps)
	})

	t.Run("with responses", func(t *testing.T) {
		h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "partial"}}, errors.New("failed")
		}).With(AppendRequestIDOnError())

		resps, err := h(ctx, req)
		assert.Error(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "partial\n\nRequest ID: `abc`"}}, resps)
	})

	t.Run("no error", func(t *testing.T) {
		h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
			return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
		}).With(AppendRequestIDOnError())

		resps, err := h(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "ok"}}, resps)
	})
}

func TestRecover(t *testing.T) {
	h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("nil map")
	}).With(Recover(slog.New(logx.NoOp())))

	resps, err := h(context.Background(), req)
	assert.EqualError(t, err, "panic: nil map")
	assert.Nil(t, resps)
}

func TestTimeout(t *testing.T) {
	slow := botx.Handler(func(ctx context.Context, _ botx.Request) ([]botx.Response, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
			return []botx.Response{{Text: "late"}}, nil
		}
	})

	_, err := slow.With(Timeout(10*time.Millisecond))(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeout)

	fast := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{Text: "ok"}}, nil
	})

	resps, err := fast.With(Timeout(time.Second))(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{Text: "ok"}}, resps)
}

func TestLogger(t *testing.T) {
	h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
		return []botx.Response{{ChatID: "42", Text: "ok"}}, nil
	})

	for _, lvl := range []slog.Level{slog.LevelDebug, slog.LevelInfo} {
		lg := slog.New(slog.NewTextHandler(&nopWriter{}, &slog.HandlerOptions{Level: lvl}))
		resps, err := h.With(Logger(lg))(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, []botx.Response{{ChatID: "42", Text: "ok"}}, resps)
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestTimeout_PanicPropagated(t *testing.T) {
	h := botx.Handler(func(context.Context, botx.Request) ([]botx.Response, error) {
		panic("boom")
	}).With(Recover(slog.New(logx.NoOp())), Timeout(time.Second))

	_, err := h(context.Background(), req)
	assert.EqualError(t, err, "panic: boom")
}
