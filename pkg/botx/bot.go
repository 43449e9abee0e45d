// Package botx provides interfaces and types to handle bot updates,
// with a chi-like router.
package botx

import (
	"context"
	"sync"

	"github.com/Semior001/newsdesk/pkg/logx"
	"golang.org/x/exp/slog"
)

// API defines methods for an API interface to receive and send chat messages.
type API interface {
	Updates() <-chan Request
	SendMessage(ctx context.Context, resp Response) error
}

// Bot defines parameters for running a bot over some API.
type Bot struct {
	h   Handler
	api API
	Options
}

// NewBot creates a new Bot.
func NewBot(h Handler, api API, opts ...Option) *Bot {
	options := Options{
		Workers: 1,
		Logger:  slog.New(logx.NoOp()),
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Bot{
		h:       h,
		api:     api,
		Options: options,
	}
}

// Run starts workers that handle updates, blocks until the context is
// done or the updates channel is closed. A worker finishes the update
// in progress before it stops.
func (b *Bot) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < max(b.Workers, 1); i++ {
		wg.Add(1)
		go func(lg *slog.Logger) {
			defer wg.Done()
			b.work(ctx, lg)
		}(b.Logger.With(slog.Int("worker", i)))
	}
	wg.Wait()
}

func (b *Bot) work(ctx context.Context, lg *slog.Logger) {
	lg.DebugCtx(ctx, "worker started")
	defer lg.DebugCtx(ctx, "worker stopped")

	updates := b.api.Updates()
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-updates:
			if !ok {
				return
			}
			b.serve(ctx, lg, req)
		}
	}
}

func (b *Bot) serve(ctx context.Context, lg *slog.Logger, req Request) {
	resps, err := b.h(ctx, req)
	if err != nil {
		lg.ErrorCtx(ctx, "handler failed",
			slog.String("chat_id", req.Chat.ID),
			slog.Any("err", err))
	}

	for _, resp := range resps {
		if err = b.api.SendMessage(ctx, resp); err != nil {
			lg.WarnCtx(ctx, "failed to send response",
				slog.String("chat_id", resp.ChatID),
				slog.Any("err", err))
		}
	}
}
