// Package botmw provides middlewares for bot handler.
package botmw

import (
	"context"
	"fmt"
	"time"

	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Logger is a middleware that logs all requests
func Logger(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			start := time.Now()
			args := []any{
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username),
				slog.Bool("callback", req.CallbackID != ""),
			}

			debug := lg.Enabled(ctx, slog.LevelDebug)
			if debug {
				lg.DebugCtx(ctx, "request received", append(args, slog.String("command", req.Text))...)
			} else {
				lg.InfoCtx(ctx, "request received", append(args, slog.String("command", req.Command()))...)
			}

			res, err := next(ctx, req)

			if debug {
				lg.DebugCtx(ctx, "request processed",
					slog.Any("responses", res),
					slog.Duration("duration", time.Since(start)),
					slog.Any("err", err))
				return res, err
			}

			lg.InfoCtx(ctx, "request processed",
				slog.Any("responses", lo.Map(res, func(r botx.Response, _ int) botx.Response {
					return botx.Response{ChatID: r.ChatID}
				})),
				slog.Duration("duration", time.Since(start)),
				slog.Any("err", err),
			)

			return res, err
		}
	}
}

// Recover is a middleware that recovers from panics, the panic is
// returned as an error.
func Recover(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resp []botx.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					lg.ErrorCtx(ctx, "panic recovered", slog.Any("panic", r))
					resp, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}
