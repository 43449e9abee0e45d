package botmw

import (
	"context"
	"fmt"

	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RequestID is a middleware that puts a fresh request id to context,
// unless there is one already.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			if _, ok := logx.RequestIDFromContext(ctx); !ok {
				ctx = logx.ContextWithRequestID(ctx, uuid.NewString())
			}

			return next(ctx, req)
		}
	}
}

// AppendRequestIDOnError is a middleware that tells the requester about
// the failure, with the request id to look up in logs.
func AppendRequestIDOnError() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			resps, err := next(ctx, req)
			if err == nil {
				return resps, nil
			}

			reqID, _ := logx.RequestIDFromContext(ctx)
			footer := fmt.Sprintf("\n\nRequest ID: `%s`", reqID)

			for i := range resps {
				resps[i].Text += footer
			}

			if !lo.ContainsBy(resps, func(r botx.Response) bool { return r.ChatID == req.Chat.ID }) {
				resps = append(resps, botx.Response{
					ChatID: req.Chat.ID,
					Text:   "Something went wrong, please try again later." + footer,
				})
			}

			return resps, err
		}
	}
}
