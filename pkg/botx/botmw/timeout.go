package botmw

import (
	"context"
	"errors"
	"time"

	"github.com/Semior001/newsdesk/pkg/botx"
)

// ErrTimeout is returned by Timeout middleware when handler timed out.
var ErrTimeout = errors.New("timed out")

// Timeout sets the timeout for handler. The handler keeps running in
// background after the timeout, but its result is dropped. Panics of the
// handler are propagated to the caller while it waits.
func Timeout(dur time.Duration) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, dur)
			defer cancel()

			type result struct {
				resp  []botx.Response
				err   error
				panic any
			}

			done := make(chan result, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- result{panic: r}
					}
				}()

				resp, err := next(ctx, req)
				done <- result{resp: resp, err: err}
			}()

			select {
			case res := <-done:
				if res.panic != nil {
					panic(res.panic)
				}
				return res.resp, res.err
			case <-ctx.Done():
				return nil, ErrTimeout
			}
		}
	}
}
