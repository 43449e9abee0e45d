package news

import (
	"fmt"
	"net/http"

	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/time/rate"
)

// RateLimit makes requests wait for the limiter before they are sent.
// The free tier of the service allows only a small number of requests per day.
func RateLimit(l *rate.Limiter) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if err := l.Wait(req.Context()); err != nil {
				return nil, fmt.Errorf("wait for rate limiter: %w", err)
			}
			return next.RoundTrip(req)
		})
	}
}
