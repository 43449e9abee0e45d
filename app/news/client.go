// Package news contains a client for the top-headlines endpoint of a
// newsapi.org compatible service.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Semior001/newsdesk/app/store"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// DefaultBaseURL is the address of the public newsapi.org service.
const DefaultBaseURL = "https://newsapi.org"

// APIKeyHeader is the header that carries the access credential.
const APIKeyHeader = "X-Api-Key"

// ErrNoAPIKey is returned when the client has no credential configured.
// No request is made in this case.
var ErrNoAPIKey = errors.New("api key is missing")

// ErrTransport is returned when the request failed on the way or the
// response could not be decoded.
var ErrTransport = errors.New("transport failure")

// APIError is a failure reported by the remote service itself.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("remote error %s (http %d): %s", e.Code, e.StatusCode, e.Message)
}

//go:generate moq -out mock_source.go . Source

// Source fetches pages of headlines.
type Source interface {
	TopHeadlines(ctx context.Context, q Query) (Page, error)
}

// Query describes a single page request.
type Query struct {
	Country  string
	Category string
	Text     string
	PageSize int
	Page     int
}

// Values returns url parameters of the query, empty filters are omitted.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// Page is a successful response of the headlines endpoint.
type Page struct {
	TotalResults int
	Articles     []store.Article
}

// Client makes requests to the headlines endpoint.
type Client struct {
	log     *slog.Logger
	rq      *requester.Requester
	baseURL string
	apiKey  string
}

// NewClient makes a new Client. Middlewares are applied to every outgoing request.
func NewClient(lg *slog.Logger, cl http.Client, baseURL, apiKey string, mws ...middleware.RoundTripperHandler) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rqMws := make([]middleware.RoundTripperHandler, 0, len(mws)+1)
	rqMws = append(rqMws, mws...)
	rqMws = append(rqMws, middleware.Header(APIKeyHeader, apiKey))

	return &Client{
		log:     lg,
		rq:      requester.New(cl, rqMws...),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type response struct {
	Status       string          `json:"status"`
	Code         string          `json:"code"`
	Message      string          `json:"message"`
	TotalResults int             `json:"totalResults"`
	Articles     []store.Article `json:"articles"`
}

// TopHeadlines requests a single page of headlines.
func (c *Client) TopHeadlines(ctx context.Context, q Query) (Page, error) {
	if c.apiKey == "" {
		return Page{}, ErrNoAPIKey
	}

	u := c.baseURL + "/v2/top-headlines?" + q.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.rq.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("%w: do request: %v", ErrTransport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	// the service reports failures in the body for non-2xx responses as well
	var r response
	if err = json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Page{}, fmt.Errorf("%w: decode response with status %d: %v", ErrTransport, resp.StatusCode, err)
	}

	if r.Status != "ok" {
		return Page{}, &APIError{StatusCode: resp.StatusCode, Code: r.Code, Message: r.Message}
	}

	c.log.DebugCtx(ctx, "headlines received",
		slog.Int("page", q.Page),
		slog.Int("articles", len(r.Articles)),
		slog.Int("total", r.TotalResults))

	return Page{TotalResults: r.TotalResults, Articles: r.Articles}, nil
}
