package revisor

import (
	"context"
	_ "embed"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Semior001/newsdesk/app/store"
	"github.com/Semior001/newsdesk/pkg/logx"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

//go:embed testdata/article.html
var articleHTML []byte

func articleServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	hits := &atomic.Int32{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/election" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, err := w.Write(articleHTML)
		require.NoError(t, err)
	}))
	t.Cleanup(ts.Close)
	return ts, hits
}

func TestService_Expand(t *testing.T) {
	ts, hits := articleServer(t)

	mock := &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			_ context.Context,
			req openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			assert.Contains(t, req.Messages[0].Content, "postal ballots")
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{Content: "- counting continues"},
				}},
			}, nil
		},
	}

	svc := NewService(slog.New(logx.NoOp()), http.Client{}, newTestChatGPT(mock),
		logx.LoggingRoundTripper(slog.New(logx.NoOp()), logx.RoundTripperOpts{Level: slog.LevelDebug}))

	a := store.Article{Title: "Election", URL: ts.URL + "/election"}
	res, err := svc.Expand(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, "Counting continues in the general election", res.Title)
	assert.Contains(t, res.Text, "Counting continued through the night")
	assert.Contains(t, res.Text, "postal ballots are added")
	assert.NotContains(t, res.Text, "Copyright Daily Example")
	assert.NotContains(t, res.Text, "\n\n\n")
	assert.Equal(t, "- counting continues", res.Summary)

	// page and summary are cached
	_, err = svc.Expand(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
	assert.Len(t, mock.CreateChatCompletionCalls(), 1)

	st := svc.CacheStat()
	assert.Equal(t, 1, st.Pages.Hits)
	assert.Equal(t, 1, st.Summaries.Hits)
}

func TestService_ExpandWithoutSummaries(t *testing.T) {
	ts, _ := articleServer(t)
	svc := NewService(slog.New(logx.NoOp()), http.Client{}, nil)

	res, err := svc.Expand(context.Background(), store.Article{URL: ts.URL + "/election"})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "Counting continued")
	assert.Empty(t, res.Summary)
}

func TestService_ExtractBadStatus(t *testing.T) {
	ts, _ := articleServer(t)
	svc := NewService(slog.New(logx.NoOp()), http.Client{}, nil)

	_, err := svc.Extract(context.Background(), ts.URL+"/missing")
	assert.ErrorContains(t, err, "bad status code: 404")

	_, err = svc.Expand(context.Background(), store.Article{URL: "http://127.0.0.1:1/unreachable"})
	assert.Error(t, err)
}

func TestExpansion_Fallbacks(t *testing.T) {
	a := store.Article{
		Title:       "Storm hits the coast",
		Author:      "J. Doe",
		Description: "Heavy rain is expected overnight.",
	}

	res := expansion(a, Extracted{SiteName: "Example News"})
	assert.Equal(t, Expansion{
		Title:    "Storm hits the coast",
		Author:   "J. Doe",
		SiteName: "Example News",
		Text:     "Heavy rain is expected overnight.",
	}, res)

	res = expansion(a, Extracted{Excerpt: "Rain warning issued."})
	assert.Equal(t, "Rain warning issued.", res.Text)

	res = expansion(a, Extracted{Title: "Storm", Author: "Desk", Text: "Full story."})
	assert.Equal(t, "Storm", res.Title)
	assert.Equal(t, "Desk", res.Author)
	assert.Equal(t, "Full story.", res.Text)
}

func TestSanitize(t *testing.T) {
	in := "  first line  \n\n\n\t\nsecond line\n   \n  third\n\n"
	assert.Equal(t, "first line\n\nsecond line\n\nthird", sanitize(in))
}
