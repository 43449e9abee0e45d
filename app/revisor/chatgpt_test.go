package revisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Semior001/newsdesk/pkg/logx"
	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newTestChatGPT(cl OpenAIClient) *ChatGPT {
	return &ChatGPT{
		log:       slog.New(logx.NoOp()),
		cl:        cl,
		maxTokens: 1000,
		cache:     cache.NewCache[string, string]().WithLRU().WithMaxKeys(10),
	}
}

func TestChatGPT_Summarize(t *testing.T) {
	mock := &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			_ context.Context,
			req openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			assert.Equal(t, openai.GPT3Dot5Turbo, req.Model)
			assert.Equal(t, 1000, req.MaxTokens)
			require.Len(t, req.Messages, 1)
			assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
			assert.Contains(t, req.Messages[0].Content, "Title: Counting continues")
			assert.Contains(t, req.Messages[0].Content, "Author: Jane Doe")
			assert.Contains(t, req.Messages[0].Content, "Turnout was high.")

			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{Content: "  - turnout was high\n"},
				}},
			}, nil
		},
	}
	cl := newTestChatGPT(mock)

	in := Summary{
		URL:    "https://example.com/election",
		Title:  "Counting continues",
		Author: "Jane Doe",
		Text:   "Turnout was high.",
	}

	resp, err := cl.Summarize(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "- turnout was high", resp)

	// cached by url
	resp, err = cl.Summarize(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "- turnout was high", resp)
	assert.Len(t, mock.CreateChatCompletionCalls(), 1)
	assert.Equal(t, 1, cl.CacheStat().Hits)
}

func TestChatGPT_SummarizeWithoutAuthor(t *testing.T) {
	mock := &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			_ context.Context,
			req openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			assert.NotContains(t, req.Messages[0].Content, "Author:")
			return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{}}}, nil
		},
	}

	_, err := newTestChatGPT(mock).Summarize(context.Background(), Summary{URL: "u", Title: "t", Text: "x"})
	require.NoError(t, err)
}

func TestChatGPT_SummarizeErrors(t *testing.T) {
	t.Run("too many tokens", func(t *testing.T) {
		mock := &OpenAIClientMock{}
		text := strings.Repeat("word ", maxRequestTokens+1)

		_, err := newTestChatGPT(mock).Summarize(context.Background(), Summary{URL: "u", Text: text})
		assert.ErrorIs(t, err, ErrTooManyTokens)
		assert.Empty(t, mock.CreateChatCompletionCalls())
	})

	t.Run("request failed", func(t *testing.T) {
		mock := &OpenAIClientMock{
			CreateChatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, errors.New("quota exceeded")
			},
		}
		cl := newTestChatGPT(mock)

		_, err := cl.Summarize(context.Background(), Summary{URL: "u", Text: "x"})
		assert.ErrorContains(t, err, "quota exceeded")
		assert.Equal(t, 0, cl.cache.Len(), "failures are not cached")
	})

	t.Run("no choices", func(t *testing.T) {
		mock := &OpenAIClientMock{
			CreateChatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		}

		_, err := newTestChatGPT(mock).Summarize(context.Background(), Summary{URL: "u", Text: "x"})
		assert.Error(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		cl := NewChatGPT(slog.New(logx.NoOp()), nil, "", 1000)
		assert.Nil(t, cl)

		_, err := cl.Summarize(context.Background(), Summary{URL: "u", Text: "x"})
		assert.ErrorIs(t, err, ErrDisabled)
		assert.Equal(t, cache.Stats{}, cl.CacheStat())
	})
}
