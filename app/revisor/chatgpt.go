package revisor

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

//go:embed data/prompt.tmpl
var prompt string

var promptTmpl = template.Must(template.New("prompt").Parse(prompt))

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is interface for OpenAI client with the possibility to mock it
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// maxRequestTokens is a maximum number of tokens that can be sent to OpenAI.
const maxRequestTokens = 4097

// ErrTooManyTokens is returned when article is too long.
var ErrTooManyTokens = errors.New("too many tokens")

// ErrDisabled is returned when summaries are not configured.
var ErrDisabled = errors.New("summaries are disabled")

// ChatGPT makes bullet point summaries of articles.
type ChatGPT struct {
	log       *slog.Logger
	cl        OpenAIClient
	maxTokens int
	cache     cache.Cache[string, string]
}

// NewChatGPT makes new ChatGPT client. Returns nil if the token is empty,
// nil ChatGPT responds with ErrDisabled.
func NewChatGPT(lg *slog.Logger, cl *http.Client, token string, maxTokens int) *ChatGPT {
	if token == "" {
		return nil
	}

	config := openai.DefaultConfig(token)
	config.HTTPClient = cl

	return &ChatGPT{
		log:       lg,
		cl:        &loggingClient{log: lg, cl: openai.NewClientWithConfig(config)},
		maxTokens: maxTokens,
		cache:     cache.NewCache[string, string]().WithLRU().WithMaxKeys(100),
	}
}

// Summary is a material to summarize.
type Summary struct {
	URL    string
	Title  string
	Author string
	Text   string
}

// Summarize returns bullet points of the text, cached by url.
func (s *ChatGPT) Summarize(ctx context.Context, in Summary) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}

	if resp, ok := s.cache.Get(in.URL); ok {
		return resp, nil
	}

	buf := &strings.Builder{}
	if err := promptTmpl.Execute(buf, in); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	if tokens := len(strings.Fields(buf.String())); tokens > maxRequestTokens {
		s.log.DebugCtx(ctx, "article is too long to summarize",
			slog.String("url", in.URL), slog.Int("tokens", tokens))
		return "", ErrTooManyTokens
	}

	resp, err := s.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT3Dot5Turbo,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buf.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.cache.Set(in.URL, result, 0)
	return result, nil
}

// CacheStat returns stats of the summaries cache.
func (s *ChatGPT) CacheStat() cache.Stats {
	if s == nil {
		return cache.Stats{}
	}
	return s.cache.Stat()
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to chatGPT", slog.Int("max_tokens", req.MaxTokens))
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		l.log.WarnCtx(ctx, "chatGPT request failed", slog.Any("err", err))
		return resp, err
	}
	l.log.DebugCtx(ctx, "response received from chatGPT", slog.Int("total_tokens", resp.Usage.TotalTokens))
	return resp, nil
}
