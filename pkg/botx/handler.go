package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// With returns a new handler with middleware applied.
func (h Handler) With(mws ...Middleware) Handler {
	base := h
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// Request is a request for handler.
type Request struct {
	MessageID string
	Chat      Chat
	Text      string
	// CallbackID is set when the request is a press of an inline button,
	// Text holds the button data then.
	CallbackID string
}

// Command returns the command of the request without the bot mention,
// e.g. "/read" for "/read@newsdesk_bot 3". Empty if the text is not a command.
func (r Request) Command() string {
	if !strings.HasPrefix(r.Text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(strings.Fields(r.Text)[0], "@")
	return cmd
}

// Args returns the text after the command.
func (r Request) Args() string {
	if r.Command() == "" {
		return strings.TrimSpace(r.Text)
	}
	text := strings.TrimSpace(r.Text)
	return strings.TrimSpace(strings.TrimPrefix(text, strings.Fields(text)[0]))
}

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// Response is a response from handler.
type Response struct {
	ReplyToMessageID string
	ChatID           string
	Text             string
	// Buttons are rendered as an inline keyboard, row by row.
	Buttons [][]Button
}

// Button is an inline button. Exactly one of Data or URL is expected.
type Button struct {
	Text string
	Data string
	URL  string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
