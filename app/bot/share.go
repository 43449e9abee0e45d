package bot

import (
	"context"
	"errors"
	"net/url"

	"github.com/Semior001/newsdesk/app/detail"
)

// ShareLink is a share capability of telegram: a link that lets the user
// pick a chat to forward the article to.
type ShareLink struct{}

// Share returns the share link.
func (ShareLink) Share(_ context.Context, d detail.ShareData) (string, error) {
	if d.URL == "" {
		return "", errors.New("article has no link")
	}

	text := d.Title
	if d.Text != "" {
		text += "\n\n" + d.Text
	}

	v := url.Values{}
	v.Set("url", d.URL)
	v.Set("text", text)
	return "https://t.me/share/url?" + v.Encode(), nil
}
