package revisor

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Extracted is the readable part of an article page.
type Extracted struct {
	Title    string
	Author   string
	SiteName string
	Excerpt  string
	Image    string
	Text     string
}

// Extractor extracts the readable text from an HTML page.
type Extractor struct{}

// Extract parses the page. The url is used to resolve relative links.
func (Extractor) Extract(r io.Reader, u *url.URL) (Extracted, error) {
	article, err := readability.FromReader(r, u)
	if err != nil {
		return Extracted{}, fmt.Errorf("parse page: %w", err)
	}

	return Extracted{
		Title:    strings.TrimSpace(article.Title),
		Author:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Image:    article.Image,
		Text:     sanitize(article.TextContent),
	}, nil
}

// sanitize trims every line and collapses runs of blank lines into a
// single paragraph break.
func sanitize(s string) string {
	lines := strings.Split(s, "\n")
	res := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(res) > 0 {
				res = append(res, "")
			}
			blank = true
			continue
		}
		blank = false
		res = append(res, line)
	}
	return strings.TrimSpace(strings.Join(res, "\n"))
}
