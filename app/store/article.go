package store

import "time"

// Article is a single headline record, as the headlines source returns it.
// URL is the natural key of an article.
type Article struct {
	Source      Source    `json:"source"`
	Author      string    `json:"author,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"urlToImage,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content,omitempty"`
}

// Source describes the publisher of the article.
type Source struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SameAs returns true if both articles point to the same URL.
func (a Article) SameAs(other Article) bool { return a.URL == other.URL }
