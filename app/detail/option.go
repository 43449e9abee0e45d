package detail

import "time"

// Options defines optional capabilities of the View.
type Options struct {
	Sharer    Sharer
	Clipboard Clipboard
	Expander  Expander
	Now       func() time.Time
}

// Option defines a function that configures View.
type Option func(*Options)

// WithSharer sets the platform share capability.
func WithSharer(s Sharer) Option {
	return func(o *Options) { o.Sharer = s }
}

// WithClipboard sets the clipboard used as a fallback for sharing.
func WithClipboard(c Clipboard) Option {
	return func(o *Options) { o.Clipboard = c }
}

// WithExpander sets the article expander.
func WithExpander(e Expander) Option {
	return func(o *Options) { o.Expander = e }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}
