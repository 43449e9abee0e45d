package botx

import "golang.org/x/exp/slog"

// Options are the parameters of a Bot.
type Options struct {
	// Workers is the number of updates handled concurrently, at least one.
	Workers int
	Logger  *slog.Logger
}

// Option modifies Options.
type Option func(*Options)

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// WithLogger sets the bot logger.
func WithLogger(lg *slog.Logger) Option { return func(o *Options) { o.Logger = lg } }
