package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/app/tui"
	"golang.org/x/exp/slog"
)

// TUI is a command to run the terminal front end.
type TUI struct {
	CommonOpts
	Last bool `long:"last" description:"open the last viewed article"`
}

// Execute runs the command.
func (t TUI) Execute(_ []string) error {
	lg := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := t.build(ctx, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			lg.Error("failed to close store", slog.Any("err", err))
		}
	}()

	m := tui.New(ctx, tui.Deps{
		Log:       lg.With(slog.String("prefix", "tui")),
		Feed:      a.feed,
		Favorites: a.favorites,
		View:      a.view,
		Detail: detail.New(lg.With(slog.String("prefix", "detail")), a.store,
			a.detailOpts(detail.WithClipboard(detail.SystemClipboard{}))...),
	}, tui.Options{OpenLast: t.Last})

	lg.Info("starting tui")
	if err = tui.Run(ctx, m); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	lg.Info("tui stopped")

	return nil
}
