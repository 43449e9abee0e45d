package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/newsdesk/app/bot"
	"github.com/Semior001/newsdesk/app/detail"
	"github.com/Semior001/newsdesk/pkg/botx"
	"github.com/Semior001/newsdesk/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Bot is a command to run the telegram front end.
type Bot struct {
	CommonOpts

	Bot struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"2m" description:"timeout for requests"`
		Workers int           `long:"workers" env:"WORKERS" default:"4" description:"number of update handlers"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" required:"true" description:"telegram token"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

		OwnerIDs []string `long:"owner-ids" env:"OWNER_IDS" env-delim:"," required:"true" description:"chat IDs served by the bot"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`
}

// Execute runs the command.
func (b Bot) Execute(_ []string) error {
	lg := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := b.build(ctx, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.store.Close(); err != nil {
			lg.Error("failed to close store", slog.Any("err", err))
		}
	}()

	api, err := botapi.NewTelegram(lg.With(slog.String("prefix", "telegram")), b.Bot.Telegram.Token, 100)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:    lg.With(slog.String("prefix", "bot")),
		API:       api,
		Feed:      a.feed,
		Favorites: a.favorites,
		View:      a.view,
		Detail: detail.New(lg.With(slog.String("prefix", "detail")), a.store,
			a.detailOpts(detail.WithSharer(bot.ShareLink{}))...),
		OwnerIDs:       b.Bot.OwnerIDs,
		HandlerTimeout: b.Bot.Timeout,
	}
	if a.revisor != nil {
		ctrl.CacheStat = a.revisor.CacheStat
	}

	bx := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(b.Bot.Workers),
	)

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		lg.Info("starting telegram api")
		err := api.Run(ctx)
		lg.Warn("telegram api stopped listening for updates", slog.Any("err", err))
		return err
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		bx.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	if err = ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("bot stopped with error: %w", err)
	}

	return nil
}
