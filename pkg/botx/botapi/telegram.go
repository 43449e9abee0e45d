// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Semior001/newsdesk/pkg/botx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
)

// Telegram is a controller that handles requests from telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	updates chan botx.Request
}

// NewTelegram returns a new telegram bot controller.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	lg.Info("authorized in telegram", slog.String("bot", api.Self.UserName))

	return &Telegram{
		log:     lg,
		api:     api,
		updates: make(chan botx.Request, bufferSize),
	}, nil
}

// Run listens for updates until the context is done.
// Updates channel is closed on return.
func (b *Telegram) Run(ctx context.Context) error {
	defer close(b.updates)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram updates chan closed")
			}

			req, ok := b.request(ctx, update)
			if !ok {
				continue
			}

			select {
			case b.updates <- req:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (b *Telegram) request(ctx context.Context, update tgbotapi.Update) (botx.Request, bool) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		// the spinner on the button is stopped right away, the handler
		// replies with a message
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.log.WarnCtx(ctx, "failed to answer callback", slog.Any("err", err))
		}

		if cb.Message == nil || cb.Message.Chat == nil || cb.Data == "" {
			return botx.Request{}, false
		}

		return botx.Request{
			MessageID:  strconv.Itoa(cb.Message.MessageID),
			Chat:       chat(cb.Message.Chat),
			Text:       cb.Data,
			CallbackID: cb.ID,
		}, true
	case update.Message != nil && update.Message.Chat != nil && update.Message.Text != "":
		return botx.Request{
			MessageID: strconv.Itoa(update.Message.MessageID),
			Chat:      chat(update.Message.Chat),
			Text:      update.Message.Text,
		}, true
	default:
		return botx.Request{}, false
	}
}

func chat(c *tgbotapi.Chat) botx.Chat {
	return botx.Chat{ID: strconv.FormatInt(c.ID, 10), Username: c.UserName}
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SendMessage sends message to telegram user.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg, err := message(resp)
	if err != nil {
		return err
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func message(resp botx.Response) (tgbotapi.MessageConfig, error) {
	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return tgbotapi.MessageConfig{}, fmt.Errorf("parse chat id: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if resp.ReplyToMessageID != "" {
		if msg.ReplyToMessageID, err = strconv.Atoi(resp.ReplyToMessageID); err != nil {
			return tgbotapi.MessageConfig{}, fmt.Errorf("parse reply to message id: %w", err)
		}
	}

	if len(resp.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(resp.Buttons))
		for _, row := range resp.Buttons {
			btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, btn := range row {
				if btn.URL != "" {
					btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL))
					continue
				}
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
			}
			rows = append(rows, btns)
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	return msg, nil
}
