package botapi

import (
	"testing"

	"github.com/Semior001/newsdesk/pkg/botx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	msg, err := message(botx.Response{
		ChatID:           "42",
		ReplyToMessageID: "7",
		Text:             "*hello*",
		Buttons: [][]botx.Button{
			{{Text: "Read", Data: "/read 1"}, {Text: "Open", URL: "https://example.com"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, 7, msg.ReplyToMessageID)
	assert.Equal(t, "*hello*", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "Read", kb.InlineKeyboard[0][0].Text)
	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "/read 1", *kb.InlineKeyboard[0][0].CallbackData)
	require.NotNil(t, kb.InlineKeyboard[0][1].URL)
	assert.Equal(t, "https://example.com", *kb.InlineKeyboard[0][1].URL)
}

func TestMessage_BadIDs(t *testing.T) {
	_, err := message(botx.Response{ChatID: "chat"})
	assert.Error(t, err)

	_, err = message(botx.Response{ChatID: "1", ReplyToMessageID: "x"})
	assert.Error(t, err)

	msg, err := message(botx.Response{ChatID: "1", Text: "plain"})
	require.NoError(t, err)
	assert.Nil(t, msg.ReplyMarkup)
}
