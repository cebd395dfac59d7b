package telegram

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot/models"
	menuService "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	startUpdate = `{"update_id":1,"message":{"message_id":10,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"/start source_landing"}}`
	showUpdate  = `{"update_id":2,"callback_query":{"id":"cb-1","from":{"id":7,"is_bot":false,"first_name":"Ann"},"chat_instance":"ci","data":"show_individual","message":{"message_id":11,"date":1700000001,"chat":{"id":42,"type":"private"},"text":"menu"}}}`
	backUpdate  = `{"update_id":3,"callback_query":{"id":"cb-2","from":{"id":7,"is_bot":false,"first_name":"Ann"},"chat_instance":"ci","data":"back_to_main","message":{"message_id":11,"date":1700000001,"chat":{"id":42,"type":"private"},"text":"list"}}}`
)

func keyboardOf(t *testing.T, markup any) *models.InlineKeyboardMarkup {
	t.Helper()
	kb, ok := markup.(*models.InlineKeyboardMarkup)
	require.True(t, ok, "reply markup is %T", markup)
	return kb
}

func flatten(kb *models.InlineKeyboardMarkup) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton
	for _, row := range kb.InlineKeyboard {
		buttons = append(buttons, row...)
	}
	return buttons
}

func TestHandleStart(t *testing.T) {
	h := newTestHandler("abc", "def", "ghi")
	m := &fakeMessenger{}

	h.HandleUpdate(context.Background(), m, decodeUpdate(t, startUpdate))

	require.Len(t, m.sent, 1)
	sent := m.sent[0]
	assert.Equal(t, int64(42), sent.ChatID)
	assert.Equal(t, menuService.MainMenuText, sent.Text)
	assert.Equal(t, models.ParseModeHTML, sent.ParseMode)

	buttons := flatten(keyboardOf(t, sent.ReplyMarkup))
	require.Len(t, buttons, 2)
	assert.Equal(t, "tg://join?invite=abc,def,ghi", buttons[0].URL)
	assert.Empty(t, buttons[0].CallbackData)
	assert.Equal(t, "show_individual", buttons[1].CallbackData)
	assert.Empty(t, buttons[1].URL)
}

func TestHandleStartFailure(t *testing.T) {
	h := newTestHandler("abc")
	m := &fakeMessenger{failSends: 1, sendErr: errors.New("connection reset")}

	h.HandleUpdate(context.Background(), m, decodeUpdate(t, startUpdate))

	require.Len(t, m.sent, 2)
	assert.Equal(t, GenericFailure, m.sent[1].Text)
	assert.Nil(t, m.sent[1].ReplyMarkup)
}

func TestHandleShowIndividual(t *testing.T) {
	h := newTestHandler("abc", "def", "ghi")
	m := &fakeMessenger{}

	h.HandleUpdate(context.Background(), m, decodeUpdate(t, showUpdate))

	assert.Equal(t, []string{"answerCallbackQuery", "editMessageText"}, m.calls)
	assert.Equal(t, "cb-1", m.answered[0].CallbackQueryID)

	edit := m.edited[0]
	assert.Equal(t, int64(42), edit.ChatID)
	assert.Equal(t, 11, edit.MessageID)
	assert.Equal(t, menuService.IndividualListText, edit.Text)

	buttons := flatten(keyboardOf(t, edit.ReplyMarkup))
	require.Len(t, buttons, 4)
	assert.Equal(t, "https://t.me/+abc", buttons[0].URL)
	assert.Equal(t, "https://t.me/+def", buttons[1].URL)
	assert.Equal(t, "https://t.me/+ghi", buttons[2].URL)
	assert.Equal(t, "back_to_main", buttons[3].CallbackData)
}

func TestMenuRoundTrip(t *testing.T) {
	h := newTestHandler("abc", "def")
	m := &fakeMessenger{}
	ctx := context.Background()

	h.HandleUpdate(ctx, m, decodeUpdate(t, startUpdate))
	h.HandleUpdate(ctx, m, decodeUpdate(t, showUpdate))
	h.HandleUpdate(ctx, m, decodeUpdate(t, backUpdate))

	require.Len(t, m.sent, 1)
	require.Len(t, m.edited, 2)

	original := m.sent[0]
	restored := m.edited[1]
	assert.Equal(t, original.Text, restored.Text)
	assert.Equal(t, original.ParseMode, restored.ParseMode)
	assert.Equal(t, keyboardOf(t, original.ReplyMarkup), keyboardOf(t, restored.ReplyMarkup))
}

func TestHandleCallbackEditTargets(t *testing.T) {
	t.Run("InaccessibleMessage", func(t *testing.T) {
		m := &fakeMessenger{}
		raw := `{"update_id":4,"callback_query":{"id":"cb-3","from":{"id":7,"is_bot":false,"first_name":"Ann"},"chat_instance":"ci","data":"show_individual","message":{"message_id":12,"date":0,"chat":{"id":99,"type":"private"}}}}`

		newTestHandler("abc").HandleUpdate(context.Background(), m, decodeUpdate(t, raw))

		require.Len(t, m.edited, 1)
		assert.Equal(t, int64(99), m.edited[0].ChatID)
		assert.Equal(t, 12, m.edited[0].MessageID)
	})

	t.Run("InlineMessage", func(t *testing.T) {
		m := &fakeMessenger{}
		raw := `{"update_id":5,"callback_query":{"id":"cb-4","from":{"id":7,"is_bot":false,"first_name":"Ann"},"chat_instance":"ci","inline_message_id":"inl-1","data":"back_to_main"}}`

		newTestHandler("abc").HandleUpdate(context.Background(), m, decodeUpdate(t, raw))

		require.Len(t, m.edited, 1)
		assert.Equal(t, "inl-1", m.edited[0].InlineMessageID)
		assert.Nil(t, m.edited[0].ChatID)
	})
}

func TestHandleIgnoredUpdates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "plain text",
			raw:  `{"update_id":6,"message":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hello"}}`,
		},
		{
			name: "other command",
			raw:  `{"update_id":7,"message":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"/help"}}`,
		},
		{
			name: "unknown callback",
			raw:  `{"update_id":8,"callback_query":{"id":"cb-5","from":{"id":7,"is_bot":false,"first_name":"Ann"},"chat_instance":"ci","data":"settings"}}`,
		},
		{
			name: "edited message only",
			raw:  `{"update_id":9,"edited_message":{"message_id":1,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"/start"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMessenger{}
			newTestHandler("abc").HandleUpdate(context.Background(), m, decodeUpdate(t, tt.raw))
			assert.Empty(t, m.calls)
		})
	}

	t.Run("nil update", func(t *testing.T) {
		m := &fakeMessenger{}
		newTestHandler("abc").HandleUpdate(context.Background(), m, nil)
		assert.Empty(t, m.calls)
	})
}

func TestHandleCallbackErrorsAreNotFatal(t *testing.T) {
	h := newTestHandler("abc")
	m := &fakeMessenger{
		answerErr: errors.New("query is too old"),
		editErr:   errors.New("message is not modified"),
	}

	assert.NotPanics(t, func() {
		h.HandleUpdate(context.Background(), m, decodeUpdate(t, showUpdate))
	})
	assert.Equal(t, []string{"answerCallbackQuery", "editMessageText"}, m.calls)
}
