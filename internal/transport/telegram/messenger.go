package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	menuDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/domain"
	"github.com/samber/lo"
)

// Messenger is the subset of the Bot API the dispatcher talks to.
// *bot.Bot satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
}

// UpdateHandler consumes one inbound update.
type UpdateHandler func(ctx context.Context, update *models.Update)

func inlineKeyboard(view menuDomain.View) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: lo.Map(view.Keyboard, func(row []menuDomain.Button, _ int) []models.InlineKeyboardButton {
			return lo.Map(row, func(b menuDomain.Button, _ int) models.InlineKeyboardButton {
				return models.InlineKeyboardButton{
					Text:         b.Text,
					URL:          b.URL,
					CallbackData: b.CallbackData,
				}
			})
		}),
	}
}
