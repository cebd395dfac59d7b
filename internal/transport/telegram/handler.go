package telegram

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	menuDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/domain"
	menuService "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/service"
	"github.com/samber/oops"
)

const (
	// StartCommand opens the main menu; a deep-link payload may follow it.
	StartCommand = "/start"
	// GenericFailure is sent when the main menu could not be delivered.
	GenericFailure = "Something went wrong. Please try again later."
)

// Handler routes updates to menu screens
type Handler struct {
	menuService *menuService.Service
	logger      *slog.Logger
}

// New creates a new Telegram handler
func New(menuService *menuService.Service) *Handler {
	return &Handler{
		menuService: menuService,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (h *Handler) SetLogger(logger *slog.Logger) {
	h.logger = logger
}

// Bind returns an UpdateHandler that replies through m
func (h *Handler) Bind(m Messenger) UpdateHandler {
	return func(ctx context.Context, update *models.Update) {
		h.HandleUpdate(ctx, m, update)
	}
}

// HandleUpdate dispatches a single update. It never fails: network errors
// are logged and anything it does not recognise is ignored.
func (h *Handler) HandleUpdate(ctx context.Context, m Messenger, update *models.Update) {
	if update == nil {
		return
	}

	switch {
	case update.Message != nil:
		if strings.HasPrefix(update.Message.Text, StartCommand) {
			h.handleStart(ctx, m, update.Message)
		}
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, m, update.CallbackQuery)
	}
}

func (h *Handler) handleStart(ctx context.Context, m Messenger, msg *models.Message) {
	chatID := msg.Chat.ID

	view, err := h.menuService.Render(menuDomain.ScreenMainMenu)
	if err == nil {
		_, err = m.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        view.Text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: inlineKeyboard(view),
		})
	}
	if err == nil {
		h.logger.Info("Main menu sent", "chat_id", chatID)
		return
	}

	h.logger.Error("Failed to send main menu", "error", oops.With("chat_id", chatID).Wrap(err))

	if _, err := m.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   GenericFailure,
	}); err != nil {
		h.logger.Error("Failed to send failure notice", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) handleCallback(ctx context.Context, m Messenger, query *models.CallbackQuery) {
	screen, ok := menuDomain.ScreenForCallback(query.Data)
	if !ok {
		h.logger.Debug("Ignoring callback", "data", query.Data)
		return
	}

	if _, err := m.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	}); err != nil {
		h.logger.Error("Failed to answer callback query", "callback_id", query.ID, "error", err)
	}

	view, err := h.menuService.Render(screen)
	if err != nil {
		h.logger.Error("Failed to render screen", "screen", screen, "error", err)
		return
	}

	params := &bot.EditMessageTextParams{
		Text:        view.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: inlineKeyboard(view),
	}

	switch {
	case query.Message.Message != nil:
		params.ChatID = query.Message.Message.Chat.ID
		params.MessageID = query.Message.Message.ID
	case query.Message.InaccessibleMessage != nil:
		params.ChatID = query.Message.InaccessibleMessage.Chat.ID
		params.MessageID = query.Message.InaccessibleMessage.MessageID
	case query.InlineMessageID != "":
		params.InlineMessageID = query.InlineMessageID
	default:
		h.logger.Warn("Callback without a message to edit", "callback_id", query.ID)
		return
	}

	if _, err := m.EditMessageText(ctx, params); err != nil {
		h.logger.Error("Failed to edit menu", "error", oops.
			With("screen", screen.String(), "chat_id", params.ChatID, "message_id", params.MessageID).
			Wrap(err))
		return
	}

	h.logger.Info("Menu switched", "screen", screen, "chat_id", params.ChatID)
}
