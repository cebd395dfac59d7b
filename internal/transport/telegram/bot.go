package telegram

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	channelDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/config"
	"github.com/samber/oops"
)

// BotAPI is the part of *bot.Bot used at startup.
type BotAPI interface {
	GetMe(ctx context.Context) (*models.User, error)
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
	DeleteWebhook(ctx context.Context, params *bot.DeleteWebhookParams) (bool, error)
}

// NewBot creates the outbound Bot API client. The token is not checked
// here so that a bad credential does not stop the process; see Authorize.
func NewBot(cfg *config.Config) (*bot.Bot, error) {
	timeout := cfg.RequestTimeoutDuration()

	b, err := bot.New(cfg.BotToken,
		bot.WithSkipGetMe(),
		bot.WithServerURL(cfg.TelegramAPIURL),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	)
	if err != nil {
		return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
	}
	return b, nil
}

// Authorize checks the credential with getMe. Failure is logged only.
func Authorize(ctx context.Context, api BotAPI, logger *slog.Logger) bool {
	me, err := api.GetMe(ctx)
	if err != nil {
		logger.Error("Bot authorization failed", "error", err)
		return false
	}
	logger.Info("Bot authorized", "username", me.Username, "id", me.ID)
	return true
}

// ConfigureDelivery registers the webhook in webhook mode and removes it in
// polling mode, since getUpdates is refused while a webhook is set.
func ConfigureDelivery(ctx context.Context, api BotAPI, cfg *config.Config, logger *slog.Logger) {
	switch cfg.DeliveryMode {
	case channelDomain.DeliveryModeWebhook:
		url := cfg.WebhookURL + WebhookPath
		if _, err := api.SetWebhook(ctx, &bot.SetWebhookParams{
			URL:            url,
			SecretToken:    cfg.WebhookSecret,
			AllowedUpdates: AllowedUpdates,
		}); err != nil {
			logger.Error("Failed to set webhook", "url", url, "error", err)
			return
		}
		logger.Info("Webhook registered", "url", url)
	default:
		if _, err := api.DeleteWebhook(ctx, &bot.DeleteWebhookParams{}); err != nil {
			logger.Error("Failed to delete webhook", "error", err)
			return
		}
		logger.Debug("Webhook cleared for long polling")
	}
}
