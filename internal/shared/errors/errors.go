package errors

import "errors"

var (
	ErrMissingBotToken   = errors.New("BOT_TOKEN environment variable is required")
	ErrMissingWebhookURL = errors.New("WEBHOOK_URL is required when DELIVERY_MODE is webhook")
	ErrUnauthorized      = errors.New("bot token rejected by telegram")
	ErrChannelNotFound   = errors.New("channel not found")
	ErrAPIResponse       = errors.New("telegram api returned ok=false")
)
