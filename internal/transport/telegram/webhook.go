package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-telegram/bot/models"
)

const (
	// WebhookPath is where pushed updates are served and registered.
	WebhookPath = "/webhook"
	// SecretTokenHeader carries the secret given to setWebhook.
	SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

	maxWebhookBodySize = 1 << 20
)

// Webhook accepts pushed updates and dispatches each one synchronously.
// It does not retry; Telegram redelivers on a non-2xx status.
type Webhook struct {
	secret string
	handle UpdateHandler
	logger *slog.Logger
}

// NewWebhook creates a webhook endpoint. An empty secret disables header verification.
func NewWebhook(secret string, handle UpdateHandler) *Webhook {
	return &Webhook{
		secret: secret,
		handle: handle,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (wh *Webhook) SetLogger(logger *slog.Logger) {
	wh.logger = logger
}

func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeStatus(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if wh.secret != "" {
		got := r.Header.Get(SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(wh.secret)) != 1 {
			wh.logger.Warn("Webhook secret mismatch", "remote_addr", r.RemoteAddr)
			writeStatus(w, http.StatusUnauthorized, "invalid secret token")
			return
		}
	}

	var update models.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWebhookBodySize)).Decode(&update); err != nil {
		wh.logger.Warn("Malformed webhook payload", "error", err)
		writeStatus(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	// finish the reply even if Telegram hangs up early
	wh.handle(context.WithoutCancel(r.Context()), &update)

	writeStatus(w, http.StatusOK, "")
}

func writeStatus(w http.ResponseWriter, status int, errMsg string) {
	body := map[string]string{"status": "ok"}
	if errMsg != "" {
		body = map[string]string{"status": "error", "error": errMsg}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
