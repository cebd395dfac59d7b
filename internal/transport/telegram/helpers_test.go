package telegram

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	channelRepo "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/repository"
	channelService "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/service"
	menuService "github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/service"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/config"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(hashes ...string) *Handler {
	repo := channelRepo.NewStaticStorage(config.BuildChannels(hashes, nil))
	h := New(menuService.New(channelService.New(repo)))
	h.SetLogger(testLogger())
	return h
}

// decodeUpdate builds an update from its wire form.
func decodeUpdate(t *testing.T, raw string) *models.Update {
	t.Helper()
	var update models.Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))
	return &update
}

type fakeMessenger struct {
	mu        sync.Mutex
	calls     []string
	sent      []*bot.SendMessageParams
	edited    []*bot.EditMessageTextParams
	answered  []*bot.AnswerCallbackQueryParams
	failSends int
	sendErr   error
	editErr   error
	answerErr error
}

func (f *fakeMessenger) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "sendMessage")
	f.sent = append(f.sent, params)
	if f.failSends > 0 {
		f.failSends--
		return nil, f.sendErr
	}
	return &models.Message{}, nil
}

func (f *fakeMessenger) EditMessageText(_ context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "editMessageText")
	f.edited = append(f.edited, params)
	return &models.Message{}, f.editErr
}

func (f *fakeMessenger) AnswerCallbackQuery(_ context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "answerCallbackQuery")
	f.answered = append(f.answered, params)
	return f.answerErr == nil, f.answerErr
}
