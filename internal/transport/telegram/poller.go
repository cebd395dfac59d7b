package telegram

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-telegram/bot/models"
	sharedErrors "github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	"github.com/samber/lo"
)

// UpdateSource fetches batches of updates starting at offset.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]*models.Update, error)
}

// Poller runs the sequential fetch -> dispatch -> advance loop.
// offset is owned by the goroutine calling Run and is never shared.
type Poller struct {
	source     UpdateSource
	handle     UpdateHandler
	logger     *slog.Logger
	timeout    time.Duration
	retryDelay time.Duration
	offset     int64
}

// NewPoller creates a long-polling loop
func NewPoller(source UpdateSource, handle UpdateHandler, timeout, retryDelay time.Duration) *Poller {
	return &Poller{
		source:     source,
		handle:     handle,
		logger:     slog.Default(),
		timeout:    timeout,
		retryDelay: retryDelay,
	}
}

// SetLogger sets the logger
func (p *Poller) SetLogger(logger *slog.Logger) {
	p.logger = logger
}

// Offset returns the id of the next update to request.
func (p *Poller) Offset() int64 {
	return p.offset
}

// Run polls until ctx is cancelled. Fetch errors are logged and retried
// after the fixed delay; they never stop the loop.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("Update poller started", "offset", p.offset, "timeout", p.timeout)

	for {
		if ctx.Err() != nil {
			p.logger.Info("Update poller stopped", "offset", p.offset)
			return
		}

		updates, err := p.source.GetUpdates(ctx, p.offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("Update poller stopped", "offset", p.offset)
				return
			}

			if errors.Is(err, sharedErrors.ErrUnauthorized) {
				p.logger.Error("Bot authorization failed", "error", err)
			} else {
				p.logger.Error("Failed to get updates", "offset", p.offset, "error", err)
			}

			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
			}
			continue
		}

		p.Process(ctx, updates)
	}
}

// Process dispatches a batch in order and then moves the cursor past the
// highest id seen. The cursor never moves backwards.
func (p *Poller) Process(ctx context.Context, updates []*models.Update) {
	updates = lo.Compact(updates)
	if len(updates) == 0 {
		return
	}

	for _, update := range updates {
		p.dispatch(ctx, update)
	}

	maxID := lo.Max(lo.Map(updates, func(u *models.Update, _ int) int64 {
		return u.ID
	}))
	if next := maxID + 1; next > p.offset {
		p.offset = next
	}

	p.logger.Debug("Batch processed", "count", len(updates), "offset", p.offset)
}

func (p *Poller) dispatch(ctx context.Context, update *models.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Update handler panicked", "update_id", update.ID, "panic", r)
		}
	}()

	p.handle(ctx, update)
}
