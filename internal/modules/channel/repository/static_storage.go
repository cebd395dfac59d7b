package repository

import (
	"slices"

	"github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// StaticStorage implements Repository over channels loaded once at startup.
// It is never mutated after construction and is safe for concurrent reads.
type StaticStorage struct {
	channels []domain.Channel
}

// NewStaticStorage copies the given channels into a read-only repository.
func NewStaticStorage(channels []domain.Channel) Repository {
	return &StaticStorage{channels: slices.Clone(channels)}
}

func (s *StaticStorage) GetChannel(position int) (domain.Channel, error) {
	channel, found := lo.Find(s.channels, func(c domain.Channel) bool {
		return c.Position == position
	})
	if !found {
		return domain.Channel{}, oops.With("position", position).Wrap(errors.ErrChannelNotFound)
	}
	return channel, nil
}

func (s *StaticStorage) GetAllChannels() []domain.Channel {
	return slices.Clone(s.channels)
}

func (s *StaticStorage) Count() int {
	return len(s.channels)
}
