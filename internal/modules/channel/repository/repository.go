package repository

import (
	"github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
)

// Repository defines read access to the channel catalogue.
// Channels are static for the life of the process, so there is no write side.
type Repository interface {
	GetChannel(position int) (domain.Channel, error)
	GetAllChannels() []domain.Channel
	Count() int
}
