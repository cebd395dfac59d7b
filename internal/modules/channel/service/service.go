package service

import (
	"log/slog"

	"github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/repository"
	"github.com/samber/oops"
)

// Service exposes the channel catalogue and the invite links built from it
type Service struct {
	repo channelRepo.Repository
}

// New creates a new channel service
func New(repo channelRepo.Repository) *Service {
	if repo.Count() == 0 {
		slog.Warn("No channels configured, invite menus will be empty")
	}
	return &Service{repo: repo}
}

// GetAllChannels returns channels in configured order
func (s *Service) GetAllChannels() []domain.Channel {
	return s.repo.GetAllChannels()
}

// Count returns the number of configured channels
func (s *Service) Count() int {
	return s.repo.Count()
}

// CombinedInviteLink returns the one-click deep link joining every channel
func (s *Service) CombinedInviteLink() string {
	return domain.CombinedInviteLink(s.repo.GetAllChannels())
}

// InviteLink returns the individual invite link of the channel at position
func (s *Service) InviteLink(position int) (string, error) {
	channel, err := s.repo.GetChannel(position)
	if err != nil {
		return "", oops.With("context", "failed to build invite link").Wrap(err)
	}
	return channel.InviteLink(), nil
}
