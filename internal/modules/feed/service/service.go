package service

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	channelDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/service"
	"github.com/samber/lo"
)

// Service builds a feed listing the channels and their invite links
type Service struct {
	channelService *channelService.Service
	botUsername    string
	created        time.Time
}

// New creates a new feed service. The catalogue is static, so the
// feed timestamp is fixed at construction.
func New(channelService *channelService.Service, botUsername string) *Service {
	return &Service{
		channelService: channelService,
		botUsername:    botUsername,
		created:        time.Now().UTC(),
	}
}

// GenerateFeed generates the channel directory feed
func (s *Service) GenerateFeed(baseURL string) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       "Private Channels",
		Link:        &feeds.Link{Href: fmt.Sprintf("https://t.me/%s", s.botUsername)},
		Description: "Invite links for our private channels",
		Author:      &feeds.Author{Name: "@" + s.botUsername},
		Created:     s.created,
		Updated:     s.created,
		Id:          baseURL + "/channels.rss",
	}

	channels := s.channelService.GetAllChannels()
	items := lo.Map(channels, func(c channelDomain.Channel, _ int) *feeds.Item {
		return s.channelToFeedItem(c)
	})

	if len(channels) > 0 {
		items = append([]*feeds.Item{{
			Title:       "Join all channels",
			Link:        &feeds.Link{Href: s.channelService.CombinedInviteLink()},
			Description: fmt.Sprintf("Join all %d channels with one click", len(channels)),
			Created:     s.created,
			Id:          "all",
		}}, items...)
	}

	feed.Items = items
	return feed
}

func (s *Service) channelToFeedItem(c channelDomain.Channel) *feeds.Item {
	return &feeds.Item{
		Title:       c.Name,
		Link:        &feeds.Link{Href: c.InviteLink()},
		Description: fmt.Sprintf("Invite link for %s", c.Name),
		Created:     s.created,
		Id:          fmt.Sprintf("channel-%d", c.Position),
	}
}
