package service

import (
	channelDomain "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/service"
	"github.com/reshetovitsme/channel-invite-bot/internal/modules/menu/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const (
	MainMenuText       = "<b>Instant Access</b>\n\nClick the button below to join all our private channels with <b>one click</b>."
	IndividualListText = "<b>Select a channel to join:</b>"

	JoinAllButtonText    = "🚀 JOIN ALL (1-CLICK)"
	IndividualButtonText = "🔗 Join Individually"
	BackButtonText       = "⬅️ Back"
)

// Service renders menu screens against the configured channels
type Service struct {
	channelService *channelService.Service
}

// New creates a new menu service
func New(channelService *channelService.Service) *Service {
	return &Service{channelService: channelService}
}

// Render renders a screen for the configured channels
func (s *Service) Render(screen domain.Screen) (domain.View, error) {
	return Render(screen, s.channelService.GetAllChannels())
}

// Render is a pure function of the screen and the channel list; equal inputs
// always give identical views.
func Render(screen domain.Screen, channels []channelDomain.Channel) (domain.View, error) {
	switch screen {
	case domain.ScreenMainMenu:
		return domain.View{
			Text: MainMenuText,
			Keyboard: [][]domain.Button{
				{{Text: JoinAllButtonText, URL: channelDomain.CombinedInviteLink(channels)}},
				{{Text: IndividualButtonText, CallbackData: domain.CallbackShowIndividual}},
			},
		}, nil
	case domain.ScreenIndividualList:
		rows := lo.Map(channels, func(c channelDomain.Channel, _ int) []domain.Button {
			return []domain.Button{{Text: c.Name, URL: c.InviteLink()}}
		})
		rows = append(rows, []domain.Button{{Text: BackButtonText, CallbackData: domain.CallbackBackToMain}})
		return domain.View{
			Text:     IndividualListText,
			Keyboard: rows,
		}, nil
	default:
		return domain.View{}, oops.With("screen", string(screen)).Wrap(domain.ErrInvalidScreen)
	}
}
