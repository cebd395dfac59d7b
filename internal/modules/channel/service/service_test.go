package service

import (
	"testing"

	"github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/channel-invite-bot/internal/modules/channel/repository"
	"github.com/reshetovitsme/channel-invite-bot/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := New(channelRepo.NewStaticStorage([]domain.Channel{
		{Position: 1, Hash: "abc", Name: "Channel 1"},
		{Position: 2, Hash: "def", Name: "Channel 2"},
	}))

	assert.Equal(t, 2, svc.Count())
	assert.Equal(t, "tg://join?invite=abc,def", svc.CombinedInviteLink())

	link, err := svc.InviteLink(2)
	require.NoError(t, err)
	assert.Equal(t, "https://t.me/+def", link)

	_, err = svc.InviteLink(5)
	assert.ErrorIs(t, err, errors.ErrChannelNotFound)
}

func TestServiceEmpty(t *testing.T) {
	svc := New(channelRepo.NewStaticStorage(nil))

	assert.Zero(t, svc.Count())
	assert.Empty(t, svc.GetAllChannels())
	assert.Equal(t, "tg://join?invite=", svc.CombinedInviteLink())
}
