package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	// InviteBaseURL prefixes a private invite hash to form a t.me link.
	InviteBaseURL = "https://t.me/+"
	// JoinDeepLink opens the client and joins every listed invite at once.
	JoinDeepLink = "tg://join?invite="
)

// Channel is a private channel the bot hands out invites for.
// Channels are loaded once from configuration and never mutated.
type Channel struct {
	Position int    `json:"position"`
	Hash     string `json:"hash"`
	Name     string `json:"name"`
}

// InviteLink returns the individual invite URL of the channel.
func (c Channel) InviteLink() string {
	return InviteBaseURL + c.Hash
}

// CombinedInviteLink joins all invite hashes into a single deep link.
func CombinedInviteLink(channels []Channel) string {
	hashes := lo.Map(channels, func(c Channel, _ int) string {
		return c.Hash
	})
	return JoinDeepLink + strings.Join(hashes, ",")
}

// DefaultName is used when no display name was configured for a position.
func DefaultName(position int) string {
	return fmt.Sprintf("Channel %d", position)
}
