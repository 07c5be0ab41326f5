package notify

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks. Digest delivery is REST-only, no Gateway connection needed.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAdapter posts digests to a Discord channel via the REST API.
type DiscordAdapter struct {
	sess      discordSession
	channelID string
}

// DiscordOpts holds parameters for creating a DiscordAdapter.
type DiscordOpts struct {
	Token     string // Discord bot token
	ChannelID string // channel to post to
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a Discord digest adapter.
func NewDiscord(opts DiscordOpts) (*DiscordAdapter, error) {
	if opts.Session == nil && opts.Token == "" {
		return nil, fmt.Errorf("notify: discord token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: discord channel is required")
	}
	a := &DiscordAdapter{channelID: opts.ChannelID}
	if opts.Session != nil {
		a.sess = opts.Session
	} else {
		dg, err := discordgo.New("Bot " + opts.Token)
		if err != nil {
			return nil, fmt.Errorf("notify: discord session: %w", err)
		}
		a.sess = dg
	}
	return a, nil
}

// Name identifies the adapter in logs.
func (a *DiscordAdapter) Name() string { return "discord" }

// Send posts the digest as an embed with per-count fields.
func (a *DiscordAdapter) Send(ctx context.Context, d *Digest) error {
	embed := &discordgo.MessageEmbed{
		Title:       DigestTitle(d),
		Description: FormatDigest(d),
		Color:       parseHexColor(DigestColor(d)),
	}
	for _, f := range DigestFields(d) {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Short,
		})
	}

	_, err := a.sess.ChannelMessageSendEmbed(a.channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("notify: discord post: %w", err)
	}
	return nil
}

// parseHexColor converts a hex color string (e.g. "#36a64f") to an int.
func parseHexColor(hex string) int {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	var color int
	for _, c := range hex {
		color <<= 4
		switch {
		case c >= '0' && c <= '9':
			color |= int(c - '0')
		case c >= 'a' && c <= 'f':
			color |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			color |= int(c-'A') + 10
		}
	}
	return color
}
