package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackAdapter posts digests to a Slack channel via the Web API.
type SlackAdapter struct {
	client    slackClient
	channelID string
}

// SlackOpts holds parameters for creating a SlackAdapter.
type SlackOpts struct {
	Token     string // xoxb-... Slack bot token
	ChannelID string // channel to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a Slack digest adapter.
func NewSlack(opts SlackOpts) (*SlackAdapter, error) {
	if opts.Client == nil && opts.Token == "" {
		return nil, fmt.Errorf("notify: slack token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}
	a := &SlackAdapter{channelID: opts.ChannelID}
	if opts.Client != nil {
		a.client = opts.Client
	} else {
		a.client = slackapi.New(opts.Token)
	}
	return a, nil
}

// Name identifies the adapter in logs.
func (a *SlackAdapter) Name() string { return "slack" }

// Send posts the digest as an attachment with per-count fields.
func (a *SlackAdapter) Send(ctx context.Context, d *Digest) error {
	att := slackapi.Attachment{
		Title:    DigestTitle(d),
		Text:     FormatDigest(d),
		Color:    DigestColor(d),
		Fallback: DigestTitle(d),
	}
	for _, f := range DigestFields(d) {
		att.Fields = append(att.Fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: f.Short,
		})
	}

	_, _, err := a.client.PostMessageContext(ctx, a.channelID, slackapi.MsgOptionAttachments(att))
	if err != nil {
		return fmt.Errorf("notify: slack post: %w", err)
	}
	return nil
}
