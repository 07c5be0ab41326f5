// Package notify delivers card activity digests to chat platforms.
package notify

import (
	"context"
	"time"
)

// Adapter is the interface that platform-specific implementations must
// satisfy. Each adapter delivers a formatted digest to a single platform
// channel.
type Adapter interface {
	// Name identifies the platform, e.g. "slack" or "discord".
	Name() string

	// Send delivers one digest message.
	Send(ctx context.Context, d *Digest) error
}

// CardActivity names a card together with its event count in the digest
// period.
type CardActivity struct {
	CardID     uint
	CardName   string
	EventCount int
}

// Digest summarizes card activity over a period.
type Digest struct {
	PeriodStart time.Time
	PeriodEnd   time.Time

	Created  int
	Updated  int
	Moved    int
	Archived int

	TotalEvents  int
	BusiestCards []CardActivity
}
