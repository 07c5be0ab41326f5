package notify

import (
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/event"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// busiestLimit caps the number of cards listed in a digest.
const busiestLimit = 5

// BuildDigest summarizes event activity in [since, until). Returns nil when
// no events occurred, so quiet periods produce no message.
func BuildDigest(db *gorm.DB, since, until time.Time) (*Digest, error) {
	counts, err := event.CountByTypeSince(db, since, until)
	if err != nil {
		return nil, fmt.Errorf("notify: digest: %w", err)
	}

	d := &Digest{
		PeriodStart: since,
		PeriodEnd:   until,
		Created:     counts[models.EventCardCreate],
		Updated:     counts[models.EventCardUpdate],
		Moved:       counts[models.EventCardMove],
		Archived:    counts[models.EventCardArchive] + counts[models.EventCardBacklog],
	}
	for _, n := range counts {
		d.TotalEvents += n
	}
	if d.TotalEvents == 0 {
		return nil, nil
	}

	busiest, err := busiestCards(db, since, until)
	if err != nil {
		return nil, fmt.Errorf("notify: digest: %w", err)
	}
	d.BusiestCards = busiest
	return d, nil
}

// busiestCards returns the cards with the most events in the period,
// busiest first, ties broken by card id.
func busiestCards(db *gorm.DB, since, until time.Time) ([]CardActivity, error) {
	type row struct {
		CardID     uint
		CardName   string
		EventCount int
	}
	var rows []row
	err := db.Table("events").
		Select("events.card_id, cards.name AS card_name, COUNT(*) AS event_count").
		Joins("JOIN cards ON cards.id = events.card_id").
		Where("events.time >= ? AND events.time < ?", since, until).
		Group("events.card_id").
		Group("cards.name").
		Order("event_count DESC, events.card_id ASC").
		Limit(busiestLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make([]CardActivity, 0, len(rows))
	for _, r := range rows {
		res = append(res, CardActivity{CardID: r.CardID, CardName: r.CardName, EventCount: r.EventCount})
	}
	return res, nil
}
