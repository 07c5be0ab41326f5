// Package event appends and reads the immutable card audit log.
package event

import (
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// InsertCardEvent appends one audit record for a card state transition.
// For transitions that do not change column, pass the same id for both
// column arguments.
func InsertCardEvent(tx *gorm.DB, cardID, previousColumnID, columnID, userID uint,
	typ models.EventType, t time.Time, payload *string) (*models.Event, error) {

	e := models.Event{
		CardID:           cardID,
		PreviousColumnID: previousColumnID,
		BoardColumnID:    columnID,
		UserID:           userID,
		Type:             typ,
		Time:             t,
		ValueString:      payload,
	}
	if err := tx.Create(&e).Error; err != nil {
		return nil, fmt.Errorf("event: insert %s for card %d: %w", typ, cardID, err)
	}
	return &e, nil
}

// InsertCardEvents appends one record per card in a single batched insert,
// all sharing the same type and timestamp. Zero ids writes nothing.
func InsertCardEvents(tx *gorm.DB, cardIDs []uint, previousColumnID, columnID, userID uint,
	typ models.EventType, t time.Time, payload *string) ([]models.Event, error) {

	if len(cardIDs) == 0 {
		return nil, nil
	}
	events := make([]models.Event, 0, len(cardIDs))
	for _, id := range cardIDs {
		events = append(events, models.Event{
			CardID:           id,
			PreviousColumnID: previousColumnID,
			BoardColumnID:    columnID,
			UserID:           userID,
			Type:             typ,
			Time:             t,
			ValueString:      payload,
		})
	}
	if err := tx.Create(&events).Error; err != nil {
		return nil, fmt.Errorf("event: insert %d %s events: %w", len(cardIDs), typ, err)
	}
	return events, nil
}

// FindByCardID returns a card's events ordered by timestamp, ties broken by
// insertion order.
func FindByCardID(db *gorm.DB, cardID uint) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("card_id = ?", cardID).
		Order("time ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("event: events of card %d: %w", cardID, err)
	}
	return events, nil
}

// CountByTypeSince returns event counts per type in the half-open interval
// [since, until). Feeds activity digests.
func CountByTypeSince(db *gorm.DB, since, until time.Time) (map[models.EventType]int, error) {
	type row struct {
		Type  models.EventType
		Count int
	}
	var rows []row
	err := db.Model(&models.Event{}).
		Select("type, COUNT(*) AS count").
		Where("time >= ? AND time < ?", since, until).
		Group("type").
		Order("type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("event: count by type: %w", err)
	}
	counts := make(map[models.EventType]int, len(rows))
	for _, r := range rows {
		counts[r.Type] = r.Count
	}
	return counts, nil
}
