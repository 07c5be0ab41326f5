package models

import "time"

// EventType is the closed set of card state transitions. New transition
// kinds extend this set rather than branching on ad-hoc strings.
type EventType string

const (
	EventCardCreate  EventType = "CARD_CREATE"
	EventCardUpdate  EventType = "CARD_UPDATE"
	EventCardMove    EventType = "CARD_MOVE"
	EventCardArchive EventType = "CARD_ARCHIVE"
	EventCardBacklog EventType = "CARD_BACKLOG"
)

// Event is the immutable audit record of a card state transition. Rows are
// append-only: never updated, never deleted. Ordering among events for a
// card is by Time, ties broken by insertion order (ID).
type Event struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CardID           uint      `gorm:"index;not null" json:"cardId"`
	PreviousColumnID uint      `gorm:"not null" json:"previousColumnId"`
	BoardColumnID    uint      `gorm:"not null" json:"columnId"`
	UserID           uint      `gorm:"index;not null" json:"userId"`
	Type             EventType `gorm:"size:32;index" json:"type"`
	Time             time.Time `gorm:"index" json:"time"`
	ValueString      *string   `gorm:"size:256" json:"valueString,omitempty"`
}
