package models

import "time"

// Card is the core work item in Corkboard. SortOrder establishes its
// position among siblings in the same column: values are comparable and
// unique per column, not necessarily contiguous.
type Card struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:256;not null"`
	BoardColumnID uint   `gorm:"index;not null"`
	SortOrder     int    `gorm:"not null"`
	UserID        uint   `gorm:"index;not null"`
	CreatedAt     time.Time

	Column *BoardColumn `gorm:"foreignKey:BoardColumnID"`
	Data   []CardData   `gorm:"foreignKey:CardID"`
}

// Card data types, counted per card in the aggregated read view.
const (
	DataTypeComment    = "COMMENT"
	DataTypeAttachment = "ATTACHMENT"
	DataTypeActionList = "ACTION_LIST"
)

// CardData is a single data item attached to a card (a comment, an
// attachment, an action-list entry). The read view only consumes the
// per-type counts of these rows.
type CardData struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CardID    uint   `gorm:"index;not null"`
	Type      string `gorm:"size:32;not null"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}

// CardFull is a card row joined with the board/project context needed for
// display without further queries. Built by the card store's join queries,
// never persisted.
type CardFull struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	BoardColumnID uint      `json:"columnId"`
	SortOrder     int       `json:"order"`
	UserID        uint      `json:"userId"`
	CreatedAt     time.Time `json:"creationDate"`

	Username         string `json:"username"`
	BoardShortName   string `json:"boardShortName"`
	ProjectShortName string `json:"projectShortName"`
	ColumnDefinition string `json:"columnDefinition"`
}

// CardDataCount is a per-card, per-type count of data items. Scan target
// for the grouped counts query, never persisted.
type CardDataCount struct {
	CardID uint   `json:"cardId"`
	Type   string `json:"type"`
	Count  int64  `json:"count"`
}
