package models

import "time"

// Label value types.
const (
	LabelTypeString = "STRING"
	LabelTypeUser   = "USER"
	LabelTypeDate   = "DATE"
	LabelTypeCard   = "CARD"
	LabelTypeList   = "LIST"
)

// CardLabel is a label definition scoped to a project.
type CardLabel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID uint   `gorm:"index;not null"`
	Name      string `gorm:"size:128;not null"`
	Type      string `gorm:"size:16;default:STRING"`
	Color     string `gorm:"size:16"`
}

// CardLabelValue attaches a label to a card with a typed value. Exactly one
// of the Value* fields is set, matching the label's type.
type CardLabelValue struct {
	ID          uint `gorm:"primaryKey;autoIncrement"`
	CardID      uint `gorm:"index;not null"`
	CardLabelID uint `gorm:"index;not null"`
	ValueString *string    `gorm:"size:256"`
	ValueUserID *uint
	ValueDate   *time.Time
	ValueCardID *uint
}

// LabelAndValue is the labels-query scan target: a label joined with one of
// its values on a card. Never persisted.
type LabelAndValue struct {
	CardID      uint   `json:"cardId"`
	CardLabelID uint   `json:"labelId"`
	LabelName   string `json:"labelName"`
	LabelType   string `json:"labelType"`
	LabelColor  string `json:"labelColor"`
	ValueString *string    `json:"valueString,omitempty"`
	ValueUserID *uint      `json:"valueUserId,omitempty"`
	ValueDate   *time.Time `json:"valueDate,omitempty"`
	ValueCardID *uint      `json:"valueCardId,omitempty"`
}
