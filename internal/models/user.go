package models

import "time"

// User identifies the author of cards and events. Authentication and
// session management live outside this service.
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Email     string `gorm:"size:256"`
	CreatedAt time.Time
}
