package models

// Project is the top-level grouping for boards.
type Project struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ShortName string `gorm:"size:64;uniqueIndex;not null"`
	Name      string `gorm:"size:256;not null"`
}

// Board is a named collection of columns within a project.
type Board struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID uint   `gorm:"index;not null"`
	ShortName string `gorm:"size:64;uniqueIndex;not null"`
	Name      string `gorm:"size:256;not null"`

	Project *Project     `gorm:"foreignKey:ProjectID"`
	Columns []BoardColumn `gorm:"foreignKey:BoardID"`
}

// Column definitions. A card is "open" when it sits in a column whose
// definition is DefinitionOpen.
const (
	DefinitionOpen    = "open"
	DefinitionClosed  = "closed"
	DefinitionBacklog = "backlog"
	DefinitionArchive = "archive"
)

// BoardColumn is an ordered container of cards within a board.
type BoardColumn struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	BoardID    uint   `gorm:"index;not null"`
	Name       string `gorm:"size:128;not null"`
	Definition string `gorm:"size:16;default:open"`

	Board *Board `gorm:"foreignKey:BoardID"`
}
