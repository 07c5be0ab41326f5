// Package board provides project, board, and column management.
package board

import (
	"errors"
	"fmt"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced project, board, or column does
// not exist.
var ErrNotFound = errors.New("not found")

// defaultColumns is the column set seeded onto a fresh board.
var defaultColumns = []models.BoardColumn{
	{Name: "Backlog", Definition: models.DefinitionBacklog},
	{Name: "To do", Definition: models.DefinitionOpen},
	{Name: "In progress", Definition: models.DefinitionOpen},
	{Name: "Done", Definition: models.DefinitionClosed},
	{Name: "Archive", Definition: models.DefinitionArchive},
}

// validDefinitions are the accepted column definitions.
var validDefinitions = map[string]bool{
	models.DefinitionOpen:    true,
	models.DefinitionClosed:  true,
	models.DefinitionBacklog: true,
	models.DefinitionArchive: true,
}

// CreateProject creates a project.
func CreateProject(db *gorm.DB, shortName, name string) (*models.Project, error) {
	if shortName == "" {
		return nil, fmt.Errorf("board: project short name is required")
	}
	project := models.Project{ShortName: shortName, Name: name}
	if err := db.Create(&project).Error; err != nil {
		return nil, fmt.Errorf("board: create project %q: %w", shortName, err)
	}
	return &project, nil
}

// CreateBoard creates a board within a project.
func CreateBoard(db *gorm.DB, projectID uint, shortName, name string) (*models.Board, error) {
	if shortName == "" {
		return nil, fmt.Errorf("board: board short name is required")
	}
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("board: check project %d: %w", projectID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("board: project %d: %w", projectID, ErrNotFound)
	}
	b := models.Board{ProjectID: projectID, ShortName: shortName, Name: name}
	if err := db.Create(&b).Error; err != nil {
		return nil, fmt.Errorf("board: create board %q: %w", shortName, err)
	}
	return &b, nil
}

// CreateColumn creates a column on a board.
func CreateColumn(db *gorm.DB, boardID uint, name, definition string) (*models.BoardColumn, error) {
	if name == "" {
		return nil, fmt.Errorf("board: column name is required")
	}
	if definition == "" {
		definition = models.DefinitionOpen
	}
	if !validDefinitions[definition] {
		return nil, fmt.Errorf("board: invalid column definition %q", definition)
	}
	var count int64
	if err := db.Model(&models.Board{}).Where("id = ?", boardID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("board: check board %d: %w", boardID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("board: board %d: %w", boardID, ErrNotFound)
	}
	col := models.BoardColumn{BoardID: boardID, Name: name, Definition: definition}
	if err := db.Create(&col).Error; err != nil {
		return nil, fmt.Errorf("board: create column %q: %w", name, err)
	}
	return &col, nil
}

// FindColumnsByBoardID returns the columns of a board in creation order.
func FindColumnsByBoardID(db *gorm.DB, boardID uint) ([]models.BoardColumn, error) {
	var cols []models.BoardColumn
	if err := db.Where("board_id = ?", boardID).Order("id ASC").Find(&cols).Error; err != nil {
		return nil, fmt.Errorf("board: columns of board %d: %w", boardID, err)
	}
	return cols, nil
}

// FindBoardByShortName returns the board with the given short name.
func FindBoardByShortName(db *gorm.DB, shortName string) (*models.Board, error) {
	var b models.Board
	if err := db.Where("short_name = ?", shortName).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("board: board %q: %w", shortName, ErrNotFound)
		}
		return nil, fmt.Errorf("board: find board %q: %w", shortName, err)
	}
	return &b, nil
}

// SeedDefaultColumns creates the default column set on a board.
func SeedDefaultColumns(db *gorm.DB, boardID uint) error {
	for _, c := range defaultColumns {
		col := models.BoardColumn{BoardID: boardID, Name: c.Name, Definition: c.Definition}
		if err := db.Create(&col).Error; err != nil {
			return fmt.Errorf("board: seed column %q: %w", c.Name, err)
		}
	}
	return nil
}
