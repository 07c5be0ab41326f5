package card

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced card does not exist or is not
// in the expected column.
var ErrNotFound = errors.New("card not found")

// cardFullColumns is the select list for CardFull join queries.
const cardFullColumns = "cards.id, cards.name, cards.board_column_id, cards.sort_order, " +
	"cards.user_id, cards.created_at, users.username AS username, " +
	"boards.short_name AS board_short_name, projects.short_name AS project_short_name, " +
	"board_columns.definition AS column_definition"

// cardFullQuery builds the base CardFull join over columns, boards,
// projects, and users.
func cardFullQuery(db *gorm.DB) *gorm.DB {
	return db.Table("cards").
		Select(cardFullColumns).
		Joins("JOIN board_columns ON board_columns.id = cards.board_column_id").
		Joins("JOIN boards ON boards.id = board_columns.board_id").
		Joins("JOIN projects ON projects.id = boards.project_id").
		Joins("JOIN users ON users.id = cards.user_id")
}

// FindAllByColumnID returns the CardFull rows of a column, unsorted.
func FindAllByColumnID(db *gorm.DB, columnID uint) ([]models.CardFull, error) {
	var cards []models.CardFull
	err := cardFullQuery(db).
		Where("cards.board_column_id = ?", columnID).
		Scan(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("card: cards of column %d: %w", columnID, err)
	}
	return cards, nil
}

// FindByID returns a single card row.
func FindByID(db *gorm.DB, cardID uint) (*models.Card, error) {
	var c models.Card
	if err := db.Where("id = ?", cardID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("card: %d: %w", cardID, ErrNotFound)
		}
		return nil, fmt.Errorf("card: get %d: %w", cardID, err)
	}
	return &c, nil
}

// createCard persists a new card at the top of the column.
func createCard(tx *gorm.DB, name string, columnID, userID uint, t time.Time) (*models.Card, error) {
	ord, err := topSortOrder(tx, columnID)
	if err != nil {
		return nil, err
	}
	c := models.Card{
		Name:          name,
		BoardColumnID: columnID,
		SortOrder:     ord,
		UserID:        userID,
		CreatedAt:     t,
	}
	if err := tx.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("card: create %q in column %d: %w", name, columnID, err)
	}
	return &c, nil
}

// updateCardName renames a card, leaving column and order untouched.
func updateCardName(tx *gorm.DB, cardID uint, name string) (*models.Card, error) {
	c, err := FindByID(tx, cardID)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.Card{}).Where("id = ?", cardID).
		Update("name", name).Error; err != nil {
		return nil, fmt.Errorf("card: rename %d: %w", cardID, err)
	}
	c.Name = name
	return c, nil
}

// moveCardToColumn moves a single card, appending it at the bottom of the
// destination column. The from-column predicate makes stale requests a
// no-op, reported as ErrNotFound.
func moveCardToColumn(tx *gorm.DB, cardID, fromColumnID, toColumnID uint) error {
	ord, err := bottomSortOrder(tx, toColumnID)
	if err != nil {
		return err
	}
	res := tx.Model(&models.Card{}).
		Where("id = ? AND board_column_id = ?", cardID, fromColumnID).
		Updates(map[string]interface{}{
			"board_column_id": toColumnID,
			"sort_order":      ord,
		})
	if res.Error != nil {
		return fmt.Errorf("card: move %d to column %d: %w", cardID, toColumnID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("card: %d in column %d: %w", cardID, fromColumnID, ErrNotFound)
	}
	return nil
}

// moveCardsToColumn bulk-moves cards and returns the ids that verifiably
// moved. Ids not in the source column (stale or non-existent) are skipped,
// not errors. Moved cards are appended at the destination bottom in their
// source order.
func moveCardsToColumn(tx *gorm.DB, cardIDs []uint, fromColumnID, toColumnID uint) ([]uint, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	var eligible []uint
	err := tx.Model(&models.Card{}).
		Where("id IN ? AND board_column_id = ?", cardIDs, fromColumnID).
		Order("sort_order ASC").
		Pluck("id", &eligible).Error
	if err != nil {
		return nil, fmt.Errorf("card: select movable cards from column %d: %w", fromColumnID, err)
	}
	if len(eligible) == 0 {
		return nil, nil
	}
	ord, err := bottomSortOrder(tx, toColumnID)
	if err != nil {
		return nil, err
	}
	for i, id := range eligible {
		err := tx.Model(&models.Card{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"board_column_id": toColumnID,
				"sort_order":      ord + i,
			}).Error
		if err != nil {
			return nil, fmt.Errorf("card: move %d to column %d: %w", id, toColumnID, err)
		}
	}
	return eligible, nil
}

// FetchAllOpenCardsByUserID returns one page of open cards created by the
// user, newest first. Fetches pageSize+1 rows so the caller can tell whether
// further pages exist without a count query.
func FetchAllOpenCardsByUserID(db *gorm.DB, userID uint, page, pageSize int) ([]models.CardFull, error) {
	var cards []models.CardFull
	err := cardFullQuery(db).
		Where("board_columns.definition = ? AND cards.user_id = ?", models.DefinitionOpen, userID).
		Order("cards.created_at DESC, cards.id DESC").
		Limit(pageSize + 1).
		Offset(page * pageSize).
		Scan(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("card: open cards of user %d: %w", userID, err)
	}
	return cards, nil
}

// FetchAllOpenCardsByProjectAndUserID is the by-project variant of
// FetchAllOpenCardsByUserID.
func FetchAllOpenCardsByProjectAndUserID(db *gorm.DB, projectShortName string, userID uint, page, pageSize int) ([]models.CardFull, error) {
	var cards []models.CardFull
	err := cardFullQuery(db).
		Where("board_columns.definition = ? AND cards.user_id = ? AND projects.short_name = ?",
			models.DefinitionOpen, userID, projectShortName).
		Order("cards.created_at DESC, cards.id DESC").
		Limit(pageSize + 1).
		Offset(page * pageSize).
		Scan(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("card: open cards of user %d in project %q: %w", userID, projectShortName, err)
	}
	return cards, nil
}

// OpenCardsCountByUserID returns the total number of open cards created by
// the user.
func OpenCardsCountByUserID(db *gorm.DB, userID uint) (int, error) {
	var count int64
	err := db.Table("cards").
		Joins("JOIN board_columns ON board_columns.id = cards.board_column_id").
		Where("board_columns.definition = ? AND cards.user_id = ?", models.DefinitionOpen, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("card: count open cards of user %d: %w", userID, err)
	}
	return int(count), nil
}

// OpenCardsCountByProjectAndUserID is the by-project variant of
// OpenCardsCountByUserID.
func OpenCardsCountByProjectAndUserID(db *gorm.DB, projectShortName string, userID uint) (int, error) {
	var count int64
	err := db.Table("cards").
		Joins("JOIN board_columns ON board_columns.id = cards.board_column_id").
		Joins("JOIN boards ON boards.id = board_columns.board_id").
		Joins("JOIN projects ON projects.id = boards.project_id").
		Where("board_columns.definition = ? AND cards.user_id = ? AND projects.short_name = ?",
			models.DefinitionOpen, userID, projectShortName).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("card: count open cards of user %d in project %q: %w", userID, projectShortName, err)
	}
	return int(count), nil
}
