package card

import (
	"database/sql"
	"fmt"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// baseSortOrder is assigned to the first card of an empty column.
const baseSortOrder = 0

// topSortOrder returns a sort order strictly less than the current minimum
// in the column, or baseSortOrder when the column is empty.
func topSortOrder(tx *gorm.DB, columnID uint) (int, error) {
	var min sql.NullInt64
	err := tx.Model(&models.Card{}).
		Where("board_column_id = ?", columnID).
		Select("MIN(sort_order)").
		Scan(&min).Error
	if err != nil {
		return 0, fmt.Errorf("card: min sort order of column %d: %w", columnID, err)
	}
	if !min.Valid {
		return baseSortOrder, nil
	}
	return int(min.Int64) - 1, nil
}

// bottomSortOrder returns a sort order strictly greater than the current
// maximum in the column. Moves append at the bottom so the destination's
// existing order is never disturbed.
func bottomSortOrder(tx *gorm.DB, columnID uint) (int, error) {
	var max sql.NullInt64
	err := tx.Model(&models.Card{}).
		Where("board_column_id = ?", columnID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("card: max sort order of column %d: %w", columnID, err)
	}
	if !max.Valid {
		return baseSortOrder + 1, nil
	}
	return int(max.Int64) + 1, nil
}

// ReorderColumn assigns sort orders realizing the requested id sequence.
// Only ids present in newIDSequence and belonging to the column form the
// explicit head; cards omitted from the sequence keep their current relative
// order and are merged after the explicit tail. Returns the number of
// explicitly reordered cards.
//
// Concurrent reorders of the same column are not merged: whichever
// transaction commits last determines the final order.
func ReorderColumn(tx *gorm.DB, columnID uint, newIDSequence []uint) (int, error) {
	var current []uint
	err := tx.Model(&models.Card{}).
		Where("board_column_id = ?", columnID).
		Order("sort_order ASC").
		Pluck("id", &current).Error
	if err != nil {
		return 0, fmt.Errorf("card: cards of column %d: %w", columnID, err)
	}
	if len(current) == 0 {
		return 0, nil
	}

	member := make(map[uint]bool, len(current))
	for _, id := range current {
		member[id] = true
	}

	// Explicit head: requested ids that belong to the column, first
	// occurrence wins.
	head := make([]uint, 0, len(newIDSequence))
	inHead := make(map[uint]bool, len(newIDSequence))
	for _, id := range newIDSequence {
		if member[id] && !inHead[id] {
			head = append(head, id)
			inHead[id] = true
		}
	}

	// Untouched tail keeps its current relative order.
	final := head
	for _, id := range current {
		if !inHead[id] {
			final = append(final, id)
		}
	}

	for i, id := range final {
		err := tx.Model(&models.Card{}).
			Where("id = ?", id).
			Update("sort_order", i+1).Error
		if err != nil {
			return 0, fmt.Errorf("card: reorder card %d in column %d: %w", id, columnID, err)
		}
	}
	return len(head), nil
}
