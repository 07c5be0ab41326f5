// Package carddata manages per-card data items and their count summaries.
package carddata

import (
	"fmt"
	"time"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// AddData attaches a data item (comment, attachment, ...) to a card.
func AddData(db *gorm.DB, cardID uint, dataType, content string, t time.Time) (*models.CardData, error) {
	d := models.CardData{
		CardID:    cardID,
		Type:      dataType,
		Content:   content,
		CreatedAt: t,
	}
	if err := db.Create(&d).Error; err != nil {
		return nil, fmt.Errorf("carddata: add %s to card %d: %w", dataType, cardID, err)
	}
	return &d, nil
}

// FindCountsByCardIDs returns per-card, per-type counts for the whole id set
// in one query. Rows come back ordered by card id then type so grouping is
// deterministic. Cards without data simply have no rows.
func FindCountsByCardIDs(db *gorm.DB, cardIDs []uint) ([]models.CardDataCount, error) {
	if len(cardIDs) == 0 {
		return nil, nil
	}
	var counts []models.CardDataCount
	err := db.Table("card_data").
		Select("card_id, type, COUNT(*) AS count").
		Where("card_id IN ?", cardIDs).
		Group("card_id").
		Group("type").
		Order("card_id ASC, type ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("carddata: counts for %d cards: %w", len(cardIDs), err)
	}
	return counts, nil
}
