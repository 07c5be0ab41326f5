// Package label manages card labels and their typed values.
package label

import (
	"fmt"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// CreateLabel defines a new label within a project.
func CreateLabel(db *gorm.DB, projectID uint, name, labelType, color string) (*models.CardLabel, error) {
	if labelType == "" {
		labelType = models.LabelTypeString
	}
	l := models.CardLabel{
		ProjectID: projectID,
		Name:      name,
		Type:      labelType,
		Color:     color,
	}
	if err := db.Create(&l).Error; err != nil {
		return nil, fmt.Errorf("label: create %q: %w", name, err)
	}
	return &l, nil
}

// AddValue attaches a label value to a card. The caller fills exactly the
// Value* field matching the label's type.
func AddValue(db *gorm.DB, value models.CardLabelValue) (*models.CardLabelValue, error) {
	if err := db.Create(&value).Error; err != nil {
		return nil, fmt.Errorf("label: add value to card %d: %w", value.CardID, err)
	}
	return &value, nil
}

// FindCardLabelValuesByCardIDs returns each card's label values, grouped by
// card id, in one query for the whole set. Values are ordered by label name
// then insertion order within a card. Cards without labels are absent from
// the map.
func FindCardLabelValuesByCardIDs(db *gorm.DB, cardIDs []uint) (map[uint][]models.LabelAndValue, error) {
	if len(cardIDs) == 0 {
		return map[uint][]models.LabelAndValue{}, nil
	}
	var rows []models.LabelAndValue
	err := db.Table("card_label_values").
		Select("card_label_values.card_id, card_label_values.card_label_id, " +
			"card_labels.name AS label_name, card_labels.type AS label_type, " +
			"card_labels.color AS label_color, card_label_values.value_string, " +
			"card_label_values.value_user_id, card_label_values.value_date, " +
			"card_label_values.value_card_id").
		Joins("JOIN card_labels ON card_labels.id = card_label_values.card_label_id").
		Where("card_label_values.card_id IN ?", cardIDs).
		Order("card_label_values.card_id ASC, card_labels.name ASC, card_label_values.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("label: values for %d cards: %w", len(cardIDs), err)
	}
	grouped := make(map[uint][]models.LabelAndValue, len(cardIDs))
	for _, r := range rows {
		grouped[r.CardID] = append(grouped[r.CardID], r)
	}
	return grouped, nil
}
