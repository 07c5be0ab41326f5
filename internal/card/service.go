// Package card implements the card state-transition and ordering engine:
// lifecycle operations, intra-column ordering, and the aggregated read
// views. Every mutation couples the card change with an append-only audit
// event inside one transaction.
package card

import (
	"time"

	"github.com/zulandar/corkboard/internal/event"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// CreateCard persists a card at the top of the column and appends a
// CARD_CREATE event carrying the card's name. Creation is not idempotent:
// identical arguments produce distinct cards and events.
func CreateCard(db *gorm.DB, name string, columnID, userID uint, t time.Time) (*models.Card, error) {
	var created *models.Card
	err := db.Transaction(func(tx *gorm.DB) error {
		c, err := createCard(tx, name, columnID, userID, t)
		if err != nil {
			return err
		}
		_, err = event.InsertCardEvent(tx, c.ID, columnID, columnID, userID,
			models.EventCardCreate, t, &c.Name)
		if err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CreateCardFromTop is an alias of CreateCard kept so call sites can state
// the anchoring intent explicitly.
func CreateCardFromTop(db *gorm.DB, name string, columnID, userID uint, t time.Time) (*models.Card, error) {
	return CreateCard(db, name, columnID, userID, t)
}

// UpdateCard renames a card, leaving column and order untouched, and
// appends a CARD_UPDATE event with the new name as payload. Propagates
// ErrNotFound for unknown cards.
func UpdateCard(db *gorm.DB, cardID uint, name string, userID uint, t time.Time) (*models.Event, error) {
	var logged *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		c, err := updateCardName(tx, cardID, name)
		if err != nil {
			return err
		}
		e, err := event.InsertCardEvent(tx, cardID, c.BoardColumnID, c.BoardColumnID, userID,
			models.EventCardUpdate, t, &name)
		if err != nil {
			return err
		}
		logged = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logged, nil
}

// MoveCardToColumn moves a card to the bottom of the destination column and
// appends one CARD_MOVE event recording both column ids.
func MoveCardToColumn(db *gorm.DB, cardID, fromColumnID, toColumnID, userID uint, t time.Time) (*models.Event, error) {
	var logged *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := moveCardToColumn(tx, cardID, fromColumnID, toColumnID); err != nil {
			return err
		}
		e, err := event.InsertCardEvent(tx, cardID, fromColumnID, toColumnID, userID,
			models.EventCardMove, t, nil)
		if err != nil {
			return err
		}
		logged = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logged, nil
}

// MoveCardToColumnAndReorder moves a card and applies the requested order
// to the destination column in the same transaction. Only the moved card's
// transition is recorded: one CARD_MOVE event, none for reordered siblings.
func MoveCardToColumnAndReorder(db *gorm.DB, cardID, fromColumnID, toColumnID uint,
	newOrderForDestination []uint, userID uint) (*models.Event, error) {

	var logged *models.Event
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := moveCardToColumn(tx, cardID, fromColumnID, toColumnID); err != nil {
			return err
		}
		if _, err := ReorderColumn(tx, toColumnID, newOrderForDestination); err != nil {
			return err
		}
		e, err := event.InsertCardEvent(tx, cardID, fromColumnID, toColumnID, userID,
			models.EventCardMove, time.Now(), nil)
		if err != nil {
			return err
		}
		logged = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return logged, nil
}

// MoveCardsToColumn bulk-moves cards and appends one event per card that
// verifiably moved, all sharing the given type and timestamp. Ids that did
// not apply (stale or unknown) are silently excluded; zero applied ids
// means zero events. Returns the applied ids.
func MoveCardsToColumn(db *gorm.DB, cardIDs []uint, fromColumnID, toColumnID, userID uint,
	typ models.EventType, t time.Time) ([]uint, error) {

	var moved []uint
	err := db.Transaction(func(tx *gorm.DB) error {
		ids, err := moveCardsToColumn(tx, cardIDs, fromColumnID, toColumnID)
		if err != nil {
			return err
		}
		if _, err := event.InsertCardEvents(tx, ids, fromColumnID, toColumnID, userID,
			typ, t, nil); err != nil {
			return err
		}
		moved = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}
