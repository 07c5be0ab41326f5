package card

import (
	"sort"

	"github.com/zulandar/corkboard/internal/carddata"
	"github.com/zulandar/corkboard/internal/label"
	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/gorm"
)

// CardFullWithCounts is the composite read view: a CardFull zipped with its
// data counts and label values. Built per request, never persisted.
type CardFullWithCounts struct {
	models.CardFull
	Counts map[string]models.CardDataCount `json:"counts"`
	Labels []models.LabelAndValue          `json:"labels"`
}

// CardFullWithCountsHolder is the pagination envelope for composite views.
type CardFullWithCountsHolder struct {
	Cards      []CardFullWithCounts `json:"cards"`
	TotalItems int                  `json:"totalItems"`
	PageSize   int                  `json:"pageSize"`
}

func fetchIDs(cards []models.CardFull) []uint {
	ids := make([]uint, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// groupCountsByCard groups count rows into cardID -> type -> count. The
// rows arrive ordered by card id and type; result determinism comes from
// iterating the caller's card slice, not this map.
func groupCountsByCard(counts []models.CardDataCount) map[uint]map[string]models.CardDataCount {
	grouped := make(map[uint]map[string]models.CardDataCount)
	for _, c := range counts {
		byType, ok := grouped[c.CardID]
		if !ok {
			byType = make(map[string]models.CardDataCount)
			grouped[c.CardID] = byType
		}
		byType[c.Type] = c
	}
	return grouped
}

// FetchCardFull assembles composite views for a set of already-fetched card
// rows. Exactly one counts query and one labels query are issued for the
// whole set. Cards with no counts or labels get empty collections, never an
// error. Input order is preserved.
func FetchCardFull(db *gorm.DB, cards []models.CardFull) ([]CardFullWithCounts, error) {
	if len(cards) == 0 {
		return []CardFullWithCounts{}, nil
	}
	ids := fetchIDs(cards)

	countRows, err := carddata.FindCountsByCardIDs(db, ids)
	if err != nil {
		return nil, err
	}
	counts := groupCountsByCard(countRows)

	labels, err := label.FindCardLabelValuesByCardIDs(db, ids)
	if err != nil {
		return nil, err
	}

	res := make([]CardFullWithCounts, 0, len(cards))
	for _, c := range cards {
		byType := counts[c.ID]
		if byType == nil {
			byType = map[string]models.CardDataCount{}
		}
		vals := labels[c.ID]
		if vals == nil {
			vals = []models.LabelAndValue{}
		}
		res = append(res, CardFullWithCounts{CardFull: c, Counts: byType, Labels: vals})
	}
	return res, nil
}

// FetchAllInColumn returns the composite views of a column sorted by sort
// order ascending. An empty column short-circuits without issuing the
// counts and labels queries.
func FetchAllInColumn(db *gorm.DB, columnID uint) ([]CardFullWithCounts, error) {
	cards, err := FindAllByColumnID(db, columnID)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return []CardFullWithCounts{}, nil
	}
	res, err := FetchCardFull(db, cards)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].SortOrder < res[j].SortOrder
	})
	return res, nil
}

// GetAllOpenCards returns one zero-based page of the user's open cards.
//
// The page fetch asks for pageSize+1 rows: when page 0 comes back with at
// most pageSize rows there provably are no further pages and the row count
// doubles as the total, skipping the count query. Any other non-empty page
// issues the separate count.
func GetAllOpenCards(db *gorm.DB, userID uint, page, pageSize int) (*CardFullWithCountsHolder, error) {
	cards, err := FetchAllOpenCardsByUserID(db, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildOpenCardsHolder(db, cards, page, pageSize, func() (int, error) {
		return OpenCardsCountByUserID(db, userID)
	})
}

// GetAllOpenCardsByProject is the by-project variant of GetAllOpenCards.
func GetAllOpenCardsByProject(db *gorm.DB, projectShortName string, userID uint, page, pageSize int) (*CardFullWithCountsHolder, error) {
	cards, err := FetchAllOpenCardsByProjectAndUserID(db, projectShortName, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return buildOpenCardsHolder(db, cards, page, pageSize, func() (int, error) {
		return OpenCardsCountByProjectAndUserID(db, projectShortName, userID)
	})
}

// buildOpenCardsHolder trims the page, decides whether the total needs its
// own count query, and aggregates the composite views.
func buildOpenCardsHolder(db *gorm.DB, cards []models.CardFull, page, pageSize int,
	countFn func() (int, error)) (*CardFullWithCountsHolder, error) {

	if len(cards) == 0 {
		return &CardFullWithCountsHolder{
			Cards:    []CardFullWithCounts{},
			PageSize: pageSize,
		}, nil
	}

	totalItems := len(cards)
	if (page == 0 && len(cards) > pageSize) || page > 0 {
		total, err := countFn()
		if err != nil {
			return nil, err
		}
		totalItems = total
	}

	if len(cards) > pageSize {
		cards = cards[:pageSize]
	}

	res, err := FetchCardFull(db, cards)
	if err != nil {
		return nil, err
	}
	return &CardFullWithCountsHolder{
		Cards:      res,
		TotalItems: totalItems,
		PageSize:   pageSize,
	}, nil
}
