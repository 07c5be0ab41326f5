package card

import (
	"testing"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens an in-memory SQLite DB with all tables migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Project{},
		&models.Board{},
		&models.BoardColumn{},
		&models.User{},
		&models.Card{},
		&models.CardData{},
		&models.CardLabel{},
		&models.CardLabelValue{},
		&models.Event{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// fixture is a minimal board: one project, one board, three columns, one user.
type fixture struct {
	DB      *gorm.DB
	Project models.Project
	Board   models.Board
	Todo    models.BoardColumn
	Doing   models.BoardColumn
	Done    models.BoardColumn
	User    models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)

	f := &fixture{DB: db}
	f.Project = models.Project{ShortName: "TEST", Name: "Test project"}
	if err := db.Create(&f.Project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}
	f.Board = models.Board{ProjectID: f.Project.ID, ShortName: "TEST-BOARD", Name: "Test board"}
	if err := db.Create(&f.Board).Error; err != nil {
		t.Fatalf("create board: %v", err)
	}
	f.Todo = models.BoardColumn{BoardID: f.Board.ID, Name: "To do", Definition: models.DefinitionOpen}
	f.Doing = models.BoardColumn{BoardID: f.Board.ID, Name: "In progress", Definition: models.DefinitionOpen}
	f.Done = models.BoardColumn{BoardID: f.Board.ID, Name: "Done", Definition: models.DefinitionClosed}
	for _, col := range []*models.BoardColumn{&f.Todo, &f.Doing, &f.Done} {
		if err := db.Create(col).Error; err != nil {
			t.Fatalf("create column %q: %v", col.Name, err)
		}
	}
	f.User = models.User{Username: "alice"}
	if err := db.Create(&f.User).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return f
}

// columnIDs returns the card ids of a column ordered by sort order.
func columnIDs(t *testing.T, db *gorm.DB, columnID uint) []uint {
	t.Helper()
	var ids []uint
	if err := db.Model(&models.Card{}).
		Where("board_column_id = ?", columnID).
		Order("sort_order ASC").
		Pluck("id", &ids).Error; err != nil {
		t.Fatalf("column ids: %v", err)
	}
	return ids
}

// assertUniqueOrders fails when two cards in the column share a sort order.
func assertUniqueOrders(t *testing.T, db *gorm.DB, columnID uint) {
	t.Helper()
	var orders []int
	if err := db.Model(&models.Card{}).
		Where("board_column_id = ?", columnID).
		Pluck("sort_order", &orders).Error; err != nil {
		t.Fatalf("sort orders: %v", err)
	}
	seen := make(map[int]bool, len(orders))
	for _, o := range orders {
		if seen[o] {
			t.Errorf("column %d: duplicate sort order %d", columnID, o)
		}
		seen[o] = true
	}
}

// queryCounter counts SELECTs issued through the query callback.
type queryCounter struct {
	n int
}

func installQueryCounter(t *testing.T, db *gorm.DB) *queryCounter {
	t.Helper()
	c := &queryCounter{}
	err := db.Callback().Query().After("gorm:query").Register("test:count_queries", func(*gorm.DB) {
		c.n++
	})
	if err != nil {
		t.Fatalf("register query counter: %v", err)
	}
	// Scan-based queries run through the row callback, not the query callback.
	err = db.Callback().Row().After("gorm:row").Register("test:count_row_queries", func(*gorm.DB) {
		c.n++
	})
	if err != nil {
		t.Fatalf("register row query counter: %v", err)
	}
	return c
}

func eventsOfCard(t *testing.T, db *gorm.DB, cardID uint) []models.Event {
	t.Helper()
	var events []models.Event
	if err := db.Where("card_id = ?", cardID).Order("time ASC, id ASC").Find(&events).Error; err != nil {
		t.Fatalf("events of card %d: %v", cardID, err)
	}
	return events
}
