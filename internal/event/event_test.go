package event

import (
	"testing"
	"time"

	"github.com/zulandar/corkboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func TestInsertCardEvent(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	name := "a new card"

	e, err := InsertCardEvent(db, 7, 1, 1, 42, models.EventCardCreate, now, &name)
	if err != nil {
		t.Fatalf("InsertCardEvent: %v", err)
	}
	if e.ID == 0 {
		t.Error("event has no id")
	}
	if e.CardID != 7 || e.UserID != 42 {
		t.Errorf("event = %+v", e)
	}
	if e.ValueString == nil || *e.ValueString != name {
		t.Errorf("payload = %v, want %q", e.ValueString, name)
	}
}

func TestInsertCardEvents_Batch(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()

	events, err := InsertCardEvents(db, []uint{1, 2, 3}, 10, 20, 42, models.EventCardMove, now, nil)
	if err != nil {
		t.Fatalf("InsertCardEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	for _, e := range events {
		if e.ID == 0 {
			t.Error("batch event has no id")
		}
		if e.PreviousColumnID != 10 || e.BoardColumnID != 20 {
			t.Errorf("event columns = (%d, %d), want (10, 20)", e.PreviousColumnID, e.BoardColumnID)
		}
		if !e.Time.Equal(events[0].Time) {
			t.Error("batch events must share one timestamp")
		}
	}
}

func TestInsertCardEvents_EmptyWritesNothing(t *testing.T) {
	db := openTestDB(t)

	events, err := InsertCardEvents(db, nil, 1, 2, 42, models.EventCardMove, time.Now(), nil)
	if err != nil {
		t.Fatalf("InsertCardEvents: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 0 {
		t.Errorf("persisted events = %d, want 0", count)
	}
}

func TestFindByCardID_TimestampOrderWithIDTiebreak(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order, with two events sharing a timestamp.
	if _, err := InsertCardEvent(db, 5, 1, 1, 42, models.EventCardUpdate, base.Add(time.Hour), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := InsertCardEvent(db, 5, 1, 1, 42, models.EventCardCreate, base, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := InsertCardEvent(db, 5, 1, 2, 42, models.EventCardMove, base.Add(time.Hour), nil); err != nil {
		t.Fatal(err)
	}
	// Another card's event must not leak in.
	if _, err := InsertCardEvent(db, 6, 1, 1, 42, models.EventCardCreate, base, nil); err != nil {
		t.Fatal(err)
	}

	events, err := FindByCardID(db, 5)
	if err != nil {
		t.Fatalf("FindByCardID: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	want := []models.EventType{models.EventCardCreate, models.EventCardUpdate, models.EventCardMove}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.Type, want[i])
		}
	}
}

func TestCountByTypeSince(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := InsertCardEvent(db, uint(i+1), 1, 1, 42, models.EventCardCreate, base.Add(time.Hour), nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := InsertCardEvent(db, 1, 1, 2, 42, models.EventCardMove, base.Add(2*time.Hour), nil); err != nil {
		t.Fatal(err)
	}
	// Outside the window.
	if _, err := InsertCardEvent(db, 9, 1, 1, 42, models.EventCardCreate, base.Add(-time.Hour), nil); err != nil {
		t.Fatal(err)
	}

	counts, err := CountByTypeSince(db, base, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("CountByTypeSince: %v", err)
	}
	if counts[models.EventCardCreate] != 3 {
		t.Errorf("creates = %d, want 3", counts[models.EventCardCreate])
	}
	if counts[models.EventCardMove] != 1 {
		t.Errorf("moves = %d, want 1", counts[models.EventCardMove])
	}
}
