package models

import (
	"reflect"
	"strings"
	"testing"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

func TestCard_Fields(t *testing.T) {
	typ := reflect.TypeOf(Card{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Name", "not null")
	assertGormTag(t, typ, "BoardColumnID", "index")
	assertGormTag(t, typ, "SortOrder", "not null")
	assertGormTag(t, typ, "UserID", "index")
}

func TestEvent_Fields(t *testing.T) {
	typ := reflect.TypeOf(Event{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "CardID", "index")
	assertGormTag(t, typ, "PreviousColumnID", "not null")
	assertGormTag(t, typ, "BoardColumnID", "not null")
	assertGormTag(t, typ, "Type", "size:32")
}

func TestBoardColumn_Fields(t *testing.T) {
	typ := reflect.TypeOf(BoardColumn{})

	assertGormTag(t, typ, "BoardID", "index")
	assertGormTag(t, typ, "Definition", "default:open")
}

func TestProjectAndBoard_ShortNamesUnique(t *testing.T) {
	assertGormTag(t, reflect.TypeOf(Project{}), "ShortName", "uniqueIndex")
	assertGormTag(t, reflect.TypeOf(Board{}), "ShortName", "uniqueIndex")
	assertGormTag(t, reflect.TypeOf(User{}), "Username", "uniqueIndex")
}

func TestEventTypes_Closed(t *testing.T) {
	types := []EventType{
		EventCardCreate,
		EventCardUpdate,
		EventCardMove,
		EventCardArchive,
		EventCardBacklog,
	}
	seen := make(map[EventType]bool)
	for _, et := range types {
		if et == "" {
			t.Error("empty event type constant")
		}
		if !strings.HasPrefix(string(et), "CARD_") {
			t.Errorf("event type %q missing CARD_ prefix", et)
		}
		if seen[et] {
			t.Errorf("duplicate event type %q", et)
		}
		seen[et] = true
	}
}

func TestColumnDefinitions(t *testing.T) {
	defs := []string{DefinitionOpen, DefinitionClosed, DefinitionBacklog, DefinitionArchive}
	seen := make(map[string]bool)
	for _, d := range defs {
		if d == "" || d != strings.ToLower(d) {
			t.Errorf("definition %q must be non-empty lowercase", d)
		}
		if seen[d] {
			t.Errorf("duplicate definition %q", d)
		}
		seen[d] = true
	}
}
