package main

import (
	"strings"
	"testing"
)

func TestColumnList_SeededDefaults(t *testing.T) {
	cfgPath := initTestDB(t)

	out, err := runCmd(t, "column", "list", "--config", cfgPath, "--board", "MAIN-BOARD")
	if err != nil {
		t.Fatalf("column list failed: %v", err)
	}
	for _, name := range []string{"Backlog", "To do", "In progress", "Done", "Archive"} {
		if !strings.Contains(out, name) {
			t.Errorf("expected column %q in output, got: %s", name, out)
		}
	}
}

func TestColumnList_UnknownBoard(t *testing.T) {
	cfgPath := initTestDB(t)

	if _, err := runCmd(t, "column", "list", "--config", cfgPath, "--board", "NOPE"); err == nil {
		t.Fatal("expected error for unknown board")
	}
}

func TestColumnAdd(t *testing.T) {
	cfgPath := initTestDB(t)

	out, err := runCmd(t, "column", "add", "--config", cfgPath,
		"--board", "MAIN-BOARD", "--name", "Review", "--definition", "open")
	if err != nil {
		t.Fatalf("column add failed: %v", err)
	}
	if !strings.Contains(out, `"Review" (open)`) {
		t.Errorf("unexpected add output: %s", out)
	}

	out, err = runCmd(t, "column", "list", "--config", cfgPath, "--board", "MAIN-BOARD")
	if err != nil {
		t.Fatalf("column list failed: %v", err)
	}
	if !strings.Contains(out, "Review") {
		t.Errorf("expected new column in list, got: %s", out)
	}
}

func TestColumnAdd_InvalidDefinition(t *testing.T) {
	cfgPath := initTestDB(t)

	if _, err := runCmd(t, "column", "add", "--config", cfgPath,
		"--board", "MAIN-BOARD", "--name", "Weird", "--definition", "sideways"); err == nil {
		t.Fatal("expected error for invalid definition")
	}
}
