package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/storekeeper/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, pack string, level, moves, pushes int) {
	t.Helper()
	_, err := store.SaveResult(core.LevelResult{PackID: pack, Level: level, Moves: moves, Pushes: pushes})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "tutorial", 1, 1, 1)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestResult("tutorial", 1)
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best == nil || best.Moves != 1 {
		t.Errorf("Expected stored result after reopen, got %+v", best)
	}
}

func TestStoreSaveResultRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(core.LevelResult{PackID: "", Level: 1}); err == nil {
		t.Error("Expected error for empty pack ID")
	}
	if _, err := store.SaveResult(core.LevelResult{PackID: "p", Level: 0}); err == nil {
		t.Error("Expected error for level 0")
	}
}

func TestStoreBestResult(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestResult("tutorial", 1)
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil for unsolved level, got %+v", best)
	}

	save(t, store, "tutorial", 1, 30, 10)
	save(t, store, "tutorial", 1, 20, 12)
	save(t, store, "tutorial", 1, 20, 8)
	save(t, store, "tutorial", 2, 5, 1)
	save(t, store, "depot", 1, 3, 1)

	best, err = store.BestResult("tutorial", 1)
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Expected a result")
	}
	if best.Moves != 20 || best.Pushes != 8 {
		t.Errorf("Expected best 20 moves 8 pushes, got %d moves %d pushes", best.Moves, best.Pushes)
	}
	if best.PackID != "tutorial" || best.Level != 1 {
		t.Errorf("Unexpected entry %+v", best)
	}
	if best.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestStorePackResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "warehouse", 3, 40, 9)
	save(t, store, "warehouse", 1, 12, 3)
	save(t, store, "warehouse", 1, 9, 4)
	save(t, store, "warehouse", 3, 35, 11)
	save(t, store, "depot", 2, 1, 1)

	entries, err := store.PackResults("warehouse")
	if err != nil {
		t.Fatalf("PackResults() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(entries))
	}
	if entries[0].Level != 1 || entries[0].Moves != 9 {
		t.Errorf("Expected level 1 best of 9 moves, got %+v", entries[0])
	}
	if entries[1].Level != 3 || entries[1].Moves != 35 {
		t.Errorf("Expected level 3 best of 35 moves, got %+v", entries[1])
	}
}

func TestStoreSolvedLevels(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "depot", 1, 6, 1)
	save(t, store, "depot", 1, 6, 1)
	save(t, store, "depot", 3, 5, 2)

	solved, err := store.SolvedLevels("depot")
	if err != nil {
		t.Fatalf("SolvedLevels() failed: %v", err)
	}
	if len(solved) != 2 || !solved[1] || !solved[3] || solved[2] {
		t.Errorf("Expected levels 1 and 3 solved, got %v", solved)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "depot", 1, 6, 1)
	save(t, store, "tutorial", 1, 1, 1)

	if err := store.ClearResults("depot"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	solved, err := store.SolvedLevels("depot")
	if err != nil {
		t.Fatalf("SolvedLevels() failed: %v", err)
	}
	if len(solved) != 0 {
		t.Errorf("Expected no results after clear, got %v", solved)
	}

	// Other packs are untouched.
	best, err := store.BestResult("tutorial", 1)
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best == nil {
		t.Error("Expected tutorial result to survive")
	}
}

func TestStorePackStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.PackStats("depot")
	if err != nil {
		t.Fatalf("PackStats() failed: %v", err)
	}
	if empty.Solves != 0 || empty.LevelsSolved != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	save(t, store, "depot", 1, 6, 1)
	save(t, store, "depot", 1, 8, 2)
	save(t, store, "depot", 2, 14, 2)
	save(t, store, "tutorial", 1, 1, 1)

	stats, err := store.PackStats("depot")
	if err != nil {
		t.Fatalf("PackStats() failed: %v", err)
	}
	if stats.Solves != 3 {
		t.Errorf("Expected 3 solves, got %d", stats.Solves)
	}
	if stats.LevelsSolved != 2 {
		t.Errorf("Expected 2 levels solved, got %d", stats.LevelsSolved)
	}
	if stats.TotalMoves != 28 || stats.TotalPushes != 5 {
		t.Errorf("Expected 28 moves 5 pushes, got %d moves %d pushes", stats.TotalMoves, stats.TotalPushes)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}

	all, err := store.AllPackStats()
	if err != nil {
		t.Fatalf("AllPackStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 packs, got %d", len(all))
	}
	if all["tutorial"].Solves != 1 || all["depot"].LevelsSolved != 2 {
		t.Errorf("Unexpected stats %+v %+v", all["tutorial"], all["depot"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.storekeeper/results.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".storekeeper", "results.db")); err != nil {
		t.Errorf("Expected database under home, got %v", err)
	}
}
