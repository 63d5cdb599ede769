package storage

import (
	"os"
	"path/filepath"
	"testing"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{LevelID: "level_01", Strategy: "greedy", Score: 900}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RunsForLevel("level_01", 10)
	if err != nil {
		t.Fatalf("RunsForLevel() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saved := []Run{
		{LevelID: "level_01", Strategy: "greedy", Seed: 1, Score: 1200, Moves: 11, MaxChain: 3, Cleared: true},
		{LevelID: "level_01", Strategy: "greedy", Seed: 2, Score: 600, Moves: 15, MaxChain: 2},
		{LevelID: "level_01", Strategy: "random", Seed: 3, Score: 1500, Moves: 9, MaxChain: 4, Reshuffles: 1, Cleared: true},
		{LevelID: "level_02", Strategy: "first", Seed: 4, Score: 300, Moves: 15, MaxChain: 1},
	}
	for _, r := range saved {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("Expected positive ID, got %d", id)
		}
	}

	runs, err := store.RunsForLevel("level_01", 10)
	if err != nil {
		t.Fatalf("RunsForLevel() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	expected := []int{1500, 1200, 600}
	for i, score := range expected {
		if runs[i].Score != score {
			t.Errorf("runs[%d].Score = %d, expected %d", i, runs[i].Score, score)
		}
	}

	best := runs[0]
	if best.Strategy != "random" || best.Seed != 3 || best.Moves != 9 || best.MaxChain != 4 || best.Reshuffles != 1 {
		t.Errorf("Unexpected run fields: %+v", best)
	}
	if !best.Cleared || runs[2].Cleared {
		t.Error("Cleared flag was not stored")
	}
	if best.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestStoreRunsForLevelLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveRun(Run{LevelID: "level_03", Strategy: "first", Seed: int64(i), Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RunsForLevel("level_03", 5)
	if err != nil {
		t.Fatalf("RunsForLevel() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 190 {
		t.Errorf("Expected best score 190, got %d", runs[0].Score)
	}

	// Zero limit falls back to the default of 10
	runs, err = store.RunsForLevel("level_03", 0)
	if err != nil {
		t.Fatalf("RunsForLevel() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("Expected 10 runs, got %d", len(runs))
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.LevelStats("level_01")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestScore != 0 || stats.ClearRate() != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
	if !stats.LastRun.IsZero() {
		t.Error("Expected zero LastRun for a level without runs")
	}

	for _, r := range []Run{
		{LevelID: "level_01", Strategy: "greedy", Score: 1000, Moves: 10, MaxChain: 2, Cleared: true},
		{LevelID: "level_01", Strategy: "greedy", Score: 500, Moves: 14, MaxChain: 5},
		{LevelID: "level_01", Strategy: "greedy", Score: 1200, Moves: 12, MaxChain: 3, Cleared: true},
		{LevelID: "level_01", Strategy: "greedy", Score: 700, Moves: 12, MaxChain: 1},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err = store.LevelStats("level_01")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Runs != 4 {
		t.Errorf("Runs = %d, expected 4", stats.Runs)
	}
	if stats.Cleared != 2 {
		t.Errorf("Cleared = %d, expected 2", stats.Cleared)
	}
	if stats.ClearRate() != 0.5 {
		t.Errorf("ClearRate() = %v, expected 0.5", stats.ClearRate())
	}
	if stats.BestScore != 1200 {
		t.Errorf("BestScore = %d, expected 1200", stats.BestScore)
	}
	if stats.AvgScore != 850 {
		t.Errorf("AvgScore = %v, expected 850", stats.AvgScore)
	}
	if stats.AvgMoves != 12 {
		t.Errorf("AvgMoves = %v, expected 12", stats.AvgMoves)
	}
	if stats.MaxChain != 5 {
		t.Errorf("MaxChain = %d, expected 5", stats.MaxChain)
	}
	if stats.LastRun.IsZero() {
		t.Error("Expected LastRun to be set")
	}
}

func TestStoreAllLevelStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Run{
		{LevelID: "level_01", Strategy: "first", Score: 100},
		{LevelID: "level_01", Strategy: "first", Score: 300, Cleared: true},
		{LevelID: "level_04", Strategy: "first", Score: 2500, Cleared: true},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.AllLevelStats()
	if err != nil {
		t.Fatalf("AllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}
	if all["level_01"].Runs != 2 || all["level_01"].BestScore != 300 || all["level_01"].Cleared != 1 {
		t.Errorf("Unexpected level_01 stats: %+v", all["level_01"])
	}
	if all["level_04"].ClearRate() != 1 {
		t.Errorf("Expected level_04 clear rate 1, got %v", all["level_04"].ClearRate())
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"level_01", "level_01", "level_02"} {
		if _, err := store.SaveRun(Run{LevelID: id, Strategy: "first", Score: 100}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	if err := store.ClearRuns("level_01"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.RunsForLevel("level_01", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	// Other levels should be unaffected
	runs, _ = store.RunsForLevel("level_02", 10)
	if len(runs) != 1 {
		t.Errorf("Expected 1 run for level_02, got %d", len(runs))
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
