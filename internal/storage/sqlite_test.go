package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/session"
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
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsGames(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveGame(GameRecord{Score: 300}); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300 after reopen, got %d", high)
	}
}

func TestStoreSaveAndTopGames(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveGame(GameRecord{Player: "alice", Score: score}); err != nil {
			t.Fatalf("SaveGame(%d) failed: %v", score, err)
		}
	}

	games, err := store.TopGames(10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}

	if len(games) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(games))
	}

	want := []int{200, 100, 50}
	for i, g := range games {
		if g.Score != want[i] {
			t.Errorf("games[%d].Score = %d, want %d", i, g.Score, want[i])
		}
		if g.ID == "" {
			t.Errorf("games[%d] has no ID", i)
		}
		if g.Player != "alice" {
			t.Errorf("games[%d].Player = %q, want alice", i, g.Player)
		}
	}
}

func TestStoreTopGamesLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 15; i++ {
		if _, err := store.SaveGame(GameRecord{Score: i * 10}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	games, err := store.TopGames(5)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(games) != 5 {
		t.Errorf("Expected 5 games, got %d", len(games))
	}
	if games[0].Score != 150 {
		t.Errorf("Expected top score 150, got %d", games[0].Score)
	}

	// Non-positive limit falls back to 10
	games, err = store.TopGames(0)
	if err != nil {
		t.Fatalf("TopGames(0) failed: %v", err)
	}
	if len(games) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(games))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty ledger, got %d", high)
	}

	store.SaveGame(GameRecord{Score: 100})
	store.SaveGame(GameRecord{Score: 500})
	store.SaveGame(GameRecord{Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 500 {
		t.Errorf("Expected high score 500, got %d", high)
	}
}

func TestStoreRecordGame(t *testing.T) {
	store := openTestStore(t)
	finished := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return finished }

	var rec session.Recorder = store
	err := rec.RecordGame(session.Result{
		Player:       "bob",
		Score:        2468,
		MaxTile:      256,
		Moves:        310,
		NewHighScore: true,
		StartedAt:    finished.Add(-5 * time.Minute),
		Duration:     5*time.Minute + 250*time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RecordGame() failed: %v", err)
	}

	games, err := store.TopGames(1)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("Expected 1 game, got %d", len(games))
	}

	g := games[0]
	if g.Player != "bob" || g.Score != 2468 || g.MaxTile != 256 || g.Moves != 310 || !g.NewHighScore {
		t.Errorf("unexpected record: %+v", g)
	}
	if g.Duration != 5*time.Minute+250*time.Millisecond {
		t.Errorf("Duration = %s", g.Duration)
	}
	if !g.CreatedAt.Equal(finished) {
		t.Errorf("CreatedAt = %s, want %s", g.CreatedAt, finished)
	}
	if !g.StartedAt.Equal(finished.Add(-5 * time.Minute)) {
		t.Errorf("StartedAt = %s", g.StartedAt)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	last := time.Date(2026, 5, 5, 8, 30, 0, 0, time.UTC)
	store.SaveGame(GameRecord{Score: 100, MaxTile: 16, Moves: 40, CreatedAt: last.Add(-time.Hour)})
	store.SaveGame(GameRecord{Score: 300, MaxTile: 64, Moves: 60, CreatedAt: last})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.BestTile != 64 {
		t.Errorf("HighScore/BestTile = %d/%d, want 300/64", stats.HighScore, stats.BestTile)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalMoves != 100 {
		t.Errorf("TotalMoves = %d, want 100", stats.TotalMoves)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %s, want %s", stats.LastPlayed, last)
	}
}

func TestStoreClear(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{Score: 100})
	store.SaveGame(GameRecord{Score: 200})

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	games, err := store.TopGames(10)
	if err != nil {
		t.Fatalf("TopGames() failed: %v", err)
	}
	if len(games) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(games))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/ledger/games.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, "ledger", "games.db")); err != nil {
		t.Errorf("Expected database under HOME: %v", err)
	}
}
