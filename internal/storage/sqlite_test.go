package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	entries := []ScoreEntry{
		{GameID: "lightemup", Nickname: "ann", Score: 100, ElapsedSecs: 20, Difficulty: "easy", Size: 10},
		{GameID: "lightemup", Nickname: "bob", Score: 50, ElapsedSecs: 40, Difficulty: "easy", Size: 10},
		{GameID: "lightemup", Nickname: "ann", Score: 200, ElapsedSecs: 10, Difficulty: "hard", Size: 12},
		{GameID: "lightemup_competition", Nickname: "bob", Score: 500},
	}
	for _, e := range entries {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("lightemup", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Nickname != "ann" || scores[0].Difficulty != "hard" || scores[0].Size != 12 {
		t.Errorf("Unexpected fields in top score: %+v", scores[0])
	}

	limited, err := store.TopScores("lightemup", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}

	all, err := store.AllScores("lightemup_competition")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 competition score, got %d", len(all))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("lightemup")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	for _, score := range []int{100, 300, 200} {
		store.SaveScore(ScoreEntry{GameID: "lightemup", Score: score})
	}
	store.SaveScore(ScoreEntry{GameID: "other", Score: 900})

	high, _ = store.HighScore("lightemup")
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if err := store.ClearScores("lightemup"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	left, _ := store.TopScores("lightemup", 10)
	if len(left) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(left))
	}
	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Error("Other game's scores should not be affected")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("lightemup")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveScore(ScoreEntry{GameID: "lightemup", Score: 10})
	store.SaveScore(ScoreEntry{GameID: "lightemup", Score: 30})

	stats, err := store.GetGameStats("lightemup")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %v", stats.AvgScore)
	}
}

func TestStorePlayers(t *testing.T) {
	store := openTestStore(t)

	ann, err := store.EnsurePlayer("ann")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	again, err := store.EnsurePlayer("ann")
	if err != nil {
		t.Fatalf("EnsurePlayer() failed: %v", err)
	}
	if ann.ID != again.ID {
		t.Error("EnsurePlayer should return the existing player")
	}
	if _, err := store.EnsurePlayer(""); err == nil {
		t.Error("Expected error for empty nickname")
	}

	store.EnsurePlayer("bob")

	beat, err := store.UpdateBestScore("ann", 120)
	if err != nil {
		t.Fatalf("UpdateBestScore() failed: %v", err)
	}
	if !beat {
		t.Error("First score should beat the default best")
	}
	beat, _ = store.UpdateBestScore("ann", 80)
	if beat {
		t.Error("Lower score must not replace the best")
	}
	store.UpdateBestScore("bob", 60)

	top, err := store.TopPlayer()
	if err != nil {
		t.Fatalf("TopPlayer() failed: %v", err)
	}
	if top == nil || top.Nickname != "ann" || top.BestScore != 120 {
		t.Errorf("Unexpected top player: %+v", top)
	}

	rank, err := store.PlayerRank("bob")
	if err != nil {
		t.Fatalf("PlayerRank() failed: %v", err)
	}
	if rank != 2 {
		t.Errorf("Expected bob at rank 2, got %d", rank)
	}

	missing, err := store.PlayerByNickname("nobody")
	if err != nil || missing != nil {
		t.Errorf("Expected nil player without error, got %v, %v", missing, err)
	}
}

func TestStoreAnnouncements(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestAnnouncement()
	if err != nil {
		t.Fatalf("LatestAnnouncement() failed: %v", err)
	}
	if latest != nil {
		t.Fatal("Expected no announcement yet")
	}

	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	store.SaveAnnouncement(Announcement{Message: "New leader!", Nickname: "ann", Score: 100, CreatedAt: at})
	id, err := store.SaveAnnouncement(Announcement{Message: "New leader!", Nickname: "bob", Score: 150, CreatedAt: at.Add(time.Minute)})
	if err != nil {
		t.Fatalf("SaveAnnouncement() failed: %v", err)
	}

	latest, err = store.LatestAnnouncement()
	if err != nil {
		t.Fatalf("LatestAnnouncement() failed: %v", err)
	}
	if latest == nil || latest.ID != id || latest.Nickname != "bob" || latest.Score != 150 {
		t.Errorf("Unexpected latest announcement: %+v", latest)
	}
	if !latest.CreatedAt.Equal(at.Add(time.Minute)) {
		t.Errorf("Expected timestamp %v, got %v", at.Add(time.Minute), latest.CreatedAt)
	}
}
