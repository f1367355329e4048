package leaderboard

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/storage"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	svc := NewService(store, config.DefaultLightEmUpConfig().Scoring,
		WithClock(func() time.Time { return fixedNow }))
	return svc, store
}

func TestPoints(t *testing.T) {
	scoring := config.DefaultLightEmUpConfig().Scoring
	tests := []struct {
		difficulty string
		size       int
		elapsed    int
		want       int
	}{
		{"easy", 10, 10, 50},
		{"hard", 10, 0, 272},
		{"hard", 10, 1, 272},
		{"medium", 20, 30, 100},
		{"unknown", 10, 90, 10},
		{"easy", 5, 100000, 0},
	}
	for _, tt := range tests {
		if got := Points(scoring, tt.difficulty, tt.size, tt.elapsed); got != tt.want {
			t.Errorf("Points(%s, %d, %d) = %d, want %d", tt.difficulty, tt.size, tt.elapsed, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Competition"); err != nil || m != ModeCompetition {
		t.Errorf("ParseMode(Competition) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeTraining {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("arena"); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if ModeTraining.GameID() == ModeCompetition.GameID() {
		t.Error("Modes must record under different game IDs")
	}
}

func TestRecordSolveRecords(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	var announced []Announcement
	svc.OnAnnouncement(func(a Announcement) { announced = append(announced, a) })

	res, err := svc.RecordSolve(ctx, Solve{Player: "ann", Difficulty: "easy", Size: 10, ElapsedSeconds: 10})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	if res.Points != 50 || res.RunScore != 50 || !res.PersonalRecord || !res.GlobalTop {
		t.Errorf("first solve: %+v", res)
	}

	res, _ = svc.RecordSolve(ctx, Solve{Player: "bob", Difficulty: "easy", Size: 10, ElapsedSeconds: 40})
	if res.Points != 20 || !res.PersonalRecord || res.GlobalTop {
		t.Errorf("bob's solve: %+v", res)
	}

	res, _ = svc.RecordSolve(ctx, Solve{Player: "ann", Difficulty: "easy", Size: 10, ElapsedSeconds: 90, RunScore: 50})
	if res.RunScore != 60 || !res.PersonalRecord || !res.GlobalTop {
		t.Errorf("ann's second solve: %+v", res)
	}

	if len(announced) != 2 {
		t.Fatalf("Expected 2 announcements, got %d", len(announced))
	}
	if announced[1].Nickname != "ann" || announced[1].Score != 60 || announced[1].Message != LeaderMessage {
		t.Errorf("Unexpected announcement: %+v", announced[1])
	}
	if announced[1].Timestamp != fixedNow.Unix() {
		t.Errorf("Expected timestamp %d, got %d", fixedNow.Unix(), announced[1].Timestamp)
	}

	scores, err := store.TopScores(ModeTraining.GameID(), 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 training scores, got %d", len(scores))
	}
}

func TestRecordSolveCompetitionDoesNotStoreBoards(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.RecordSolve(context.Background(), Solve{
		Player: "ann", Mode: ModeCompetition, Difficulty: "hard", Size: 8, ElapsedSeconds: 12,
	})
	if err != nil {
		t.Fatalf("RecordSolve() failed: %v", err)
	}
	scores, _ := store.AllScores(ModeCompetition.GameID())
	if len(scores) != 0 {
		t.Errorf("Competition boards are recorded by FinishRun, got %d rows", len(scores))
	}
}

func TestFinishRun(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.RecordSolve(ctx, Solve{Player: "ann", Difficulty: "easy", Size: 10, ElapsedSeconds: 10})

	sum, err := svc.FinishRun(ctx, "bob", 100)
	if err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	if sum.Position != 1 || !sum.GlobalTop || sum.Score != 100 {
		t.Errorf("Unexpected summary: %+v", sum)
	}

	sum, _ = svc.FinishRun(ctx, "cid", 10)
	if sum.Position != 3 || sum.GlobalTop {
		t.Errorf("Unexpected summary for cid: %+v", sum)
	}

	pos, err := svc.Position(ctx, "ann")
	if err != nil || pos != 2 {
		t.Errorf("Position(ann) = %d, %v", pos, err)
	}

	top, err := svc.TopPlayers(ctx, 10)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(top) != 3 || top[0].Nickname != "bob" {
		t.Errorf("Unexpected leaderboard: %+v", top)
	}
}

func TestPoll(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.Poll(ctx)
	if err != nil {
		t.Fatalf("Poll() failed: %v", err)
	}
	if p.HasAnnouncement || p.Announcement != nil {
		t.Errorf("Expected empty poll, got %+v", p)
	}

	svc.FinishRun(ctx, "ann", 42)

	p, err = svc.Poll(ctx)
	if err != nil {
		t.Fatalf("Poll() failed: %v", err)
	}
	if !p.HasAnnouncement || p.Announcement.Nickname != "ann" || p.Announcement.Score != 42 {
		t.Errorf("Unexpected poll: %+v", p)
	}
}

func TestZeroRunIsNotALeader(t *testing.T) {
	svc, _ := newTestService(t)

	sum, err := svc.FinishRun(context.Background(), "ann", 0)
	if err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	if sum.GlobalTop {
		t.Error("An empty run must not be announced")
	}
}

func TestCanceledContext(t *testing.T) {
	svc, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.RecordSolve(ctx, Solve{Player: "ann"}); !errors.Is(err, context.Canceled) {
		t.Errorf("RecordSolve: expected context.Canceled, got %v", err)
	}
	if _, err := svc.FinishRun(ctx, "ann", 1); !errors.Is(err, context.Canceled) {
		t.Errorf("FinishRun: expected context.Canceled, got %v", err)
	}
	if _, err := svc.Poll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Poll: expected context.Canceled, got %v", err)
	}
}

func TestEmptyPlayer(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.RecordSolve(context.Background(), Solve{}); err == nil {
		t.Error("Expected error for empty player")
	}
}
