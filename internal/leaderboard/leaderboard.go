// Package leaderboard scores solved boards, tracks personal and global
// records, and publishes "new leader" announcements.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/storage"
)

// LeaderMessage is the text of the announcement published for a new global top.
const LeaderMessage = "New leader!"

// Mode selects how a run is played and recorded.
type Mode uint8

const (
	ModeTraining Mode = iota
	ModeCompetition
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeTraining:
		return "training"
	case ModeCompetition:
		return "competition"
	default:
		return "unknown"
	}
}

// GameID returns the score table key used for the mode.
func (m Mode) GameID() string {
	if m == ModeCompetition {
		return "lightemup_competition"
	}
	return "lightemup"
}

// ParseMode parses "training" or "competition".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "training", "":
		return ModeTraining, nil
	case "competition":
		return ModeCompetition, nil
	default:
		return 0, fmt.Errorf("unknown mode: %q", s)
	}
}

// Solve describes one solved board.
type Solve struct {
	Player         string
	Mode           Mode
	Difficulty     string
	Size           int
	ElapsedSeconds int
	RunScore       int // Run total before this board
}

// Result is what a solve earned.
type Result struct {
	Points         int
	RunScore       int
	PersonalRecord bool
	GlobalTop      bool
}

// RunSummary closes a competition run.
type RunSummary struct {
	Player    string
	Score     int
	Position  int
	GlobalTop bool
}

// Announcement is the wire form of a stored announcement.
type Announcement struct {
	ID        int64  `json:"-"`
	Timestamp int64  `json:"timestamp"`
	Nickname  string `json:"nickname"`
	Score     int    `json:"score"`
	Message   string `json:"message"`
}

// Poll is the answer to an announcement poll.
type Poll struct {
	HasAnnouncement bool          `json:"has_announcement"`
	Announcement    *Announcement `json:"announcement,omitempty"`
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service records results in a Store. Record operations are serialized so
// that record and leader checks see a consistent table.
type Service struct {
	store   *storage.Store
	scoring config.ScoringConfig
	now     func() time.Time

	mu        sync.Mutex
	listeners []func(Announcement)
}

// NewService creates a leaderboard over store.
func NewService(store *storage.Store, scoring config.ScoringConfig, opts ...Option) *Service {
	s := &Service{
		store:   store,
		scoring: scoring,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnAnnouncement registers fn to be called after every new announcement.
// fn runs on the recording goroutine and must not block.
func (s *Service) OnAnnouncement(fn func(Announcement)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Points returns the score earned for solving a size×size board of the
// given difficulty in elapsed seconds. Never negative.
func (s *Service) Points(difficulty string, size, elapsed int) int {
	return Points(s.scoring, difficulty, size, elapsed)
}

// Points computes mult·size·100 / (offset + max(1, elapsed)).
func Points(scoring config.ScoringConfig, difficulty string, size, elapsed int) int {
	if elapsed < 1 {
		elapsed = 1
	}
	mult := scoring.Multiplier(difficulty)
	earned := int(float64(mult*size) * 100 / float64(scoring.TimeOffset+elapsed))
	if earned < 0 {
		return 0
	}
	return earned
}

// Register makes sure a nickname exists.
func (s *Service) Register(ctx context.Context, nickname string) (storage.Player, error) {
	if err := ctx.Err(); err != nil {
		return storage.Player{}, err
	}
	return s.store.EnsurePlayer(nickname)
}

// RecordSolve scores a solved board and updates the player's best with the
// new run total. Training solves are also kept in the score table.
func (s *Service) RecordSolve(ctx context.Context, sv Solve) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if sv.Player == "" {
		return Result{}, errors.New("leaderboard: empty player")
	}

	res := Result{Points: s.Points(sv.Difficulty, sv.Size, sv.ElapsedSeconds)}
	res.RunScore = sv.RunScore + res.Points

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.EnsurePlayer(sv.Player); err != nil {
		return res, fmt.Errorf("leaderboard: %w", err)
	}
	if sv.Mode == ModeTraining {
		if _, err := s.store.SaveScore(storage.ScoreEntry{
			GameID:      sv.Mode.GameID(),
			Nickname:    sv.Player,
			Score:       res.Points,
			ElapsedSecs: sv.ElapsedSeconds,
			Difficulty:  sv.Difficulty,
			Size:        sv.Size,
		}); err != nil {
			return res, fmt.Errorf("leaderboard: %w", err)
		}
	}

	pr, gt, err := s.raiseLocked(sv.Player, res.RunScore)
	if err != nil {
		return res, err
	}
	res.PersonalRecord, res.GlobalTop = pr, gt
	return res, nil
}

// FinishRun stores the final score of a competition run and returns the
// player's leaderboard position.
func (s *Service) FinishRun(ctx context.Context, player string, score int) (RunSummary, error) {
	if err := ctx.Err(); err != nil {
		return RunSummary{}, err
	}
	if player == "" {
		return RunSummary{}, errors.New("leaderboard: empty player")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.EnsurePlayer(player); err != nil {
		return RunSummary{}, fmt.Errorf("leaderboard: %w", err)
	}
	if _, err := s.store.SaveScore(storage.ScoreEntry{
		GameID:   ModeCompetition.GameID(),
		Nickname: player,
		Score:    score,
	}); err != nil {
		return RunSummary{}, fmt.Errorf("leaderboard: %w", err)
	}

	_, gt, err := s.raiseLocked(player, score)
	if err != nil {
		return RunSummary{}, err
	}
	pos, err := s.store.PlayerRank(player)
	if err != nil {
		return RunSummary{}, fmt.Errorf("leaderboard: %w", err)
	}
	return RunSummary{Player: player, Score: score, Position: pos, GlobalTop: gt}, nil
}

// raiseLocked updates the player's best and announces a new global top.
// A global top is a score above the best of the leader before the update.
func (s *Service) raiseLocked(player string, score int) (personal, global bool, err error) {
	top, err := s.store.TopPlayer()
	if err != nil {
		return false, false, fmt.Errorf("leaderboard: %w", err)
	}
	personal, err = s.store.UpdateBestScore(player, score)
	if err != nil {
		return false, false, fmt.Errorf("leaderboard: %w", err)
	}
	if top != nil && score <= top.BestScore {
		return personal, false, nil
	}
	if score <= 0 {
		return personal, false, nil
	}

	a := storage.Announcement{
		Message:   LeaderMessage,
		Nickname:  player,
		Score:     score,
		CreatedAt: s.now(),
	}
	id, err := s.store.SaveAnnouncement(a)
	if err != nil {
		return personal, true, fmt.Errorf("leaderboard: %w", err)
	}
	a.ID = id
	out := fromStorage(a)
	for _, fn := range s.listeners {
		fn(out)
	}
	return personal, true, nil
}

// Poll returns the latest announcement, if any.
func (s *Service) Poll(ctx context.Context) (Poll, error) {
	if err := ctx.Err(); err != nil {
		return Poll{}, err
	}
	a, err := s.store.LatestAnnouncement()
	if err != nil {
		return Poll{}, fmt.Errorf("leaderboard: %w", err)
	}
	if a == nil {
		return Poll{}, nil
	}
	out := fromStorage(*a)
	return Poll{HasAnnouncement: true, Announcement: &out}, nil
}

// TopPlayers returns players ordered by best score.
func (s *Service) TopPlayers(ctx context.Context, limit int) ([]storage.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.TopPlayers(limit)
}

// Position returns the 1-based rank of player by best score.
func (s *Service) Position(ctx context.Context, player string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.store.PlayerRank(player)
}

func fromStorage(a storage.Announcement) Announcement {
	return Announcement{
		ID:        a.ID,
		Timestamp: a.CreatedAt.Unix(),
		Nickname:  a.Nickname,
		Score:     a.Score,
		Message:   a.Message,
	}
}
