// Package storage provides SQLite-based persistence for players, puzzle
// results and leaderboard announcements.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Player is a registered nickname and its best run score.
type Player struct {
	ID        int64
	Nickname  string
	BestScore int
	CreatedAt time.Time
}

// ScoreEntry represents a single recorded result.
type ScoreEntry struct {
	ID          int64
	GameID      string
	Nickname    string
	Score       int
	ElapsedSecs int
	Difficulty  string
	Size        int
	CreatedAt   time.Time
}

// Announcement is a broadcast message such as a new leader.
type Announcement struct {
	ID        int64
	Message   string
	Nickname  string
	Score     int
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nickname TEXT NOT NULL UNIQUE,
			best_score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_players_best ON players(best_score DESC);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			nickname TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			difficulty TEXT NOT NULL DEFAULT '',
			size INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS announcements (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT NOT NULL,
			nickname TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// EnsurePlayer returns the player with the given nickname, creating it if needed.
func (s *Store) EnsurePlayer(nickname string) (Player, error) {
	if nickname == "" {
		return Player{}, errors.New("storage: empty nickname")
	}
	if _, err := s.db.Exec(
		"INSERT OR IGNORE INTO players (nickname) VALUES (?)",
		nickname,
	); err != nil {
		return Player{}, fmt.Errorf("storage: cannot create player: %w", err)
	}

	p, err := s.PlayerByNickname(nickname)
	if err != nil {
		return Player{}, err
	}
	if p == nil {
		return Player{}, fmt.Errorf("storage: player %q vanished", nickname)
	}
	return *p, nil
}

// PlayerByNickname looks up a player. Returns nil if not found.
func (s *Store) PlayerByNickname(nickname string) (*Player, error) {
	var p Player
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, nickname, best_score, created_at FROM players WHERE nickname = ?",
		nickname,
	).Scan(&p.ID, &p.Nickname, &p.BestScore, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// UpdateBestScore raises a player's best score.
// Returns true if score beat the stored best.
func (s *Store) UpdateBestScore(nickname string, score int) (bool, error) {
	res, err := s.db.Exec(
		"UPDATE players SET best_score = ? WHERE nickname = ? AND best_score < ?",
		score, nickname, score,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot update best score: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	return n > 0, nil
}

// TopPlayers returns players ordered by best score descending.
func (s *Store) TopPlayers(limit int) ([]Player, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, nickname, best_score, created_at
		 FROM players
		 ORDER BY best_score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Nickname, &p.BestScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return players, nil
}

// TopPlayer returns the player with the highest best score, or nil if there are none.
func (s *Store) TopPlayer() (*Player, error) {
	players, err := s.TopPlayers(1)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, nil
	}
	return &players[0], nil
}

// PlayerRank returns the 1-based position of the player by best score.
func (s *Store) PlayerRank(nickname string) (int, error) {
	var rank int
	err := s.db.QueryRow(
		`SELECT COUNT(*) + 1 FROM players
		 WHERE best_score > (SELECT best_score FROM players WHERE nickname = ?)`,
		nickname,
	).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query rank: %w", err)
	}
	return rank, nil
}

// SaveScore records a result. Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (game_id, nickname, score, elapsed_secs, difficulty, size)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.GameID, e.Nickname, e.Score, e.ElapsedSecs, e.Difficulty, e.Size,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// queryScores runs a score query and scans every row.
func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Nickname, &e.Score, &e.ElapsedSecs,
			&e.Difficulty, &e.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, game_id, nickname, score, elapsed_secs, difficulty, size, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, game_id, nickname, score, elapsed_secs, difficulty, size, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SaveAnnouncement stores an announcement. A zero CreatedAt means now.
func (s *Store) SaveAnnouncement(a Announcement) (int64, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	res, err := s.db.Exec(
		"INSERT INTO announcements (message, nickname, score, created_at) VALUES (?, ?, ?, ?)",
		a.Message, a.Nickname, a.Score, a.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save announcement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// LatestAnnouncement returns the most recent announcement, or nil if there are none.
func (s *Store) LatestAnnouncement() (*Announcement, error) {
	var a Announcement
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, message, nickname, score, created_at
		 FROM announcements
		 ORDER BY id DESC
		 LIMIT 1`,
	).Scan(&a.ID, &a.Message, &a.Nickname, &a.Score, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query announcement: %w", err)
	}
	a.CreatedAt = parseTime(createdAt)
	return &a, nil
}
