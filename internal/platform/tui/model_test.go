package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
	"github.com/vovakirdan/lightemup/internal/registry"
	"github.com/vovakirdan/lightemup/internal/storage"
)

// countingGame ends its run after a fixed number of steps.
type countingGame struct {
	resets  int
	steps   int
	endAt   int
	clicks  []core.Point
	resized [2]int
	closed  bool
}

func (g *countingGame) ID() string               { return "counting" }
func (g *countingGame) Title() string            { return "Counting" }
func (g *countingGame) Reset(core.RuntimeConfig) { g.resets++; g.steps = 0 }
func (g *countingGame) Render(dst *core.Screen)  { dst.Clear() }
func (g *countingGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *countingGame) Close() error             { g.closed = true; return nil }
func (g *countingGame) State() core.GameState {
	return core.GameState{Score: g.steps, GameOver: g.steps >= g.endAt}
}
func (g *countingGame) Step(in core.InputFrame) core.StepResult {
	g.clicks = append(g.clicks, in.Clicks...)
	if g.steps < g.endAt {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openTestStore(t)
	game := &countingGame{endAt: 3}
	cfg := core.DefaultConfig()
	cfg.Player = "ann"

	m := NewModel(game, registry.Services{}, store, cfg)
	m.Init()
	for i := 0; i < 6; i++ {
		m = update(m, TickMsg{})
	}

	scores, err := store.TopScores("counting", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected exactly one saved score, got %d", len(scores))
	}
	if scores[0].Score != 3 || scores[0].Nickname != "ann" {
		t.Errorf("Unexpected saved score: %+v", scores[0])
	}
}

func TestModelClicksReachGame(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, registry.Services{}, nil, core.DefaultConfig())
	m.Init()

	m = update(m, tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(m, TickMsg{})

	if len(game.clicks) != 1 || game.clicks[0] != (core.Point{X: 5, Y: 6}) {
		t.Errorf("Expected click at (5,6), got %v", game.clicks)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, registry.Services{}, nil, core.DefaultConfig())
	m.Init()
	m = update(m, TickMsg{})

	m = update(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if game.resets != 1 {
		t.Errorf("Resize must not reset a resizable game, got %d resets", game.resets)
	}
	if game.resized != [2]int{120, 40} {
		t.Errorf("Expected Resize(120, 40), got %v", game.resized)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("Screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackClosesGame(t *testing.T) {
	game := &countingGame{endAt: 100}
	m := NewModel(game, registry.Services{}, nil, core.DefaultConfig())
	m.Init()

	m = update(m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("Esc should return to the menu")
	}
	if !game.closed {
		t.Error("Leaving should close the game")
	}
	if _, cmd := m.Update(TickMsg{}); cmd != nil {
		t.Error("Ticks should stop after leaving")
	}
}

func TestModelAttachesServices(t *testing.T) {
	store := openTestStore(t)
	cfg := config.DefaultLightEmUpConfig()
	board := leaderboard.NewService(store, cfg.Scoring)
	game := lightemup.New(leaderboard.ModeTraining, lightemup.WithPool(levels.NewPool(1, cfg.Puzzle.ScrambleRatio)))

	rc := core.DefaultConfig()
	rc.Player = "ann"
	rc.Size = 5
	m := NewModel(game, registry.Services{Leaderboard: board, Config: cfg}, store, rc)
	m.Init()
	m = update(m, TickMsg{})

	if snap := game.Snapshot(); snap.Size != 5 || snap.Phase != lightemup.PhasePlaying {
		t.Errorf("Unexpected game after Init: %+v", snap)
	}
	// The game records its own results.
	if scores, _ := store.TopScores(game.ID(), 10); len(scores) != 0 {
		t.Errorf("Model must not save scores for reporting games, got %d", len(scores))
	}
}
