// Package lightemup provides the Light 'Em Up pipe-rotation puzzle for the platform.
package lightemup

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lightemup/internal/config"
	platformcore "github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
	"github.com/vovakirdan/lightemup/internal/registry"
)

// Phase is where the player is within a run.
type Phase string

const (
	PhasePlaying    Phase = "playing"
	PhaseSubmitting Phase = "submitting"
	PhaseResult     Phase = "result"
	PhaseFinishing  Phase = "finishing"
	PhaseTimeUp     Phase = "time_up"
	PhaseError      Phase = "error"
)

const (
	cellW        = 3
	hudHeight    = 3
	bannerTime   = 5 * time.Second
	storeTimeout = 5 * time.Second
)

// Package-level puzzle pool shared by every game instance.
var (
	poolMu     sync.Mutex
	sharedPool *levels.Pool
)

// SetPool sets the puzzle pool used by games created afterwards.
func SetPool(p *levels.Pool) {
	poolMu.Lock()
	defer poolMu.Unlock()
	sharedPool = p
}

func currentPool() *levels.Pool {
	poolMu.Lock()
	defer poolMu.Unlock()
	return sharedPool
}

func init() {
	registry.Register(leaderboard.ModeTraining.GameID(), func() registry.Game {
		return New(leaderboard.ModeTraining)
	})
	registry.Register(leaderboard.ModeCompetition.GameID(), func() registry.Game {
		return New(leaderboard.ModeCompetition)
	})
}

// Option configures a Game.
type Option func(*Game)

// WithClock replaces time.Now for the game and its sessions.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithPool uses p instead of the shared pool.
func WithPool(p *levels.Pool) Option {
	return func(g *Game) { g.pool = p }
}

type finishOutcome struct {
	summary leaderboard.RunSummary
	err     error
}

// Game implements the Light 'Em Up puzzle in training or competition mode.
type Game struct {
	mode     leaderboard.Mode
	now      func() time.Time
	services registry.Services
	cfg      config.LightEmUpConfig
	logger   *log.Logger
	pool     *levels.Pool
	rng      *rand.Rand
	runtime  platformcore.RuntimeConfig

	// Puzzle choice
	player     string
	difficulty core.Difficulty
	size       int

	// Current board
	session *core.Session
	submit  *levelSubmit
	cursor  core.Coord
	phase   Phase

	// Run
	tick     uint64
	runStart time.Time
	runScore int
	solved   int
	result   Destination
	summary  leaderboard.RunSummary
	finishCh chan finishOutcome
	errMsg   string
	paused   bool

	// Layout
	screenW  int
	screenH  int
	board    platformcore.Rect
	tooSmall bool

	// Announcements
	pollCh      chan leaderboard.Poll
	polling     bool
	nextPoll    time.Time
	lastSeen    int64
	banner      string
	bannerUntil time.Time
}

// New creates a game for mode.
func New(mode leaderboard.Mode, opts ...Option) *Game {
	g := &Game{
		mode:   mode,
		now:    time.Now,
		cfg:    config.DefaultLightEmUpConfig(),
		logger: log.New(io.Discard),
		pollCh: make(chan leaderboard.Poll, 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == leaderboard.ModeCompetition {
		return "Light 'Em Up: Competition"
	}
	return "Light 'Em Up: Training"
}

// UseServices wires the leaderboard, config and logger. An unusable
// config leaves the defaults in place.
func (g *Game) UseServices(s registry.Services) {
	g.services = s
	if err := s.Config.Validate(); err == nil {
		g.cfg = s.Config
	}
	if s.Logger != nil {
		g.logger = s.Logger
	}
}

// Reset starts a new run.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	if g.session != nil {
		g.session.Close()
	}
	g.runtime = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.player = cfg.Player
	if g.player == "" {
		g.player = platformcore.DefaultConfig().Player
	}
	d, err := core.ParseDifficulty(cfg.Difficulty)
	if err != nil {
		d, err = core.ParseDifficulty(g.cfg.Puzzle.DefaultDifficulty)
		if err != nil {
			d = core.DifficultyEasy
		}
	}
	g.difficulty = d
	size := cfg.Size
	if size == 0 {
		size = g.cfg.Puzzle.DefaultSize
	}
	g.size = g.cfg.Puzzle.ClampSize(size)

	if g.pool == nil {
		g.pool = currentPool()
	}
	if g.pool == nil {
		g.pool = levels.NewPool(cfg.Seed, g.cfg.Puzzle.ScrambleRatio)
	}

	g.tick = 0
	g.runStart = g.now()
	g.runScore = 0
	g.solved = 0
	g.result = Destination{}
	g.summary = leaderboard.RunSummary{}
	g.finishCh = nil
	g.errMsg = ""
	g.paused = false

	g.loadPuzzle()
}

// loadPuzzle takes the next board from the pool and starts a session on it.
func (g *Game) loadPuzzle() {
	if g.session != nil {
		g.session.Close()
		g.session = nil
	}

	grid, err := g.pool.Take(g.difficulty, g.size)
	if err != nil {
		g.fail("cannot load puzzle", err)
		return
	}

	g.submit = &levelSubmit{
		board:      g.services.Leaderboard,
		scoring:    g.cfg.Scoring,
		mode:       g.mode,
		player:     g.player,
		difficulty: g.difficulty.String(),
		size:       g.size,
		runScore:   g.runScore,
		runStart:   g.runStart,
		timeLimit:  g.cfg.Competition.TimeLimit(),
		now:        g.now,
	}
	g.session = core.NewSession(grid,
		core.WithClock(g.now),
		core.WithSubmitter(g.submit),
	)
	g.cursor = core.C(0, 0)
	g.phase = PhasePlaying
	if g.session.Solved() {
		g.phase = PhaseSubmitting
	}
	g.calculateLayout()
}

func (g *Game) fail(msg string, err error) {
	g.logger.Error(msg, "game", g.ID(), "player", g.player, "error", err)
	g.errMsg = msg
	g.phase = PhaseError
}

// calculateLayout centers the board below the HUD, leaving a status line.
func (g *Game) calculateLayout() {
	area := platformcore.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-1)
	frame := area.Centered(g.size*cellW+2, g.size+2)
	g.tooSmall = frame.W > area.W || frame.H > area.H
	g.board = platformcore.NewRect(frame.X+1, frame.Y+1, g.size*cellW, g.size)
}

// Resize adapts the layout to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.calculateLayout()
}

// cellAt maps a screen position to a board cell.
func (g *Game) cellAt(x, y int) (core.Coord, bool) {
	if g.tooSmall || !g.board.Contains(x, y) {
		return core.Coord{}, false
	}
	return core.C(y-g.board.Y, (x-g.board.X)/cellW), true
}

// Step advances the game by one tick.
func (g *Game) Step(input platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	g.pollAnnouncements()

	if input.Has(platformcore.ActionRestart) {
		cfg := g.runtime
		cfg.Seed = g.rng.Int63()
		g.Reset(cfg)
		return platformcore.StepResult{State: g.State()}
	}
	if input.Has(platformcore.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}

	switch g.phase {
	case PhasePlaying:
		if g.mode == leaderboard.ModeCompetition && g.timeLeft() <= 0 {
			g.finishRun()
			break
		}
		if !g.paused && !g.tooSmall {
			g.handleBoardInput(input)
		}
	case PhaseSubmitting:
		if o, ok := g.session.Outcome(); ok {
			g.handleOutcome(o)
		}
	case PhaseFinishing:
		select {
		case o := <-g.finishCh:
			if o.err != nil {
				g.fail("cannot record run", o.err)
				break
			}
			g.summary = o.summary
			g.phase = PhaseTimeUp
		default:
		}
	case PhaseResult:
		if input.Has(platformcore.ActionRotate) || input.Has(platformcore.ActionClick) {
			g.runScore = 0
			g.loadPuzzle()
		}
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handleBoardInput(input platformcore.InputFrame) {
	dr, dc := 0, 0
	if input.Has(platformcore.ActionUp) {
		dr--
	}
	if input.Has(platformcore.ActionDown) {
		dr++
	}
	if input.Has(platformcore.ActionLeft) {
		dc--
	}
	if input.Has(platformcore.ActionRight) {
		dc++
	}
	g.cursor.Row = platformcore.Clamp(g.cursor.Row+dr, 0, g.size-1)
	g.cursor.Col = platformcore.Clamp(g.cursor.Col+dc, 0, g.size-1)

	if input.Has(platformcore.ActionRotate) {
		g.rotate(g.cursor)
	}
	for _, p := range input.Clicks {
		if g.phase != PhasePlaying {
			break
		}
		if c, ok := g.cellAt(p.X, p.Y); ok {
			g.cursor = c
			g.rotate(c)
		}
	}
}

func (g *Game) rotate(c core.Coord) {
	res, err := g.session.Rotate(c)
	if err != nil {
		return
	}
	if res.Solved {
		g.phase = PhaseSubmitting
	}
}

func (g *Game) handleOutcome(o core.SubmitOutcome) {
	if o.Err != nil {
		g.fail("cannot submit solution", o.Err)
		return
	}
	dest, err := ParseDestination(o.Next)
	if err != nil {
		g.fail("cannot continue", err)
		return
	}

	g.solved++
	g.runScore = g.submit.result.RunScore
	g.logger.Debug("Board solved", "game", g.ID(), "player", g.player,
		"elapsed", o.ElapsedSeconds, "points", g.submit.result.Points, "next", dest.Path)

	switch dest.Path {
	case DestGame:
		g.loadPuzzle()
	case DestTimeIsUp:
		g.finishRun()
	case DestTrainingResult:
		g.result = dest
		g.phase = PhaseResult
	}
}

// finishRun closes a competition run and records its score.
func (g *Game) finishRun() {
	if g.session != nil {
		g.session.Close()
	}
	board := g.services.Leaderboard
	if board == nil {
		g.summary = leaderboard.RunSummary{Player: g.player, Score: g.runScore}
		g.phase = PhaseTimeUp
		return
	}

	g.phase = PhaseFinishing
	ch := make(chan finishOutcome, 1)
	g.finishCh = ch
	player, score := g.player, g.runScore
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		sum, err := board.FinishRun(ctx, player, score)
		ch <- finishOutcome{summary: sum, err: err}
	}()
}

// timeLeft returns the competition time remaining.
func (g *Game) timeLeft() time.Duration {
	left := g.cfg.Competition.TimeLimit() - g.now().Sub(g.runStart)
	if left < 0 {
		return 0
	}
	return left
}

// pollAnnouncements checks the leaderboard for news every poll interval.
func (g *Game) pollAnnouncements() {
	board := g.services.Leaderboard
	if board == nil {
		return
	}
	now := g.now()

	if g.polling {
		select {
		case p := <-g.pollCh:
			g.polling = false
			if p.HasAnnouncement && p.Announcement.ID != g.lastSeen {
				g.lastSeen = p.Announcement.ID
				g.banner = fmt.Sprintf("%s %s: %d", p.Announcement.Message, p.Announcement.Nickname, p.Announcement.Score)
				g.bannerUntil = now.Add(bannerTime)
			}
		default:
		}
		return
	}

	if now.Before(g.nextPoll) {
		return
	}
	g.polling = true
	g.nextPoll = now.Add(g.cfg.Feed.PollInterval())
	ch := g.pollCh
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		p, err := board.Poll(ctx)
		if err != nil {
			p = leaderboard.Poll{}
		}
		ch <- p
	}()
}

// Close cancels background work of the current board.
func (g *Game) Close() error {
	if g.session != nil {
		g.session.Close()
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.runScore,
		GameOver: g.phase == PhaseTimeUp,
		Paused:   g.paused,
	}
}
