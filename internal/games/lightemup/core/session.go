package core

import (
	"context"
	"errors"
	"time"
)

// ErrSessionSolved is returned when rotating a board that is already solved.
var ErrSessionSolved = errors.New("puzzle already solved")

// Status is the state of a puzzle session.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusSolved
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// Submitter receives a solved puzzle's time and may answer with an opaque
// reference to where the player goes next.
type Submitter interface {
	SubmitSolution(ctx context.Context, elapsedSeconds int) (next string, err error)
}

// SubmitFunc adapts a plain function to Submitter.
type SubmitFunc func(ctx context.Context, elapsedSeconds int) (string, error)

// SubmitSolution calls f.
func (f SubmitFunc) SubmitSolution(ctx context.Context, elapsedSeconds int) (string, error) {
	return f(ctx, elapsedSeconds)
}

// SubmitOutcome is the result of the one-shot submit issued on solve.
type SubmitOutcome struct {
	ElapsedSeconds int
	Next           string
	Err            error
}

// RotateResult describes the board after a rotation.
type RotateResult struct {
	Lit            LitSet
	Solved         bool // True only on the rotation that completed the puzzle
	ElapsedSeconds int  // Set when Solved
}

// CellView is what a renderer needs for one cell.
type CellView struct {
	Coord Coord
	Block Block
	Open  DirSet
	Lit   bool
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for the start and solve times.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithSubmitter sets the collaborator notified when the puzzle is solved.
func WithSubmitter(sub Submitter) Option {
	return func(s *Session) {
		s.submitter = sub
	}
}

// WithContext sets the parent context for submit calls.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.parent = ctx
	}
}

// Session owns one puzzle attempt: the grid, its lit set, the start time and
// the InProgress/Solved status. Rotations must come from a single goroutine.
type Session struct {
	grid      *Grid
	lit       LitSet
	status    Status
	startedAt time.Time
	solvedAt  time.Time
	elapsed   int

	now       func() time.Time
	submitter Submitter
	parent    context.Context
	ctx       context.Context
	cancel    context.CancelFunc
	outcomes  chan SubmitOutcome
}

// NewSession starts a session on g. A layout that is already complete is
// solved immediately.
func NewSession(g *Grid, opts ...Option) *Session {
	s := &Session{
		grid:     g,
		now:      time.Now,
		parent:   context.Background(),
		outcomes: make(chan SubmitOutcome, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(s.parent)
	s.startedAt = s.now()
	s.lit = ComputeLit(g)
	if s.lit.Complete() {
		s.solve()
	}
	return s
}

// Rotate turns the block at c and re-evaluates the win condition.
// A solved board is locked.
func (s *Session) Rotate(c Coord) (RotateResult, error) {
	if s.status == StatusSolved {
		return RotateResult{Lit: s.lit}, ErrSessionSolved
	}
	if err := s.grid.Rotate(c); err != nil {
		return RotateResult{Lit: s.lit}, err
	}

	s.lit = ComputeLit(s.grid)
	if !s.lit.Complete() {
		return RotateResult{Lit: s.lit}, nil
	}

	s.solve()
	return RotateResult{Lit: s.lit, Solved: true, ElapsedSeconds: s.elapsed}, nil
}

// solve moves to Solved and fires the submit without waiting for it.
func (s *Session) solve() {
	s.status = StatusSolved
	s.solvedAt = s.now()
	s.elapsed = int(s.solvedAt.Sub(s.startedAt) / time.Second)
	if s.elapsed < 0 {
		s.elapsed = 0
	}

	if s.submitter == nil {
		return
	}

	sub, ctx, elapsed, out := s.submitter, s.ctx, s.elapsed, s.outcomes
	go func() {
		next, err := sub.SubmitSolution(ctx, elapsed)
		out <- SubmitOutcome{ElapsedSeconds: elapsed, Next: next, Err: err}
	}()
}

// Outcome returns the submit result if it has arrived.
func (s *Session) Outcome() (SubmitOutcome, bool) {
	select {
	case o := <-s.outcomes:
		return o, true
	default:
		return SubmitOutcome{}, false
	}
}

// Close cancels any in-flight submit.
func (s *Session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Status returns the session status.
func (s *Session) Status() Status {
	return s.status
}

// Solved reports whether the puzzle is solved.
func (s *Session) Solved() bool {
	return s.status == StatusSolved
}

// Lit returns the current lit set.
func (s *Session) Lit() LitSet {
	return s.lit
}

// Grid returns the session's grid. Callers must not mutate it directly.
func (s *Session) Grid() *Grid {
	return s.grid
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Elapsed returns the time spent so far, frozen once solved.
func (s *Session) Elapsed() time.Duration {
	if s.status == StatusSolved {
		return s.solvedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// ElapsedSeconds returns the whole seconds reported on solve, or 0 before.
func (s *Session) ElapsedSeconds() int {
	return s.elapsed
}

// Cells returns the render view of every cell in row-major order.
func (s *Session) Cells() []CellView {
	cells := make([]CellView, 0, s.grid.CellCount())
	for i, b := range s.grid.blocks {
		c := s.grid.coordAt(i)
		cells = append(cells, CellView{
			Coord: c,
			Block: b,
			Open:  s.grid.connectionsAt(i),
			Lit:   s.lit.Contains(c),
		})
	}
	return cells
}
