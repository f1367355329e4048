package core_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// oneOff returns the solved 2x2 layout with (0,1) turned so that three more
// rotations are needed.
func oneOff() *core.Grid {
	layout := solved2x2()
	layout[0][1] = c0
	return core.MustGrid(layout)
}

func waitOutcome(t *testing.T, s *core.Session) core.SubmitOutcome {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if o, ok := s.Outcome(); ok {
			return o
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for submit outcome")
	return core.SubmitOutcome{}
}

func TestSessionSolveSubmitsElapsedSeconds(t *testing.T) {
	clock := newClock()
	var calls atomic.Int32
	var gotElapsed atomic.Int32

	sub := core.SubmitFunc(func(ctx context.Context, elapsed int) (string, error) {
		calls.Add(1)
		gotElapsed.Store(int32(elapsed))
		return "/game", nil
	})

	s := core.NewSession(oneOff(), core.WithClock(clock.Now), core.WithSubmitter(sub))
	defer s.Close()

	if s.Status() != core.StatusInProgress {
		t.Fatalf("expected InProgress, got %v", s.Status())
	}

	for i := 0; i < 2; i++ {
		res, err := s.Rotate(core.C(0, 1))
		if err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}
		if res.Solved {
			t.Fatalf("solved too early after rotation %d", i+1)
		}
	}

	clock.Advance(7900 * time.Millisecond)
	res, err := s.Rotate(core.C(0, 1))
	if err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}
	if !res.Solved {
		t.Fatal("expected the third rotation to solve the puzzle")
	}
	if res.ElapsedSeconds != 7 {
		t.Errorf("expected 7 elapsed seconds, got %d", res.ElapsedSeconds)
	}
	if s.Status() != core.StatusSolved {
		t.Errorf("expected Solved, got %v", s.Status())
	}

	o := waitOutcome(t, s)
	if o.Err != nil {
		t.Errorf("unexpected submit error: %v", o.Err)
	}
	if o.Next != "/game" {
		t.Errorf("expected next /game, got %q", o.Next)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 submit call, got %d", calls.Load())
	}
	if gotElapsed.Load() != 7 {
		t.Errorf("submitter got %d seconds, want 7", gotElapsed.Load())
	}
}

func TestSessionLocksWhenSolved(t *testing.T) {
	s := core.NewSession(core.MustGrid(solved2x2()))
	defer s.Close()

	if !s.Solved() {
		t.Fatal("already-solved layout should start Solved")
	}

	before := s.Grid().Clone()
	_, err := s.Rotate(core.C(1, 1))
	if !errors.Is(err, core.ErrSessionSolved) {
		t.Errorf("expected ErrSessionSolved, got %v", err)
	}
	if !s.Grid().Equal(before) {
		t.Error("solved board must not change")
	}
}

func TestSessionSingleCellSolvedImmediately(t *testing.T) {
	var calls atomic.Int32
	sub := core.SubmitFunc(func(ctx context.Context, elapsed int) (string, error) {
		calls.Add(1)
		return "", nil
	})

	s := core.NewSession(core.MustGrid([][]core.Block{{v0}}), core.WithSubmitter(sub))
	defer s.Close()

	if !s.Solved() {
		t.Fatal("1x1 puzzle should be solved on load")
	}
	o := waitOutcome(t, s)
	if o.ElapsedSeconds != 0 {
		t.Errorf("expected 0 seconds, got %d", o.ElapsedSeconds)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 submit call, got %d", calls.Load())
	}
}

func TestSessionSubmitFailureSurfaces(t *testing.T) {
	boom := errors.New("store down")
	sub := core.SubmitFunc(func(ctx context.Context, elapsed int) (string, error) {
		return "", boom
	})

	s := core.NewSession(oneOff(), core.WithSubmitter(sub))
	defer s.Close()

	for i := 0; i < 3; i++ {
		if _, err := s.Rotate(core.C(0, 1)); err != nil {
			t.Fatalf("Rotate failed: %v", err)
		}
	}

	o := waitOutcome(t, s)
	if !errors.Is(o.Err, boom) {
		t.Errorf("expected submit error, got %v", o.Err)
	}
	if !s.Solved() {
		t.Error("session stays Solved when submit fails")
	}
}

func TestSessionRotateOutOfRange(t *testing.T) {
	s := core.NewSession(oneOff())
	defer s.Close()

	_, err := s.Rotate(core.C(3, 3))
	if !errors.Is(err, core.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if s.Status() != core.StatusInProgress {
		t.Errorf("status changed to %v", s.Status())
	}
}

func TestSessionOutcomeNonBlocking(t *testing.T) {
	release := make(chan struct{})
	sub := core.SubmitFunc(func(ctx context.Context, elapsed int) (string, error) {
		<-release
		return "next", nil
	})

	s := core.NewSession(core.MustGrid([][]core.Block{{h0}}), core.WithSubmitter(sub))
	defer s.Close()

	if _, ok := s.Outcome(); ok {
		t.Fatal("outcome should not be ready before the submitter returns")
	}
	close(release)
	o := waitOutcome(t, s)
	if o.Next != "next" {
		t.Errorf("expected next, got %q", o.Next)
	}
}

func TestSessionCloseCancelsSubmit(t *testing.T) {
	sub := core.SubmitFunc(func(ctx context.Context, elapsed int) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	s := core.NewSession(core.MustGrid([][]core.Block{{h0}}), core.WithSubmitter(sub))
	s.Close()

	o := waitOutcome(t, s)
	if !errors.Is(o.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", o.Err)
	}
}

func TestSessionCellsReflectLit(t *testing.T) {
	s := core.NewSession(oneOff())
	defer s.Close()

	cells := s.Cells()
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	for _, cell := range cells {
		if cell.Lit != s.Lit().Contains(cell.Coord) {
			t.Errorf("cell %v lit flag mismatch", cell.Coord)
		}
		want, _ := cell.Block.Connections()
		if cell.Open != want {
			t.Errorf("cell %v: expected openings %v, got %v", cell.Coord, want, cell.Open)
		}
	}
	if !cells[0].Lit {
		t.Error("origin cell must be lit")
	}
}

func TestSessionElapsedFreezesOnSolve(t *testing.T) {
	clock := newClock()
	s := core.NewSession(oneOff(), core.WithClock(clock.Now))
	defer s.Close()

	clock.Advance(3 * time.Second)
	if s.Elapsed() != 3*time.Second {
		t.Errorf("expected 3s elapsed, got %v", s.Elapsed())
	}
	for i := 0; i < 3; i++ {
		_, _ = s.Rotate(core.C(0, 1))
	}
	clock.Advance(time.Minute)
	if s.Elapsed() != 3*time.Second {
		t.Errorf("elapsed should freeze at solve, got %v", s.Elapsed())
	}
}
