package lightemup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
)

// Destinations a solved board can lead to.
const (
	DestGame           = "/game"
	DestTimeIsUp       = "/time_is_up"
	DestTrainingResult = "/show_training_result"
)

// Destination is a parsed next-destination string.
type Destination struct {
	Path           string
	Points         int
	Time           int
	PersonalRecord bool
	GlobalTop      bool
}

// ParseDestination decodes a destination returned by a submit.
func ParseDestination(next string) (Destination, error) {
	u, err := url.Parse(next)
	if err != nil {
		return Destination{}, fmt.Errorf("lightemup: bad destination %q: %w", next, err)
	}
	d := Destination{Path: u.Path}
	switch d.Path {
	case DestGame, DestTimeIsUp:
		return d, nil
	case DestTrainingResult:
	default:
		return Destination{}, fmt.Errorf("lightemup: unknown destination %q", next)
	}

	q := u.Query()
	intParam := func(key string) (int, error) {
		v := q.Get(key)
		if v == "" {
			return 0, nil
		}
		return strconv.Atoi(v)
	}
	if d.Points, err = intParam("points"); err != nil {
		return Destination{}, fmt.Errorf("lightemup: bad points in %q: %w", next, err)
	}
	if d.Time, err = intParam("time"); err != nil {
		return Destination{}, fmt.Errorf("lightemup: bad time in %q: %w", next, err)
	}
	d.PersonalRecord = q.Get("pr") == "1"
	d.GlobalTop = q.Get("gt") == "1"
	return d, nil
}

// TrainingResultURL builds the destination shown after a training solve.
func TrainingResultURL(points, elapsed int, pr, gt bool) string {
	q := url.Values{}
	q.Set("points", strconv.Itoa(points))
	q.Set("time", strconv.Itoa(elapsed))
	q.Set("pr", boolFlag(pr))
	q.Set("gt", boolFlag(gt))
	return DestTrainingResult + "?" + q.Encode()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// levelSubmit reports one solved board. It implements core.Submitter.
// result is written before SubmitSolution returns, so it is safe to read
// once the session's outcome has been received.
type levelSubmit struct {
	board      *leaderboard.Service
	scoring    config.ScoringConfig
	mode       leaderboard.Mode
	player     string
	difficulty string
	size       int
	runScore   int
	runStart   time.Time
	timeLimit  time.Duration
	now        func() time.Time

	result leaderboard.Result
}

// SubmitSolution records the solve and picks where to go next.
func (s *levelSubmit) SubmitSolution(ctx context.Context, elapsedSeconds int) (string, error) {
	solve := leaderboard.Solve{
		Player:         s.player,
		Mode:           s.mode,
		Difficulty:     s.difficulty,
		Size:           s.size,
		ElapsedSeconds: elapsedSeconds,
		RunScore:       s.runScore,
	}

	if s.board != nil {
		res, err := s.board.RecordSolve(ctx, solve)
		if err != nil {
			return "", err
		}
		s.result = res
	} else {
		points := leaderboard.Points(s.scoring, s.difficulty, s.size, elapsedSeconds)
		s.result = leaderboard.Result{Points: points, RunScore: s.runScore + points}
	}

	if s.mode == leaderboard.ModeTraining {
		return TrainingResultURL(s.result.Points, elapsedSeconds, s.result.PersonalRecord, s.result.GlobalTop), nil
	}
	if s.now().Sub(s.runStart) >= s.timeLimit {
		return DestTimeIsUp, nil
	}
	return DestGame, nil
}
