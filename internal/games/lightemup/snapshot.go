package lightemup

// Snapshot captures the game state for tests and replay checks.
type Snapshot struct {
	Tick           uint64
	Mode           string
	Phase          Phase
	Difficulty     string
	Size           int
	CursorRow      int
	CursorCol      int
	Lit            int
	Solved         bool
	ElapsedSeconds int
	RunScore       int
	Boards         int
	Banner         string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       g.mode.String(),
		Phase:      g.phase,
		Difficulty: g.difficulty.String(),
		Size:       g.size,
		CursorRow:  g.cursor.Row,
		CursorCol:  g.cursor.Col,
		RunScore:   g.runScore,
		Boards:     g.solved,
		Banner:     g.banner,
	}
	if g.session != nil {
		s.Lit = g.session.Lit().Len()
		s.Solved = g.session.Solved()
		s.ElapsedSeconds = g.session.ElapsedSeconds()
	}
	return s
}
