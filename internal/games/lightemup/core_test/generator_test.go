package core_test

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
)

func TestPathsAreChains(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for n := 1; n <= 12; n++ {
		for _, d := range core.AllDifficulties {
			p := core.PathFor(d, n, rng)
			if !core.IsChainPath(p, n) {
				t.Errorf("%s path for size %d is not a chain", d, n)
			}
		}
		if !core.IsChainPath(core.ColumnSnakePath(n), n) {
			t.Errorf("column snake for size %d is not a chain", n)
		}
	}
}

func TestHilbertPath(t *testing.T) {
	if core.HilbertPath(6) != nil {
		t.Error("Hilbert path requires a power-of-two size")
	}
	p := core.HilbertPath(8)
	if !core.IsChainPath(p, 8) {
		t.Fatal("Hilbert path is not a chain")
	}
	if p[0] != core.Origin {
		t.Errorf("Hilbert path should start at the origin, got %v", p[0])
	}
}

func TestHardPathIsNotBasicSnake(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := core.HardPath(8, rng)
	if core.IsBasicSnake(p, 8) {
		t.Error("hard path should not be a plain snake")
	}
}

func TestIsChainPathRejects(t *testing.T) {
	testCases := []struct {
		name string
		path core.Path
		n    int
	}{
		{"too short", core.Path{core.C(0, 0), core.C(0, 1)}, 2},
		{"repeat", core.Path{core.C(0, 0), core.C(0, 1), core.C(0, 0), core.C(1, 0)}, 2},
		{"jump", core.Path{core.C(0, 0), core.C(1, 1), core.C(0, 1), core.C(1, 0)}, 2},
		{"out of range", core.Path{core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 2)}, 2},
	}

	for _, tc := range testCases {
		if core.IsChainPath(tc.path, tc.n) {
			t.Errorf("%s: expected rejection", tc.name)
		}
	}
}

func TestLocalImproveKeepsChain(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	p := core.SnailPath(9)
	orig := append(core.Path(nil), p...)

	improved := core.LocalImprove(p, 9, 200, rng)
	if !core.IsChainPath(improved, 9) {
		t.Error("LocalImprove broke the chain")
	}
	if !p.Equal(orig) {
		t.Error("LocalImprove modified its input")
	}
}

func TestBuildFromPathIsSolved(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for n := 1; n <= 10; n++ {
		for _, d := range core.AllDifficulties {
			g, err := core.BuildFromPath(core.PathFor(d, n, rng))
			if err != nil {
				t.Fatalf("BuildFromPath(%s, %d) failed: %v", d, n, err)
			}
			if !core.ComputeLit(g).Complete() {
				t.Errorf("%s puzzle of size %d is not solved before scrambling", d, n)
			}
		}
	}
}

func TestBuildFromPathRejectsBrokenPath(t *testing.T) {
	_, err := core.BuildFromPath(core.Path{core.C(0, 0), core.C(1, 1), core.C(0, 1), core.C(1, 0)})
	if err == nil {
		t.Error("expected error for a non-chain path")
	}
}

func TestScrambleCount(t *testing.T) {
	g, err := core.BuildFromPath(core.RowSnakePath(10))
	if err != nil {
		t.Fatalf("BuildFromPath failed: %v", err)
	}
	solved := g.Clone()

	k := core.Scramble(g, core.DefaultScrambleRatio, rand.New(rand.NewSource(5)))
	if k != 65 {
		t.Errorf("expected 65 rotated blocks, got %d", k)
	}

	changed := 0
	for _, c := range g.AllCoords() {
		a, _ := g.Get(c)
		b, _ := solved.Get(c)
		if a != b {
			changed++
		}
	}
	if changed != k {
		t.Errorf("expected %d changed cells, got %d", k, changed)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	params := core.DefaultGenParams()
	params.Difficulty = core.DifficultyHard
	params.Size = 7

	a, err := core.Generate(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := core.Generate(params, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("same seed should produce the same puzzle")
	}
	if a.Size() != 7 {
		t.Errorf("expected size 7, got %d", a.Size())
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, d := range core.AllDifficulties {
		got, err := core.ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := core.ParseDifficulty("insane"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}
