package core

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultScrambleRatio is the share of blocks turned once after building.
const DefaultScrambleRatio = 0.65

// GenParams configures puzzle generation.
type GenParams struct {
	Difficulty    Difficulty
	Size          int
	ScrambleRatio float64 // Share of blocks rotated once (0-1)
}

// DefaultGenParams returns the parameters used by the game when nothing is configured.
func DefaultGenParams() GenParams {
	return GenParams{
		Difficulty:    DifficultyEasy,
		Size:          10,
		ScrambleRatio: DefaultScrambleRatio,
	}
}

// BuildFromPath lays pipes along a Hamiltonian path so that the resulting
// grid is solved. Endpoints get a straight block facing their only neighbor.
func BuildFromPath(p Path) (*Grid, error) {
	n := int(math.Sqrt(float64(len(p))))
	if !IsChainPath(p, n) {
		return nil, fmt.Errorf("%w: path of %d cells is not a chain", ErrInvalidLayout, len(p))
	}

	layout := make([][]Block, n)
	for r := range layout {
		layout[r] = make([]Block, n)
	}

	if n == 1 {
		layout[0][0] = B(BlockVertical, 0)
		return NewGrid(n, layout)
	}

	for i, c := range p {
		var open DirSet
		if i > 0 {
			d, _ := c.DirTo(p[i-1])
			open = open.With(d)
		}
		if i < len(p)-1 {
			d, _ := c.DirTo(p[i+1])
			open = open.With(d)
		}
		if open.Len() == 1 {
			// Endpoint: extend straight through.
			d := open.Dirs()[0]
			open = open.With(d.Opposite())
		}
		b, ok := BlockFor(open)
		if !ok {
			return nil, fmt.Errorf("%w: no block opens %v at %v", ErrInvalidLayout, open, c)
		}
		layout[c.Row][c.Col] = b
	}
	return NewGrid(n, layout)
}

// Scramble rotates int(N²·ratio) distinct, randomly chosen blocks a quarter
// turn each and returns how many were turned.
func Scramble(g *Grid, ratio float64, rng *rand.Rand) int {
	if ratio <= 0 {
		return 0
	}
	if ratio > 1 {
		ratio = 1
	}
	order := rng.Perm(g.CellCount())
	k := int(float64(len(order)) * ratio)
	for _, i := range order[:k] {
		g.blocks[i] = g.blocks[i].Rotated()
	}
	return k
}

// Generate builds a solved puzzle for p.Difficulty and scrambles it.
func Generate(p GenParams, rng *rand.Rand) (*Grid, error) {
	if p.Size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidLayout, p.Size)
	}
	g, err := BuildFromPath(PathFor(p.Difficulty, p.Size, rng))
	if err != nil {
		return nil, fmt.Errorf("generate %s %dx%d: %w", p.Difficulty, p.Size, p.Size, err)
	}
	Scramble(g, p.ScrambleRatio, rng)
	return g, nil
}
