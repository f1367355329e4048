package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned for coordinates outside the grid.
	ErrIndexOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidLayout is returned when a layout is not a full square of blocks.
	ErrInvalidLayout = errors.New("invalid layout")
)

// Grid is the square puzzle board.
// Blocks are stored in row-major order: index = row*N + col.
type Grid struct {
	n      int
	blocks []Block
}

// NewGrid creates a grid of the given size from a row-major layout.
// Every row must contain exactly size blocks of a known type.
func NewGrid(size int, layout [][]Block) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidLayout, size)
	}
	if len(layout) != size {
		return nil, fmt.Errorf("%w: %d rows for size %d", ErrInvalidLayout, len(layout), size)
	}

	g := &Grid{
		n:      size,
		blocks: make([]Block, 0, size*size),
	}
	for row, blocks := range layout {
		if len(blocks) != size {
			return nil, fmt.Errorf("%w: row %d has %d blocks, want %d",
				ErrInvalidLayout, row, len(blocks), size)
		}
		for col, b := range blocks {
			if !b.Type.Valid() {
				return nil, fmt.Errorf("block %v: %w: %d", C(row, col), ErrInvalidBlockType, b.Type)
			}
			g.blocks = append(g.blocks, B(b.Type, b.Orientation))
		}
	}
	return g, nil
}

// MustGrid is like NewGrid but panics on error. Intended for tests and fixtures.
func MustGrid(layout [][]Block) *Grid {
	g, err := NewGrid(len(layout), layout)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns N for an N×N grid.
func (g *Grid) Size() int {
	return g.n
}

// CellCount returns N².
func (g *Grid) CellCount() int {
	return g.n * g.n
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.n + c.Col
}

// coordAt converts a flat array index back to a coordinate.
func (g *Grid) coordAt(i int) Coord {
	return Coord{Row: i / g.n, Col: i % g.n}
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.n && c.Col >= 0 && c.Col < g.n
}

// Get returns the block at the given coordinate.
func (g *Grid) Get(c Coord) (Block, error) {
	if !g.InBounds(c) {
		return Block{}, fmt.Errorf("get %v on %dx%d grid: %w", c, g.n, g.n, ErrIndexOutOfRange)
	}
	return g.blocks[g.index(c)], nil
}

// Rotate turns the block at c a quarter clockwise.
func (g *Grid) Rotate(c Coord) error {
	if !g.InBounds(c) {
		return fmt.Errorf("rotate %v on %dx%d grid: %w", c, g.n, g.n, ErrIndexOutOfRange)
	}
	i := g.index(c)
	g.blocks[i] = g.blocks[i].Rotated()
	return nil
}

// Connections returns the open directions of the block at c.
func (g *Grid) Connections(c Coord) (DirSet, error) {
	b, err := g.Get(c)
	if err != nil {
		return 0, err
	}
	return b.Connections()
}

// connectionsAt skips the bounds check; blocks are validated on construction.
func (g *Grid) connectionsAt(i int) DirSet {
	set, _ := g.blocks[i].Connections()
	return set
}

// Blocks returns a copy of the layout as rows.
func (g *Grid) Blocks() [][]Block {
	rows := make([][]Block, g.n)
	for r := range rows {
		rows[r] = make([]Block, g.n)
		copy(rows[r], g.blocks[r*g.n:(r+1)*g.n])
	}
	return rows
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	blocks := make([]Block, len(g.blocks))
	copy(blocks, g.blocks)
	return &Grid{n: g.n, blocks: blocks}
}

// Equal returns true if two grids have the same size and blocks.
func (g *Grid) Equal(other *Grid) bool {
	if g.n != other.n {
		return false
	}
	for i, b := range g.blocks {
		if b != other.blocks[i] {
			return false
		}
	}
	return true
}

// AllCoords returns every coordinate ordered by row then column.
func (g *Grid) AllCoords() []Coord {
	coords := make([]Coord, 0, g.CellCount())
	for i := range g.blocks {
		coords = append(coords, g.coordAt(i))
	}
	return coords
}
