package core

import "fmt"

// Coord represents a cell position on the grid.
// Row increases downward, Col increases to the right.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Origin is the flood-fill seed.
var Origin = Coord{}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns a new Coord one step in the given direction.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// DirTo returns the direction from c to an orthogonally adjacent coordinate.
// The second result is false when other is not a neighbor.
func (c Coord) DirTo(other Coord) (Dir, bool) {
	for _, d := range AllDirs {
		if c.Step(d) == other {
			return d, true
		}
	}
	return 0, false
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
