package core

// LitSet is the set of cells reachable from the origin.
// It is index-addressed over the grid it was computed from.
type LitSet struct {
	n     int
	lit   []bool
	count int
}

// Contains reports whether c is lit.
func (s LitSet) Contains(c Coord) bool {
	if c.Row < 0 || c.Row >= s.n || c.Col < 0 || c.Col >= s.n {
		return false
	}
	return s.lit[c.Row*s.n+c.Col]
}

// Len returns the number of lit cells.
func (s LitSet) Len() int {
	return s.count
}

// Complete reports whether every cell of the grid is lit.
func (s LitSet) Complete() bool {
	return s.n > 0 && s.count == s.n*s.n
}

// Coords returns the lit coordinates in row-major order.
func (s LitSet) Coords() []Coord {
	coords := make([]Coord, 0, s.count)
	for i, on := range s.lit {
		if on {
			coords = append(coords, Coord{Row: i / s.n, Col: i % s.n})
		}
	}
	return coords
}

// Equal returns true if both sets cover the same cells.
func (s LitSet) Equal(other LitSet) bool {
	if s.n != other.n || s.count != other.count {
		return false
	}
	for i := range s.lit {
		if s.lit[i] != other.lit[i] {
			return false
		}
	}
	return true
}

// Connected reports whether a and b are adjacent and both open toward each other.
// A one-sided opening does not connect.
func Connected(g *Grid, a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	d, ok := a.DirTo(b)
	if !ok {
		return false
	}
	return g.connectionsAt(g.index(a)).Has(d) && g.connectionsAt(g.index(b)).Has(d.Opposite())
}

// ComputeLit flood-fills from the origin over matching pipe connections.
// The origin is always lit, even when none of its openings connect.
// Each call walks the whole reachable set; nothing is cached between calls.
func ComputeLit(g *Grid) LitSet {
	set := LitSet{
		n:   g.n,
		lit: make([]bool, g.CellCount()),
	}
	if g.n == 0 {
		return set
	}

	stack := []Coord{Origin}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := g.index(cur)
		if set.lit[i] {
			continue
		}
		set.lit[i] = true
		set.count++

		for _, d := range AllDirs {
			next := cur.Step(d)
			if !Connected(g, cur, next) || set.lit[g.index(next)] {
				continue
			}
			stack = append(stack, next)
		}
	}

	return set
}
