package core

import (
	"fmt"
	"math/rand"
	"strings"
)

// Difficulty selects how the solution path of a generated puzzle is shaped.
type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// AllDifficulties lists the presets from easiest to hardest.
var AllDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// String returns the string representation of a difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty: %q", s)
	}
}

// Path is an ordered walk over grid cells.
type Path []Coord

// RowSnakePath walks rows left to right, then right to left, alternating.
func RowSnakePath(n int) Path {
	p := make(Path, 0, n*n)
	for r := 0; r < n; r++ {
		for i := 0; i < n; i++ {
			c := i
			if r%2 == 1 {
				c = n - 1 - i
			}
			p = append(p, C(r, c))
		}
	}
	return p
}

// ColumnSnakePath walks columns top to bottom, then bottom to top, alternating.
func ColumnSnakePath(n int) Path {
	p := make(Path, 0, n*n)
	for c := 0; c < n; c++ {
		for i := 0; i < n; i++ {
			r := i
			if c%2 == 1 {
				r = n - 1 - i
			}
			p = append(p, C(r, c))
		}
	}
	return p
}

// SnailPath spirals clockwise from the origin toward the center.
func SnailPath(n int) Path {
	p := make(Path, 0, n*n)
	left, right := 0, n-1
	top, bottom := 0, n-1
	for left <= right && top <= bottom {
		for c := left; c <= right; c++ {
			p = append(p, C(top, c))
		}
		top++
		for r := top; r <= bottom; r++ {
			p = append(p, C(r, right))
		}
		right--
		if top <= bottom {
			for c := right; c >= left; c-- {
				p = append(p, C(bottom, c))
			}
			bottom--
		}
		if left <= right {
			for r := bottom; r >= top; r-- {
				p = append(p, C(r, left))
			}
			left++
		}
	}
	return p
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// hilbertPoint maps a distance along the Hilbert curve of order n to (x, y).
func hilbertPoint(n, d int) (x, y int) {
	t := d
	for s := 1; s < n; s <<= 1 {
		rx := 1 & (t / 2)
		ry := 1 & (t ^ rx)
		if ry == 0 {
			if rx == 1 {
				x = s - 1 - x
				y = s - 1 - y
			}
			x, y = y, x
		}
		x += s * rx
		y += s * ry
		t /= 4
	}
	return x, y
}

// HilbertPath returns the Hilbert curve over an n×n grid.
// It returns nil unless n is a power of two.
func HilbertPath(n int) Path {
	if !IsPowerOfTwo(n) {
		return nil
	}
	p := make(Path, 0, n*n)
	for d := 0; d < n*n; d++ {
		x, y := hilbertPoint(n, d)
		p = append(p, C(y, x))
	}
	return p
}

// IsChainPath reports whether p visits every cell of an n×n grid exactly
// once, moving one orthogonal step at a time.
func IsChainPath(p Path, n int) bool {
	if n < 1 || len(p) != n*n {
		return false
	}
	seen := make([]bool, n*n)
	for i, c := range p {
		if c.Row < 0 || c.Row >= n || c.Col < 0 || c.Col >= n {
			return false
		}
		idx := c.Row*n + c.Col
		if seen[idx] {
			return false
		}
		seen[idx] = true
		if i > 0 && p[i-1].Manhattan(c) != 1 {
			return false
		}
	}
	return true
}

// Equal returns true if both paths visit the same cells in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsBasicSnake reports whether p is the plain row or column snake.
func IsBasicSnake(p Path, n int) bool {
	return p.Equal(RowSnakePath(n)) || p.Equal(ColumnSnakePath(n))
}

// try2Opt reverses a random inner segment when the ends still join up.
func try2Opt(p Path, rng *rand.Rand) bool {
	n := len(p)
	if n < 5 {
		return false
	}
	i := 1 + rng.Intn(n-3)
	j := i + 1 + rng.Intn(n-2-i)
	if p[i-1].Manhattan(p[j]) != 1 || p[i].Manhattan(p[j+1]) != 1 {
		return false
	}
	for a, b := i, j; a < b; a, b = a+1, b-1 {
		p[a], p[b] = p[b], p[a]
	}
	return true
}

// trySegmentRelocate cuts a short inner segment and splices it in elsewhere.
func trySegmentRelocate(p Path, rng *rand.Rand) bool {
	n := len(p)
	if n < 5 {
		return false
	}
	maxLen := n - 2
	if maxLen > 8 {
		maxLen = 8
	}
	segLen := 2 + rng.Intn(maxLen-1)
	if n-segLen-1 < 1 {
		return false
	}
	start := 1 + rng.Intn(n-segLen-1)
	end := start + segLen // exclusive
	if end < n && p[start-1].Manhattan(p[end]) != 1 {
		return false
	}

	segment := append(Path(nil), p[start:end]...)
	remain := make(Path, 0, n-segLen)
	remain = append(remain, p[:start]...)
	remain = append(remain, p[end:]...)

	for attempt := 0; attempt < 30; attempt++ {
		pos := 1 + rng.Intn(len(remain)-1)
		if remain[pos-1].Manhattan(segment[0]) != 1 {
			continue
		}
		if pos < len(remain) && segment[segLen-1].Manhattan(remain[pos]) != 1 {
			continue
		}
		out := make(Path, 0, n)
		out = append(out, remain[:pos]...)
		out = append(out, segment...)
		out = append(out, remain[pos:]...)
		copy(p, out)
		return true
	}
	return false
}

// LocalImprove applies random 2-opt reversals and segment relocations that
// keep p a valid chain. The input is not modified.
func LocalImprove(p Path, n, iterations int, rng *rand.Rand) Path {
	if !IsChainPath(p, n) {
		return p
	}
	best := append(Path(nil), p...)
	for i := 0; i < iterations; i++ {
		if rng.Float64() < 0.5 {
			try2Opt(best, rng)
		} else {
			trySegmentRelocate(best, rng)
		}
	}
	return best
}

// walker carries the state of a Hamiltonian path search.
type walker struct {
	n       int
	visited []bool
	path    Path
	budget  int
	rng     *rand.Rand
}

func (w *walker) free(c Coord) bool {
	return c.Row >= 0 && c.Row < w.n && c.Col >= 0 && c.Col < w.n && !w.visited[c.Row*w.n+c.Col]
}

// degree counts unvisited neighbors of c.
func (w *walker) degree(c Coord) int {
	deg := 0
	for _, d := range AllDirs {
		if w.free(c.Step(d)) {
			deg++
		}
	}
	return deg
}

// candidates returns free neighbors of c ordered by Warnsdorff's rule,
// ties broken randomly.
func (w *walker) candidates(c Coord) []Coord {
	type scored struct {
		c     Coord
		score int
		tie   int
	}
	var list []scored
	for _, d := range AllDirs {
		next := c.Step(d)
		if w.free(next) {
			list = append(list, scored{c: next, score: w.degree(next), tie: w.rng.Int()})
		}
	}
	for i := 1; i < len(list); i++ {
		for j := i; j > 0; j-- {
			a, b := list[j-1], list[j]
			if a.score < b.score || (a.score == b.score && a.tie <= b.tie) {
				break
			}
			list[j-1], list[j] = b, a
		}
	}
	out := make([]Coord, len(list))
	for i, s := range list {
		out[i] = s.c
	}
	return out
}

// extend grows the path depth-first until it covers the grid or the step
// budget runs out.
func (w *walker) extend(c Coord) bool {
	if w.budget <= 0 {
		return false
	}
	w.budget--
	w.visited[c.Row*w.n+c.Col] = true
	w.path = append(w.path, c)
	if len(w.path) == w.n*w.n {
		return true
	}
	for _, next := range w.candidates(c) {
		if w.extend(next) {
			return true
		}
	}
	w.visited[c.Row*w.n+c.Col] = false
	w.path = w.path[:len(w.path)-1]
	return false
}

// WarnsdorffPath searches for a Hamiltonian path from random starting cells,
// always preferring the neighbor with the fewest onward moves. It returns nil
// when no attempt succeeds within its step budget.
func WarnsdorffPath(n, attempts int, rng *rand.Rand) Path {
	total := n * n
	for i := 0; i < attempts; i++ {
		w := &walker{
			n:       n,
			visited: make([]bool, total),
			path:    make(Path, 0, total),
			budget:  total * 20,
			rng:     rng,
		}
		start := C(rng.Intn(n), rng.Intn(n))
		if w.extend(start) && IsChainPath(w.path, n) {
			return w.path
		}
	}
	return nil
}

// HardPath produces a path that is not a plain snake. It tries the Hilbert
// curve for power-of-two sizes, then Warnsdorff search, and finally perturbs
// the column snake.
func HardPath(n int, rng *rand.Rand) Path {
	accept := func(p Path) Path {
		if p == nil {
			return nil
		}
		p = LocalImprove(p, n, 15, rng)
		for i := 0; i < 10; i++ {
			if !IsBasicSnake(p, n) {
				return p
			}
			p = LocalImprove(p, n, 20, rng)
		}
		return nil
	}

	if p := accept(HilbertPath(n)); p != nil {
		return p
	}
	if p := accept(WarnsdorffPath(n, 8, rng)); p != nil {
		return p
	}

	fallback := ColumnSnakePath(n)
	for i := 0; i < 20; i++ {
		if !IsBasicSnake(fallback, n) {
			return fallback
		}
		fallback = LocalImprove(fallback, n, 20, rng)
	}
	return fallback
}

// PathFor returns the solution path shape for a difficulty.
func PathFor(d Difficulty, n int, rng *rand.Rand) Path {
	switch d {
	case DifficultyEasy:
		return RowSnakePath(n)
	case DifficultyMedium:
		return SnailPath(n)
	default:
		return HardPath(n, rng)
	}
}
