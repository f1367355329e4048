// Package formats provides pluggable puzzle file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"gopkg.in/yaml.v3"
)

// YAMLFile represents the YAML structure of a puzzle file.
type YAMLFile struct {
	Puzzles []YAMLPuzzle `yaml:"puzzles"`
}

// YAMLPuzzle represents a single puzzle in YAML format.
// Each row is a space-separated list of block codes, e.g. "H0 C3 V1".
type YAMLPuzzle struct {
	ID         string   `yaml:"id"`
	Difficulty string   `yaml:"difficulty"`
	Size       int      `yaml:"size"`
	Rows       []string `yaml:"rows"`
}

// Puzzle represents a parsed puzzle ready for use.
type Puzzle struct {
	ID         string
	Difficulty core.Difficulty
	Size       int
	Layout     [][]core.Block
}

// ParseYAML parses a YAML puzzle file. Unknown block codes are an error.
func ParseYAML(data []byte) ([]Puzzle, error) {
	var yf YAMLFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	puzzles := make([]Puzzle, 0, len(yf.Puzzles))
	for i, yp := range yf.Puzzles {
		p, err := parsePuzzle(yp)
		if err != nil {
			return nil, fmt.Errorf("puzzle %d (%s): %w", i, yp.ID, err)
		}
		puzzles = append(puzzles, p)
	}
	return puzzles, nil
}

func parsePuzzle(yp YAMLPuzzle) (Puzzle, error) {
	diff, err := core.ParseDifficulty(yp.Difficulty)
	if err != nil {
		return Puzzle{}, err
	}

	size := yp.Size
	if size == 0 {
		size = len(yp.Rows)
	}
	if len(yp.Rows) != size {
		return Puzzle{}, fmt.Errorf("%w: %d rows for size %d", core.ErrInvalidLayout, len(yp.Rows), size)
	}

	layout := make([][]core.Block, size)
	for r, row := range yp.Rows {
		codes := strings.Fields(row)
		if len(codes) != size {
			return Puzzle{}, fmt.Errorf("%w: row %d has %d blocks, want %d",
				core.ErrInvalidLayout, r, len(codes), size)
		}
		layout[r] = make([]core.Block, size)
		for c, code := range codes {
			b, err := core.ParseBlock(code)
			if err != nil {
				return Puzzle{}, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			layout[r][c] = b
		}
	}

	return Puzzle{
		ID:         yp.ID,
		Difficulty: diff,
		Size:       size,
		Layout:     layout,
	}, nil
}

// MarshalYAML encodes puzzles in the format read by ParseYAML.
func MarshalYAML(puzzles []Puzzle) ([]byte, error) {
	yf := YAMLFile{Puzzles: make([]YAMLPuzzle, 0, len(puzzles))}
	for _, p := range puzzles {
		rows := make([]string, len(p.Layout))
		for r, blocks := range p.Layout {
			codes := make([]string, len(blocks))
			for c, b := range blocks {
				codes[c] = b.String()
			}
			rows[r] = strings.Join(codes, " ")
		}
		yf.Puzzles = append(yf.Puzzles, YAMLPuzzle{
			ID:         p.ID,
			Difficulty: p.Difficulty.String(),
			Size:       p.Size,
			Rows:       rows,
		})
	}

	data, err := yaml.Marshal(&yf)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// ToGrid creates a Grid from the puzzle layout.
func (p *Puzzle) ToGrid() (*core.Grid, error) {
	return core.NewGrid(p.Size, p.Layout)
}

// FromGrid captures a grid as a puzzle.
func FromGrid(id string, d core.Difficulty, g *core.Grid) Puzzle {
	return Puzzle{
		ID:         id,
		Difficulty: d,
		Size:       g.Size(),
		Layout:     g.Blocks(),
	}
}
