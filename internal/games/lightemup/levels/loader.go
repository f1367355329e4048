// Package levels provides puzzle loading and pooling for Light 'Em Up.
// This package depends on core but core does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels/formats"
)

// Puzzle represents a stored puzzle and where it came from.
type Puzzle struct {
	ID         string
	Difficulty core.Difficulty
	Size       int
	Layout     [][]core.Block
	FilePath   string
}

// ToGrid creates a Grid from the puzzle.
func (p *Puzzle) ToGrid() (*core.Grid, error) {
	return core.NewGrid(p.Size, p.Layout)
}

// Loader handles loading puzzles from a file or directory.
type Loader struct {
	Root string
}

// NewLoader creates a new puzzle loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads Root when it is a file, or recursively scans it when it is a
// directory. Returns puzzles sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Puzzle, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if !info.IsDir() {
		return l.LoadFile(l.Root)
	}

	var puzzles []Puzzle
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		loaded, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		puzzles = append(puzzles, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(puzzles, func(i, j int) bool {
		return puzzles[i].ID < puzzles[j].ID
	})
	return puzzles, nil
}

// LoadFile loads every puzzle in a single file.
func (l *Loader) LoadFile(path string) ([]Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}

	puzzles := make([]Puzzle, len(parsed))
	for i, p := range parsed {
		puzzles[i] = fromFormat(p, path)
	}
	return puzzles, nil
}

// LoadByID loads a specific puzzle by ID.
func (l *Loader) LoadByID(id string) (Puzzle, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return Puzzle{}, err
	}
	for _, p := range puzzles {
		if p.ID == id {
			return p, nil
		}
	}
	return Puzzle{}, fmt.Errorf("levels: puzzle not found: %s", id)
}

// ListIDs returns all puzzle IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(puzzles))
	for i, p := range puzzles {
		ids[i] = p.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) ([]formats.Puzzle, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
