package levels

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels/formats"
)

type poolKey struct {
	difficulty core.Difficulty
	size       int
}

// Pool hands out puzzles by difficulty and size. Stored puzzles are used
// first, in order; when a bucket is empty a new puzzle is generated.
// A Pool is safe for concurrent use.
type Pool struct {
	mu            sync.Mutex
	buckets       map[poolKey][]Puzzle
	rng           *rand.Rand
	scrambleRatio float64
	generated     int
}

// NewPool creates an empty pool. Generated puzzles use the seeded RNG.
func NewPool(seed int64, scrambleRatio float64) *Pool {
	return &Pool{
		buckets:       make(map[poolKey][]Puzzle),
		rng:           rand.New(rand.NewSource(seed)),
		scrambleRatio: scrambleRatio,
	}
}

// Add appends puzzles to their buckets.
func (p *Pool) Add(puzzles ...Puzzle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, pz := range puzzles {
		k := poolKey{pz.Difficulty, pz.Size}
		p.buckets[k] = append(p.buckets[k], pz)
	}
}

// LoadFrom adds every puzzle the loader finds.
func (p *Pool) LoadFrom(l *Loader) (int, error) {
	puzzles, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	p.Add(puzzles...)
	return len(puzzles), nil
}

// Len returns how many stored puzzles remain for a difficulty and size.
func (p *Pool) Len(d core.Difficulty, size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[poolKey{d, size}])
}

// Take pops the first stored puzzle for d and size, or generates one.
func (p *Pool) Take(d core.Difficulty, size int) (*core.Grid, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	k := poolKey{d, size}
	if bucket := p.buckets[k]; len(bucket) > 0 {
		pz := bucket[0]
		p.buckets[k] = bucket[1:]
		g, err := pz.ToGrid()
		if err != nil {
			return nil, fmt.Errorf("levels: puzzle %s: %w", pz.ID, err)
		}
		return g, nil
	}

	return p.generateLocked(d, size)
}

// Fill generates count puzzles for every size in sizes and stores them.
func (p *Pool) Fill(d core.Difficulty, sizes []int, count int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, size := range sizes {
		k := poolKey{d, size}
		for i := 0; i < count; i++ {
			g, err := p.generateLocked(d, size)
			if err != nil {
				return err
			}
			id := fmt.Sprintf("%s-%d-%03d", d, size, len(p.buckets[k])+1)
			p.buckets[k] = append(p.buckets[k], fromFormat(formats.FromGrid(id, d, g), ""))
		}
	}
	return nil
}

// Generated returns how many puzzles the pool has generated.
func (p *Pool) Generated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generated
}

func (p *Pool) generateLocked(d core.Difficulty, size int) (*core.Grid, error) {
	g, err := core.Generate(core.GenParams{
		Difficulty:    d,
		Size:          size,
		ScrambleRatio: p.scrambleRatio,
	}, p.rng)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	p.generated++
	return g, nil
}

// Save writes every stored puzzle to a single YAML file.
func (p *Pool) Save(path string) error {
	p.mu.Lock()
	keys := make([]poolKey, 0, len(p.buckets))
	for k := range p.buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].difficulty != keys[j].difficulty {
			return keys[i].difficulty < keys[j].difficulty
		}
		return keys[i].size < keys[j].size
	})

	var out []formats.Puzzle
	for _, k := range keys {
		for _, pz := range p.buckets[k] {
			out = append(out, formats.Puzzle{
				ID:         pz.ID,
				Difficulty: pz.Difficulty,
				Size:       pz.Size,
				Layout:     pz.Layout,
			})
		}
	}
	p.mu.Unlock()

	data, err := formats.MarshalYAML(out)
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("levels: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("levels: write %s: %w", path, err)
	}
	return nil
}

func fromFormat(p formats.Puzzle, path string) Puzzle {
	return Puzzle{
		ID:         p.ID,
		Difficulty: p.Difficulty,
		Size:       p.Size,
		Layout:     p.Layout,
		FilePath:   path,
	}
}
