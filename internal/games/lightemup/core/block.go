package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidBlockType is returned for block types outside Vertical, Horizontal and Corner.
var ErrInvalidBlockType = errors.New("invalid block type")

// BlockType is the shape of the pipe segment in a cell.
type BlockType uint8

const (
	BlockVertical BlockType = iota
	BlockHorizontal
	BlockCorner
)

// String returns the string representation of a block type.
func (t BlockType) String() string {
	switch t {
	case BlockVertical:
		return "Vertical"
	case BlockHorizontal:
		return "Horizontal"
	case BlockCorner:
		return "Corner"
	default:
		return "Unknown"
	}
}

// Char returns the single-letter layout code of the type.
func (t BlockType) Char() byte {
	switch t {
	case BlockVertical:
		return 'V'
	case BlockHorizontal:
		return 'H'
	case BlockCorner:
		return 'C'
	default:
		return '?'
	}
}

// Valid reports whether t is a known block type.
func (t BlockType) Valid() bool {
	return t <= BlockCorner
}

// ParseBlockType parses a layout code ("V", "H", "C") or full name.
func ParseBlockType(s string) (BlockType, error) {
	switch s {
	case "V", "v", "Vertical", "vertical":
		return BlockVertical, nil
	case "H", "h", "Horizontal", "horizontal":
		return BlockHorizontal, nil
	case "C", "c", "Corner", "corner":
		return BlockCorner, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidBlockType, s)
	}
}

// baseConnections returns the openings at orientation 0.
func baseConnections(t BlockType) (DirSet, error) {
	switch t {
	case BlockVertical:
		return NewDirSet(DirUp, DirDown), nil
	case BlockHorizontal:
		return NewDirSet(DirLeft, DirRight), nil
	case BlockCorner:
		return NewDirSet(DirUp, DirLeft), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidBlockType, t)
	}
}

// normalizeOrientation maps any orientation into [0,3].
func normalizeOrientation(o int) int {
	o %= 4
	if o < 0 {
		o += 4
	}
	return o
}

// Connections returns the open directions of a block of type t rotated
// clockwise o times.
func Connections(t BlockType, o int) (DirSet, error) {
	set, err := baseConnections(t)
	if err != nil {
		return 0, err
	}
	for i := 0; i < normalizeOrientation(o); i++ {
		set = set.RotateClockwise()
	}
	return set, nil
}

// Block is a single pipe cell.
type Block struct {
	Type        BlockType
	Orientation int // Quarter turns clockwise, 0-3
}

// B is a convenience constructor for Block.
func B(t BlockType, o int) Block {
	return Block{Type: t, Orientation: normalizeOrientation(o)}
}

// Connections returns the open directions of the block.
func (b Block) Connections() (DirSet, error) {
	return Connections(b.Type, b.Orientation)
}

// Rotated returns the block turned a quarter clockwise.
func (b Block) Rotated() Block {
	b.Orientation = (b.Orientation + 1) % 4
	return b
}

// String returns the layout code, e.g. "C3".
func (b Block) String() string {
	return fmt.Sprintf("%c%d", b.Type.Char(), b.Orientation)
}

// BlockFor returns the block type and orientation whose openings are exactly
// the given set. The second result is false when no block has those openings.
func BlockFor(openings DirSet) (Block, bool) {
	for _, t := range []BlockType{BlockVertical, BlockHorizontal, BlockCorner} {
		for o := 0; o < 4; o++ {
			set, _ := Connections(t, o)
			if set == openings {
				return Block{Type: t, Orientation: o}, true
			}
		}
	}
	return Block{}, false
}

// ParseBlock parses a layout code such as "V0", "H1" or "C3".
// A bare type letter means orientation 0.
func ParseBlock(s string) (Block, error) {
	if s == "" {
		return Block{}, fmt.Errorf("%w: empty block", ErrInvalidBlockType)
	}
	t, err := ParseBlockType(s[:1])
	if err != nil {
		return Block{}, err
	}
	if len(s) == 1 {
		return Block{Type: t}, nil
	}
	o, err := strconv.Atoi(s[1:])
	if err != nil {
		return Block{}, fmt.Errorf("block %q: bad orientation: %w", s, err)
	}
	return B(t, o), nil
}
