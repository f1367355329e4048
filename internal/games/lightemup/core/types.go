// Package core provides the puzzle logic for Light 'Em Up: pipe blocks, the
// rotation transform, the lit-cell flood fill and the puzzle session.
// This package is UI-agnostic and deterministic.
package core

import "strings"

// Dir represents one of the four pipe openings.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// AllDirs lists the directions in clockwise order starting from Up.
var AllDirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Letter returns the single-letter form used in layouts and logs.
func (d Dir) Letter() byte {
	switch d {
	case DirUp:
		return 'U'
	case DirRight:
		return 'R'
	case DirDown:
		return 'D'
	case DirLeft:
		return 'L'
	default:
		return '?'
	}
}

// Delta returns the (dRow, dCol) offset for moving one step in this direction.
// Up decreases the row, Down increases it.
func (d Dir) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// RotateClockwise turns the direction a quarter turn: Up→Right→Down→Left→Up.
func (d Dir) RotateClockwise() Dir {
	switch d {
	case DirUp:
		return DirRight
	case DirRight:
		return DirDown
	case DirDown:
		return DirLeft
	case DirLeft:
		return DirUp
	default:
		return d
	}
}

// DirSet is a set of directions stored as a 4-bit mask.
type DirSet uint8

// NewDirSet builds a set from the given directions.
func NewDirSet(dirs ...Dir) DirSet {
	var s DirSet
	for _, d := range dirs {
		s = s.With(d)
	}
	return s
}

// With returns the set with d added.
func (s DirSet) With(d Dir) DirSet {
	return s | 1<<d
}

// Has reports whether d is in the set.
func (s DirSet) Has(d Dir) bool {
	return s&(1<<d) != 0
}

// Len returns the number of directions in the set.
func (s DirSet) Len() int {
	n := 0
	for _, d := range AllDirs {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Dirs returns the members in clockwise order starting from Up.
func (s DirSet) Dirs() []Dir {
	dirs := make([]Dir, 0, 4)
	for _, d := range AllDirs {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// RotateClockwise rotates every member of the set a quarter turn.
func (s DirSet) RotateClockwise() DirSet {
	var out DirSet
	for _, d := range AllDirs {
		if s.Has(d) {
			out = out.With(d.RotateClockwise())
		}
	}
	return out
}

// String returns the member letters, e.g. "UD".
func (s DirSet) String() string {
	var sb strings.Builder
	for _, d := range s.Dirs() {
		sb.WriteByte(d.Letter())
	}
	return sb.String()
}
