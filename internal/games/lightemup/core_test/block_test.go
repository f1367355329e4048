package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
)

var allTypes = []core.BlockType{core.BlockVertical, core.BlockHorizontal, core.BlockCorner}

func TestConnectionsByOrientation(t *testing.T) {
	testCases := []struct {
		t        core.BlockType
		o        int
		expected core.DirSet
	}{
		{core.BlockVertical, 0, core.NewDirSet(core.DirUp, core.DirDown)},
		{core.BlockVertical, 1, core.NewDirSet(core.DirLeft, core.DirRight)},
		{core.BlockVertical, 2, core.NewDirSet(core.DirUp, core.DirDown)},
		{core.BlockVertical, 3, core.NewDirSet(core.DirLeft, core.DirRight)},
		{core.BlockHorizontal, 0, core.NewDirSet(core.DirLeft, core.DirRight)},
		{core.BlockHorizontal, 1, core.NewDirSet(core.DirUp, core.DirDown)},
		{core.BlockCorner, 0, core.NewDirSet(core.DirUp, core.DirLeft)},
		{core.BlockCorner, 1, core.NewDirSet(core.DirUp, core.DirRight)},
		{core.BlockCorner, 2, core.NewDirSet(core.DirRight, core.DirDown)},
		{core.BlockCorner, 3, core.NewDirSet(core.DirDown, core.DirLeft)},
		{core.BlockCorner, -1, core.NewDirSet(core.DirDown, core.DirLeft)},
	}

	for _, tc := range testCases {
		got, err := core.Connections(tc.t, tc.o)
		if err != nil {
			t.Fatalf("Connections(%v, %d) failed: %v", tc.t, tc.o, err)
		}
		if got != tc.expected {
			t.Errorf("Connections(%v, %d): expected %v, got %v", tc.t, tc.o, tc.expected, got)
		}
	}
}

func TestConnectionsAlwaysTwoOpenings(t *testing.T) {
	for _, bt := range allTypes {
		for o := 0; o < 4; o++ {
			set, err := core.Connections(bt, o)
			if err != nil {
				t.Fatalf("Connections(%v, %d) failed: %v", bt, o, err)
			}
			if set.Len() != 2 {
				t.Errorf("Connections(%v, %d): expected 2 openings, got %d (%v)", bt, o, set.Len(), set)
			}
		}
	}
}

func TestConnectionsPeriodic(t *testing.T) {
	for _, bt := range allTypes {
		for o := 0; o < 4; o++ {
			a, _ := core.Connections(bt, o)
			b, _ := core.Connections(bt, o+4)
			if a != b {
				t.Errorf("%v: orientation %d gives %v, %d gives %v", bt, o, a, o+4, b)
			}
		}
	}
}

func TestRotateClockwiseFourTimesIsIdentity(t *testing.T) {
	for _, d := range core.AllDirs {
		got := d.RotateClockwise().RotateClockwise().RotateClockwise().RotateClockwise()
		if got != d {
			t.Errorf("four rotations of %v gave %v", d, got)
		}
	}
}

func TestDirOpposite(t *testing.T) {
	pairs := map[core.Dir]core.Dir{
		core.DirUp:    core.DirDown,
		core.DirDown:  core.DirUp,
		core.DirLeft:  core.DirRight,
		core.DirRight: core.DirLeft,
	}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite(): expected %v, got %v", d, want, got)
		}
	}
}

func TestConnectionsInvalidType(t *testing.T) {
	_, err := core.Connections(core.BlockType(7), 0)
	if !errors.Is(err, core.ErrInvalidBlockType) {
		t.Errorf("expected ErrInvalidBlockType, got %v", err)
	}
}

func TestParseBlock(t *testing.T) {
	testCases := []struct {
		in      string
		want    core.Block
		wantErr bool
	}{
		{"V0", core.B(core.BlockVertical, 0), false},
		{"H1", core.B(core.BlockHorizontal, 1), false},
		{"C3", core.B(core.BlockCorner, 3), false},
		{"C", core.B(core.BlockCorner, 0), false},
		{"C6", core.B(core.BlockCorner, 2), false},
		{"X1", core.Block{}, true},
		{"Vx", core.Block{}, true},
		{"", core.Block{}, true},
	}

	for _, tc := range testCases {
		got, err := core.ParseBlock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBlock(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBlock(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBlock(%q): expected %v, got %v", tc.in, tc.want, got)
		}
		if tc.in != "C" && tc.in != "C6" && got.String() != tc.in {
			t.Errorf("String() of %q: got %q", tc.in, got.String())
		}
	}
}

func TestBlockFor(t *testing.T) {
	for _, bt := range allTypes {
		for o := 0; o < 4; o++ {
			set, _ := core.Connections(bt, o)
			b, ok := core.BlockFor(set)
			if !ok {
				t.Fatalf("BlockFor(%v): no block found", set)
			}
			got, _ := b.Connections()
			if got != set {
				t.Errorf("BlockFor(%v) returned %v with openings %v", set, b, got)
			}
		}
	}

	if _, ok := core.BlockFor(core.NewDirSet(core.DirUp)); ok {
		t.Error("expected no block with a single opening")
	}
}
