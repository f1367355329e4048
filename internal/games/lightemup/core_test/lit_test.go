package core_test

import (
	"testing"

	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
)

func TestComputeLitSolved2x2(t *testing.T) {
	g := core.MustGrid(solved2x2())
	lit := core.ComputeLit(g)

	if lit.Len() != 4 || !lit.Complete() {
		t.Errorf("expected all 4 cells lit, got %v", lit.Coords())
	}
}

func TestComputeLitOriginAlwaysLit(t *testing.T) {
	// Horizontal at the origin, Vertical to its right: no edge.
	g := core.MustGrid([][]core.Block{
		{h0, v0},
		{h0, v0},
	})
	lit := core.ComputeLit(g)

	if !lit.Contains(core.Origin) {
		t.Error("origin must always be lit")
	}
	if lit.Len() != 1 {
		t.Errorf("expected only the origin lit, got %v", lit.Coords())
	}
	if core.Connected(g, core.C(0, 0), core.C(0, 1)) {
		t.Error("Horizontal next to Vertical must not connect")
	}
}

func TestComputeLitVerticalColumn(t *testing.T) {
	g := core.MustGrid([][]core.Block{
		{v0, v0},
		{v0, v0},
	})
	lit := core.ComputeLit(g)

	want := []core.Coord{core.C(0, 0), core.C(1, 0)}
	got := lit.Coords()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestComputeLitOneSidedOpeningDoesNotConnect(t *testing.T) {
	// Origin corner opens Up/Left only; (0,1) Horizontal opens toward it.
	g := core.MustGrid([][]core.Block{
		{c0, h0},
		{v0, v0},
	})
	lit := core.ComputeLit(g)

	if lit.Contains(core.C(0, 1)) {
		t.Error("one-sided opening must not light the neighbor")
	}
}

func TestComputeLitIdempotent(t *testing.T) {
	g := core.MustGrid([][]core.Block{
		{h0, c3, v0},
		{v0, c0, h0},
		{c0, h0, v0},
	})
	a := core.ComputeLit(g)
	b := core.ComputeLit(g)

	if !a.Equal(b) {
		t.Errorf("ComputeLit not idempotent: %v vs %v", a.Coords(), b.Coords())
	}
}

func TestComputeLitSingleCell(t *testing.T) {
	g := core.MustGrid([][]core.Block{{c0}})
	lit := core.ComputeLit(g)

	if !lit.Complete() {
		t.Error("1x1 grid should be complete")
	}
}

func TestComputeLitOutOfRangeNotContained(t *testing.T) {
	lit := core.ComputeLit(core.MustGrid(solved2x2()))
	if lit.Contains(core.C(5, 5)) || lit.Contains(core.C(-1, 0)) {
		t.Error("out-of-range coordinates must not be lit")
	}
}
