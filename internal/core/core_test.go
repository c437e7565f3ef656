package core

import (
	"math"
	"slices"
	"testing"
	"time"

	"chunk-ca/pkg/grid"
)

func TestSeedSoupDeterministic(t *testing.T) {
	w := DefaultWorld()
	w.ChunkSize = 4

	a := grid.New[uint8](w.ChunkSize)
	SeedSoup(a, w, 1)
	b := grid.New[uint8](w.ChunkSize)
	SeedSoup(b, w, 1)

	if a.Render(isOne) != b.Render(isOne) {
		t.Fatal("same seed produced different soups")
	}

	w.Seed = 99
	c := grid.New[uint8](w.ChunkSize)
	SeedSoup(c, w, 1)
	if a.Render(isOne) == c.Render(isOne) {
		t.Fatal("different seeds should produce different soups")
	}
}

func TestSeedSoupStaysWithinRadius(t *testing.T) {
	w := World{ChunkSize: 8, Seed: 5, SoupRadius: 3, SoupCount: 500}
	g := grid.New[uint8](w.ChunkSize)
	SeedSoup(g, w, 1)

	live := 0
	g.Each(func(p grid.Point, v uint8) {
		if v == 0 {
			return
		}
		live++
		if p.X < -3 || p.X > 3 || p.Z < -3 || p.Z > 3 {
			t.Fatalf("cell %v outside radius 3", p)
		}
	})
	if live == 0 || live > 49 {
		t.Fatalf("expected between 1 and 49 live cells, got %d", live)
	}
}

func TestSeedSoupEmptyStillAllocatesOrigin(t *testing.T) {
	w := World{ChunkSize: 8, SoupCount: 0}
	g := grid.New[uint8](w.ChunkSize)
	SeedSoup(g, w, 1)
	if g.Chunks() != 1 {
		t.Fatalf("expected origin chunk, got %d chunks", g.Chunks())
	}
}

func TestRNGBetweenInclusive(t *testing.T) {
	rng := NewRNG(3)
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := rng.Between(-2, 2)
		if v < -2 || v > 2 {
			t.Fatalf("value %d outside [-2, 2]", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected all five values, saw %v", seen)
	}
	if got := rng.Between(4, 4); got != 4 {
		t.Fatalf("degenerate range must return lo, got %d", got)
	}
	// Widths past math.MaxInt must not overflow.
	neg, pos := false, false
	for i := 0; i < 200; i++ {
		v := rng.Between(-math.MaxInt, math.MaxInt)
		neg = neg || v < 0
		pos = pos || v > 0
		rng.Between(math.MinInt, math.MaxInt)
	}
	if !neg || !pos {
		t.Fatal("full-range draws should cover both signs")
	}
}

func TestWorldFromMap(t *testing.T) {
	w := WorldFromMap(DefaultWorld(), map[string]string{
		"chunk":  "8",
		"seed":   "-3",
		"radius": "bogus",
		"count":  "-1",
	})
	if w.ChunkSize != 8 || w.Seed != -3 {
		t.Fatalf("expected chunk 8 seed -3, got %+v", w)
	}
	def := DefaultWorld()
	if w.SoupRadius != def.SoupRadius || w.SoupCount != def.SoupCount {
		t.Fatalf("invalid values must keep defaults, got %+v", w)
	}
	if got := WorldFromMap(def, nil); got != def {
		t.Fatalf("nil map must return base, got %+v", got)
	}
}

func TestWorldSetInt(t *testing.T) {
	w := DefaultWorld()
	if !w.SetInt("radius", 12) || w.SoupRadius != 12 {
		t.Fatalf("expected radius 12, got %d", w.SoupRadius)
	}
	if w.SetInt("radius", MaxSoupRadius+1) || w.SoupRadius != 12 {
		t.Fatal("radius above MaxSoupRadius must be rejected")
	}
	if w.SetInt("count", -5) {
		t.Fatal("negative count must be rejected")
	}
	if w.SetInt("unknown", 1) {
		t.Fatal("unknown key must be rejected")
	}
}

func TestByteGridCapture(t *testing.T) {
	g := grid.New[uint8](2)
	g.Set(grid.Pt(-1, -1), 1)
	g.Set(grid.Pt(1, 0), 2)

	view := NewByteGrid(3, 2)
	view.CenterOn(grid.Pt(0, 0))
	if view.Origin != grid.Pt(-1, -1) {
		t.Fatalf("unexpected origin %v", view.Origin)
	}
	view.Capture(g)
	want := []uint8{
		1, 0, 0,
		0, 0, 2,
	}
	if !slices.Equal(view.Cells(), want) {
		t.Fatalf("captured %v, expected %v", view.Cells(), want)
	}

	view.Pan(1, 0)
	view.Capture(g)
	if got := view.Cells()[view.Index(1, 1)]; got != 2 {
		t.Fatalf("expected cell after pan to be 2, got %d", got)
	}
	view.Clear()
	for _, v := range view.Cells() {
		if v != 0 {
			t.Fatal("Clear left non-zero cells")
		}
	}
}

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	// First call consumes the initial accumulator.
	if n := fs.Due(5); n != 1 {
		t.Fatalf("expected one initial tick, got %d", n)
	}
	clock = clock.Add(350 * time.Millisecond)
	if n := fs.Due(5); n != 3 {
		t.Fatalf("expected 3 ticks after 350ms at 10 TPS, got %d", n)
	}
	clock = clock.Add(60 * time.Millisecond)
	if fs.Due(1) != 1 {
		t.Fatal("expected remainder to carry into the next tick")
	}
	clock = clock.Add(10 * time.Second)
	if n := fs.Due(4); n != 4 {
		t.Fatalf("expected catch-up capped at 4, got %d", n)
	}
	if fs.Due(1) != 0 {
		t.Fatal("backlog beyond the cap must be dropped")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	Register("zeta", func(map[string]string) Sim { return nil })
	Register("alpha", func(map[string]string) Sim { return nil })
	Register("", func(map[string]string) Sim { return nil })
	defer delete(sims, "zeta")
	defer delete(sims, "alpha")

	names := Names()
	if !slices.IsSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "alpha") || slices.Contains(names, "") {
		t.Fatalf("unexpected names %v", names)
	}
}

func isOne(v uint8) bool { return v == 1 }
