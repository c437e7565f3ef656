package life

import (
	"testing"

	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"
)

func TestBlinkerOscillation(t *testing.T) {
	life := New(2)
	g := life.Grid()
	set := func(x, z int) { g.Set(grid.Pt(x, z), alive) }
	set(2, 1)
	set(2, 2)
	set(2, 3)

	life.Step()

	expects := map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}
	for z := -1; z < 6; z++ {
		for x := -1; x < 6; x++ {
			v, _ := g.Get(grid.Pt(x, z))
			isAlive := v == 1
			_, shouldBeAlive := expects[[2]int{x, z}]
			if shouldBeAlive != isAlive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, z, isAlive, shouldBeAlive)
			}
		}
	}

	life.Step()

	expects = map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}
	for z := -1; z < 6; z++ {
		for x := -1; x < 6; x++ {
			v, _ := g.Get(grid.Pt(x, z))
			isAlive := v == 1
			_, shouldBeAlive := expects[[2]int{x, z}]
			if shouldBeAlive != isAlive {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", x, z, isAlive, shouldBeAlive)
			}
		}
	}
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule("b36/s23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Birth[3] || !r.Birth[6] || r.Birth[2] {
		t.Fatalf("unexpected birth set %v", r.Birth)
	}
	if !r.Survive[2] || !r.Survive[3] || r.Survive[4] {
		t.Fatalf("unexpected survive set %v", r.Survive)
	}
	if got := r.String(); got != "B36/S23" {
		t.Fatalf("expected canonical B36/S23, got %s", got)
	}

	swapped, err := ParseRule("S23/B3")
	if err != nil || swapped != Conway {
		t.Fatalf("S-first rule should equal Conway, got %v (%v)", swapped, err)
	}

	for _, bad := range []string{"", "B3", "B3/S9", "X3/S23", "B3/B6", "B03/S23", "B3/"} {
		if _, err := ParseRule(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestHighLifeReplicatorDiffersFromConway(t *testing.T) {
	// Six live neighbors only cause a birth under HighLife.
	seed := []grid.Point{grid.Pt(0, 0), grid.Pt(1, 0), grid.Pt(2, 0), grid.Pt(0, 2), grid.Pt(1, 2), grid.Pt(2, 2)}

	cfg := DefaultConfig()
	cfg.World.ChunkSize = 4
	cfg.Rule = "B36/S23"
	high := NewWithConfig(cfg)
	conway := New(4)
	for _, p := range seed {
		high.Grid().Set(p, alive)
		conway.Grid().Set(p, alive)
	}
	high.Step()
	conway.Step()

	if v, _ := high.Grid().Get(grid.Pt(1, 1)); v != alive {
		t.Fatal("HighLife should give birth with six neighbors")
	}
	if v, _ := conway.Grid().Get(grid.Pt(1, 1)); v == alive {
		t.Fatal("Conway must not give birth with six neighbors")
	}
}

func TestInvalidRuleFallsBackToConway(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rule = "nonsense"
	if got := NewWithConfig(cfg).Rule(); got != Conway {
		t.Fatalf("expected Conway fallback, got %v", got)
	}
	if got := FromMap(map[string]string{"rule": "bad"}).Rule; got != "B3/S23" {
		t.Fatalf("expected default rule kept, got %s", got)
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := FromMap(map[string]string{"chunk": "8", "seed": "11", "radius": "6", "count": "60"})
	a := NewWithConfig(cfg)
	b := NewWithConfig(cfg)
	a.Reset(0)
	b.Reset(0)
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
	}
	show := func(v uint8) bool { return v == alive }
	if a.Grid().Render(show) != b.Grid().Render(show) {
		t.Fatal("same seed diverged")
	}
	if a.Grid().Generation() != 10 {
		t.Fatalf("expected generation 10, got %d", a.Grid().Generation())
	}

	a.Reset(12)
	if a.Grid().Generation() != 0 {
		t.Fatal("Reset must restart the generation counter")
	}
	if a.Population() == 0 {
		t.Fatal("expected a seeded soup")
	}
}

func TestRegisteredFactory(t *testing.T) {
	factory, ok := core.Sims()["life"]
	if !ok {
		t.Fatal("life not registered")
	}
	sim := factory(map[string]string{"chunk": "16", "rule": "B36/S23"})
	if sim.Name() != "life" || sim.Grid().ChunkSize() != 16 {
		t.Fatalf("unexpected sim %s chunk %d", sim.Name(), sim.Grid().ChunkSize())
	}
	snap := sim.(core.ParameterProvider).Parameters()
	if snap.Groups[0].Params[0].Value != "B36/S23" {
		t.Fatalf("unexpected rule parameter %+v", snap.Groups[0].Params[0])
	}
}
