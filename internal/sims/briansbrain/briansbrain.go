package briansbrain

import (
	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"
)

const (
	stateDead  uint8 = 0
	stateOn    uint8 = 1
	stateDying uint8 = 2
)

var (
	toOn    = grid.Const(stateOn)
	toDying = grid.Const(stateDying)
	toDead  = grid.Const(stateDead)
)

// Rule is Brian's Brain: firing cells start dying, dying cells die, and
// dead cells with exactly two firing neighbors fire.
type Rule struct{}

// Evaluate implements grid.Rule.
func (Rule) Evaluate(p grid.Point, cur grid.Cell[uint8], neighbors []grid.Cell[uint8]) []grid.Update[uint8] {
	switch cur.Value {
	case stateOn:
		return []grid.Update[uint8]{{At: p, Next: toDying}}
	case stateDying:
		return []grid.Update[uint8]{{At: p, Next: toDead}}
	}
	on := 0
	for _, n := range neighbors {
		if n.Value == stateOn {
			on++
		}
	}
	if on == 2 {
		return []grid.Update[uint8]{{At: p, Next: toOn}}
	}
	return nil
}

// Brain implements Brian's Brain on an unbounded chunked grid.
type Brain struct {
	world core.World
	g     *grid.Grid[uint8]
}

// New creates a Brain simulation using the default world with the given chunk size.
func New(chunkSize int) *Brain {
	w := core.DefaultWorld()
	w.ChunkSize = chunkSize
	return NewWithWorld(w)
}

// NewWithWorld creates a Brain simulation from w.
func NewWithWorld(w core.World) *Brain {
	return &Brain{world: w, g: grid.New[uint8](w.ChunkSize)}
}

// Name identifies the simulation.
func (b *Brain) Name() string { return "briansbrain" }

// Grid exposes the underlying cells.
func (b *Brain) Grid() *grid.Grid[uint8] { return b.g }

// Reset clears the grid and seeds firing cells. A zero seed reuses the
// configured one.
func (b *Brain) Reset(seed int64) {
	if seed != 0 {
		b.world.Seed = seed
	}
	b.g.Reset()
	core.SeedSoup(b.g, b.world, stateOn)
}

// Step advances the automaton by one tick.
func (b *Brain) Step() grid.TickStats {
	return b.g.Tick(grid.Fixed(grid.MooreOffsets), Rule{})
}

// Parameters describes the current configuration.
func (b *Brain) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		core.GridGroup(b.g.ChunkSize(), b.g.Generation(), b.g.Chunks()),
		b.world.Group(),
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (b *Brain) ParameterControls() []core.ParameterControl { return b.world.Controls() }

// SetIntParameter updates a soup setting; it applies on the next Reset.
func (b *Brain) SetIntParameter(key string, value int) bool { return b.world.SetInt(key, value) }

func init() {
	core.Register("briansbrain", func(cfg map[string]string) core.Sim {
		w := core.DefaultWorld()
		w.SoupCount = 60
		return NewWithWorld(core.WorldFromMap(w, cfg))
	})
}
