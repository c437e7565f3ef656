package life

import (
	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"
)

// Config controls the Life simulation.
type Config struct {
	World core.World
	Rule  string
}

// DefaultConfig returns Conway's rule on the default world.
func DefaultConfig() Config {
	return Config{World: core.DefaultWorld(), Rule: "B3/S23"}
}

// FromMap populates a Config from a string map. Unparseable rules keep the
// default.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.World = core.WorldFromMap(c.World, cfg)
	if v, ok := cfg["rule"]; ok {
		if _, err := ParseRule(v); err == nil {
			c.Rule = v
		}
	}
	return c
}

// Life runs a Life-like rule on an unbounded chunked grid.
type Life struct {
	cfg  Config
	rule Rule
	g    *grid.Grid[uint8]
}

// New returns a Life simulation running Conway's rule.
func New(chunkSize int) *Life {
	cfg := DefaultConfig()
	cfg.World.ChunkSize = chunkSize
	return NewWithConfig(cfg)
}

// NewWithConfig returns a Life simulation configured from cfg. An invalid
// rulestring falls back to Conway.
func NewWithConfig(cfg Config) *Life {
	rule, err := ParseRule(cfg.Rule)
	if err != nil {
		rule = Conway
	}
	cfg.Rule = rule.String()
	return &Life{cfg: cfg, rule: rule, g: grid.New[uint8](cfg.World.ChunkSize)}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Grid exposes the underlying cells.
func (l *Life) Grid() *grid.Grid[uint8] { return l.g }

// Rule returns the active rule.
func (l *Life) Rule() Rule { return l.rule }

// Reset clears the grid and seeds a random soup. A zero seed reuses the
// configured one.
func (l *Life) Reset(seed int64) {
	if seed != 0 {
		l.cfg.World.Seed = seed
	}
	l.g.Reset()
	core.SeedSoup(l.g, l.cfg.World, alive)
}

// Step advances the simulation by one generation.
func (l *Life) Step() grid.TickStats {
	return l.g.Tick(grid.Fixed(grid.MooreOffsets), l.rule)
}

// Population counts live cells.
func (l *Life) Population() int {
	n := 0
	l.g.Each(func(_ grid.Point, v uint8) {
		if v == alive {
			n++
		}
	})
	return n
}

// Parameters describes the current configuration.
func (l *Life) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Rule", Params: []core.Parameter{core.StringParam("rule", "Rule", l.cfg.Rule)}},
		core.GridGroup(l.g.ChunkSize(), l.g.Generation(), l.g.Chunks()),
		l.cfg.World.Group(),
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (l *Life) ParameterControls() []core.ParameterControl { return l.cfg.World.Controls() }

// SetIntParameter updates a soup setting; it applies on the next Reset.
func (l *Life) SetIntParameter(key string, value int) bool { return l.cfg.World.SetInt(key, value) }

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
