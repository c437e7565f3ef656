package elementary

import (
	"strconv"

	"chunk-ca/internal/core"
	"chunk-ca/pkg/grid"
)

// Above is the neighborhood of a cell in row z: the three cells of row z-1
// from left to right.
var Above = []grid.Offset{{X: -1, Z: -1}, {X: 0, Z: -1}, {X: 1, Z: -1}}

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	ChunkSize int
	Rule      uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{ChunkSize: 32, Rule: 110}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["chunk"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.ChunkSize = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// Rule computes row z from row z-1 with a Wolfram code. Only the row
// directly below the newest one is written each tick, so earlier rows stay
// as history.
type Rule struct {
	Code uint8
	// Row is the row being produced this tick.
	Row int
}

// Evaluate implements grid.Rule.
func (r Rule) Evaluate(p grid.Point, cur grid.Cell[uint8], neighbors []grid.Cell[uint8]) []grid.Update[uint8] {
	if p.Z != r.Row || len(neighbors) != 3 {
		return nil
	}
	idx := neighbors[0].Value<<2 | neighbors[1].Value<<1 | neighbors[2].Value
	bit := (r.Code >> idx) & 1
	if bit == cur.Value {
		return nil
	}
	return []grid.Update[uint8]{{At: p, Next: grid.Const(bit)}}
}

// Elementary implements a one-dimensional Wolfram code whose history grows
// downward along +Z.
type Elementary struct {
	rule uint8
	g    *grid.Grid[uint8]
}

// New creates an automaton with the given chunk size and rule. Bit 0 of the
// rule is cleared: a rule that lights cells with no live parents would fill
// the unbounded row.
func New(chunkSize int, rule uint8) *Elementary {
	return &Elementary{rule: rule &^ 1, g: grid.New[uint8](chunkSize)}
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Grid exposes the underlying cells.
func (e *Elementary) Grid() *grid.Grid[uint8] { return e.g }

// Code returns the effective Wolfram code.
func (e *Elementary) Code() uint8 { return e.rule }

// Reset clears the grid and seeds row 0 with a single active cell at the origin.
func (e *Elementary) Reset(int64) {
	e.g.Reset()
	e.g.Set(grid.Pt(0, 0), 1)
}

// Step computes the next row below the newest one.
func (e *Elementary) Step() grid.TickStats {
	rule := Rule{Code: e.rule, Row: e.g.Generation() + 1}
	return e.g.Tick(grid.Fixed(Above), rule)
}

// Parameters describes the current configuration.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Rule", Params: []core.Parameter{core.IntParam("rule", "Wolfram code", int(e.rule))}},
		core.GridGroup(e.g.ChunkSize(), e.g.Generation(), e.g.Chunks()),
	}}
}

// ParameterControls lists the HUD-adjustable settings.
func (e *Elementary) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{{Key: "rule", Label: "Wolfram code", Step: 2, Min: 0, Max: 254}}
}

// SetIntParameter changes the rule. It takes effect immediately.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	if key != "rule" || value < 0 || value > 255 {
		return false
	}
	e.rule = uint8(value) &^ 1
	return true
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return New(c.ChunkSize, c.Rule)
	})
}
