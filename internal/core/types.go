package core

import (
	"sort"

	"chunk-ca/pkg/grid"
)

// Sim defines the contract a chunked cellular automaton exposes to the
// command-line, HTTP and GUI front ends.
type Sim interface {
	Name() string
	Reset(seed int64)
	Step() grid.TickStats
	Grid() *grid.Grid[uint8]
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
