package grid

import (
	"cmp"
	"slices"
)

// Cell is a value read from the grid together with whether its chunk exists.
type Cell[V any] struct {
	Value V
	OK    bool
}

// Transition computes a cell's next value from its value at write time.
// Returning ok=false resets the cell to V's zero value.
type Transition[V any] interface {
	Next(prev V, ok bool) (next V, nextOK bool)
}

// TransitionFunc adapts a plain function to Transition.
type TransitionFunc[V any] func(prev V, ok bool) (V, bool)

// Next calls f.
func (f TransitionFunc[V]) Next(prev V, ok bool) (V, bool) { return f(prev, ok) }

type constTransition[V any] struct{ v V }

func (c constTransition[V]) Next(V, bool) (V, bool) { return c.v, true }

// Const returns a Transition that always yields v.
func Const[V any](v V) Transition[V] { return constTransition[V]{v: v} }

// Update schedules a transition for one cell, applied in the write phase.
type Update[V any] struct {
	At   Point
	Next Transition[V]
}

// Neighborhood returns the offsets of p's neighbors. The returned slice is
// only read and may be shared between calls.
type Neighborhood func(p Point) []Offset

// Fixed returns a Neighborhood yielding the same offsets for every point.
func Fixed(offsets []Offset) Neighborhood {
	return func(Point) []Offset { return offsets }
}

// Rule evaluates one cell against the pre-tick generation. The neighbors
// slice is reused between calls and must not be retained.
type Rule[V any] interface {
	Evaluate(p Point, cur Cell[V], neighbors []Cell[V]) []Update[V]
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc[V any] func(p Point, cur Cell[V], neighbors []Cell[V]) []Update[V]

// Evaluate calls f.
func (f RuleFunc[V]) Evaluate(p Point, cur Cell[V], neighbors []Cell[V]) []Update[V] {
	return f(p, cur, neighbors)
}

// TickStats summarises the work done by one Tick.
type TickStats struct {
	Scanned   int // chunks visited
	Cells     int // cells evaluated
	Updates   int // updates applied
	Allocated int // chunks created by the write phase
}

// Tick advances the grid one generation. Every cell in the scan set is
// evaluated against the current generation before any update is written.
func (g *Grid[V]) Tick(neighbors Neighborhood, rule Rule[V]) TickStats {
	var stats TickStats
	updates := g.collect(neighbors, rule, &stats)

	before := len(g.chunks)
	for _, u := range updates {
		prev, ok := g.Get(u.At)
		next, nextOK := u.Next.Next(prev, ok)
		if !nextOK {
			var zero V
			next = zero
		}
		g.Set(u.At, next)
	}
	stats.Updates = len(updates)
	stats.Allocated = len(g.chunks) - before
	g.generation++
	return stats
}

// collect runs the read phase and returns the accumulated updates.
func (g *Grid[V]) collect(neighbors Neighborhood, rule Rule[V], stats *TickStats) []Update[V] {
	var updates []Update[V]
	l := g.l
	buf := make([]Cell[V], 0, 8)

	for _, idx := range g.scanSet() {
		sub := g.chunks[idx]
		origin := idx.Origin(l)
		stats.Scanned++

		for z := 0; z < l; z++ {
			for x := 0; x < l; x++ {
				p := Point{X: origin.X + x, Z: origin.Z + z}

				buf = buf[:0]
				for _, o := range neighbors(p) {
					np := p.Shift(o)
					lx, lz := np.X-origin.X, np.Z-origin.Z
					if sub != nil && lx >= 0 && lx < l && lz >= 0 && lz < l {
						buf = append(buf, Cell[V]{Value: sub.data[lz*l+lx], OK: true})
						continue
					}
					v, ok := g.Get(np)
					buf = append(buf, Cell[V]{Value: v, OK: ok})
				}

				var cur Cell[V]
				if sub != nil {
					cur = Cell[V]{Value: sub.data[z*l+x], OK: true}
				}

				updates = append(updates, rule.Evaluate(p, cur, buf)...)
				stats.Cells++
			}
		}
	}
	return updates
}

// ScanSet returns a copy of the chunks the next Tick will visit.
func (g *Grid[V]) ScanSet() []ChunkIndex {
	return slices.Clone(g.scanSet())
}

// scanSet returns every allocated chunk plus its eight chunk neighbors,
// rebuilding the cache if the set of chunks changed since it was built.
func (g *Grid[V]) scanSet() []ChunkIndex {
	if g.scan != nil {
		return g.scan
	}

	seen := make(map[ChunkIndex]struct{}, len(g.chunks)*2)
	scan := make([]ChunkIndex, 0, len(g.chunks)*2)
	for idx := range g.chunks {
		for _, c := range idx.MooreNeighbors(1, true) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			scan = append(scan, c)
		}
	}
	slices.SortFunc(scan, func(a, b ChunkIndex) int {
		if c := cmp.Compare(a.Z, b.Z); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	g.scan = scan
	return scan
}
