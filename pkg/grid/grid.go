// Package grid implements a sparse plane of cell values stored in fixed-size
// dense chunks, and a two-phase generation step over the occupied region.
package grid

// DefaultChunkSize is used when New is given a non-positive size.
const DefaultChunkSize = 32

// Grid maps chunk indices to dense SubGrids. A Grid is not safe for
// concurrent use.
//
// Cells within one chunk of math.MinInt or math.MaxInt on either axis can be
// stored and read, but Tick does not support them: the padding chunk past
// the edge of the int range has no representable origin.
type Grid[V any] struct {
	l      int
	chunks map[ChunkIndex]*SubGrid[V]

	// scan is the cached scan set; nil means it must be rebuilt.
	scan []ChunkIndex

	generation int
}

// New returns an empty grid whose chunks are size×size cells.
func New[V any](size int) *Grid[V] {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Grid[V]{l: size, chunks: make(map[ChunkIndex]*SubGrid[V])}
}

// ChunkSize returns the side length of every chunk.
func (g *Grid[V]) ChunkSize() int { return g.l }

// Chunks reports how many chunks are allocated.
func (g *Grid[V]) Chunks() int { return len(g.chunks) }

// HasChunk reports whether chunk c has been allocated.
func (g *Grid[V]) HasChunk(c ChunkIndex) bool {
	_, ok := g.chunks[c]
	return ok
}

// Generation returns the number of completed ticks.
func (g *Grid[V]) Generation() int { return g.generation }

// Get returns the value at p. ok is false when p's chunk was never allocated;
// once the chunk exists every cell in it reports ok, including zero values.
func (g *Grid[V]) Get(p Point) (v V, ok bool) {
	sub, ok := g.chunks[p.Chunk(g.l)]
	if !ok {
		return v, false
	}
	return sub.At(p.Local(g.l)), true
}

// Ptr returns a reference to the cell at p, or nil if its chunk is absent.
func (g *Grid[V]) Ptr(p Point) *V {
	sub, ok := g.chunks[p.Chunk(g.l)]
	if !ok {
		return nil
	}
	return sub.Ptr(p.Local(g.l))
}

// Set writes v at p, allocating the chunk if needed.
func (g *Grid[V]) Set(p Point, v V) {
	g.chunkOrCreate(p.Chunk(g.l)).Set(p.Local(g.l), v)
}

// Each calls fn for every cell of every allocated chunk. Order is unspecified.
func (g *Grid[V]) Each(fn func(Point, V)) {
	for idx, sub := range g.chunks {
		origin := idx.Origin(g.l)
		for z := 0; z < g.l; z++ {
			for x := 0; x < g.l; x++ {
				fn(Point{X: origin.X + x, Z: origin.Z + z}, sub.data[z*g.l+x])
			}
		}
	}
}

// Reset drops every chunk and the generation counter.
func (g *Grid[V]) Reset() {
	g.chunks = make(map[ChunkIndex]*SubGrid[V])
	g.scan = nil
	g.generation = 0
}

// Compact removes chunks in which isDefault holds for every cell and returns
// how many were removed. Tick never compacts on its own.
func (g *Grid[V]) Compact(isDefault func(V) bool) int {
	removed := 0
	for idx, sub := range g.chunks {
		empty := true
		for _, v := range sub.data {
			if !isDefault(v) {
				empty = false
				break
			}
		}
		if empty {
			delete(g.chunks, idx)
			removed++
		}
	}
	if removed > 0 {
		g.invalidateScan()
	}
	return removed
}

func (g *Grid[V]) chunkOrCreate(idx ChunkIndex) *SubGrid[V] {
	sub, ok := g.chunks[idx]
	if !ok {
		sub = newSubGrid[V](g.l)
		g.chunks[idx] = sub
		g.invalidateScan()
	}
	return sub
}

func (g *Grid[V]) invalidateScan() { g.scan = nil }
