package grid

import (
	"bytes"
	"math"
	"strings"
)

// ChunkBounds returns the smallest and largest chunk index on each axis over
// all allocated chunks. On an empty grid min is (MaxInt, MaxInt), max is
// (MinInt, MinInt) and ok is false.
func (g *Grid[V]) ChunkBounds() (min, max ChunkIndex, ok bool) {
	min = ChunkIndex{X: math.MaxInt, Z: math.MaxInt}
	max = ChunkIndex{X: math.MinInt, Z: math.MinInt}
	for idx := range g.chunks {
		if idx.X < min.X {
			min.X = idx.X
		}
		if idx.Z < min.Z {
			min.Z = idx.Z
		}
		if idx.X > max.X {
			max.X = idx.X
		}
		if idx.Z > max.Z {
			max.Z = idx.Z
		}
	}
	return min, max, len(g.chunks) > 0
}

// PointBounds converts ChunkBounds to cell coordinates. min is inclusive and
// max is exclusive: it sits one full chunk past the last chunk's origin.
// Both saturate at the int range, so a chunk touching math.MaxInt reports
// max == math.MaxInt rather than wrapping.
func (g *Grid[V]) PointBounds() (min, max Point, ok bool) {
	cmin, cmax, ok := g.ChunkBounds()
	if !ok {
		return Point{X: cmin.X, Z: cmin.Z}, Point{X: cmax.X, Z: cmax.Z}, false
	}
	min = Point{X: lowEdge(cmin.X, g.l), Z: lowEdge(cmin.Z, g.l)}
	max = Point{X: highEdge(cmax.X, g.l), Z: highEdge(cmax.Z, g.l)}
	return min, max, true
}

// Extent returns the width and height of PointBounds, saturating at
// math.MaxInt. ok is false on an empty grid.
func (g *Grid[V]) Extent() (w, h int, ok bool) {
	min, max, ok := g.PointBounds()
	if !ok {
		return 0, 0, false
	}
	return span(min.X, max.X), span(min.Z, max.Z), true
}

// lowEdge is c*l clamped to math.MinInt.
func lowEdge(c, l int) int {
	if c < math.MinInt/l {
		return math.MinInt
	}
	return c * l
}

// highEdge is c*l+l clamped to math.MaxInt.
func highEdge(c, l int) int {
	if c >= math.MaxInt/l {
		return math.MaxInt
	}
	return c*l + l
}

// span is hi-lo clamped to math.MaxInt. lo <= hi.
func span(lo, hi int) int {
	if lo < 0 && hi > math.MaxInt+lo {
		return math.MaxInt
	}
	return hi - lo
}

// Render draws the allocated region as ASCII: '#' where show holds, ' '
// elsewhere, one row per Z inside a +--+ frame. The output holds one byte per
// cell of Extent, so callers serving untrusted input should check Extent
// first.
func (g *Grid[V]) Render(show func(V) bool) string {
	min, _, ok := g.PointBounds()
	if !ok {
		return "++\n++\n"
	}
	w, h, _ := g.Extent()

	rows := make([][]byte, h)
	for i := range rows {
		rows[i] = bytes.Repeat([]byte{' '}, w)
	}

	for idx, sub := range g.chunks {
		origin := idx.Origin(g.l)
		rx, rz := origin.X-min.X, origin.Z-min.Z
		for z := 0; z < g.l; z++ {
			for x := 0; x < g.l; x++ {
				if show(sub.data[z*g.l+x]) {
					rows[rz+z][rx+x] = '#'
				}
			}
		}
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", w) + "+\n"
	b.WriteString(border)
	for _, row := range rows {
		b.WriteByte('|')
		b.Write(row)
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}
