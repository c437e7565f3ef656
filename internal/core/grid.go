package core

import "chunk-ca/pkg/grid"

// ByteGrid is a dense W×H window onto a sparse grid, stored row-major.
// Origin is the plane coordinate of cell (0, 0).
type ByteGrid struct {
	W, H   int
	Origin grid.Point
	data   []uint8
}

// NewByteGrid allocates a window with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (b *ByteGrid) Cells() []uint8 { return b.data }

// Index returns the linear slice index for window coordinates (x, y).
func (b *ByteGrid) Index(x, y int) int { return y*b.W + x }

// Clear fills the window with zeros.
func (b *ByteGrid) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// Capture copies the cells of g under the window. Absent chunks read as 0.
func (b *ByteGrid) Capture(g *grid.Grid[uint8]) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			v, _ := g.Get(grid.Pt(b.Origin.X+x, b.Origin.Z+y))
			b.data[y*b.W+x] = v
		}
	}
}

// CenterOn moves the window so p sits in its middle.
func (b *ByteGrid) CenterOn(p grid.Point) {
	b.Origin = grid.Pt(p.X-b.W/2, p.Z-b.H/2)
}

// Pan shifts the window by (dx, dz) cells.
func (b *ByteGrid) Pan(dx, dz int) {
	b.Origin = grid.Pt(b.Origin.X+dx, b.Origin.Z+dz)
}
