package grid

import "fmt"

// Point addresses a single cell in the unbounded plane.
type Point struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Offset is a relative displacement between two points.
type Offset struct {
	X, Z int
}

// ChunkIndex identifies a chunk in chunk-space.
type ChunkIndex struct {
	X, Z int
}

// Local is a cell position inside a chunk. Both axes lie in [0, L).
type Local struct {
	X, Z int
}

// Pt is shorthand for Point{X: x, Z: z}.
func Pt(x, z int) Point { return Point{X: x, Z: z} }

// String formats the point as [x,z].
func (p Point) String() string { return fmt.Sprintf("[%d,%d]", p.X, p.Z) }

// Shift returns p displaced by o.
func (p Point) Shift(o Offset) Point { return Point{X: p.X + o.X, Z: p.Z + o.Z} }

// Chunk returns the index of the chunk of side l containing p.
func (p Point) Chunk(l int) ChunkIndex {
	return ChunkIndex{X: FloorDiv(p.X, l), Z: FloorDiv(p.Z, l)}
}

// Local returns p's position inside its chunk of side l.
func (p Point) Local(l int) Local {
	return Local{X: Mod(p.X, l), Z: Mod(p.Z, l)}
}

// Origin returns the point at local offset (0, 0) of the chunk.
func (c ChunkIndex) Origin(l int) Point {
	return Point{X: c.X * l, Z: c.Z * l}
}

// Point reassembles the absolute point at local offset lo of chunk c.
func (c ChunkIndex) Point(l int, lo Local) Point {
	return Point{X: c.X*l + lo.X, Z: c.Z*l + lo.Z}
}

// String formats the chunk index as <x,z>.
func (c ChunkIndex) String() string { return fmt.Sprintf("<%d,%d>", c.X, c.Z) }

// FloorDiv divides a by b rounding toward negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Mod returns the Euclidean remainder of a by b, always in [0, b) for b > 0.
func Mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func mustLocal(lo Local, l int) {
	if lo.X < 0 || lo.X >= l || lo.Z < 0 || lo.Z >= l {
		panic(fmt.Sprintf("grid: local offset (%d,%d) outside chunk of size %d", lo.X, lo.Z, l))
	}
}
