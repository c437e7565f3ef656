package grid

// SubGrid stores an L×L block of cell values in row-major order (rows by Z).
type SubGrid[V any] struct {
	l    int
	data []V
}

// newSubGrid allocates a chunk whose cells all hold V's zero value.
func newSubGrid[V any](l int) *SubGrid[V] {
	return &SubGrid[V]{l: l, data: make([]V, l*l)}
}

// Size returns the side length of the chunk.
func (s *SubGrid[V]) Size() int { return s.l }

func (s *SubGrid[V]) index(lo Local) int {
	mustLocal(lo, s.l)
	return lo.Z*s.l + lo.X
}

// At returns the value stored at lo.
func (s *SubGrid[V]) At(lo Local) V { return s.data[s.index(lo)] }

// Ptr returns a reference to the cell at lo.
func (s *SubGrid[V]) Ptr(lo Local) *V { return &s.data[s.index(lo)] }

// Set overwrites the cell at lo.
func (s *SubGrid[V]) Set(lo Local, v V) { s.data[s.index(lo)] = v }

// Cells exposes the backing slice.
func (s *SubGrid[V]) Cells() []V { return s.data }
