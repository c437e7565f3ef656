package grid

// MooreOffsets are the eight offsets of the radius-1 Moore neighborhood.
var MooreOffsets = []Offset{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// VonNeumannOffsets are the four offsets of the radius-1 von Neumann neighborhood.
var VonNeumannOffsets = []Offset{
	{-1, 0}, {0, -1}, {0, 1}, {1, 0},
}

// MooreRing returns the offsets of the square rings at radius 1..dist.
// Each ring starts at its (-d,-d) corner and walks +X, +Z, -X, -Z.
// When inclusive the zero offset comes first.
func MooreRing(dist int, inclusive bool) []Offset {
	var r []Offset
	if inclusive {
		r = append(r, Offset{})
	}
	for d := 1; d <= dist; d++ {
		x, z := -d, -d
		for i := 0; i < 2*d; i++ {
			r = append(r, Offset{x, z})
			x++
		}
		for i := 0; i < 2*d; i++ {
			r = append(r, Offset{x, z})
			z++
		}
		for i := 0; i < 2*d; i++ {
			r = append(r, Offset{x, z})
			x--
		}
		for i := 0; i < 2*d; i++ {
			r = append(r, Offset{x, z})
			z--
		}
	}
	return r
}

// VonNeumannRing returns the offsets of the diamond rings at radius 1..dist.
// Each ring starts at (-d,0) and walks the four diagonal edges in turn.
func VonNeumannRing(dist int, inclusive bool) []Offset {
	var r []Offset
	if inclusive {
		r = append(r, Offset{})
	}
	for d := 1; d <= dist; d++ {
		x, z := -d, 0
		for i := 0; i < d; i++ {
			r = append(r, Offset{x, z})
			x++
			z++
		}
		for i := 0; i < d; i++ {
			r = append(r, Offset{x, z})
			x++
			z--
		}
		for i := 0; i < d; i++ {
			r = append(r, Offset{x, z})
			x--
			z--
		}
		for i := 0; i < d; i++ {
			r = append(r, Offset{x, z})
			x--
			z++
		}
	}
	return r
}

// MooreNeighbors lists the points within Chebyshev distance dist of p.
func (p Point) MooreNeighbors(dist int, inclusive bool) []Point {
	return p.shiftAll(MooreRing(dist, inclusive))
}

// VonNeumannNeighbors lists the points within taxicab distance dist of p.
func (p Point) VonNeumannNeighbors(dist int, inclusive bool) []Point {
	return p.shiftAll(VonNeumannRing(dist, inclusive))
}

func (p Point) shiftAll(offsets []Offset) []Point {
	r := make([]Point, len(offsets))
	for i, o := range offsets {
		r[i] = p.Shift(o)
	}
	return r
}

// MooreNeighbors lists the chunk indices within Chebyshev distance dist of c.
func (c ChunkIndex) MooreNeighbors(dist int, inclusive bool) []ChunkIndex {
	offsets := MooreRing(dist, inclusive)
	r := make([]ChunkIndex, len(offsets))
	for i, o := range offsets {
		r[i] = ChunkIndex{X: c.X + o.X, Z: c.Z + o.Z}
	}
	return r
}
