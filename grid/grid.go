package grid

// Grid is a rectangular traversability bitmap. Cells are packed LSB-first
// into bytes, row-major: bit i covers cell (i % width, i / width).
// Mutation happens only between queries via Set and ApplyPatch; the engine
// borrows the grid read-only during setup and search.
type Grid struct {
	width, height int
	cells         []uint8
}

// New constructs an all-blocked grid.
// Returns ErrBadDimensions unless both dimensions lie in [1, MaxDim].
func New(width, height int) (*Grid, error) {
	if width < 1 || width > MaxDim || height < 1 || height > MaxDim {
		return nil, ErrBadDimensions
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, (width*height+7)>>3),
	}, nil
}

// NewFilled constructs an all-traversable grid. The scenario runner starts
// from this state before the first patch set is applied.
func NewFilled(width, height int) (*Grid, error) {
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.cells[i] = 0xff
	}

	return g, nil
}

// Width reports the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height reports the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Size reports the total cell count, width*height.
func (g *Grid) Size() int { return g.width * g.height }

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Pack maps a point to its linear cell id: y*width + x.
// Precondition: the point is in bounds.
func (g *Grid) Pack(p Point) int {
	return int(p.Y)*g.width + int(p.X)
}

// Unpack maps a linear cell id back to its point.
// Precondition: 0 ≤ i < Size().
func (g *Grid) Unpack(i int) Point {
	return Point{X: uint16(i % g.width), Y: uint16(i / g.width)}
}

// Get reports traversability of cell id i, false for any i outside
// [0, Size()).
func (g *Grid) Get(i int) bool {
	if i < 0 || i >= g.width*g.height {
		return false
	}

	return g.cells[i>>3]>>(i&7)&1 != 0
}

// GetXY reports traversability of (x, y), false out of bounds. Neighbor
// expansion relies on this to probe x−1 or y−1 without pre-checking.
func (g *Grid) GetXY(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}

	return g.Get(y*g.width + x)
}

// Set writes traversability of cell id i.
// Precondition: 0 ≤ i < Size().
func (g *Grid) Set(i int, v bool) {
	mask := uint8(1) << (i & 7)
	if v {
		g.cells[i>>3] |= mask
	} else {
		g.cells[i>>3] &^= mask
	}
}
