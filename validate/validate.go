package validate

import "github.com/pathlab/gridbench/grid"

// point mirrors grid.Point with signed components so segment deltas and
// unit steps can go negative during edge walks.
type point struct {
	x, y int
}

func signed(p grid.Point) point {
	return point{x: int(p.X), y: int(p.Y)}
}

// ValidatePath checks pts against g and returns −1 when the sequence is a
// legal path, otherwise the index of the first invalid point or the index
// of the first invalid edge's leading point.
//
// An empty sequence is legal (it is the no-path answer). A singleton is
// legal iff its point is in bounds and traversable. Every point is checked
// before any edge, so a blocked or out-of-bounds point is reported even
// when an edge earlier in the sequence is also invalid.
//
// Complexity: O(total cells stepped over), memory O(1).
func ValidatePath(g *grid.Grid, pts []grid.Point) int {
	if len(pts) == 0 {
		return -1
	}
	for i, p := range pts {
		if !g.GetXY(int(p.X), int(p.Y)) {
			return i
		}
	}
	for i := 0; i+1 < len(pts); i++ {
		if !validEdge(g, signed(pts[i]), signed(pts[i+1])) {
			return i
		}
	}

	return -1
}

// validEdge decides segment legality between two in-bounds traversable
// points. ValidatePath has already covered every point, so the cardinal
// walk does not re-check the end point.
func validEdge(g *grid.Grid, u, v point) bool {
	dx, dy := v.x-u.x, v.y-u.y
	switch {
	case dx == 0 && dy == 0:
		return true
	case dx == 0 || dy == 0:
		return validCardinal(g, u, v, point{x: sign(dx), y: sign(dy)})
	case abs(dx) == abs(dy):
		return validOrdinal(g, u, v, point{x: sign(dx), y: sign(dy)})
	default:
		// neither cardinal nor ordinal
		return false
	}
}

// validCardinal walks from u up to but not including v along the unit
// step d, requiring every stepped-over cell traversable.
func validCardinal(g *grid.Grid, u, v, d point) bool {
	for p := u; p != v; p.x, p.y = p.x+d.x, p.y+d.y {
		if !g.GetXY(p.x, p.y) {
			return false
		}
	}

	return true
}

// validOrdinal walks unit diagonals, requiring the full 2×2 square at
// every step: the cell itself plus both orthogonal neighbors of the move.
// The square past v is deliberately not probed.
func validOrdinal(g *grid.Grid, u, v, d point) bool {
	for p := u; p != v; p.x, p.y = p.x+d.x, p.y+d.y {
		if !g.GetXY(p.x, p.y) || !g.GetXY(p.x+d.x, p.y) || !g.GetXY(p.x, p.y+d.y) {
			return false
		}
	}

	return g.GetXY(v.x, v.y)
}

func sign(d int) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	}

	return 0
}

func abs(d int) int {
	if d < 0 {
		return -d
	}

	return d
}
