package grid

// PatchInBounds reports whether p fits entirely inside g when placed at
// p.Pos. A patch with nil cells never fits.
func PatchInBounds(g *Grid, p Patch) bool {
	if p.Cells == nil {
		return false
	}
	if int(p.Pos.X)+p.Cells.width > g.width {
		return false
	}
	if int(p.Pos.Y)+p.Cells.height > g.height {
		return false
	}

	return true
}

// ApplyPatch overwrites the rectangle covered by p with the patch cells.
// Returns ErrNilPatch or ErrPatchBounds without touching the grid on
// invalid input. Complexity: O(w×h) of the patch.
func (g *Grid) ApplyPatch(p Patch) error {
	if p.Cells == nil {
		return ErrNilPatch
	}
	if !PatchInBounds(g, p) {
		return ErrPatchBounds
	}
	gi := int(p.Pos.Y)*g.width + int(p.Pos.X)
	pi := 0
	// stride to advance gi from the end of one patch row to the start of
	// the next
	stride := g.width - p.Cells.width
	for y := 0; y < p.Cells.height; y++ {
		for x := 0; x < p.Cells.width; x++ {
			g.Set(gi, p.Cells.Get(pi))
			gi++
			pi++
		}
		gi += stride
	}

	return nil
}
