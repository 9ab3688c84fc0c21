package grid_test

import (
	"fmt"

	"github.com/pathlab/gridbench/grid"
)

// ExampleGrid_ApplyPatch carves a traversable room into a blocked map and
// reads cells back through the bounds-safe accessor.
func ExampleGrid_ApplyPatch() {
	g, _ := grid.New(6, 4)
	room, _ := grid.NewFilled(3, 2)
	_ = g.ApplyPatch(grid.Patch{Cells: room, Pos: grid.Pt(2, 1)})

	fmt.Println(g.GetXY(2, 1), g.GetXY(4, 2))
	fmt.Println(g.GetXY(1, 1), g.GetXY(5, 2))
	fmt.Println(g.GetXY(-1, 0), g.GetXY(6, 0))

	// Output:
	// true true
	// false false
	// false false
}
