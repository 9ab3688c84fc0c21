package spantree_test

import (
	"fmt"

	"github.com/pathlab/gridbench/grid"
	"github.com/pathlab/gridbench/spantree"
)

// ExampleEngine demonstrates the full engine lifecycle on a small map
// with a wall: build the forest, answer a query, mutate, rebuild.
//
//	. . @ . .
//	. . @ . .
//	. . . . .
//
// The wall forces the route around its lower end.
func ExampleEngine() {
	g, _ := grid.New(5, 3)
	for _, c := range [][2]int{
		{0, 0}, {1, 0}, {3, 0}, {4, 0},
		{0, 1}, {1, 1}, {3, 1}, {4, 1},
		{0, 2}, {1, 2}, {2, 2}, {3, 2}, {4, 2},
	} {
		g.Set(g.Pack(grid.Pt(c[0], c[1])), true)
	}

	e, _ := spantree.New()
	if err := e.Prepare(g); err != nil {
		fmt.Println("prepare:", err)

		return
	}

	path := e.Search(grid.Pt(0, 0), grid.Pt(4, 0))
	fmt.Println("points:", len(path))
	fmt.Println("first:", path[0].X, path[0].Y)
	fmt.Println("last:", path[len(path)-1].X, path[len(path)-1].Y)

	// closing the gap below the wall splits the map in two
	plug, _ := grid.New(1, 1)
	_ = g.ApplyPatch(grid.Patch{Cells: plug, Pos: grid.Pt(2, 2)})
	_ = e.OnChange()
	fmt.Println("after patch:", e.Search(grid.Pt(0, 0), grid.Pt(4, 0)))

	// Output:
	// points: 7
	// first: 0 0
	// last: 4 0
	// after patch: []
}
