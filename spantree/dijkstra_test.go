package spantree_test

import (
	"testing"

	"github.com/pathlab/gridbench/grid"
	"github.com/pathlab/gridbench/spantree"
	"github.com/pathlab/gridbench/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// costAt reads the tree cost for a point.
func costAt(e *spantree.Engine, g *grid.Grid, x, y int) uint32 {
	return e.Nodes()[g.Pack(grid.Pt(x, y))].Cost
}

// TestDijkstra_OpenCosts: on an open 3×3 the root lands on the centroid
// (1,1); cardinal neighbors cost 1000 and corners 1414.
func TestDijkstra_OpenCosts(t *testing.T) {
	e, g := prepared(t, []string{
		"...",
		"...",
		"...",
	})
	require.Equal(t, uint32(0), costAt(e, g, 1, 1))
	for _, c := range [][2]int{{1, 0}, {2, 1}, {1, 2}, {0, 1}} {
		assert.Equal(t, spantree.CostCardinal, costAt(e, g, c[0], c[1]), "cardinal (%d,%d)", c[0], c[1])
	}
	for _, c := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		assert.Equal(t, spantree.CostOrdinal, costAt(e, g, c[0], c[1]), "ordinal (%d,%d)", c[0], c[1])
	}
}

// TestDijkstra_TreeEdgesLegal: every pred edge in the forest must itself
// be a legal move — in particular no diagonal may cut the corner of the
// blocked centre cell.
func TestDijkstra_TreeEdgesLegal(t *testing.T) {
	e, g := prepared(t, []string{
		"...",
		".@.",
		"...",
	})
	nodes := e.Nodes()
	for i := 0; i < g.Size(); i++ {
		pred := nodes[i].Pred
		if pred == spantree.Invalid || pred == spantree.RootPred {
			continue
		}
		edge := []grid.Point{g.Unpack(i), g.Unpack(int(pred))}
		assert.Equal(t, -1, validate.ValidatePath(g, edge),
			"tree edge %v→%v is not a legal move", edge[0], edge[1])
	}
	// the ring around the blocked centre is one component
	assert.Equal(t, root(e, g, grid.Pt(0, 0)), root(e, g, grid.Pt(2, 2)))
}

// TestDijkstra_EdgeOfGrid: a 1-cell-high corridor has no diagonal moves;
// costs grow by exactly 1000 per cell from the root, and expansion never
// probes past the map edge.
func TestDijkstra_EdgeOfGrid(t *testing.T) {
	e, g := prepared(t, []string{"....."})
	// centroid x=2, root (2,0)
	require.Equal(t, uint32(0), costAt(e, g, 2, 0))
	assert.Equal(t, spantree.CostCardinal, costAt(e, g, 1, 0))
	assert.Equal(t, spantree.CostCardinal, costAt(e, g, 3, 0))
	assert.Equal(t, 2*spantree.CostCardinal, costAt(e, g, 0, 0))
	assert.Equal(t, 2*spantree.CostCardinal, costAt(e, g, 4, 0))
}
