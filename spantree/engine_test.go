package spantree_test

import (
	"math"
	"testing"

	"github.com/pathlab/gridbench/grid"
	"github.com/pathlab/gridbench/spantree"
	"github.com/pathlab/gridbench/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustGrid builds a grid from rows of '.' (traversable) and '@' (blocked).
func mustGrid(t *testing.T, rows []string) *grid.Grid {
	t.Helper()
	g, err := grid.New(len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			if c == '.' {
				g.Set(y*g.Width()+x, true)
			}
		}
	}

	return g
}

// prepared returns an engine with the forest built over rows.
func prepared(t *testing.T, rows []string, opts ...spantree.Option) (*spantree.Engine, *grid.Grid) {
	t.Helper()
	g := mustGrid(t, rows)
	e, err := spantree.New(opts...)
	require.NoError(t, err)
	require.NoError(t, e.Prepare(g))

	return e, g
}

// checkForestInvariants asserts the universal post-setup properties:
// coverage, tree shape, and cost monotonicity.
func checkForestInvariants(t *testing.T, e *spantree.Engine, g *grid.Grid) {
	t.Helper()
	nodes := e.Nodes()
	size := g.Size()
	for i := 0; i < size; i++ {
		n := nodes[i]
		if !g.Get(i) {
			assert.Equal(t, spantree.Invalid, n.Pred, "blocked cell %d must stay unset", i)

			continue
		}
		// coverage
		require.True(t, n.Pred == spantree.RootPred || n.Pred < uint32(size),
			"cell %d pred %d out of range", i, n.Pred)
		require.Less(t, n.Cost, spantree.Invalid-2, "cell %d unreached", i)

		// walk to the root; cost strictly decreases so size steps suffice
		at := i
		for steps := 0; nodes[at].Pred != spantree.RootPred; steps++ {
			require.Less(t, steps, size, "pred chain from %d does not terminate", i)
			pred := int(nodes[at].Pred)
			diff := nodes[at].Cost - nodes[pred].Cost
			require.True(t, diff == spantree.CostCardinal || diff == spantree.CostOrdinal,
				"cell %d: cost step %d to pred is neither cardinal nor ordinal", at, diff)
			at = pred
		}
		assert.Equal(t, uint32(0), nodes[at].Cost, "root of %d must have cost 0", i)
	}
}

// root follows pred links from p to its tree root.
func root(e *spantree.Engine, g *grid.Grid, p grid.Point) int {
	nodes := e.Nodes()
	at := g.Pack(p)
	for nodes[at].Pred != spantree.RootPred {
		at = int(nodes[at].Pred)
	}

	return at
}

// TestPrepare_Invariants builds forests over a handful of map shapes and
// checks the universal invariants on each.
func TestPrepare_Invariants(t *testing.T) {
	cases := []struct {
		name string
		rows []string
	}{
		{"Open5x5", []string{
			".....",
			".....",
			".....",
			".....",
			".....",
		}},
		{"Bottleneck", []string{
			".....",
			"..@..",
			"..@..",
			"..@..",
			"..@..",
		}},
		{"TwoIslands", []string{
			"..@..",
			"..@..",
			"..@..",
		}},
		{"Checker", []string{
			".@.@",
			"@.@.",
			".@.@",
		}},
		{"SingleCell", []string{
			"@@@",
			"@.@",
			"@@@",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, g := prepared(t, tc.rows)
			checkForestInvariants(t, e, g)
		})
	}
}

// TestPrepare_SameTreeIffConnected: two cells share a root iff they are
// 8-connected under no corner cutting.
func TestPrepare_SameTreeIffConnected(t *testing.T) {
	e, g := prepared(t, []string{
		"..@..",
		"..@..",
		"..@..",
	})
	assert.Equal(t, root(e, g, grid.Pt(0, 0)), root(e, g, grid.Pt(1, 2)))
	assert.Equal(t, root(e, g, grid.Pt(3, 0)), root(e, g, grid.Pt(4, 2)))
	assert.NotEqual(t, root(e, g, grid.Pt(0, 0)), root(e, g, grid.Pt(3, 0)))

	// diagonal contact without a shared cardinal neighbor stays split
	e2, g2 := prepared(t, []string{
		".@",
		"@.",
	})
	assert.NotEqual(t, root(e2, g2, grid.Pt(0, 0)), root(e2, g2, grid.Pt(1, 1)))
}

// TestSearch_OpenGrid is the 5×5 empty-grid scenario: the result must
// validate as Complete and stay within the diagonal bound.
func TestSearch_OpenGrid(t *testing.T) {
	e, g := prepared(t, []string{
		".....",
		".....",
		".....",
		".....",
		".....",
	})
	path := e.Search(grid.Pt(0, 0), grid.Pt(4, 4))
	require.NotNil(t, path)
	assert.Equal(t, grid.Pt(0, 0), path[0])
	assert.Equal(t, grid.Pt(4, 4), path[len(path)-1])
	assert.Equal(t, -1, validate.ValidatePath(g, path))
	assert.LessOrEqual(t, grid.PathLength(path), 4*math.Sqrt2+1e-9)
}

// TestSearch_Bottleneck forces the detour through (2,0): the only opening
// in a blocked column. Every legal route spends 2 ordinal and 4 cardinal
// steps, so the tree path length is exactly their sum.
func TestSearch_Bottleneck(t *testing.T) {
	e, g := prepared(t, []string{
		".....",
		"..@..",
		"..@..",
		"..@..",
		"..@..",
	})
	path := e.Search(grid.Pt(0, 2), grid.Pt(4, 2))
	require.NotNil(t, path)
	assert.Equal(t, -1, validate.ValidatePath(g, path))
	assert.InDelta(t, 2*1.414+4, grid.PathLength(path), 1e-3)
	// the bottleneck cell must be on the path
	found := false
	for _, p := range path {
		if p == grid.Pt(2, 0) {
			found = true
		}
	}
	assert.True(t, found, "path must pass through the opening at (2,0)")
}

// TestSearch_Disconnected returns no path across separate components and
// never emits the corner-cutting diagonal.
func TestSearch_Disconnected(t *testing.T) {
	e, _ := prepared(t, []string{
		".@@@@",
		"@@@@@",
		"@@@@@",
		"@@@@@",
		"@@@@.",
	})
	assert.Nil(t, e.Search(grid.Pt(0, 0), grid.Pt(4, 4)))

	e2, _ := prepared(t, []string{
		".@",
		"@.",
	})
	assert.Nil(t, e2.Search(grid.Pt(0, 0), grid.Pt(1, 1)))
}

// TestSearch_SelfQuery returns the two-point zero-length path for a
// traversable cell and no path for a blocked one.
func TestSearch_SelfQuery(t *testing.T) {
	e, _ := prepared(t, []string{
		"...",
		".@.",
		"...",
	})
	path := e.Search(grid.Pt(2, 2), grid.Pt(2, 2))
	require.Len(t, path, 2)
	assert.Equal(t, grid.Pt(2, 2), path[0])
	assert.Equal(t, grid.Pt(2, 2), path[1])
	assert.Equal(t, 0.0, grid.PathLength(path))

	assert.Nil(t, e.Search(grid.Pt(1, 1), grid.Pt(1, 1)), "blocked self-query")
}

// TestSearch_BlockedEndpoint returns no path when either endpoint is
// blocked.
func TestSearch_BlockedEndpoint(t *testing.T) {
	e, _ := prepared(t, []string{
		"..@",
		"...",
	})
	assert.Nil(t, e.Search(grid.Pt(2, 0), grid.Pt(0, 0)))
	assert.Nil(t, e.Search(grid.Pt(0, 0), grid.Pt(2, 0)))
}

// TestOnChange_PatchThenQuery starts fully blocked, opens a 3×3 region by
// patch, and expects a query across it to succeed after OnChange.
func TestOnChange_PatchThenQuery(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	e, err := spantree.New()
	require.NoError(t, err)
	require.NoError(t, e.Prepare(g))
	assert.Nil(t, e.Search(grid.Pt(1, 1), grid.Pt(3, 3)))

	sub, err := grid.NewFilled(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.ApplyPatch(grid.Patch{Cells: sub, Pos: grid.Pt(1, 1)}))
	require.NoError(t, e.OnChange())

	path := e.Search(grid.Pt(1, 1), grid.Pt(3, 3))
	require.NotNil(t, path)
	assert.Equal(t, -1, validate.ValidatePath(g, path))
}

// TestOnChange_Idempotent: rebuilding with no grid edit reproduces the
// identical forest, and a patch followed by its inverse restores it.
func TestOnChange_Idempotent(t *testing.T) {
	rows := []string{
		"......",
		"..@@..",
		"..@@..",
		"......",
	}
	e, g := prepared(t, rows)
	before := append([]spantree.Node(nil), e.Nodes()...)

	require.NoError(t, e.OnChange())
	assert.Equal(t, before, e.Nodes(), "rebuild with no edit must reproduce the forest")

	// patch a 2×2 opening over the block, then the inverse patch
	open, err := grid.NewFilled(2, 2)
	require.NoError(t, err)
	closed, err := grid.New(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.ApplyPatch(grid.Patch{Cells: open, Pos: grid.Pt(2, 1)}))
	require.NoError(t, e.OnChange())
	assert.NotEqual(t, before, e.Nodes())

	require.NoError(t, g.ApplyPatch(grid.Patch{Cells: closed, Pos: grid.Pt(2, 1)}))
	require.NoError(t, e.OnChange())
	assert.Equal(t, before, e.Nodes(), "inverse patch must restore the forest")
}

// TestGetPath_SingleShot emits the whole path as one complete segment by
// default, and nil-complete for no path.
func TestGetPath_SingleShot(t *testing.T) {
	e, _ := prepared(t, []string{
		"....",
		"....",
	})
	pts, incomplete := e.GetPath(grid.Pt(0, 0), grid.Pt(3, 1))
	assert.False(t, incomplete)
	require.NotEmpty(t, pts)
	assert.Equal(t, grid.Pt(0, 0), pts[0])
	assert.Equal(t, grid.Pt(3, 1), pts[len(pts)-1])

	e2, _ := prepared(t, []string{
		".@.",
	})
	pts, incomplete = e2.GetPath(grid.Pt(0, 0), grid.Pt(2, 0))
	assert.False(t, incomplete)
	assert.Empty(t, pts)
}

// TestGetPath_Segmented drains a long corridor in fixed-size chunks and
// checks the concatenation equals the single-shot answer.
func TestGetPath_Segmented(t *testing.T) {
	rows := []string{"............"}
	single, _ := prepared(t, rows)
	want := append([]grid.Point(nil), single.Search(grid.Pt(0, 0), grid.Pt(11, 0))...)

	e, _ := prepared(t, rows, spantree.WithSegmentLimit(5))
	var got []grid.Point
	calls := 0
	for {
		pts, incomplete := e.GetPath(grid.Pt(0, 0), grid.Pt(11, 0))
		calls++
		got = append(got, pts...)
		if !incomplete {
			break
		}
		assert.NotEmpty(t, pts, "incomplete segment must carry points")
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, calls, "12 points at limit 5 take 3 calls")
}

// TestGetPath_SegmentStateResets: a different query or a map change
// abandons the in-flight segmentation.
func TestGetPath_SegmentStateResets(t *testing.T) {
	e, _ := prepared(t, []string{"........"}, spantree.WithSegmentLimit(2))

	_, incomplete := e.GetPath(grid.Pt(0, 0), grid.Pt(7, 0))
	require.True(t, incomplete)

	// new query restarts from its own head
	pts, _ := e.GetPath(grid.Pt(7, 0), grid.Pt(0, 0))
	require.NotEmpty(t, pts)
	assert.Equal(t, grid.Pt(7, 0), pts[0])

	// map change resets the machine too
	_, incomplete = e.GetPath(grid.Pt(0, 0), grid.Pt(7, 0))
	require.True(t, incomplete)
	require.NoError(t, e.OnChange())
	pts, _ = e.GetPath(grid.Pt(0, 0), grid.Pt(7, 0))
	require.NotEmpty(t, pts)
	assert.Equal(t, grid.Pt(0, 0), pts[0])
}

// TestNew_BadOption surfaces option violations at construction.
func TestNew_BadOption(t *testing.T) {
	_, err := spantree.New(spantree.WithSegmentLimit(-1))
	assert.ErrorIs(t, err, spantree.ErrOptionViolation)
}

// TestEngine_Lifecycle covers Prepare/OnChange/Free ordering errors.
func TestEngine_Lifecycle(t *testing.T) {
	e, err := spantree.New()
	require.NoError(t, err)
	assert.ErrorIs(t, e.OnChange(), spantree.ErrNotPrepared)
	assert.ErrorIs(t, e.Prepare(nil), spantree.ErrNilGrid)

	g := mustGrid(t, []string{".."})
	require.NoError(t, e.SearchInit(g, ""))
	e.Free()
	assert.ErrorIs(t, e.OnChange(), spantree.ErrNotPrepared)
}
