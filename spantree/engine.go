package spantree

import (
	"fmt"

	"github.com/pathlab/gridbench/grid"
)

// Engine holds the spanning forest for one borrowed grid plus the reused
// scratch buffers for setup and queries. It is not safe for concurrent
// use; the benchmark driver is single-threaded by design.
type Engine struct {
	opts  Options
	g     *grid.Grid
	nodes []Node

	// setup scratch
	pq      cellQueue
	stack   []int
	cluster []grid.Point

	// query scratch
	head, tail, path []grid.Point

	// segmented-emission state machine
	cur struct {
		start, goal grid.Point
		active      bool
	}
	offset int
}

// New constructs an engine. Returns ErrOptionViolation on invalid options.
func New(opts ...Option) (*Engine, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	return &Engine{opts: cfg}, nil
}

// Name identifies the engine in result filenames. Stable for the process
// lifetime.
func (e *Engine) Name() string { return "spanforest" }

// PreprocessInitMap is the preprocessing hook; the spanning forest is
// rebuilt from scratch at search init, so there is no index to write.
func (e *Engine) PreprocessInitMap(_ *grid.Grid, _ string) error { return nil }

// SearchInit borrows g for the lifetime of the run and builds the initial
// forest. Equivalent to Prepare; the two names exist so the engine
// satisfies the driver contract verbatim.
func (e *Engine) SearchInit(g *grid.Grid, _ string) error { return e.Prepare(g) }

// Prepare borrows g and builds the spanning forest over its current
// state. The grid must outlive the engine or be re-Prepared after any
// reallocation.
func (e *Engine) Prepare(g *grid.Grid) error {
	if g == nil {
		return ErrNilGrid
	}
	e.g = g

	return e.rebuild()
}

// MapChange rebuilds the forest after the driver mutated the grid. The
// patch list is advisory and ignored: a full recompute is the contract.
func (e *Engine) MapChange(_ []grid.Patch) error { return e.OnChange() }

// OnChange rebuilds the forest over the borrowed grid's current state.
func (e *Engine) OnChange() error {
	if e.g == nil {
		return ErrNotPrepared
	}

	return e.rebuild()
}

// Free drops the node array and scratch buffers. The engine must be
// re-Prepared before further use.
func (e *Engine) Free() {
	*e = Engine{opts: e.opts}
}

// Nodes exposes the forest for invariant checks. The slice is borrowed
// and valid until the next Prepare/OnChange/Free.
func (e *Engine) Nodes() []Node { return e.nodes }

// rebuild runs the full setup sweep: reset every node, then for each
// undiscovered traversable cell flood-fill its cluster, pick the
// centroid-nearest root, and grow the cluster's shortest-path tree.
func (e *Engine) rebuild() error {
	size := e.g.Size()
	if cap(e.nodes) < size {
		e.nodes = make([]Node, size)
	}
	e.nodes = e.nodes[:size]
	for i := range e.nodes {
		e.nodes[i] = Node{Pred: Invalid, Cost: Invalid}
	}
	e.cur.active = false

	for i := 0; i < size; i++ {
		if !e.g.Get(i) || e.nodes[i].Pred != Invalid {
			continue
		}
		cluster := e.floodFill(i)

		// truncating-integer centroid
		var sx, sy uint64
		for _, p := range cluster {
			sx += uint64(p.X)
			sy += uint64(p.Y)
		}
		n := uint64(len(cluster))
		centre := grid.Pt(int(sx/n), int(sy/n))

		// first-encountered stable minimum of L1 distance to the centroid
		root := cluster[0]
		best := l1(root, centre)
		for _, p := range cluster[1:] {
			if d := l1(p, centre); d < best {
				best, root = d, p
			}
		}

		e.dijkstra(e.g.Pack(root))

		for _, p := range cluster {
			if e.nodes[e.g.Pack(p)].Pred == floodMark {
				return fmt.Errorf("%w: (%d,%d)", ErrClusterUnreached, p.X, p.Y)
			}
		}
	}

	return nil
}

// l1 is the Manhattan distance between two points.
func l1(a, b grid.Point) int {
	dx := int(a.X) - int(b.X)
	if dx < 0 {
		dx = -dx
	}
	dy := int(a.Y) - int(b.Y)
	if dy < 0 {
		dy = -dy
	}

	return dx + dy
}

// Search answers one query in full: the tree path start→LCA→goal, nil
// when no path exists. The returned slice is owned by the engine and
// valid until the next Search/GetPath/rebuild.
//
// Precondition: both endpoints are in bounds (the scenario loader
// enforces this); out-of-bounds points are a caller contract violation.
func (e *Engine) Search(start, goal grid.Point) []grid.Point {
	si, gi := e.g.Pack(start), e.g.Pack(goal)
	if e.nodes[si].Pred == Invalid || e.nodes[gi].Pred == Invalid {
		return nil // blocked endpoint
	}
	e.path = e.path[:0]
	if si == gi {
		// zero-length answers are reported as two coincident points
		e.path = append(e.path, start, goal)

		return e.path
	}

	e.head = e.head[:0]
	e.tail = e.tail[:0]
	u, v := si, gi
	for {
		cu, cv := e.nodes[u].Cost, e.nodes[v].Cost
		switch {
		case cu == cv:
			if u == v {
				// lowest common ancestor
				e.head = append(e.head, e.g.Unpack(u))
			} else if cu == 0 {
				// both walked down to roots of different trees
				return nil
			} else {
				e.head = append(e.head, e.g.Unpack(u))
				u = int(e.nodes[u].Pred)

				continue
			}
		case cv > cu:
			e.tail = append(e.tail, e.g.Unpack(v))
			v = int(e.nodes[v].Pred)

			continue
		default:
			e.head = append(e.head, e.g.Unpack(u))
			u = int(e.nodes[u].Pred)

			continue
		}

		break
	}

	e.path = append(e.path, e.head...)
	for i := len(e.tail) - 1; i >= 0; i-- {
		e.path = append(e.path, e.tail[i])
	}

	return e.path
}

// GetPath is the segmented driver entry point. A fresh (start, goal)
// computes the full path; successive calls with the same pair hand it out
// in chunks of at most SegmentLimit points. incomplete=true announces
// another call; a complete call with no points is the no-path answer.
// The returned slice is owned by the engine and stable until the next
// call on it.
func (e *Engine) GetPath(start, goal grid.Point) ([]grid.Point, bool) {
	if !e.cur.active || e.cur.start != start || e.cur.goal != goal {
		e.cur.start, e.cur.goal = start, goal
		e.offset = 0
		if e.Search(start, goal) == nil {
			e.cur.active = false

			return nil, false
		}
		e.cur.active = true
	}

	rest := len(e.path) - e.offset
	if lim := e.opts.SegmentLimit; lim > 0 && rest > lim {
		out := e.path[e.offset : e.offset+lim]
		e.offset += lim

		return out, true
	}
	out := e.path[e.offset:]
	e.cur.active = false

	return out, false
}
