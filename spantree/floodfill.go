package spantree

import "github.com/pathlab/gridbench/grid"

// floodFill collects the 4-connected traversable component seeded at
// origin into e.cluster, marking every member's Pred with floodMark so a
// cell is never enqueued twice. Dijkstra later overwrites the marks.
//
// Precondition: origin is traversable and nodes[origin].Pred == Invalid.
// Post: e.cluster equals the component of origin under N/E/S/W adjacency.
// Complexity: O(|cluster|) time, stack bounded by the cluster size.
func (e *Engine) floodFill(origin int) []grid.Point {
	e.cluster = e.cluster[:0]
	e.stack = e.stack[:0]

	w := e.g.Width()
	push := func(x, y int) {
		if !e.g.GetXY(x, y) {
			return
		}
		id := y*w + x
		if e.nodes[id].Pred == Invalid {
			e.nodes[id].Pred = floodMark
			e.stack = append(e.stack, id)
		}
	}

	e.nodes[origin].Pred = floodMark
	e.stack = append(e.stack, origin)
	for len(e.stack) > 0 {
		id := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]
		p := e.g.Unpack(id)
		e.cluster = append(e.cluster, p)
		x, y := int(p.X), int(p.Y)
		push(x+1, y)
		push(x-1, y)
		push(x, y+1)
		push(x, y-1)
	}

	return e.cluster
}
