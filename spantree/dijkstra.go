package spantree

import "container/heap"

// Move legality masks over the 3×3 traversability bitmap around a cell,
// bits 0..8 row-major:
//
//	0 1 2   (NW N NE)
//	3 4 5   ( W . E )
//	6 7 8   (SW S SE)
//
// A move is legal iff every cell in its mask is traversable. The diagonal
// masks include both orthogonally adjacent cells, which is exactly the
// no-corner-cutting rule.
const (
	maskN uint32 = 1 << 1
	maskE uint32 = 1 << 5
	maskS uint32 = 1 << 7
	maskW uint32 = 1 << 3

	maskNE = maskN | maskE | 1<<2
	maskNW = maskN | maskW | 1<<0
	maskSE = maskS | maskE | 1<<8
	maskSW = maskS | maskW | 1<<6
)

// dijkstra builds the shortest-path tree rooted at root over the
// 8-connected move graph, writing Pred/Cost for every reachable cell.
//
// The queue uses lazy deletion: relaxation pushes duplicates, and a
// popped entry whose cost no longer matches the node's is skipped.
// Complexity: O(C log C) for a component of C cells.
func (e *Engine) dijkstra(root int) {
	e.pq = e.pq[:0]
	e.nodes[root] = Node{Pred: RootPred, Cost: 0}
	heap.Push(&e.pq, pqItem{cost: 0, id: root})

	w := e.g.Width()
	for len(e.pq) > 0 {
		it := heap.Pop(&e.pq).(pqItem)
		if it.cost != e.nodes[it.id].Cost {
			continue // stale entry
		}
		p := e.g.Unpack(it.id)
		x, y := int(p.X), int(p.Y)

		// 3×3 traversability mask; GetXY reads blocked past any edge, so
		// border cells simply lose the moves that would leave the grid.
		var m uint32
		bit := 0
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if e.g.GetXY(x+dx, y+dy) {
					m |= 1 << bit
				}
				bit++
			}
		}

		if m&maskN == maskN {
			e.relax(it.id, -w, it.cost+CostCardinal)
		}
		if m&maskE == maskE {
			e.relax(it.id, 1, it.cost+CostCardinal)
		}
		if m&maskS == maskS {
			e.relax(it.id, w, it.cost+CostCardinal)
		}
		if m&maskW == maskW {
			e.relax(it.id, -1, it.cost+CostCardinal)
		}
		if m&maskNE == maskNE {
			e.relax(it.id, -w+1, it.cost+CostOrdinal)
		}
		if m&maskNW == maskNW {
			e.relax(it.id, -w-1, it.cost+CostOrdinal)
		}
		if m&maskSE == maskSE {
			e.relax(it.id, w+1, it.cost+CostOrdinal)
		}
		if m&maskSW == maskSW {
			e.relax(it.id, w-1, it.cost+CostOrdinal)
		}
	}
}

// relax improves the neighbor at from+delta when the new cost is strictly
// better, recording from as its predecessor.
func (e *Engine) relax(from, delta int, cost uint32) {
	to := from + delta
	n := &e.nodes[to]
	if cost < n.Cost {
		n.Pred = uint32(from)
		n.Cost = cost
		heap.Push(&e.pq, pqItem{cost: cost, id: to})
	}
}
