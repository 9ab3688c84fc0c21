// Package spantree implements the spanning-forest pathfinding engine:
// per-component shortest-path trees over an 8-connected grid, answered by
// lowest-common-ancestor walks.
//
// What
//
//   - Setup sweeps the grid once. Each undiscovered traversable cell seeds
//     a 4-connected flood fill; the component's centroid-nearest cell
//     becomes the root of a Dijkstra shortest-path tree built over the
//     8-connected move graph with no corner cutting.
//   - A query walks both endpoints' predecessor chains to their lowest
//     common ancestor with a balanced two-pointer walk, in
//     O(depth(s) + depth(g)) steps.
//   - A map change rebuilds the whole forest; there is no incremental
//     maintenance.
//
// Cost model
//
//	Cardinal step 1000, ordinal step 1414, all arithmetic in integer
//	thousandths. Ties resolve to whichever predecessor relaxed first; any
//	tie-consistent tree is a valid answer.
//
// Adjacency
//
//	Cluster discovery is 4-connected; Dijkstra expansion is 8-connected
//	with corner-cutting masks. The pairing matters: every flood-filled
//	cell is 4-reachable and therefore 8-reachable from the root, which is
//	what lets setup assert full tree coverage of each cluster.
//
// Rooting
//
//	The root is the cluster cell nearest (L1) to the truncating-integer
//	centroid. Centring the tree bounds typical predecessor-chain depth by
//	the cluster radius rather than its diameter.
//
// Segmented emission
//
//	GetPath hands the computed path out in chunks of at most SegmentLimit
//	points per call (default: the whole path at once); the driver calls
//	again with the same query until the segment is marked complete. The
//	returned slice is owned by the engine and stable until the next call.
//
// Complexity (S = grid cells, C = cluster cells)
//
//   - Setup: O(S + Σ C log C) time, O(S) memory for the node array.
//   - Query: O(depth(s) + depth(g)) time, no allocation beyond the
//     engine's reused path buffers.
//
// Errors
//
//   - ErrNilGrid          if Prepare receives a nil grid.
//   - ErrNotPrepared      if OnChange runs before Prepare. Search and
//     GetPath have no error result and do not check for a prepared grid.
//   - ErrOptionViolation  if an option is invalid (negative SegmentLimit).
//   - ErrClusterUnreached if Dijkstra failed to cover a flood-filled cell
//     (a corrupted grid mutation during setup).
package spantree
