// Package bench drives a pathfinding engine through a benchmark scenario
// and records per-query results.
//
// What
//
//   - Driver: loads a scenario, hands the engine the initial map, then
//     walks the query stream: timed map-change hooks, a timed segment
//     loop per query, result accumulation, and the results CSV.
//   - Engine: the contract a pathfinding implementation satisfies. The
//     spanning-forest engine in package spantree is the production
//     implementation; the driver itself is engine-agnostic.
//
// Per-query timing
//
//   - snapshot_time: nanoseconds inside MapChange, 0 when no patches.
//   - time_cost: total nanoseconds across all GetPath segment calls.
//   - 20steps_cost: segment time accumulated until the running path first
//     reaches Euclidean length 20−1e-6 — time-to-first-20-steps however
//     the engine chooses to segment.
//   - max_step_time: the slowest single segment call.
//
// Segment accounting
//
//	Segments extend a running path. When a segment opens on the previous
//	segment's tail point the connecting distance is zero, so the length
//	accumulation never double-counts the anchor.
//
// Protocol
//
//	A zero-length segment marked incomplete is an engine protocol
//	violation and aborts the run with ErrProtocol (process exit 2).
//	Blocked endpoints and disconnected maps are not errors; they are the
//	no-path answer (an empty complete segment).
//
// In -check mode every segment is also streamed through
// validate.Serializer against the live grid.
package bench
