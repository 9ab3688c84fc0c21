// Package gridbench is a benchmark harness for shortest-path queries on
// dynamic 8-connected grids.
//
// A benchmark scenario interleaves rectangular map patches with
// (start, goal) queries; the harness maintains the active grid, drives a
// pathfinding engine through the query stream, validates returned paths,
// and emits a timed results record per query.
//
// The module is organized under five subpackages:
//
//	grid/      — packed traversability bitmap, points, patches
//	validate/  — path legality checking and the -check trace format
//	spantree/  — the spanning-forest engine (flood fill, Dijkstra, LCA)
//	scenario/  — scenario, patch, and map file decoding + command runner
//	bench/     — the benchmark driver: query loop, timing, results CSV
//
// The cmd/gridbench binary ties them together:
//
//	gridbench -full|-pre|-run|-check <scenario>
//
// Costs are fixed-point integers throughout the engine (cardinal step
// 1000, ordinal step 1414); only the reported path length is floating.
package gridbench
