// Package scenario decodes benchmark inputs and sequences their command
// streams against a live grid.
//
// Formats
//
// A version-2 scenario is a whitespace-token header followed by commands:
//
//	version 2
//	height <H>
//	width <W>
//	<n> <cost_name_1> … <cost_name_n>    (must name "octile" exactly once)
//	patch <patch_file>                   (resolved against the scenario dir)
//	commands
//	P <bucket> <patch_id> <px> <py>
//	Q <bucket> <sx> <sy> <gx> <gy> <cost_1> … <cost_n>
//
// The patch file registers sub-grids by dense id:
//
//	type patch
//	patches <N>
//	patch <id>            (ids 0..N−1 in order)
//	height <h>
//	width <w>
//	map
//	<h rows of w cells>
//
// Map rows use '.', 'G', 'S' for traversable and '@', 'O', 'T', 'W' for
// blocked; anything else is a parse error. LoadMap reads the older
// single-map format ("type octile") with the same body grammar.
//
// All bounds are enforced at load: dimensions in [1, 8000], patch ids in
// range, patch placements and query endpoints inside the map. A scenario
// that loads is safe to run without further coordinate checking.
//
// Running
//
// Runner owns the active grid (initially all-traversable) and walks the
// command stream: NextQuery applies every patch up to the next query and
// reports how many were applied, −1 at end of stream. The engine borrows
// the active grid; it is mutated only between queries.
package scenario
