// Package validate decides whether point sequences are legal paths on a
// grid and implements the -check trace format.
//
// What
//
//   - ValidatePath: first-failure check of a path against a grid — every
//     point in bounds and traversable, every consecutive pair a legal
//     cardinal or ordinal segment with no corner cutting.
//   - Check / Verdict: the structured outcome vocabulary (complete,
//     incomplete, start-mismatch, goal-mismatch, invalid-<k>, empty-path).
//   - Serializer: emits the validation trace for a query stream, stitching
//     each sub-path onto the previous segment's tail before checking.
//   - Reader: parses a trace back into records, for offline re-checking
//     and round-trip tests.
//
// Segment legality
//
//   - Cardinal (Δx=0 xor Δy=0): every cell stepped over from p up to but
//     not including q must be traversable; q itself is covered by the
//     per-point check.
//   - Ordinal (|Δx| = |Δy| ≠ 0): at every unit-diagonal step both cells
//     orthogonally adjacent to the move must also be traversable.
//   - Any other delta is illegal.
//
// A validator never fabricates success: the returned index always names
// the first offending point or edge.
package validate
