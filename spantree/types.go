// Package spantree defines the node encoding, cost constants, options,
// and sentinel errors for the spanning-forest engine.
package spantree

import (
	"errors"
	"fmt"
)

// Integer step costs in thousandths: 1414/1000 approximates √2 so that
// tie-breaking never touches floating point.
const (
	// CostCardinal is the cost of a N/E/S/W step.
	CostCardinal uint32 = 1000
	// CostOrdinal is the cost of a diagonal step.
	CostOrdinal uint32 = 1414
)

// Predecessor and cost sentinels, packed into the top of the uint32 range.
const (
	// Invalid marks an unset predecessor (blocked or undiscovered cell)
	// and an unreached cost.
	Invalid uint32 = ^uint32(0)
	// floodMark marks a cell currently claimed by flood fill but not yet
	// reached by Dijkstra. Never visible after a successful setup.
	floodMark uint32 = Invalid - 1
	// RootPred marks a tree root. Roots carry cost 0.
	RootPred uint32 = Invalid - 2
)

// Node is one cell's slot in the spanning forest: the predecessor cell id
// one hop closer to the root (or a sentinel) and the integer distance
// from the root.
//
// Invariants after setup: traversable cells have Pred in [0, size) or
// RootPred and Cost < Invalid−2; blocked cells have Pred == Invalid.
type Node struct {
	Pred uint32
	Cost uint32
}

// Sentinel errors for engine construction and setup.
var (
	// ErrNilGrid indicates Prepare was handed a nil grid.
	ErrNilGrid = errors.New("spantree: grid is nil")

	// ErrNotPrepared indicates a call before Prepare succeeded.
	ErrNotPrepared = errors.New("spantree: engine not prepared")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("spantree: invalid option supplied")

	// ErrClusterUnreached indicates a flood-filled cell that Dijkstra
	// never reached; the grid must have been mutated mid-setup.
	ErrClusterUnreached = errors.New("spantree: cluster cell unreached by tree")
)

// Options configures the engine.
//
// SegmentLimit — maximum points handed out per GetPath call. 0 disables
// segmentation (the full path is returned in one complete segment).
type Options struct {
	SegmentLimit int

	// internal error recorded during option parsing
	err error
}

// Option configures the engine via functional arguments.
type Option func(*Options)

// DefaultOptions returns Options with segmentation disabled.
func DefaultOptions() Options {
	return Options{SegmentLimit: 0}
}

// WithSegmentLimit caps the number of points per GetPath call.
//
//	n > 0:  emit at most n points per call
//	n == 0: explicit "whole path at once"
//	n < 0:  invalid → ErrOptionViolation
func WithSegmentLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: SegmentLimit cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.SegmentLimit = n
	}
}

// pqItem is one lazy-deletion priority-queue entry: a cell id at the cost
// it was pushed with. Stale entries are recognized on pop by comparing
// against the node's current cost.
type pqItem struct {
	cost uint32
	id   int
}

// cellQueue is a min-heap of pqItem keyed on cost, for container/heap.
type cellQueue []pqItem

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

// Push appends x; required by heap.Interface.
func (q *cellQueue) Push(x any) {
	*q = append(*q, x.(pqItem))
}

// Pop removes and returns the last element; required by heap.Interface.
func (q *cellQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]

	return it
}
