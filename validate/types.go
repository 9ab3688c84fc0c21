// Package validate defines the verdict vocabulary and sentinel errors for
// path validation and trace handling.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pathlab/gridbench/grid"
)

// Sentinel errors for trace serialization and parsing.
var (
	// ErrBadTrace indicates a malformed trace record.
	ErrBadTrace = errors.New("validate: malformed trace record")

	// ErrBadVerdict indicates an unrecognized verdict token.
	ErrBadVerdict = errors.New("validate: unknown verdict token")
)

// Verdict classifies the state of a (sub-)path against the current grid.
type Verdict uint8

const (
	// Incomplete: legal so far, engine has announced more segments.
	Incomplete Verdict = iota
	// StartMismatch: first point of the first segment is not the query start.
	StartMismatch
	// GoalMismatch: final segment does not end on the query goal.
	GoalMismatch
	// InvalidEdge: a point or edge fails the grid check; Index names it.
	InvalidEdge
	// Complete: a finished, fully legal path.
	Complete
	// EmptyPath: no points returned (the no-path answer).
	EmptyPath
)

// Check pairs a Verdict with its failure index (meaningful for
// InvalidEdge only).
type Check struct {
	Verdict Verdict
	Index   int
}

// String renders the canonical trace token for the check.
func (c Check) String() string {
	switch c.Verdict {
	case Incomplete:
		return "incomplete"
	case StartMismatch:
		return "start-mismatch"
	case GoalMismatch:
		return "goal-mismatch"
	case InvalidEdge:
		return "invalid-" + strconv.Itoa(c.Index)
	case Complete:
		return "complete"
	case EmptyPath:
		return "empty-path"
	}

	return fmt.Sprintf("verdict(%d)", uint8(c.Verdict))
}

// ParseCheck is the inverse of Check.String.
// Returns ErrBadVerdict for unrecognized tokens.
func ParseCheck(tok string) (Check, error) {
	switch tok {
	case "incomplete":
		return Check{Verdict: Incomplete}, nil
	case "start-mismatch":
		return Check{Verdict: StartMismatch}, nil
	case "goal-mismatch":
		return Check{Verdict: GoalMismatch}, nil
	case "complete":
		return Check{Verdict: Complete}, nil
	case "empty-path":
		return Check{Verdict: EmptyPath}, nil
	}
	if rest, ok := strings.CutPrefix(tok, "invalid-"); ok {
		k, err := strconv.Atoi(rest)
		if err != nil {
			return Check{}, fmt.Errorf("%w: %q", ErrBadVerdict, tok)
		}

		return Check{Verdict: InvalidEdge, Index: k}, nil
	}

	return Check{}, fmt.Errorf("%w: %q", ErrBadVerdict, tok)
}

// Query is one scenario query as seen by the trace: sequential id, the
// map-state bucket, endpoints, and the reference octile cost.
type Query struct {
	ID      int
	Bucket  int
	Start   grid.Point
	Goal    grid.Point
	RefCost float64
}
