// Package scenario defines the command model and sentinel parse errors
// for benchmark scenario decoding.
package scenario

import (
	"errors"

	"github.com/pathlab/gridbench/grid"
)

// Sentinel errors for scenario and patch-file decoding.
var (
	// ErrBadHeader indicates a missing or mismatched header token.
	ErrBadHeader = errors.New("scenario: malformed header")

	// ErrBadDimensions indicates width or height outside [1, 8000].
	ErrBadDimensions = errors.New("scenario: dimensions out of range")

	// ErrBadCosts indicates a cost list without exactly one "octile".
	ErrBadCosts = errors.New("scenario: cost list must name octile exactly once")

	// ErrUnknownCommand indicates a command line not starting with P or Q,
	// including trailing garbage after the last command.
	ErrUnknownCommand = errors.New("scenario: unknown command")

	// ErrBadCommand indicates a truncated or non-numeric command line.
	ErrBadCommand = errors.New("scenario: malformed command")

	// ErrBadPatchRef indicates a P command naming an unregistered patch.
	ErrBadPatchRef = errors.New("scenario: patch id out of range")

	// ErrPatchPlacement indicates a patch that would overhang the map.
	ErrPatchPlacement = errors.New("scenario: patch placement out of bounds")

	// ErrQueryBounds indicates a query endpoint outside the map.
	ErrQueryBounds = errors.New("scenario: query endpoint out of bounds")

	// ErrBadCell indicates an unknown map-body character.
	ErrBadCell = errors.New("scenario: unknown cell character")

	// ErrNoQuery indicates Current was called while not positioned on a
	// query (before the first NextQuery or after the stream ended).
	ErrNoQuery = errors.New("scenario: not positioned on a query")
)

// CommandType discriminates scenario commands.
type CommandType uint8

const (
	// CmdPatch applies a registered patch to the active grid.
	CmdPatch CommandType = iota
	// CmdQuery asks for a path on the current grid state.
	CmdQuery
)

// Command is one decoded scenario line. Patch fields are meaningful for
// CmdPatch, Start/Goal for CmdQuery.
type Command struct {
	Type   CommandType
	Bucket uint16

	PatchID int
	Pos     grid.Point

	Start, Goal grid.Point
}

// Query is the driver's view of one Q command: sequential id, map-state
// bucket, endpoints, and the reference octile cost.
type Query struct {
	ID      int
	Bucket  int
	Start   grid.Point
	Goal    grid.Point
	RefCost float64
}

// Scenario is a fully decoded benchmark: map dimensions, the registered
// patch table, the command stream, and per-query reference costs.
type Scenario struct {
	Width, Height int
	Patches       []*grid.Grid
	Commands      []Command
	QueryCosts    []float64

	patchCommands int
	queryCommands int
}

// PatchCommands reports the number of P commands in the stream.
func (s *Scenario) PatchCommands() int { return s.patchCommands }

// QueryCommands reports the number of Q commands in the stream.
func (s *Scenario) QueryCommands() int { return s.queryCommands }
