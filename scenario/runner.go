package scenario

import (
	"github.com/pathlab/gridbench/grid"
)

// Runner sequences a loaded scenario against its active grid. The grid
// starts all-traversable; P commands overwrite rectangles as the cursor
// advances. The engine borrows the grid read-only between advances.
type Runner struct {
	scen    *Scenario
	active  *grid.Grid
	applied []grid.Patch

	cmdAt   int // index of the current command, -1 before the first
	queryAt int // sequential query counter, -1 before the first
}

// NewRunner binds a runner to a loaded scenario and allocates its active
// grid.
func NewRunner(s *Scenario) (*Runner, error) {
	active, err := grid.NewFilled(s.Width, s.Height)
	if err != nil {
		return nil, err
	}

	return &Runner{scen: s, active: active, cmdAt: -1, queryAt: -1}, nil
}

// NextQuery advances the cursor, applying every patch command on the way,
// and stops on the next query. Returns the number of patches applied, or
// −1 at end of stream. Apply errors cannot occur on a validated scenario
// but are surfaced rather than swallowed.
func (r *Runner) NextQuery() (int, error) {
	r.applied = r.applied[:0]
	i := r.cmdAt + 1
	for ; i < len(r.scen.Commands); i++ {
		cmd := r.scen.Commands[i]
		if cmd.Type == CmdQuery {
			break
		}
		p := grid.Patch{Cells: r.scen.Patches[cmd.PatchID], Pos: cmd.Pos}
		if err := r.active.ApplyPatch(p); err != nil {
			return 0, err
		}
		r.applied = append(r.applied, p)
	}
	r.cmdAt = i
	if i >= len(r.scen.Commands) {
		return -1, nil
	}
	r.queryAt++

	return len(r.applied), nil
}

// Current returns the query under the cursor.
func (r *Runner) Current() (Query, error) {
	if r.cmdAt < 0 || r.cmdAt >= len(r.scen.Commands) {
		return Query{}, ErrNoQuery
	}
	cmd := r.scen.Commands[r.cmdAt]
	if cmd.Type != CmdQuery {
		return Query{}, ErrNoQuery
	}

	return Query{
		ID:      r.queryAt,
		Bucket:  int(cmd.Bucket),
		Start:   cmd.Start,
		Goal:    cmd.Goal,
		RefCost: r.scen.QueryCosts[r.queryAt],
	}, nil
}

// ActiveGrid borrows the in-memory grid state. The pointer stays valid
// for the runner's lifetime; contents change only inside NextQuery.
func (r *Runner) ActiveGrid() *grid.Grid { return r.active }

// AppliedPatches returns the patches applied by the last NextQuery, in
// file order. The slice is reused on the next advance.
func (r *Runner) AppliedPatches() []grid.Patch { return r.applied }
