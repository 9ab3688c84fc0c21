package validate

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pathlab/gridbench/grid"
)

// Serializer emits the -check trace for a query stream. The grid pointer
// is borrowed and must be kept up to date by the caller: every AddSubPath
// validates against the grid state at the time of the call.
//
// Record grammar (one record per line):
//
//	query [id] [state_id] [sx] [sy] [gx] [gy]
//	path  [complete|incomplete] [count] [x y]{count}
//	eval  [check] [distance]
//	final [check] [distance]
type Serializer struct {
	g   *grid.Grid
	w   io.Writer
	cur Query

	prev      []grid.Point // previous segment, raw as returned
	connected []grid.Point // previous tail + current segment, scratch
	state     Check
	cost      float64
}

// NewSerializer binds a serializer to the live grid and an output stream.
func NewSerializer(g *grid.Grid, w io.Writer) *Serializer {
	return &Serializer{g: g, w: w}
}

// Header writes the self-describing format comment once per trace.
func (s *Serializer) Header() error {
	_, err := fmt.Fprint(s.w,
		"# Format:\n",
		"# query [id] [state_id] [sx] [sy] [gx] [gy]\n",
		"# path [complete|incomplete] [path_points_count] [path_x path_y]{path_points_count}\n",
		"# eval [check] [distance]\n",
		"# final [check] [distance]\n")

	return err
}

// AddQuery opens a query record and resets per-query state.
func (s *Serializer) AddQuery(q Query) error {
	s.cur = q
	s.prev = s.prev[:0]
	s.state = Check{}
	s.cost = 0
	_, err := fmt.Fprintf(s.w, "query %d %d %d %d %d %d\n",
		q.ID, q.Bucket, q.Start.X, q.Start.Y, q.Goal.X, q.Goal.Y)

	return err
}

// AddSubPath validates one returned segment in context and writes its
// path and eval records. The segment is stitched onto the previous
// segment's tail before validation so the connecting edge is checked too.
func (s *Serializer) AddSubPath(pts []grid.Point, incomplete bool) error {
	s.classify(pts, incomplete)
	if s.state.Verdict == EmptyPath {
		_, err := fmt.Fprintf(s.w, "path complete -1\neval %s -1\n", s.state)

		return err
	}
	s.cost = grid.PathLength(pts)
	kind := "complete"
	if incomplete {
		kind = "incomplete"
	}
	if _, err := fmt.Fprintf(s.w, "path %s %d", kind, len(pts)); err != nil {
		return err
	}
	for _, p := range pts {
		if _, err := fmt.Fprintf(s.w, " %d %d", p.X, p.Y); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.w, "\neval %s %s\n", s.state, formatCost(s.cost))
	s.prev = append(s.prev[:0], pts...)

	return err
}

// FinishQuery closes the query with a final record carrying the last
// segment's check and cost.
func (s *Serializer) FinishQuery() error {
	_, err := fmt.Fprintf(s.w, "final %s %s\n", s.state, formatCost(s.cost))
	s.prev = s.prev[:0]

	return err
}

// classify computes the Check for one segment.
func (s *Serializer) classify(pts []grid.Point, incomplete bool) {
	s.state = Check{}
	s.cost = 0
	s.connected = s.connected[:0]
	if len(pts) == 0 {
		s.state = Check{Verdict: EmptyPath}

		return
	}
	first := len(s.prev) == 0
	if !first && s.prev[len(s.prev)-1] != pts[0] {
		s.connected = append(s.connected, s.prev[len(s.prev)-1])
	}
	s.connected = append(s.connected, pts...)

	switch {
	case first && s.connected[0] != s.cur.Start:
		s.state = Check{Verdict: StartMismatch}
	default:
		if k := ValidatePath(s.g, s.connected); k >= 0 {
			s.state = Check{Verdict: InvalidEdge, Index: k}

			return
		}
		last := s.connected[len(s.connected)-1]
		switch {
		case !incomplete && (len(s.connected) < 2 || last != s.cur.Goal):
			s.state = Check{Verdict: GoalMismatch}
		case incomplete:
			s.state = Check{Verdict: Incomplete}
		default:
			s.state = Check{Verdict: Complete}
		}
	}
}

// formatCost renders distances with 15 significant digits, matching the
// trace grammar consumed by Reader.
func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'g', 15, 64)
}
