package validate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pathlab/gridbench/grid"
)

// RecordKind discriminates trace records.
type RecordKind uint8

const (
	// RecQuery opens a query.
	RecQuery RecordKind = iota
	// RecPath carries one returned (sub-)path.
	RecPath
	// RecEval carries the per-segment check.
	RecEval
	// RecFinal closes a query with its final check.
	RecFinal
)

// Record is one parsed trace line.
type Record struct {
	Kind       RecordKind
	Query      Query        // RecQuery
	Incomplete bool         // RecPath
	Points     []grid.Point // RecPath; nil for the -1 (no path) form
	Check      Check        // RecEval, RecFinal
	Cost       float64      // RecEval, RecFinal
}

// Reader parses a trace produced by Serializer. Comment lines (leading
// '#') and blank lines are skipped.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps in for record-at-a-time reading.
func NewReader(in io.Reader) *Reader {
	sc := bufio.NewScanner(in)
	// a path record carries every point on one line; on large maps that
	// far exceeds the default token limit
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	return &Reader{sc: sc}
}

// Next returns the next record, or io.EOF after the last line.
// Malformed lines yield an error carrying the line number that wraps
// ErrBadTrace, or ErrBadVerdict for an unknown verdict token.
func (r *Reader) Next() (Record, error) {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimSpace(r.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		return r.parse(strings.Fields(text))
	}
	if err := r.sc.Err(); err != nil {
		return Record{}, err
	}

	return Record{}, io.EOF
}

func (r *Reader) parse(fields []string) (Record, error) {
	switch fields[0] {
	case "query":
		return r.parseQuery(fields[1:])
	case "path":
		return r.parsePath(fields[1:])
	case "eval", "final":
		return r.parseCheck(fields[0], fields[1:])
	}

	return Record{}, r.badf("unknown record %q", fields[0])
}

func (r *Reader) parseQuery(args []string) (Record, error) {
	if len(args) != 6 {
		return Record{}, r.badf("query needs 6 fields, got %d", len(args))
	}
	vals := make([]int, 6)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return Record{}, r.badf("query field %q", a)
		}
		vals[i] = v
	}

	return Record{Kind: RecQuery, Query: Query{
		ID:     vals[0],
		Bucket: vals[1],
		Start:  grid.Pt(vals[2], vals[3]),
		Goal:   grid.Pt(vals[4], vals[5]),
	}}, nil
}

func (r *Reader) parsePath(args []string) (Record, error) {
	if len(args) < 2 {
		return Record{}, r.badf("truncated path record")
	}
	rec := Record{Kind: RecPath}
	switch args[0] {
	case "complete":
	case "incomplete":
		rec.Incomplete = true
	default:
		return Record{}, r.badf("path state %q", args[0])
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return Record{}, r.badf("path count %q", args[1])
	}
	if count < 0 {
		// the no-path form: "path complete -1"
		return rec, nil
	}
	if len(args) != 2+2*count {
		return Record{}, r.badf("path expects %d coordinates, got %d", 2*count, len(args)-2)
	}
	rec.Points = make([]grid.Point, count)
	for i := 0; i < count; i++ {
		x, errX := strconv.Atoi(args[2+2*i])
		y, errY := strconv.Atoi(args[3+2*i])
		if errX != nil || errY != nil {
			return Record{}, r.badf("path coordinate pair %d", i)
		}
		rec.Points[i] = grid.Pt(x, y)
	}

	return rec, nil
}

func (r *Reader) parseCheck(kind string, args []string) (Record, error) {
	if len(args) != 2 {
		return Record{}, r.badf("%s needs 2 fields, got %d", kind, len(args))
	}
	check, err := ParseCheck(args[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w (line %d)", err, r.line)
	}
	cost, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return Record{}, r.badf("%s cost %q", kind, args[1])
	}
	rec := Record{Kind: RecEval, Check: check, Cost: cost}
	if kind == "final" {
		rec.Kind = RecFinal
	}

	return rec, nil
}

func (r *Reader) badf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (line %d)", ErrBadTrace, fmt.Sprintf(format, args...), r.line)
}

// ReValidate re-runs ValidatePath over every path record in the trace
// against a static grid, returning the index of the first path record
// that fails the check (records counted from 0, comment and blank lines
// excluded), or −1 when every path validates. Stored eval and final
// verdicts are not compared, and each path record is checked on its own,
// not stitched onto the previous segment. Only meaningful for scenarios
// without patches, where the grid never moves.
func ReValidate(g *grid.Grid, in io.Reader) (int, error) {
	r := NewReader(in)
	idx := -1
	for i := 0; ; i++ {
		rec, err := r.Next()
		if err == io.EOF {
			return -1, nil
		}
		if err != nil {
			return idx, err
		}
		if rec.Kind != RecPath {
			continue
		}
		if k := ValidatePath(g, rec.Points); k >= 0 {
			return i, nil
		}
	}
}
