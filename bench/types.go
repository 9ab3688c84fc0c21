// Package bench defines the engine contract, driver options, and result
// records for benchmark runs.
package bench

import (
	"errors"
	"io"
	"os"

	"github.com/pathlab/gridbench/grid"
	"github.com/rs/zerolog"
)

// Sentinel errors for driver execution.
var (
	// ErrNoQueries indicates a scenario whose command stream contains no
	// Q command.
	ErrNoQueries = errors.New("bench: scenario contains no queries")

	// ErrProtocol indicates the engine violated the segment contract.
	// Runs aborted with this error map to process exit code 2.
	ErrProtocol = errors.New("bench: engine protocol violation")
)

// Engine is the driver-side contract of a pathfinding implementation.
//
// The grid handed to SearchInit is borrowed for the whole run and
// mutated by the driver only between queries; MapChange announces such a
// mutation (its patch list is advisory — a full recompute may ignore it).
// GetPath returns one segment: incomplete=true promises another call
// with the same query; a complete call with no points is the no-path
// answer. Returned slices stay valid until the next call on the engine.
type Engine interface {
	Name() string
	PreprocessInitMap(g *grid.Grid, indexPath string) error
	SearchInit(g *grid.Grid, indexPath string) error
	MapChange(patches []grid.Patch) error
	GetPath(start, goal grid.Point) (pts []grid.Point, incomplete bool)
	Free()
}

// ResultRow is one query's record in the results CSV.
type ResultRow struct {
	ExperimentID int
	SnapshotID   int
	SnapshotTime int64 // ns in MapChange, 0 if no patches applied
	PathSize     int
	PathLength   float64 // Euclidean; -1 when no path
	RefLength    float64
	TimeCost     int64 // ns across all segment calls
	First20Cost  int64 // ns until the path first reaches length 20
	MaxStepTime  int64 // ns of the slowest segment call
}

// Options configures a driver run.
type Options struct {
	// Pre runs the preprocessing hook; Run executes the query stream;
	// Check additionally streams the validation trace.
	Pre, Run, Check bool

	// MemoryTrack appends peak RSS to the info file after the run
	// (Linux only).
	MemoryTrack bool

	// IndexDir receives preprocessing index files.
	IndexDir string

	// ResultPath and InfoPath name the output files.
	ResultPath string
	InfoPath   string

	// TraceWriter receives the -check trace.
	TraceWriter io.Writer

	// Logger records run progress; defaults to a disabled logger.
	Logger zerolog.Logger
}

// Option configures the driver via functional arguments.
type Option func(*Options)

// DefaultOptions returns a plain -run configuration writing result.csv
// and run.info in the working directory, trace to stdout, logging off.
func DefaultOptions() Options {
	return Options{
		Run:         true,
		IndexDir:    "index_data",
		ResultPath:  "result.csv",
		InfoPath:    "run.info",
		TraceWriter: os.Stdout,
		Logger:      zerolog.Nop(),
	}
}

// WithPreprocess enables the preprocessing phase.
func WithPreprocess() Option {
	return func(o *Options) { o.Pre = true }
}

// WithoutRun disables the query phase (preprocess-only invocations).
func WithoutRun() Option {
	return func(o *Options) { o.Run = false }
}

// WithCheck enables trace emission for validation.
func WithCheck() Option {
	return func(o *Options) { o.Check = true }
}

// WithMemoryTrack records peak resident memory into the info file.
func WithMemoryTrack() Option {
	return func(o *Options) { o.MemoryTrack = true }
}

// WithIndexDir overrides the preprocessing index directory.
func WithIndexDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.IndexDir = dir
		}
	}
}

// WithResultPath overrides the results CSV path.
func WithResultPath(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.ResultPath = path
		}
	}
}

// WithInfoPath overrides the run-info path.
func WithInfoPath(path string) Option {
	return func(o *Options) {
		if path != "" {
			o.InfoPath = path
		}
	}
}

// WithTraceWriter redirects the -check trace.
func WithTraceWriter(w io.Writer) Option {
	return func(o *Options) {
		if w != nil {
			o.TraceWriter = w
		}
	}
}

// WithLogger attaches a run logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
