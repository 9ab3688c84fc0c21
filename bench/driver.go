package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/pathlab/gridbench/grid"
	"github.com/pathlab/gridbench/scenario"
	"github.com/pathlab/gridbench/validate"
)

// firstStepLength is the Euclidean path length at which 20steps_cost
// stops accumulating. The epsilon absorbs the float error of twenty unit
// steps.
const firstStepLength = 20.0

// Driver owns the run: scenario sequencing, engine invocation, timing,
// and output files.
type Driver struct {
	opts Options
	rows []ResultRow
}

// New constructs a driver.
func New(opts ...Option) *Driver {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Driver{opts: cfg}
}

// Results returns the accumulated rows of the last Run.
func (d *Driver) Results() []ResultRow { return d.rows }

// Run executes the scenario at scenPath against eng: load, optional
// preprocessing, search init, the query loop, and the output files.
// Load and setup failures map to exit 1 at the CLI; ErrProtocol to 2.
func (d *Driver) Run(eng Engine, scenPath string) error {
	log := d.opts.Logger
	scen, err := scenario.Load(scenPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", scenPath, err)
	}
	log.Info().Str("scenario", scenPath).
		Int("patches", len(scen.Patches)).
		Int("queries", scen.QueryCommands()).
		Msg("scenario loaded")

	runner, err := scenario.NewRunner(scen)
	if err != nil {
		return err
	}
	// position on the first query; the patches before it form the
	// initial map
	first, err := runner.NextQuery()
	if err != nil {
		return err
	}
	if first < 0 {
		return ErrNoQueries
	}

	indexPath := filepath.Join(d.opts.IndexDir, eng.Name()+"-"+stem(scenPath))
	if d.opts.Pre {
		if err := os.MkdirAll(d.opts.IndexDir, 0o755); err != nil {
			return err
		}
		if err := eng.PreprocessInitMap(runner.ActiveGrid(), indexPath); err != nil {
			return fmt.Errorf("preprocess: %w", err)
		}
		log.Info().Str("index", indexPath).Msg("preprocessing done")
	}
	if !d.opts.Run {
		return nil
	}

	start := time.Now()
	if err := eng.SearchInit(runner.ActiveGrid(), indexPath); err != nil {
		return fmt.Errorf("search init: %w", err)
	}
	initTime := time.Since(start)
	info, err := os.Create(d.opts.InfoPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(info, "search_init %d\n", initTime.Nanoseconds())

	runErr := d.runExperiment(eng, runner)
	if runErr == nil {
		runErr = d.writeResults(scenPath)
	}

	if d.opts.MemoryTrack {
		if runtime.GOOS != "linux" {
			log.Warn().Msg("memory tracking is only available on linux")
		} else if kb, err := peakRSSKilobytes(); err == nil {
			fmt.Fprintf(info, "peak_rss_kb %d\n", kb)
		} else {
			log.Warn().Err(err).Msg("peak RSS unavailable")
		}
	}
	if err := info.Close(); err != nil && runErr == nil {
		runErr = err
	}

	eng.Free()

	return runErr
}

// runExperiment is the query loop: advance the runner, announce map
// changes, drain the segment stream with timing, and accumulate rows.
func (d *Driver) runExperiment(eng Engine, runner *scenario.Runner) error {
	log := d.opts.Logger
	d.rows = d.rows[:0]

	var ser *validate.Serializer
	if d.opts.Check {
		ser = validate.NewSerializer(runner.ActiveGrid(), d.opts.TraceWriter)
		if err := ser.Header(); err != nil {
			return err
		}
	}

	for queryID := 0; ; queryID++ {
		var snapshotTime time.Duration
		if queryID != 0 {
			applied, err := runner.NextQuery()
			if err != nil {
				return err
			}
			if applied < 0 {
				break // end of stream
			}
			if applied != 0 {
				start := time.Now()
				if err := eng.MapChange(runner.AppliedPatches()); err != nil {
					return fmt.Errorf("map change: %w", err)
				}
				snapshotTime = time.Since(start)
			}
		}
		q, err := runner.Current()
		if err != nil {
			return err
		}
		if ser != nil {
			if err := ser.AddQuery(validate.Query{
				ID:      q.ID,
				Bucket:  q.Bucket,
				Start:   q.Start,
				Goal:    q.Goal,
				RefCost: q.RefCost,
			}); err != nil {
				return err
			}
		}

		row, err := d.runQuery(eng, ser, q)
		if err != nil {
			return err
		}
		row.SnapshotTime = snapshotTime.Nanoseconds()
		d.rows = append(d.rows, row)
		log.Debug().Int("query", q.ID).Int("points", row.PathSize).
			Float64("length", row.PathLength).Msg("query done")
	}

	return nil
}

// runQuery drains one query's segment stream.
func (d *Driver) runQuery(eng Engine, ser *validate.Serializer, q scenario.Query) (ResultRow, error) {
	var (
		tcost, tfirst, maxStep time.Duration
		doneFirst              bool
		runLen                 int
		runCost                float64
		anchor                 grid.Point
		haveAnchor             bool
	)
	for {
		start := time.Now()
		pts, incomplete := eng.GetPath(q.Start, q.Goal)
		step := time.Since(start)

		if len(pts) == 0 && incomplete {
			return ResultRow{}, fmt.Errorf("%w: empty segment marked incomplete", ErrProtocol)
		}
		if len(pts) > 0 {
			// the previous tail anchors the new segment; a repeated
			// anchor point contributes zero length
			if haveAnchor {
				runCost += grid.Dist(anchor, pts[0])
			}
			runCost += grid.PathLength(pts)
			runLen += len(pts)
			anchor = pts[len(pts)-1]
			haveAnchor = true
		}

		if step > maxStep {
			maxStep = step
		}
		tcost += step
		if !doneFirst {
			tfirst += step
			doneFirst = runCost >= firstStepLength-1e-6
		}

		if ser != nil {
			if err := ser.AddSubPath(pts, incomplete); err != nil {
				return ResultRow{}, err
			}
		}
		if !incomplete {
			break
		}
	}
	if ser != nil {
		if err := ser.FinishQuery(); err != nil {
			return ResultRow{}, err
		}
	}

	length := -1.0
	if runLen != 0 {
		length = runCost
	}

	return ResultRow{
		ExperimentID: q.ID,
		SnapshotID:   q.Bucket,
		PathSize:     runLen,
		PathLength:   length,
		RefLength:    q.RefCost,
		TimeCost:     tcost.Nanoseconds(),
		First20Cost:  tfirst.Nanoseconds(),
		MaxStepTime:  maxStep.Nanoseconds(),
	}, nil
}

// writeResults emits the results CSV.
func (d *Driver) writeResults(scenPath string) error {
	f, err := os.Create(d.opts.ResultPath)
	if err != nil {
		return err
	}
	if err := WriteResults(f, scenPath, d.rows); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// stem is the scenario filename without directory or extension, used in
// index file names.
func stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
