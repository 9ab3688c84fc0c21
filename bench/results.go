package bench

import (
	"fmt"
	"io"
)

// resultHeader is the fixed CSV column list.
const resultHeader = "scen,experiment_id,snapshot_id,snapshot_time,path_size,path_length,ref_length,time_cost,20steps_cost,max_step_time\n"

// WriteResults renders rows as the results CSV. Lengths print with 14
// fixed decimals; times are integral nanoseconds.
func WriteResults(w io.Writer, scenPath string, rows []ResultRow) error {
	if _, err := io.WriteString(w, resultHeader); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%s,%d,%d,%d,%d,%.14f,%.14f,%d,%d,%d\n",
			scenPath,
			row.ExperimentID,
			row.SnapshotID,
			row.SnapshotTime,
			row.PathSize,
			row.PathLength,
			row.RefLength,
			row.TimeCost,
			row.First20Cost,
			row.MaxStepTime,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
