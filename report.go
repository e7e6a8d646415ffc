package treeline

import (
	"io"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Row is one line of the aggregated view of a sweep.
type Row struct {
	ExperimentID int
	NEstimators  int
	Accuracy     float64
}

// Rows flattens records into table rows, preserving record order. No
// sorting happens here or later: chart point order is row order.
func Rows(recs []Record) []Row {
	rows := make([]Row, len(recs))
	for i, rec := range recs {
		rows[i] = Row{
			ExperimentID: rec.ExperimentID,
			NEstimators:  rec.Parameters.NEstimators,
			Accuracy:     rec.Metrics.Accuracy,
		}
	}
	return rows
}

// RowsFromSummary aggregates the latest sweep's summary artifact.
func RowsFromSummary(store *Store) ([]Row, error) {
	recs, err := store.ReadSummary()
	if err != nil {
		return nil, err
	}
	return Rows(recs), nil
}

// RowsFromScan aggregates every record artifact in the directory,
// including any left behind by earlier sweeps. See Store.ScanRecords.
func RowsFromScan(store *Store) ([]Row, error) {
	recs, err := store.ScanRecords()
	if err != nil {
		return nil, err
	}
	return Rows(recs), nil
}

// WriteTable renders rows as an aligned text table.
func WriteTable(w io.Writer, rows []Row) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"experiment_id", "n_estimators", "accuracy"})
	for _, row := range rows {
		table.Append([]string{
			strconv.Itoa(row.ExperimentID),
			strconv.Itoa(row.NEstimators),
			strconv.FormatFloat(row.Accuracy, 'f', 4, 64),
		})
	}
	table.Render()
}

// SaveChart renders accuracy against n_estimators as a line with point
// markers, a grid, and axis labels, writing the image to path; the
// format follows the file extension. Points keep row order.
func SaveChart(rows []Row, path string) error {
	if len(rows) == 0 {
		return errors.New("no rows to chart")
	}
	p := plot.New()
	p.Title.Text = "Model Accuracy vs. Number of Estimators"
	p.X.Label.Text = "Number of Estimators"
	p.Y.Label.Text = "Accuracy"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(rows))
	for i, row := range rows {
		pts[i].X = float64(row.NEstimators)
		pts[i].Y = row.Accuracy
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return errors.Wrap(err, "building accuracy line")
	}
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "saving chart to %s", path)
	}
	return nil
}

// OpenChart displays a rendered chart in the platform image viewer and
// blocks until the viewer exits. Desktop openers that hand off to an
// already-running viewer return immediately, so this is best effort.
func OpenChart(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-W", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	return nil
}
