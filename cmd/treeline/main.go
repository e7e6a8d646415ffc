package main

import (
	"os"
	"strconv"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sirupsen/logrus"
	"github.com/treeline-ml/treeline"
)

var (
	app = kingpin.New("treeline", "Random-forest hyperparameter sweeps with file-backed experiment tracking.")
	dir = app.Flag("dir", "Artifact directory.").
		Default(treeline.DefaultDir).Envar("TREELINE_DIR").String()
	logLevel = app.Flag("log-level", "Log level: debug, info, warn or error.").
			Default("info").Envar("TREELINE_LOG_LEVEL").String()
	chart = app.Flag("chart", "Chart file name; relative names land inside the artifact directory.").
		Default(treeline.DefaultChartFileName).String()

	runCmd = app.Command("run", "Sweep forest sizes, tracking one experiment per size.")
	trees  = runCmd.Flag("trees", "Forest size to sweep; repeat the flag for each value.").
		Default(estimatorDefaults()...).Ints()
	seed = runCmd.Flag("seed", "Train/test split seed. 0 leaves the split unseeded.").
		Default("0").Envar("TREELINE_SEED").Int64()
	dataPath = runCmd.Flag("data", "Labeled CSV to train on instead of the embedded iris dataset.").
			Envar("TREELINE_DATA").String()
	testFraction = runCmd.Flag("test-fraction", "Share of rows held out for scoring.").
			Default("0.2").Float64()
	features = runCmd.Flag("features", "Attributes sampled per tree; 0 uses all of them.").
			Default("3").Int()
	keepGoing = runCmd.Flag("keep-going", "Collect experiment failures instead of aborting the sweep.").Bool()
	noChart   = runCmd.Flag("no-chart", "Skip the table and chart after the sweep.").Bool()
	openRun   = runCmd.Flag("open", "Open the chart in the platform viewer when done.").Bool()

	reportCmd = app.Command("report", "Aggregate a directory's record artifacts into a table and chart.")
	scan      = reportCmd.Flag("scan", "Aggregate every log_*.json instead of the latest summary; includes stale records from earlier sweeps.").Bool()
	openRep   = reportCmd.Flag("open", "Open the chart in the platform viewer.").Bool()
)

func estimatorDefaults() []string {
	defaults := make([]string, len(treeline.DefaultEstimators))
	for i, n := range treeline.DefaultEstimators {
		defaults[i] = strconv.Itoa(n)
	}
	return defaults
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	store, err := treeline.NewStore(*dir)
	app.FatalIfError(err, "opening artifact directory")
	logFile, err := treeline.SetupLog(store.Dir(), *logLevel)
	app.FatalIfError(err, "setting up logging")
	defer logFile.Close()

	switch command {
	case runCmd.FullCommand():
		cfg := treeline.Config{
			DataPath:     *dataPath,
			TestFraction: *testFraction,
			Features:     *features,
			Seed:         *seed,
			KeepGoing:    *keepGoing,
		}
		records, sweepErr := treeline.Sweep(store, cfg, *trees)
		if sweepErr != nil && !*keepGoing {
			app.FatalIfError(sweepErr, "sweep failed")
		}
		if !*noChart {
			render(store, treeline.Rows(records), *openRun)
		}
		// Failures collected in keep-going mode still fail the command,
		// after the surviving records have been reported.
		app.FatalIfError(sweepErr, "sweep finished with failures")
	case reportCmd.FullCommand():
		var rows []treeline.Row
		if *scan {
			rows, err = treeline.RowsFromScan(store)
		} else {
			rows, err = treeline.RowsFromSummary(store)
		}
		app.FatalIfError(err, "aggregating records")
		if !*scan {
			if run, err := treeline.LoadRun(store); err == nil {
				logrus.Infof("summary written by run %s (%s)", run.Name(), run.Status)
			}
		}
		render(store, rows, *openRep)
	}
}

// render prints the aggregate table to stdout and writes the chart,
// reusing the records already in hand rather than re-reading them.
func render(store *treeline.Store, rows []treeline.Row, open bool) {
	treeline.WriteTable(os.Stdout, rows)
	if len(rows) == 0 {
		logrus.Warn("no records to chart")
		return
	}
	path := store.ChartPath(*chart)
	app.FatalIfError(treeline.SaveChart(rows, path), "rendering chart")
	logrus.Infof("chart written to %s", path)
	if open {
		app.FatalIfError(treeline.OpenChart(path), "opening chart")
	}
}
