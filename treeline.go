// Package treeline runs random-forest training sweeps and tracks each
// experiment's parameters, metrics, and model artifact in a directory.
package treeline

import "fmt"

const (
	summaryFileName  = "experiment_summary.json"
	metaDataFileName = "meta.yaml"
	logFileName      = "experiment.log"

	logFilePrefix = "log_"
	logFileSuffix = ".json"

	// DefaultChartFileName is where the accuracy chart lands inside the
	// artifact directory unless the caller overrides it.
	DefaultChartFileName = "accuracy.png"

	// DefaultDir is the artifact directory used when none is configured.
	DefaultDir = "experiment_logs"
)

// DefaultEstimators is the sweep run when no forest sizes are configured
// explicitly.
var DefaultEstimators = []int{10, 50, 100, 200, 500}

// Params holds the tuned hyperparameters of one experiment. NEstimators
// is the forest size and currently the only knob.
type Params struct {
	NEstimators int `json:"n_estimators"`
}

// Metrics holds the measured results of one experiment.
type Metrics struct {
	Accuracy float64 `json:"accuracy"`
}

// Record is the unit the store persists: one experiment's identifier,
// hyperparameters, and held-out metrics. The JSON field layout is the
// on-disk contract for log artifacts and the summary.
type Record struct {
	ExperimentID int     `json:"experiment_id"`
	Parameters   Params  `json:"parameters"`
	Metrics      Metrics `json:"metrics"`
}

// LogFileName returns the record artifact name for an experiment ID,
// e.g. log_3.json.
func LogFileName(experimentID int) string {
	return fmt.Sprintf("%s%d%s", logFilePrefix, experimentID, logFileSuffix)
}

// ModelFileName returns the model artifact name for an experiment ID,
// e.g. model_3.cls.
func ModelFileName(experimentID int) string {
	return fmt.Sprintf("model_%d.cls", experimentID)
}
