package treeline

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/filters"
)

const (
	// DefaultTestFraction is the share of rows held out for scoring.
	DefaultTestFraction = 0.2
	// DefaultFeatures is how many of the four iris attributes each tree
	// samples, following golearn's own iris forest example.
	DefaultFeatures = 3

	chiMergeSignificance = 0.999
)

// Config carries the knobs shared by every experiment of a sweep.
type Config struct {
	// DataPath optionally points at a labeled CSV; empty means the
	// embedded iris dataset.
	DataPath string
	// TestFraction is the share of rows randomly held out for scoring,
	// in (0,1).
	TestFraction float64
	// Features is the number of attributes each tree samples; zero
	// makes every tree use all of them.
	Features int
	// Seed seeds the train/test split. Zero keeps the split unseeded,
	// so accuracies will differ between invocations.
	Seed int64
	// KeepGoing makes a sweep collect experiment failures and press on
	// instead of aborting.
	KeepGoing bool
}

func DefaultConfig() Config {
	return Config{TestFraction: DefaultTestFraction, Features: DefaultFeatures}
}

// RunOne trains and scores a single forest of nEstimators trees,
// persists the record and model artifacts through the store, and
// returns the record. Failures come back as a *StageError naming the
// stage that produced them; nothing panics.
func RunOne(store *Store, cfg Config, nEstimators, experimentID int) (Record, error) {
	var rec Record
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		return rec, stageError(StageSplit, experimentID,
			errors.Errorf("test fraction %v outside (0,1)", cfg.TestFraction))
	}
	// golearn happily bags an empty forest and predicts nothing, so
	// reject the value here rather than score garbage.
	if nEstimators < 1 {
		return rec, stageError(StageFit, experimentID,
			errors.Errorf("forest needs at least one tree, got %d", nEstimators))
	}

	data, err := LoadDataset(cfg.DataPath)
	if err != nil {
		return rec, stageError(StageLoad, experimentID, err)
	}
	discretised, err := discretise(data)
	if err != nil {
		return rec, stageError(StageDiscretise, experimentID, err)
	}

	// golearn's splitter draws from the package-global source, so
	// seeding has to go through rand.Seed. The seed is offset by the
	// experiment ID to give every experiment of a sweep its own
	// reproducible split.
	if cfg.Seed != 0 {
		rand.Seed(cfg.Seed + int64(experimentID))
	} else {
		logrus.Debugf("experiment %d: split is unseeded, not reproducible", experimentID)
	}
	trainData, testData := base.InstancesTrainTestSplit(discretised, cfg.TestFraction)

	forest := ensemble.NewRandomForest(nEstimators, cfg.Features)
	if err := forest.Fit(trainData); err != nil {
		return rec, stageError(StageFit, experimentID, err)
	}
	predictions, err := forest.Predict(testData)
	if err != nil {
		return rec, stageError(StageEvaluate, experimentID, err)
	}
	confusion, err := evaluation.GetConfusionMatrix(testData, predictions)
	if err != nil {
		return rec, stageError(StageEvaluate, experimentID, err)
	}
	accuracy := evaluation.GetAccuracy(confusion)

	rec = Record{
		ExperimentID: experimentID,
		Parameters:   Params{NEstimators: nEstimators},
		Metrics:      Metrics{Accuracy: accuracy},
	}
	if err := store.WriteRecord(rec); err != nil {
		return rec, stageError(StagePersistLog, experimentID, err)
	}
	if err := forest.Save(store.ModelPath(experimentID)); err != nil {
		return rec, stageError(StagePersistModel, experimentID, err)
	}

	logrus.Infof("Experiment %d - n_estimators: %d, Accuracy: %.4f", experimentID, nEstimators, accuracy)
	return rec, nil
}

// discretise bins the numeric attributes with Chi-Merge so the ID3
// trees underneath the forest can split on them.
func discretise(data base.FixedDataGrid) (base.FixedDataGrid, error) {
	filt := filters.NewChiMergeFilter(data, chiMergeSignificance)
	for _, attr := range base.NonClassFloatAttributes(data) {
		if err := filt.AddAttribute(attr); err != nil {
			return nil, errors.Wrap(err, "adding attribute to Chi-Merge filter")
		}
	}
	if err := filt.Train(); err != nil {
		return nil, errors.Wrap(err, "training Chi-Merge filter")
	}
	return base.NewLazilyFilteredInstances(data, filt), nil
}
