package treeline

import (
	"github.com/sirupsen/logrus"
)

// Sweep trains one forest per entry of estimators, in order, assigning
// experiment IDs 1..N. Records of successful experiments are collected
// in loop order and written out as the summary once the loop completes.
//
// A failed experiment aborts the sweep unless cfg.KeepGoing is set.
// Aborting marks the run FAILED and leaves whatever artifacts earlier
// experiments wrote, with no summary. Keeping going collects the
// failures, still writes the summary of the successes, and returns the
// collected failures as one error.
func Sweep(store *Store, cfg Config, estimators []int) ([]Record, error) {
	run, err := NewRun(store, cfg.Seed, estimators)
	if err != nil {
		return nil, err
	}
	logrus.Infof("run %s sweeping %d forest sizes in %s", run.Name(), len(estimators), store.Dir())
	if cfg.Seed == 0 {
		logrus.Info("splits are unseeded; accuracies will differ between invocations")
	}

	var failures ErrorCollection
	records := make([]Record, 0, len(estimators))
	for i, n := range estimators {
		experimentID := i + 1
		rec, err := RunOne(store, cfg, n, experimentID)
		if err != nil {
			if !cfg.KeepGoing {
				logrus.Errorf("aborting sweep: %v", err)
				run.Fail() // best effort; the experiment error takes precedence
				return records, err
			}
			logrus.Warnf("continuing past failure: %v", err)
			failures.Add(err)
			continue
		}
		records = append(records, rec)
	}

	if err := store.WriteSummary(records); err != nil {
		run.Fail() // best effort; the summary error takes precedence
		return records, err
	}
	if err := run.End(); err != nil {
		return records, err
	}
	return records, failures.GetErrIfAny()
}
