package treeline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Stage names the pipeline step a failure came from.
type Stage string

const (
	StageLoad         Stage = "load dataset"
	StageDiscretise   Stage = "discretise"
	StageSplit        Stage = "split"
	StageFit          Stage = "fit"
	StageEvaluate     Stage = "evaluate"
	StagePersistLog   Stage = "persist record"
	StagePersistModel Stage = "persist model"
)

// StageError tags a failure with the stage and experiment it came from,
// so the sweep can report precisely and decide whether to keep going.
type StageError struct {
	Stage        Stage
	ExperimentID int
	Err          error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("experiment %d: %s: %v", e.ExperimentID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageError(stage Stage, experimentID int, err error) error {
	return &StageError{Stage: stage, ExperimentID: experimentID, Err: err}
}

// ErrorCollection gathers the failures of a keep-going sweep and
// reports them as one error.
type ErrorCollection struct {
	errors []error
}

// Add appends an error to the collection. Adding nil is a no-op.
func (e *ErrorCollection) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// GetErrIfAny returns nil for an empty collection, the sole member of a
// collection of one, and otherwise one error joining every message with
// "; ".
func (e *ErrorCollection) GetErrIfAny() error {
	if len(e.errors) == 0 {
		return nil
	}
	if len(e.errors) == 1 {
		return e.errors[0]
	}
	msgs := make([]string, len(e.errors))
	for i, err := range e.errors {
		msgs[i] = err.Error()
	}
	return errors.New(strings.Join(msgs, "; "))
}
