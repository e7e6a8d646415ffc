package treeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const (
	RunStatusRunning  = "RUNNING"
	RunStatusFinished = "FINISHED"
	RunStatusFailed   = "FAILED"
)

type runMeta struct {
	RunID       string `yaml:"run_id"`
	RunName     string `yaml:"run_name"`
	Seed        int64  `yaml:"seed"`
	NEstimators []int  `yaml:"n_estimators"`
	StartTime   int64  `yaml:"start_time"`
	EndTime     int64  `yaml:"end_time"`
	Status      string `yaml:"status"`
}

// Run identifies one sweep over a list of forest sizes. Its metadata
// lives in meta.yaml inside the artifact directory; a later sweep into
// the same directory replaces it, so meta.yaml always describes the
// most recent sweep.
type Run struct {
	runMeta
	dir string
}

// NewRun starts run metadata for a sweep and writes it with status
// RUNNING.
func NewRun(store *Store, seed int64, estimators []int) (*Run, error) {
	runID := strings.ReplaceAll(uuid.NewString(), "-", "")
	run := &Run{
		runMeta: runMeta{
			RunID:       runID,
			RunName:     runID[0:8],
			Seed:        seed,
			NEstimators: estimators,
			StartTime:   time.Now().UnixMilli(),
			Status:      RunStatusRunning,
		},
		dir: store.Dir(),
	}
	if err := run.syncMeta(); err != nil {
		return nil, err
	}
	return run, nil
}

// LoadRun reads the metadata of the most recent sweep in the store's
// directory.
func LoadRun(store *Store) (*Run, error) {
	metaBytes, err := os.ReadFile(filepath.Join(store.Dir(), metaDataFileName))
	if err != nil {
		return nil, fmt.Errorf("treeline.LoadRun: error reading run metadata: %w", err)
	}
	run := &Run{dir: store.Dir()}
	if err := yaml.Unmarshal(metaBytes, &run.runMeta); err != nil {
		return nil, fmt.Errorf("treeline.LoadRun: error parsing run metadata: %w", err)
	}
	return run, nil
}

func (r *Run) ID() string {
	return r.RunID
}

func (r *Run) Name() string {
	return r.RunName
}

// Writes the full run metadata to disk.
func (r *Run) syncMeta() error {
	metaBytes, err := yaml.Marshal(r.runMeta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(r.dir, metaDataFileName), metaBytes, 0644)
}

func (r *Run) End() error {
	r.EndTime = time.Now().UnixMilli()
	r.Status = RunStatusFinished
	return r.syncMeta()
}

func (r *Run) Fail() error {
	r.EndTime = time.Now().UnixMilli()
	r.Status = RunStatusFailed
	return r.syncMeta()
}
