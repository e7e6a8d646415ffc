package treeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes experiment artifacts in a single directory.
// The directory comes from the constructor, never from package state.
type Store struct {
	dir string
}

// NewStore creates the artifact directory if it does not exist yet and
// returns a Store rooted there.
func NewStore(dir string) (*Store, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("treeline.NewStore: error getting absolute path: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("treeline.NewStore: error creating artifact dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// LogPath returns the absolute path of the record artifact for an
// experiment ID.
func (s *Store) LogPath(experimentID int) string {
	return filepath.Join(s.dir, LogFileName(experimentID))
}

// ModelPath returns the absolute path the trained model for an
// experiment ID is serialized to.
func (s *Store) ModelPath(experimentID int) string {
	return filepath.Join(s.dir, ModelFileName(experimentID))
}

// ChartPath resolves a chart file name inside the artifact directory.
// Absolute names are kept as-is.
func (s *Store) ChartPath(name string) string {
	if name == "" {
		name = DefaultChartFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// WriteRecord persists one record as log_<id>.json, overwriting any
// prior artifact with the same experiment ID.
func (s *Store) WriteRecord(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("treeline.Store.WriteRecord: error marshaling record %d: %w", rec.ExperimentID, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.LogPath(rec.ExperimentID), data, 0644); err != nil {
		return fmt.Errorf("treeline.Store.WriteRecord: error writing record %d: %w", rec.ExperimentID, err)
	}
	return nil
}

// ReadRecordFile deserializes a single record artifact by file name
// inside the store directory.
func (s *Store) ReadRecordFile(name string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return rec, fmt.Errorf("treeline.Store.ReadRecordFile: error reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("treeline.Store.ReadRecordFile: error parsing %s: %w", name, err)
	}
	return rec, nil
}

// WriteSummary persists the full record list of one sweep, in loop
// execution order, as experiment_summary.json. An empty sweep writes an
// empty JSON array, not null.
func (s *Store) WriteSummary(recs []Record) error {
	if recs == nil {
		recs = []Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("treeline.Store.WriteSummary: error marshaling summary: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(filepath.Join(s.dir, summaryFileName), data, 0644); err != nil {
		return fmt.Errorf("treeline.Store.WriteSummary: error writing summary: %w", err)
	}
	return nil
}

// ReadSummary returns the records of the most recent completed sweep in
// this directory.
func (s *Store) ReadSummary() ([]Record, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, summaryFileName))
	if err != nil {
		return nil, fmt.Errorf("treeline.Store.ReadSummary: error reading summary: %w", err)
	}
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("treeline.Store.ReadSummary: error parsing summary: %w", err)
	}
	return recs, nil
}

// ScanRecords deserializes every record artifact in the directory, in
// lexical directory order (log_10.json sorts before log_2.json). The
// scan matches on the log_ prefix and .json suffix only, so records
// left behind by earlier, differently-sized sweeps into the same
// directory are included too. Callers that want only the latest sweep
// should use ReadSummary instead.
func (s *Store) ScanRecords() ([]Record, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("treeline.Store.ScanRecords: error reading directory: %w", err)
	}
	recs := make([]Record, 0)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		name := file.Name()
		if !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, logFileSuffix) {
			continue
		}
		rec, err := s.ReadRecordFile(name)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
