package treeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	s, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(s.Dir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRecordRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	rec := Record{
		ExperimentID: 3,
		Parameters:   Params{NEstimators: 200},
		Metrics:      Metrics{Accuracy: 0.9375},
	}
	require.NoError(t, s.WriteRecord(rec))

	got, err := s.ReadRecordFile(LogFileName(3))
	require.NoError(t, err)
	assert.Equal(t, got, rec)
}

func TestWriteRecordOverwritesSameID(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first := Record{ExperimentID: 1, Parameters: Params{NEstimators: 10}, Metrics: Metrics{Accuracy: 0.5}}
	second := Record{ExperimentID: 1, Parameters: Params{NEstimators: 50}, Metrics: Metrics{Accuracy: 0.9}}
	require.NoError(t, s.WriteRecord(first))
	require.NoError(t, s.WriteRecord(second))

	got, err := s.ReadRecordFile(LogFileName(1))
	require.NoError(t, err)
	assert.Equal(t, got, second)
}

func TestSummaryRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	recs := []Record{
		{ExperimentID: 1, Parameters: Params{NEstimators: 10}, Metrics: Metrics{Accuracy: 0.91}},
		{ExperimentID: 2, Parameters: Params{NEstimators: 50}, Metrics: Metrics{Accuracy: 0.95}},
	}
	require.NoError(t, s.WriteSummary(recs))

	got, err := s.ReadSummary()
	require.NoError(t, err)
	assert.Equal(t, got, recs)
}

func TestSummaryEmptyIsArray(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.WriteSummary(nil))

	data, err := os.ReadFile(filepath.Join(s.Dir(), summaryFileName))
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(string(data)), "[]")

	got, err := s.ReadSummary()
	require.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestReadSummaryMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.ReadSummary()
	require.Error(t, err)
}

func TestScanRecordsLexicalOrder(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []int{1, 2, 10} {
		rec := Record{ExperimentID: id, Parameters: Params{NEstimators: id * 10}, Metrics: Metrics{Accuracy: 0.9}}
		require.NoError(t, s.WriteRecord(rec))
	}
	// Unrelated files in the directory are skipped by the scan.
	require.NoError(t, s.WriteSummary(nil))
	require.NoError(t, os.WriteFile(s.ModelPath(1), []byte("opaque"), 0644))

	recs, err := s.ScanRecords()
	require.NoError(t, err)

	ids := make([]int, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ExperimentID
	}
	// Directory order is lexical, so log_10.json comes before log_2.json.
	assert.Equal(t, ids, []int{1, 10, 2})
}

func TestScanRecordsMalformed(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "log_9.json"), []byte("{"), 0644))

	_, err = s.ScanRecords()
	require.Error(t, err)
}

func TestChartPath(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, s.ChartPath(""), filepath.Join(s.Dir(), DefaultChartFileName))
	assert.Equal(t, s.ChartPath("sweep.png"), filepath.Join(s.Dir(), "sweep.png"))
	abs := filepath.Join(t.TempDir(), "elsewhere.png")
	assert.Equal(t, s.ChartPath(abs), abs)
}
