package treeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsPreserveOrder(t *testing.T) {
	recs := []Record{
		{ExperimentID: 2, Parameters: Params{NEstimators: 50}, Metrics: Metrics{Accuracy: 0.95}},
		{ExperimentID: 1, Parameters: Params{NEstimators: 10}, Metrics: Metrics{Accuracy: 0.91}},
	}
	rows := Rows(recs)
	assert.Equal(t, rows, []Row{
		{ExperimentID: 2, NEstimators: 50, Accuracy: 0.95},
		{ExperimentID: 1, NEstimators: 10, Accuracy: 0.91},
	})
}

func TestRowsFromSummaryAndScan(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, id := range []int{1, 2, 10} {
		rec := Record{ExperimentID: id, Parameters: Params{NEstimators: id * 10}, Metrics: Metrics{Accuracy: 0.9}}
		require.NoError(t, s.WriteRecord(rec))
	}
	// The summary only covers the latest sweep; the stray log_10.json
	// is a leftover the scan still includes.
	require.NoError(t, s.WriteSummary([]Record{
		{ExperimentID: 1, Parameters: Params{NEstimators: 10}, Metrics: Metrics{Accuracy: 0.9}},
		{ExperimentID: 2, Parameters: Params{NEstimators: 20}, Metrics: Metrics{Accuracy: 0.9}},
	}))

	fromSummary, err := RowsFromSummary(s)
	require.NoError(t, err)
	assert.Equal(t, rowIDs(fromSummary), []int{1, 2})

	fromScan, err := RowsFromScan(s)
	require.NoError(t, err)
	assert.Equal(t, rowIDs(fromScan), []int{1, 10, 2})
}

func rowIDs(rows []Row) []int {
	ids := make([]int, len(rows))
	for i, row := range rows {
		ids[i] = row.ExperimentID
	}
	return ids
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, []Row{
		{ExperimentID: 1, NEstimators: 10, Accuracy: 0.91},
		{ExperimentID: 2, NEstimators: 50, Accuracy: 0.95},
	})

	out := buf.String()
	assert.Contains(t, out, "EXPERIMENT")
	assert.Contains(t, out, "0.9100")
	assert.Contains(t, out, "0.9500")
	assert.Contains(t, out, "50")
}

func TestSaveChart(t *testing.T) {
	rows := []Row{
		{ExperimentID: 1, NEstimators: 10, Accuracy: 0.91},
		{ExperimentID: 2, NEstimators: 50, Accuracy: 0.93},
		{ExperimentID: 3, NEstimators: 100, Accuracy: 0.92},
	}
	path := filepath.Join(t.TempDir(), "accuracy.png")
	require.NoError(t, SaveChart(rows, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestSaveChartNoRows(t *testing.T) {
	err := SaveChart(nil, filepath.Join(t.TempDir(), "accuracy.png"))
	require.Error(t, err)
}
