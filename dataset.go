package treeline

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/sjwhitworth/golearn/base"
)

// The Fisher iris measurements, the fixed dataset every sweep trains
// against unless a CSV path is supplied. Four numeric attributes, the
// species label last.
//
//go:embed iris.csv
var irisCSV []byte

// LoadDataset parses a labeled CSV into golearn instances. The file
// must carry a header row; the last column is taken as the class
// attribute. An empty path loads the embedded iris copy.
func LoadDataset(path string) (*base.DenseInstances, error) {
	if path == "" {
		data, err := base.ParseCSVToInstancesFromReader(bytes.NewReader(irisCSV), true)
		if err != nil {
			return nil, fmt.Errorf("treeline.LoadDataset: error parsing embedded dataset: %w", err)
		}
		return data, nil
	}
	data, err := base.ParseCSVToInstances(path, true)
	if err != nil {
		return nil, fmt.Errorf("treeline.LoadDataset: error parsing %s: %w", path, err)
	}
	return data, nil
}
