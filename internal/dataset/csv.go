package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ReadCSV parses rows of the form f1,...,fk,label into raw samples (without
// the intercept feature) and labels. A single leading header record is
// skipped when its first field is not numeric.
func ReadCSV(r io.Reader) ([][]float64, []float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var samples [][]float64
	var labels []float64
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("dataset: read csv: %w", err)
		}
		line++
		if len(record) < 2 {
			return nil, nil, fmt.Errorf("dataset: csv line %d has %d fields, want >= 2", line, len(record))
		}
		if line == 1 {
			if _, err := strconv.ParseFloat(record[0], 64); err != nil {
				continue
			}
		}
		values := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("dataset: csv line %d field %d: %w", line, i+1, err)
			}
			values[i] = v
		}
		samples = append(samples, values[:len(values)-1])
		labels = append(labels, values[len(values)-1])
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("dataset: csv contains no data rows")
	}
	return samples, labels, nil
}
