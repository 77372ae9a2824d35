package dataset

// Split partitions samples chronologically into train (70%), validation (15%)
// and held-out test (15%) slices. Rows must already be in time order. With
// fewer than 3 rows there is nothing to hold out, so everything goes to
// train; for N >= 3 every partition is non-empty.
func Split(samples [][]float64, labels []float64) (trainX [][]float64, trainY []float64, valX [][]float64, valY []float64, testX [][]float64, testY []float64) {
	n := len(samples)
	if n == 0 {
		return nil, nil, nil, nil, nil, nil
	}
	if n < 3 {
		return samples, labels, nil, nil, nil, nil
	}
	trainEnd := n * 70 / 100
	valEnd := n * 85 / 100
	if trainEnd < 1 {
		trainEnd = 1
	}
	if valEnd <= trainEnd {
		valEnd = trainEnd + 1
	}
	if valEnd >= n {
		valEnd = n - 1
	}
	if trainEnd >= valEnd {
		trainEnd = valEnd - 1
	}
	return samples[:trainEnd], labels[:trainEnd],
		samples[trainEnd:valEnd], labels[trainEnd:valEnd],
		samples[valEnd:], labels[valEnd:]
}
