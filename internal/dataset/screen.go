package dataset

import (
	"github.com/narumiruna/go-iforest/pkg/iforest"
)

// Screen drops training samples an isolation forest scores above threshold.
// Scores fall in (0, 1) with larger values more anomalous; a threshold <= 0
// disables screening. Returns the retained samples and labels plus the number
// of rows dropped. Label order stays aligned with the samples.
func Screen(samples [][]float64, labels []float64, threshold float64) ([][]float64, []float64, int) {
	if threshold <= 0 || len(samples) == 0 || len(samples) != len(labels) {
		return samples, labels, 0
	}

	forest := iforest.New()
	forest.Fit(samples)
	scores := forest.Score(samples)
	if len(scores) != len(samples) {
		return samples, labels, 0
	}

	keptX := make([][]float64, 0, len(samples))
	keptY := make([]float64, 0, len(labels))
	for i := range samples {
		if scores[i] > threshold {
			continue
		}
		keptX = append(keptX, samples[i])
		keptY = append(keptY, labels[i])
	}
	// Refuse to throw away the whole dataset on a degenerate fit.
	if len(keptX) == 0 {
		return samples, labels, 0
	}
	return keptX, keptY, len(samples) - len(keptX)
}
