package domain

import "time"

const (
	// ModelKeyLogit is the registry key of the L2-regularized logistic model
	// trained by stochastic gradient descent.
	ModelKeyLogit = "logit-sgd"
)

// TrainingRow is one observed sample: a raw feature vector plus an optional
// binary outcome label. Rows with a nil Label have not been resolved yet and
// are excluded from training.
type TrainingRow struct {
	ID         int64
	Source     string
	ObservedAt time.Time
	Features   []float64
	Label      *float64
	UpdatedAt  time.Time
}

// Labeled reports whether the row carries a resolved {0,1} outcome.
func (r TrainingRow) Labeled() (float64, bool) {
	if r.Label == nil {
		return 0, false
	}
	if *r.Label != 0 && *r.Label != 1 {
		return 0, false
	}
	return *r.Label, true
}

// ModelVersion is a persisted, versioned model artifact.
type ModelVersion struct {
	ID              int64
	ModelKey        string
	Version         int
	TrainedFrom     time.Time
	TrainedTo       time.Time
	TrainedAt       time.Time
	HyperparamsJSON string
	MetricsJSON     string
	ArtifactFormat  string
	ArtifactBlob    []byte
	IsActive        bool
	ActivatedAt     *time.Time
	CreatedAt       time.Time
}
