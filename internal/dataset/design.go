package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Design is an immutable design matrix in sample-major layout: N rows, one
// per sample, with column 0 fixed to the all-ones intercept feature, plus a
// binary label per sample. Objectives hold a borrowing view of a Design and
// never mutate it, so a single Design can back many concurrent evaluations.
type Design struct {
	x      *mat.Dense
	labels []float64
}

// New wraps an existing N×D matrix and label vector. Column 0 of x must be
// all ones and every label must be 0 or 1. The Design borrows x and labels;
// the caller must not modify them afterwards.
func New(x *mat.Dense, labels []float64) (*Design, error) {
	if x == nil {
		return nil, errors.New("dataset: nil design matrix")
	}
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, fmt.Errorf("dataset: empty design matrix (%dx%d)", n, d)
	}
	if len(labels) != n {
		return nil, fmt.Errorf("dataset: %d labels for %d samples", len(labels), n)
	}
	for j := 0; j < n; j++ {
		if x.At(j, 0) != 1 {
			return nil, fmt.Errorf("dataset: sample %d intercept feature is %v, want 1", j, x.At(j, 0))
		}
	}
	for j, y := range labels {
		if y != 0 && y != 1 {
			return nil, fmt.Errorf("dataset: label %d is %v, want 0 or 1", j, y)
		}
	}
	return &Design{x: x, labels: labels}, nil
}

// FromSamples builds a Design from raw feature vectors, prepending the
// intercept feature to every sample. All samples must share one width.
func FromSamples(samples [][]float64, labels []float64) (*Design, error) {
	if len(samples) == 0 {
		return nil, errors.New("dataset: no samples")
	}
	width := len(samples[0])
	if width == 0 {
		return nil, errors.New("dataset: empty feature vectors")
	}
	x := mat.NewDense(len(samples), width+1, nil)
	for i, s := range samples {
		if len(s) != width {
			return nil, fmt.Errorf("dataset: sample %d has %d features, want %d", i, len(s), width)
		}
		x.Set(i, 0, 1)
		for k, v := range s {
			x.Set(i, k+1, v)
		}
	}
	return New(x, labels)
}

// NumSamples returns N.
func (d *Design) NumSamples() int {
	n, _ := d.x.Dims()
	return n
}

// Dim returns the parameter dimension D, intercept included.
func (d *Design) Dim() int {
	_, c := d.x.Dims()
	return c
}

// Sample returns sample j including its leading intercept feature. The slice
// aliases the underlying matrix storage and must be treated as read-only.
func (d *Design) Sample(j int) []float64 {
	return d.x.RawRowView(j)
}

// Label returns the {0,1} response of sample j.
func (d *Design) Label(j int) float64 {
	return d.labels[j]
}
