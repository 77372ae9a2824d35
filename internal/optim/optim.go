// Package optim provides the fixed-budget gradient descent drivers used to
// fit training objectives. Convergence checking is deliberately absent: the
// drivers run their epoch budget and report where they stopped.
package optim

// Objective is a differentiable function of a parameter vector.
type Objective interface {
	// Evaluate returns the objective value at params.
	Evaluate(params []float64) float64
	// Gradient writes the gradient at params into dst, reusing it when it
	// has the right length, and returns the slice holding the result.
	Gradient(dst, params []float64) []float64
}

// Separable is an objective that decomposes into NumFunctions independent
// per-sample terms, enabling stochastic optimization over sample indices.
type Separable interface {
	Objective
	NumFunctions() int
	EvaluateAt(params []float64, j int) float64
	GradientAt(dst, params []float64, j int) []float64
}

// Result reports the final state of an optimizer run.
type Result struct {
	Params []float64
	Loss   float64
	Epochs int
}
