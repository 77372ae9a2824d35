// Package objective holds differentiable training objectives consumed by the
// optimizers in internal/optim.
package objective

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"solid-waffle/internal/dataset"
)

// LogisticLoss is the negative log-likelihood of a binary logistic model over
// a fixed dataset, with an L2 penalty on every parameter except the intercept:
//
//	L(w) = sum_j -[y_j ln s_j + (1-y_j) ln(1-s_j)] + (lambda/2) sum_{k>0} w_k^2
//
// where s_j = sigmoid(w · x_j) and x_j carries a leading 1 for the intercept.
// The loss also decomposes into per-sample terms (EvaluateAt, GradientAt) with
// the penalty amortized evenly across samples, so stochastic optimizers
// iterating over [0, NumFunctions()) see the same total objective.
//
// A LogisticLoss borrows its Design and holds no mutable state, so one
// instance may be evaluated concurrently with disjoint output buffers.
type LogisticLoss struct {
	design *dataset.Design
	lambda float64
}

// NewLogisticLoss wraps design with regularization strength lambda >= 0.
// The design must stay alive and unmodified for the lifetime of the loss.
func NewLogisticLoss(design *dataset.Design, lambda float64) (*LogisticLoss, error) {
	if design == nil {
		return nil, errors.New("objective: nil design")
	}
	if math.IsNaN(lambda) || lambda < 0 {
		return nil, fmt.Errorf("objective: regularization strength %v, want >= 0", lambda)
	}
	return &LogisticLoss{design: design, lambda: lambda}, nil
}

// NumFunctions returns the number of separable per-sample terms, i.e. the
// sample count N.
func (f *LogisticLoss) NumFunctions() int {
	return f.design.NumSamples()
}

// Dim returns the parameter dimension D, intercept included.
func (f *LogisticLoss) Dim() int {
	return f.design.Dim()
}

// Lambda returns the regularization strength.
func (f *LogisticLoss) Lambda() float64 {
	return f.lambda
}

// Evaluate returns the total loss at params. The computation stays finite for
// arbitrarily large parameter magnitudes: a correctly classified point at
// extreme |w·x| contributes ~0, never NaN or Inf.
func (f *LogisticLoss) Evaluate(params []float64) float64 {
	f.checkDim(params)

	loss := f.penalty(params)
	for j := 0; j < f.design.NumSamples(); j++ {
		loss += f.sampleLoss(params, j)
	}
	return loss
}

// EvaluateAt returns the loss term of sample j plus 1/N of the penalty, so
// that summing EvaluateAt over all j reproduces Evaluate exactly.
func (f *LogisticLoss) EvaluateAt(params []float64, j int) float64 {
	f.checkDim(params)
	f.checkIndex(j)

	return f.sampleLoss(params, j) + f.penalty(params)/float64(f.design.NumSamples())
}

// Gradient computes the analytic batch gradient at params. dst is reused when
// it has length Dim and allocated otherwise; prior contents are overwritten.
func (f *LogisticLoss) Gradient(dst, params []float64) []float64 {
	f.checkDim(params)
	dst = prepare(dst, len(params))

	for j := 0; j < f.design.NumSamples(); j++ {
		x := f.design.Sample(j)
		err := sigmoid(floats.Dot(params, x)) - f.design.Label(j)
		floats.AddScaled(dst, err, x)
	}
	f.addPenaltyGradient(dst, params, f.lambda)
	return dst
}

// GradientAt computes the gradient contribution of sample j, with 1/N of the
// penalty gradient, so that summing GradientAt over all j reproduces Gradient.
func (f *LogisticLoss) GradientAt(dst, params []float64, j int) []float64 {
	f.checkDim(params)
	f.checkIndex(j)
	dst = prepare(dst, len(params))

	x := f.design.Sample(j)
	err := sigmoid(floats.Dot(params, x)) - f.design.Label(j)
	floats.AddScaled(dst, err, x)
	f.addPenaltyGradient(dst, params, f.lambda/float64(f.design.NumSamples()))
	return dst
}

// sampleLoss is the negative log-likelihood of sample j. Written in terms of
// log(sigmoid) so that well-separated points underflow to 0 instead of
// producing log(0).
func (f *LogisticLoss) sampleLoss(params []float64, j int) float64 {
	z := floats.Dot(params, f.design.Sample(j))
	if f.design.Label(j) == 1 {
		return -logSigmoid(z)
	}
	return -logSigmoid(-z)
}

// penalty is (lambda/2)(||w||^2 - w_0^2): the intercept is never regularized.
// Identically zero when D == 1, since only the intercept exists.
func (f *LogisticLoss) penalty(params []float64) float64 {
	if f.lambda == 0 || len(params) < 2 {
		return 0
	}
	norm := floats.Norm(params, 2)
	return 0.5 * f.lambda * (norm*norm - params[0]*params[0])
}

func (f *LogisticLoss) addPenaltyGradient(dst, params []float64, strength float64) {
	if strength == 0 {
		return
	}
	for k := 1; k < len(params); k++ {
		dst[k] += strength * params[k]
	}
}

func (f *LogisticLoss) checkDim(params []float64) {
	if len(params) != f.design.Dim() {
		panic(fmt.Sprintf("objective: %d parameters for dimension %d", len(params), f.design.Dim()))
	}
}

func (f *LogisticLoss) checkIndex(j int) {
	if j < 0 || j >= f.design.NumSamples() {
		panic(fmt.Sprintf("objective: sample index %d out of range [0, %d)", j, f.design.NumSamples()))
	}
}

func prepare(dst []float64, dim int) []float64 {
	if len(dst) != dim {
		return make([]float64, dim)
	}
	for i := range dst {
		dst[i] = 0
	}
	return dst
}

// sigmoid evaluates 1/(1+e^-z) without overflowing for large negative z.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logSigmoid evaluates ln(sigmoid(z)), which tends to 0 as z -> +inf and to z
// as z -> -inf.
func logSigmoid(z float64) float64 {
	if z >= 0 {
		return -math.Log1p(math.Exp(-z))
	}
	return z - math.Log1p(math.Exp(z))
}
