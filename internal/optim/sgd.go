package optim

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type SGDOptions struct {
	StepSize float64
	Epochs   int
	// Seed fixes the shuffle order so training runs are reproducible.
	Seed int64
}

func DefaultSGDOptions() SGDOptions {
	return SGDOptions{
		StepSize: 0.01,
		Epochs:   50,
		Seed:     1,
	}
}

// SGD runs stochastic gradient descent: each epoch visits every separable
// term once in shuffled order and steps against its gradient. init is not
// modified.
func SGD(obj Separable, init []float64, opts SGDOptions) Result {
	if opts.StepSize <= 0 {
		opts.StepSize = DefaultSGDOptions().StepSize
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultSGDOptions().Epochs
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	params := append([]float64(nil), init...)
	grad := make([]float64, len(params))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for _, j := range rng.Perm(obj.NumFunctions()) {
			grad = obj.GradientAt(grad, params, j)
			floats.AddScaled(params, -opts.StepSize, grad)
		}
	}
	return Result{Params: params, Loss: obj.Evaluate(params), Epochs: opts.Epochs}
}
