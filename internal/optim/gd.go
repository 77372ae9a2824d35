package optim

import (
	"gonum.org/v1/gonum/floats"
)

type GDOptions struct {
	StepSize float64
	Epochs   int
}

func DefaultGDOptions() GDOptions {
	return GDOptions{
		StepSize: 0.01,
		Epochs:   500,
	}
}

// GD runs full-batch gradient descent from init for a fixed number of epochs.
// init is not modified.
func GD(obj Objective, init []float64, opts GDOptions) Result {
	if opts.StepSize <= 0 {
		opts.StepSize = DefaultGDOptions().StepSize
	}
	if opts.Epochs <= 0 {
		opts.Epochs = DefaultGDOptions().Epochs
	}

	params := append([]float64(nil), init...)
	grad := make([]float64, len(params))
	for epoch := 0; epoch < opts.Epochs; epoch++ {
		grad = obj.Gradient(grad, params)
		floats.AddScaled(params, -opts.StepSize, grad)
	}
	return Result{Params: params, Loss: obj.Evaluate(params), Epochs: opts.Epochs}
}
