package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"solid-waffle/internal/dataset"
	"solid-waffle/internal/objective"
	"solid-waffle/internal/optim"
	"solid-waffle/internal/training"
)

type options struct {
	dataPath  string
	outPath   string
	optimizer string
	lambda    float64
	stepSize  float64
	screen    float64
	epochs    int
	seed      int64
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.dataPath, "data", "", "path to CSV file, last column is the 0/1 label")
	fs.StringVar(&opts.outPath, "out", "", "write the fitted model artifact JSON to this file")
	fs.StringVar(&opts.optimizer, "optimizer", "sgd", "optimizer to use: sgd or gd")
	fs.Float64Var(&opts.lambda, "lambda", 0, "L2 regularization strength (intercept excluded)")
	fs.Float64Var(&opts.stepSize, "rate", 0.01, "optimizer step size")
	fs.Float64Var(&opts.screen, "screen", 0, "isolation forest anomaly score threshold, 0 disables screening")
	fs.IntVar(&opts.epochs, "epochs", 50, "number of passes over the data")
	fs.Int64Var(&opts.seed, "seed", 1, "shuffle seed for sgd")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.dataPath == "" {
		return nil, fmt.Errorf("missing required -data flag")
	}
	if opts.optimizer != "sgd" && opts.optimizer != "gd" {
		return nil, fmt.Errorf("unknown optimizer %q", opts.optimizer)
	}
	return opts, nil
}

func run(opts *options, out io.Writer) error {
	f, err := os.Open(opts.dataPath)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	samples, labels, err := dataset.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read data file: %w", err)
	}

	dropped := 0
	if opts.screen > 0 {
		samples, labels, dropped = dataset.Screen(samples, labels, opts.screen)
	}

	design, err := dataset.FromSamples(samples, labels)
	if err != nil {
		return err
	}
	loss, err := objective.NewLogisticLoss(design, opts.lambda)
	if err != nil {
		return err
	}

	init := make([]float64, loss.Dim())
	var result optim.Result
	if opts.optimizer == "gd" {
		result = optim.GD(loss, init, optim.GDOptions{StepSize: opts.stepSize, Epochs: opts.epochs})
	} else {
		result = optim.SGD(loss, init, optim.SGDOptions{StepSize: opts.stepSize, Epochs: opts.epochs, Seed: opts.seed})
	}

	fmt.Fprintf(out, "samples: %d (screened out %d)\n", loss.NumFunctions(), dropped)
	fmt.Fprintf(out, "dimensions: %d (including intercept)\n", loss.Dim())
	fmt.Fprintf(out, "final loss: %.10f\n", result.Loss)

	if opts.outPath == "" {
		return nil
	}
	artifact := training.Artifact{
		Weights:  result.Params,
		Dim:      loss.Dim(),
		Lambda:   opts.lambda,
		StepSize: opts.stepSize,
		Epochs:   opts.epochs,
	}
	blob, err := json.Marshal(artifact)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.outPath, blob, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	fmt.Fprintf(out, "artifact written to %s\n", opts.outPath)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if err := run(opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
