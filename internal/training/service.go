// Package training turns labeled rows into versioned logistic model
// artifacts: screen, split, minimize the regularized loss by SGD, persist,
// and promote when the held-out objective improves.
package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solid-waffle/internal/dataset"
	"solid-waffle/internal/domain"
	"solid-waffle/internal/objective"
	"solid-waffle/internal/optim"

	"go.opentelemetry.io/otel/trace"
)

// promoteMargin is how much lower the held-out loss must be before a new
// version replaces the active one.
const promoteMargin = 0.005

type RowStore interface {
	ListLabeled(ctx context.Context, from, to time.Time) ([]domain.TrainingRow, error)
}

type ModelRegistry interface {
	NextVersion(ctx context.Context, modelKey string) (int, error)
	InsertModelVersion(ctx context.Context, model domain.ModelVersion) (*domain.ModelVersion, error)
	GetActiveModel(ctx context.Context, modelKey string) (*domain.ModelVersion, error)
	ActivateModel(ctx context.Context, modelKey string, version int) error
}

type Config struct {
	TrainWindowDays int
	MinTrainSamples int
	Lambda          float64
	StepSize        float64
	Epochs          int
	ScreenScore     float64
}

type Service struct {
	tracer   trace.Tracer
	rows     RowStore
	registry ModelRegistry
	cfg      Config
}

// Artifact is the serialized model: the fitted parameter vector (index 0 is
// the intercept) plus the settings that produced it.
type Artifact struct {
	Weights  []float64 `json:"weights"`
	Dim      int       `json:"dim"`
	Lambda   float64   `json:"lambda"`
	StepSize float64   `json:"step_size"`
	Epochs   int       `json:"epochs"`
}

type TrainResult struct {
	ModelKey     string
	Version      int
	SampleCount  int
	Screened     int
	TestCount    int
	TrainLoss    float64
	HoldoutLoss  float64
	Promoted     bool
	PromoteError error
}

func NewService(tracer trace.Tracer, rows RowStore, registry ModelRegistry, cfg Config) *Service {
	if cfg.TrainWindowDays <= 0 {
		cfg.TrainWindowDays = 90
	}
	if cfg.MinTrainSamples <= 0 {
		cfg.MinTrainSamples = 200
	}
	if cfg.Lambda < 0 {
		cfg.Lambda = 0
	}
	if cfg.StepSize <= 0 {
		cfg.StepSize = optim.DefaultSGDOptions().StepSize
	}
	if cfg.Epochs <= 0 {
		cfg.Epochs = optim.DefaultSGDOptions().Epochs
	}
	return &Service{tracer: tracer, rows: rows, registry: registry, cfg: cfg}
}

// TrainOnce runs one training cycle over the configured window ending at now.
func (s *Service) TrainOnce(ctx context.Context, now time.Time) (TrainResult, error) {
	ctx, span := s.tracer.Start(ctx, "training.train-once")
	defer span.End()

	from := now.UTC().AddDate(0, 0, -s.cfg.TrainWindowDays)
	rows, err := s.rows.ListLabeled(ctx, from, now.UTC())
	if err != nil {
		return TrainResult{}, fmt.Errorf("list labeled rows: %w", err)
	}
	samples, labels := buildDataset(rows)
	if len(samples) < s.cfg.MinTrainSamples {
		return TrainResult{}, fmt.Errorf("not enough labeled samples: got %d need >= %d", len(samples), s.cfg.MinTrainSamples)
	}

	samples, labels, screened := dataset.Screen(samples, labels, s.cfg.ScreenScore)

	trainX, trainY, _, _, testX, testY := dataset.Split(samples, labels)
	if len(trainX) == 0 || len(testX) == 0 {
		return TrainResult{}, errors.New("dataset split produced empty partitions")
	}

	trainDesign, err := dataset.FromSamples(trainX, trainY)
	if err != nil {
		return TrainResult{}, fmt.Errorf("build train design: %w", err)
	}
	testDesign, err := dataset.FromSamples(testX, testY)
	if err != nil {
		return TrainResult{}, fmt.Errorf("build test design: %w", err)
	}

	loss, err := objective.NewLogisticLoss(trainDesign, s.cfg.Lambda)
	if err != nil {
		return TrainResult{}, fmt.Errorf("build objective: %w", err)
	}
	res := optim.SGD(loss, make([]float64, loss.Dim()), optim.SGDOptions{
		StepSize: s.cfg.StepSize,
		Epochs:   s.cfg.Epochs,
		Seed:     now.UTC().UnixNano(),
	})

	trainLoss := res.Loss / float64(trainDesign.NumSamples())
	holdoutLoss, err := meanHoldoutLoss(testDesign, res.Params)
	if err != nil {
		return TrainResult{}, err
	}

	blob, err := json.Marshal(Artifact{
		Weights:  res.Params,
		Dim:      loss.Dim(),
		Lambda:   s.cfg.Lambda,
		StepSize: s.cfg.StepSize,
		Epochs:   res.Epochs,
	})
	if err != nil {
		return TrainResult{}, fmt.Errorf("marshal artifact: %w", err)
	}

	result, err := s.persistAndMaybePromote(ctx, now.UTC(), from, blob, map[string]any{
		"lambda":    s.cfg.Lambda,
		"step_size": s.cfg.StepSize,
		"epochs":    res.Epochs,
	}, map[string]float64{
		"train_loss":   trainLoss,
		"holdout_loss": holdoutLoss,
		"n_test":       float64(len(testY)),
	}, len(samples), len(testY))
	if err != nil {
		return TrainResult{}, err
	}
	result.Screened = screened
	result.TrainLoss = trainLoss
	result.HoldoutLoss = holdoutLoss
	return result, nil
}

func (s *Service) persistAndMaybePromote(
	ctx context.Context,
	now time.Time,
	trainedFrom time.Time,
	artifact []byte,
	hyperparams map[string]any,
	metrics map[string]float64,
	sampleCount int,
	testCount int,
) (TrainResult, error) {
	version, err := s.registry.NextVersion(ctx, domain.ModelKeyLogit)
	if err != nil {
		return TrainResult{}, err
	}
	hyperJSON, _ := json.Marshal(hyperparams)
	metricJSON, _ := json.Marshal(metrics)

	inserted, err := s.registry.InsertModelVersion(ctx, domain.ModelVersion{
		ModelKey:        domain.ModelKeyLogit,
		Version:         version,
		TrainedFrom:     trainedFrom,
		TrainedTo:       now,
		HyperparamsJSON: string(hyperJSON),
		MetricsJSON:     string(metricJSON),
		ArtifactFormat:  "json/logit-sgd-v1",
		ArtifactBlob:    artifact,
		IsActive:        false,
	})
	if err != nil {
		return TrainResult{}, err
	}

	result := TrainResult{
		ModelKey:    domain.ModelKeyLogit,
		Version:     inserted.Version,
		SampleCount: sampleCount,
		TestCount:   testCount,
	}

	promote, promoteErr := s.shouldPromote(ctx, metrics["holdout_loss"], testCount, inserted.Version)
	if promoteErr != nil {
		result.PromoteError = promoteErr
		return result, nil
	}
	if promote {
		if err := s.registry.ActivateModel(ctx, domain.ModelKeyLogit, inserted.Version); err != nil {
			result.PromoteError = err
			return result, nil
		}
		result.Promoted = true
	}
	return result, nil
}

// shouldPromote compares the new held-out loss against the active version's.
// Lower is better; the first trained version is always promoted.
func (s *Service) shouldPromote(ctx context.Context, newLoss float64, testCount, newVersion int) (bool, error) {
	active, err := s.registry.GetActiveModel(ctx, domain.ModelKeyLogit)
	if err != nil {
		return false, err
	}
	if active == nil {
		return true, nil
	}
	if active.Version == newVersion {
		return active.IsActive, nil
	}
	if testCount < 50 {
		return false, nil
	}
	activeLoss, ok := metricValue(active.MetricsJSON, "holdout_loss")
	if !ok {
		return true, nil
	}
	return newLoss <= activeLoss-promoteMargin, nil
}

// meanHoldoutLoss is the unregularized mean negative log-likelihood of params
// on the held-out design, a pure fit-quality number.
func meanHoldoutLoss(design *dataset.Design, params []float64) (float64, error) {
	holdout, err := objective.NewLogisticLoss(design, 0)
	if err != nil {
		return 0, fmt.Errorf("build holdout objective: %w", err)
	}
	return holdout.Evaluate(params) / float64(design.NumSamples()), nil
}

func buildDataset(rows []domain.TrainingRow) ([][]float64, []float64) {
	x := make([][]float64, 0, len(rows))
	y := make([]float64, 0, len(rows))
	for i := range rows {
		label, ok := rows[i].Labeled()
		if !ok {
			continue
		}
		if len(rows[i].Features) == 0 {
			continue
		}
		x = append(x, rows[i].Features)
		y = append(y, label)
	}
	return x, y
}

func metricValue(metricsJSON, key string) (float64, bool) {
	var m map[string]float64
	if err := json.Unmarshal([]byte(metricsJSON), &m); err != nil {
		return 0, false
	}
	v, ok := m[key]
	return v, ok
}
