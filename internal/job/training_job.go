package job

import (
	"context"
	"log"
	"time"

	"solid-waffle/internal/training"

	"go.opentelemetry.io/otel/trace"
)

type Trainer interface {
	TrainOnce(ctx context.Context, now time.Time) (training.TrainResult, error)
}

// Notifier receives a message when a training run promotes a new model version.
type Notifier interface {
	NotifyPromotion(modelKey string, version int, holdoutLoss float64)
}

type TrainingJob struct {
	tracer    trace.Tracer
	service   Trainer
	notifier  Notifier
	trainHour int
}

func NewTrainingJob(tracer trace.Tracer, service Trainer, notifier Notifier, trainHourUTC int) *TrainingJob {
	if trainHourUTC < 0 || trainHourUTC > 23 {
		trainHourUTC = 0
	}
	return &TrainingJob{tracer: tracer, service: service, notifier: notifier, trainHour: trainHourUTC}
}

func (j *TrainingJob) Start(ctx context.Context) {
	if j.service == nil {
		log.Println("Training job disabled: no service")
		<-ctx.Done()
		return
	}
	for {
		next := nextRunUTC(time.Now().UTC(), j.trainHour)
		wait := time.Until(next)
		if wait < time.Second {
			wait = time.Second
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			j.runOnce(ctx)
		}
	}
}

func (j *TrainingJob) runOnce(ctx context.Context) {
	ctx, span := j.tracer.Start(ctx, "training-job.run-once")
	defer span.End()

	result, err := j.service.TrainOnce(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Training error: %v", err)
		return
	}
	log.Printf("Training result model=%s version=%d samples=%d holdout_loss=%.4f promoted=%v",
		result.ModelKey, result.Version, result.SampleCount, result.HoldoutLoss, result.Promoted)
	if result.PromoteError != nil {
		log.Printf("Promotion error for %s v%d: %v", result.ModelKey, result.Version, result.PromoteError)
	}
	if result.Promoted && j.notifier != nil {
		j.notifier.NotifyPromotion(result.ModelKey, result.Version, result.HoldoutLoss)
	}
}

func nextRunUTC(now time.Time, hour int) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !run.After(now) {
		run = run.Add(24 * time.Hour)
	}
	return run
}
