package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solid-waffle/internal/training"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type trainRunnerStub struct {
	result training.TrainResult
	err    error
}

func (s trainRunnerStub) TrainOnce(ctx context.Context, now time.Time) (training.TrainResult, error) {
	return s.result, s.err
}

func TestTriggerTrainingServiceUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	h := New(tracer, nil, nil, nil)

	router := gin.New()
	router.POST("/api/train", h.TriggerTraining)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/train", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestTriggerTrainingSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	stub := trainRunnerStub{result: training.TrainResult{ModelKey: "logit-sgd", Version: 3, SampleCount: 420, Promoted: true}}
	h := New(tracer, stub, nil, nil)

	router := gin.New()
	router.POST("/api/train", h.TriggerTraining)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/train", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status string               `json:"status"`
		Result training.TrainResult `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Status != "ok" || body.Result.Version != 3 || !body.Result.Promoted {
		t.Fatalf("unexpected response payload: %+v", body)
	}
}

func TestTriggerTrainingFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	h := New(tracer, trainRunnerStub{err: errors.New("train failed")}, nil, nil)

	router := gin.New()
	router.POST("/api/train", h.TriggerTraining)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/train", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
