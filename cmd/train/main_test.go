package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"solid-waffle/internal/training"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-data", "rows.csv", "-lambda", "0.5", "-optimizer", "gd"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.dataPath != "rows.csv" || opts.lambda != 0.5 || opts.optimizer != "gd" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	if _, err := parseFlags([]string{"-lambda", "0.5"}); err == nil {
		t.Fatal("expected error for missing -data")
	}
	if _, err := parseFlags([]string{"-data", "rows.csv", "-optimizer", "newton"}); err == nil {
		t.Fatal("expected error for unknown optimizer")
	}
}

func writeTempCSV(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestRunTrainsSeparableData(t *testing.T) {
	var rows strings.Builder
	rows.WriteString("x1,x2,label\n")
	for i := 0; i < 40; i++ {
		rows.WriteString("-2.0,-1.5,0\n")
		rows.WriteString("2.0,1.5,1\n")
	}
	path := writeTempCSV(t, rows.String())
	outPath := filepath.Join(t.TempDir(), "model.json")

	var buf bytes.Buffer
	opts := &options{dataPath: path, outPath: outPath, optimizer: "sgd", stepSize: 0.1, epochs: 60, seed: 1}
	if err := run(opts, &buf); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(buf.String(), "samples: 80") {
		t.Fatalf("unexpected output: %s", buf.String())
	}

	blob, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	var artifact training.Artifact
	if err := json.Unmarshal(blob, &artifact); err != nil {
		t.Fatalf("parse artifact: %v", err)
	}
	if artifact.Dim != 3 || len(artifact.Weights) != 3 {
		t.Fatalf("unexpected artifact: %+v", artifact)
	}
	// Positive class sits at positive feature values.
	if artifact.Weights[1] <= 0 || artifact.Weights[2] <= 0 {
		t.Fatalf("expected positive feature weights, got %v", artifact.Weights)
	}
}

func TestRunRejectsBadData(t *testing.T) {
	path := writeTempCSV(t, "x1,label\n1.0,2\n")
	var buf bytes.Buffer
	opts := &options{dataPath: path, optimizer: "sgd", stepSize: 0.1, epochs: 5}
	if err := run(opts, &buf); err == nil {
		t.Fatal("expected error for non-binary label")
	}
}

func TestRunMissingFile(t *testing.T) {
	var buf bytes.Buffer
	opts := &options{dataPath: filepath.Join(t.TempDir(), "missing.csv"), optimizer: "sgd"}
	if err := run(opts, &buf); err == nil {
		t.Fatal("expected error for missing file")
	}
}
