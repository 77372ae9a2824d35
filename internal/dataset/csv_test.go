package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	in := "f1,f2,label\n0.5,1.5,1\n-2,3,0\n"
	samples, labels, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantX := [][]float64{{0.5, 1.5}, {-2, 3}}
	wantY := []float64{1, 0}
	if !reflect.DeepEqual(samples, wantX) {
		t.Fatalf("samples = %v, want %v", samples, wantX)
	}
	if !reflect.DeepEqual(labels, wantY) {
		t.Fatalf("labels = %v, want %v", labels, wantY)
	}
}

func TestReadCSVWithoutHeader(t *testing.T) {
	samples, labels, err := ReadCSV(strings.NewReader("1,2,1\n3,4,0\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 || len(labels) != 2 {
		t.Fatalf("got %d samples %d labels, want 2 each", len(samples), len(labels))
	}
	if samples[0][0] != 1 || labels[0] != 1 {
		t.Fatalf("first data row not parsed: %v %v", samples[0], labels[0])
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, _, err := ReadCSV(strings.NewReader("header\n1\n")); err == nil {
		t.Fatal("expected error for single-field rows")
	}
	if _, _, err := ReadCSV(strings.NewReader("1,2,1\n1,x,0\n")); err == nil {
		t.Fatal("expected error for non-numeric field")
	}
	if _, _, err := ReadCSV(strings.NewReader("f1,f2,label\n")); err == nil {
		t.Fatal("expected error for header-only input")
	}
}
