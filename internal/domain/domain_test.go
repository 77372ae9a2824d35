package domain

import (
	"testing"
)

func TestLabeled(t *testing.T) {
	if _, ok := (TrainingRow{}).Labeled(); ok {
		t.Error("row without label should not report labeled")
	}

	one := 1.0
	y, ok := (TrainingRow{Label: &one}).Labeled()
	if !ok || y != 1 {
		t.Errorf("expected label 1, got %v (ok=%v)", y, ok)
	}

	zero := 0.0
	y, ok = (TrainingRow{Label: &zero}).Labeled()
	if !ok || y != 0 {
		t.Errorf("expected label 0, got %v (ok=%v)", y, ok)
	}

	bad := 0.5
	if _, ok := (TrainingRow{Label: &bad}).Labeled(); ok {
		t.Error("non-binary label should not report labeled")
	}
}
