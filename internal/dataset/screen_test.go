package dataset

import "testing"

func TestScreenDisabled(t *testing.T) {
	samples := [][]float64{{1, 2}, {3, 4}}
	labels := []float64{0, 1}

	keptX, keptY, dropped := Screen(samples, labels, 0)
	if dropped != 0 || len(keptX) != 2 || len(keptY) != 2 {
		t.Fatalf("threshold 0 should be a no-op, got %d kept %d dropped", len(keptX), dropped)
	}

	keptX, _, dropped = Screen(nil, nil, 0.6)
	if dropped != 0 || keptX != nil {
		t.Fatal("empty input should pass through")
	}
}

func TestScreenKeepsLabelsAligned(t *testing.T) {
	samples := make([][]float64, 0, 64)
	labels := make([]float64, 0, 64)
	for i := 0; i < 64; i++ {
		// Encode the row index in the sample so pairing survives screening.
		samples = append(samples, []float64{float64(i), float64(i % 3)})
		labels = append(labels, float64(i%2))
	}

	keptX, keptY, dropped := Screen(samples, labels, 0.6)
	if len(keptX) != len(keptY) {
		t.Fatalf("samples and labels diverged: %d vs %d", len(keptX), len(keptY))
	}
	if len(keptX)+dropped != len(samples) {
		t.Fatalf("kept %d + dropped %d != %d", len(keptX), dropped, len(samples))
	}
	if len(keptX) == 0 {
		t.Fatal("screening must never drop the whole dataset")
	}
	for i := range keptX {
		if keptY[i] != float64(int(keptX[i][0])%2) {
			t.Fatalf("row %d label %v no longer matches sample %v", i, keptY[i], keptX[i])
		}
	}
}
