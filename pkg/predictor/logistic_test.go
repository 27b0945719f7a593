package predictor

import (
	"testing"
	"time"

	"ai-music-be/internal/entity"
)

func TestFitSeparatesAcceptancePattern(t *testing.T) {
	// A user who accepts nudges during long sessions and rejects them
	// during short ones. Durations scaled to minutes-sized numbers keeps
	// plain gradient descent stable.
	features := [][]float64{
		{10, 2}, {12, 3}, {15, 2}, {11, 4},
		{120, 2}, {150, 3}, {180, 2}, {130, 4},
	}
	labels := []bool{false, false, false, false, true, true, true, true}

	model := Fit(features, labels, 500, 0.01)

	if p := model.Predict([]float64{140, 3}); p <= 0.5 {
		t.Errorf("long session predicted %v, want > 0.5", p)
	}
	if p := model.Predict([]float64{12, 3}); p >= 0.5 {
		t.Errorf("short session predicted %v, want < 0.5", p)
	}
}

func TestFitEmptyInput(t *testing.T) {
	model := Fit(nil, nil, 100, 0.01)
	if len(model.Weights) != 0 {
		t.Errorf("expected empty model, got %+v", model)
	}
	if p := model.Predict([]float64{1, 2}); p != 0 {
		t.Errorf("dimension mismatch should predict 0, got %v", p)
	}
}

func TestVectorMatchesFeatureNames(t *testing.T) {
	snap := entity.ContextSnapshot{
		Time:                   time.Date(2026, 3, 7, 21, 30, 0, 0, time.UTC),
		SessionDurationSeconds: 3600,
		InteractionCount:       42,
		MinutesSinceLastChange: 12.5,
	}
	vec := Vector(snap)
	if len(vec) != len(FeatureNames) {
		t.Fatalf("vector length %d, feature names %d", len(vec), len(FeatureNames))
	}
	want := []float64{21, float64(time.Saturday), 3600, 42, 12.5}
	for i, v := range vec {
		if v != want[i] {
			t.Errorf("feature %s = %v, want %v", FeatureNames[i], v, want[i])
		}
	}
}
