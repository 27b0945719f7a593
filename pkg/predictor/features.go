package predictor

import "ai-music-be/internal/entity"

// FeatureNames is the fixed feature order shared by the rule predicates
// and the logistic model. Persisted with trained models so a stored weight
// vector stays interpretable.
var FeatureNames = []string{
	"hour",
	"day_of_week",
	"session_duration_seconds",
	"interaction_count",
	"minutes_since_last_change",
}

// Vector flattens a snapshot into FeatureNames order.
func Vector(snap entity.ContextSnapshot) []float64 {
	return []float64{
		float64(snap.Time.Hour()),
		float64(snap.Time.Weekday()),
		float64(snap.SessionDurationSeconds),
		float64(snap.InteractionCount),
		snap.MinutesSinceLastChange,
	}
}

// Env exposes the same features to rule predicates under their names.
func Env(snap entity.ContextSnapshot) map[string]interface{} {
	return map[string]interface{}{
		"hour":                      snap.Time.Hour(),
		"day_of_week":               int(snap.Time.Weekday()),
		"session_duration_seconds":  snap.SessionDurationSeconds,
		"interaction_count":         snap.InteractionCount,
		"minutes_since_last_change": snap.MinutesSinceLastChange,
	}
}
