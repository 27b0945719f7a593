package entity

import (
	"time"

	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

// ContextSnapshot is the situational input the predictive engine decides
// on. MinutesSinceLastChange is -1 when the user has no history yet.
type ContextSnapshot struct {
	Time                   time.Time `json:"time"`
	SessionDurationSeconds int       `json:"session_duration_seconds"`
	InteractionCount       int       `json:"interaction_count"`
	MinutesSinceLastChange float64   `json:"minutes_since_last_change"`
}

type PredictiveEvent struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	ContextSnapshot     ContextSnapshot
	OriginalPreferences preference.Document
	AppliedPreferences  preference.Document
	ReasonCode          string
	UserAccepted        *bool
	IsActive            bool
	RevertedAt          *time.Time
	CreatedAt           time.Time
}

type PredictiveModel struct {
	UserId       uuid.UUID
	FeatureNames []string
	Weights      []float64
	Bias         float64
	TrainingSize int
	TrainedAt    time.Time
}
