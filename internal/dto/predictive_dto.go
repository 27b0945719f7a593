package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-music-be/pkg/preference"
)

type PredictiveApplyRequest struct {
	SessionDurationSeconds int `json:"session_duration_seconds" validate:"gte=0"`
	InteractionCount       int `json:"interaction_count" validate:"gte=0"`
}

type PredictiveEventResponse struct {
	Id           uuid.UUID           `json:"id"`
	ReasonCode   string              `json:"reason_code"`
	Applied      preference.Document `json:"applied_preferences"`
	IsActive     bool                `json:"is_active"`
	UserAccepted *bool               `json:"user_accepted,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type TrainResponse struct {
	TrainingSize int       `json:"training_size"`
	FeatureNames []string  `json:"feature_names"`
	TrainedAt    time.Time `json:"trained_at"`
}

type RetrainingStatusResponse struct {
	NeedsRetraining bool `json:"needs_retraining"`
	NewEvents       int  `json:"new_events"`
}
