package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PredictiveEvent records a system-initiated preference change proposed
// by the rule table or the per-user classifier. UserAccepted stays NULL
// until the user explicitly accepts or reverts.
type PredictiveEvent struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID      `gorm:"type:uuid;not null;index:idx_predictive_events_user_created,priority:1"`
	ContextSnapshot     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	OriginalPreferences datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	AppliedPreferences  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	ReasonCode          string         `gorm:"type:varchar(50);not null"`
	UserAccepted        *bool
	IsActive            bool `gorm:"default:true;index"`
	RevertedAt          *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime;index:idx_predictive_events_user_created,priority:2"`
}

func (PredictiveEvent) TableName() string {
	return "predictive_events"
}

// PredictiveModel stores the trained per-user classifier. Weights are
// aligned with FeatureNames; one row per user, replaced on retrain.
type PredictiveModel struct {
	UserId       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	FeatureNames datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Weights      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Bias         float64        `gorm:"not null;default:0"`
	TrainingSize int            `gorm:"not null;default:0"`
	TrainedAt    time.Time      `gorm:"not null"`
}

func (PredictiveModel) TableName() string {
	return "predictive_models"
}
