package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PreferenceTrigger is a behavior-triggered ephemeral overlay. While a
// trigger is active, OriginalPreferences holds the full document snapshot
// taken at activation so deactivation can restore it verbatim.
type PreferenceTrigger struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId              uuid.UUID      `gorm:"type:uuid;not null;index:idx_preference_triggers_user"`
	TriggerType         string         `gorm:"type:varchar(50);not null"`
	Overlay             datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	IsActive            bool           `gorm:"default:false;index"`
	OriginalPreferences datatypes.JSON `gorm:"type:jsonb"`
	LifetimeSeconds     int            `gorm:"not null;default:3600"`
	ActivatedAt         *time.Time
	DeactivatedAt       *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (PreferenceTrigger) TableName() string {
	return "preference_triggers"
}
