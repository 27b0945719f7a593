package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserPreference holds the single live preference document per user.
type UserPreference struct {
	UserId    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}

// PreferenceChange is the append-only history of every document mutation.
type PreferenceChange struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_preference_changes_user_created,priority:1"`
	PreviousState datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	NewState      datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	Source        string         `gorm:"type:varchar(50);not null;index"`
	TriggerId     *uuid.UUID     `gorm:"type:uuid"`
	CompositeId   *uuid.UUID     `gorm:"type:uuid"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index:idx_preference_changes_user_created,priority:2"`
}

func (PreferenceChange) TableName() string {
	return "preference_changes"
}

// PersonalPreset is a named preference document saved by a user, most
// commonly a snapshot of a composite session they liked.
type PersonalPreset struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"type:varchar(100);not null"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (PersonalPreset) TableName() string {
	return "personal_presets"
}
