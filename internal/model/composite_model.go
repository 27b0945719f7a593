package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CompositeSession is a derived preference set shared by multiple users.
// UserIds keeps the participant order used as the composite tie-break
// key. OriginalPreferences maps user id to the member document snapshot
// the composite was computed from.
type CompositeSession struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string         `gorm:"type:varchar(100)"`
	UserIds              datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CompositePreferences datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	OriginalPreferences  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	IsActive             bool           `gorm:"default:true;index"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (CompositeSession) TableName() string {
	return "composite_sessions"
}
