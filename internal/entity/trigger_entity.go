package entity

import (
	"time"

	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

type PreferenceTrigger struct {
	Id                  uuid.UUID
	UserId              uuid.UUID
	TriggerType         string
	Overlay             preference.Document
	IsActive            bool
	OriginalPreferences preference.Document
	LifetimeSeconds     int
	ActivatedAt         *time.Time
	DeactivatedAt       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// StaleAt returns the moment an active trigger outlives its intended
// lifetime. Meaningless for inactive triggers.
func (t *PreferenceTrigger) StaleAt() time.Time {
	if t.ActivatedAt == nil {
		return time.Time{}
	}
	return t.ActivatedAt.Add(time.Duration(t.LifetimeSeconds) * time.Second)
}
