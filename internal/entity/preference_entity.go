package entity

import (
	"time"

	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

// ChangeSource labels the provenance of a preference document mutation.
type ChangeSource string

const (
	SourceManual        ChangeSource = "manual"
	SourceEphemeral     ChangeSource = "ephemeral"
	SourceComposite     ChangeSource = "composite"
	SourceMLDriven      ChangeSource = "ml_driven"
	SourcePersonaFusion ChangeSource = "persona_fusion"
	SourceRollback      ChangeSource = "rollback"
	SourceSystem        ChangeSource = "system"
)

type UserPreference struct {
	UserId    uuid.UUID
	Document  preference.Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PreferenceChange struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	PreviousState preference.Document
	NewState      preference.Document
	Source        ChangeSource
	TriggerId     *uuid.UUID
	CompositeId   *uuid.UUID
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}

type PersonalPreset struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Document  preference.Document
	CreatedAt time.Time
}

// HistoryFilter narrows a history query. Zero values mean "no filter".
type HistoryFilter struct {
	From             *time.Time
	To               *time.Time
	Sources          []ChangeSource
	ExcludeEphemeral bool
	ExcludeComposite bool
	Limit            int
	Offset           int
}
