package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-music-be/pkg/preference"
)

type UpdatePreferenceRequest struct {
	Document preference.Document    `json:"document" validate:"required"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type PreferenceDocumentResponse struct {
	UserId    uuid.UUID           `json:"user_id"`
	Document  preference.Document `json:"document"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type HistoryRequest struct {
	From             *time.Time `json:"from,omitempty" query:"from"`
	To               *time.Time `json:"to,omitempty" query:"to"`
	Sources          []string   `json:"sources,omitempty" query:"sources"`
	ExcludeEphemeral bool       `json:"exclude_ephemeral,omitempty" query:"exclude_ephemeral"`
	ExcludeComposite bool       `json:"exclude_composite,omitempty" query:"exclude_composite"`
	Limit            int        `json:"limit,omitempty" query:"limit"`
	Offset           int        `json:"offset,omitempty" query:"offset"`
}

type ChangeRecordResponse struct {
	Id            uuid.UUID              `json:"id"`
	Source        string                 `json:"source"`
	PreviousState preference.Document    `json:"previous_state"`
	NewState      preference.Document    `json:"new_state"`
	TriggerId     *uuid.UUID             `json:"trigger_id,omitempty"`
	CompositeId   *uuid.UUID             `json:"composite_id,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

type RollbackRequest struct {
	VersionId         uuid.UUID `json:"version_id" validate:"required"`
	PreserveEphemeral bool      `json:"preserve_ephemeral"`
}

type PreferenceChangedMessage struct {
	UserId   uuid.UUID `json:"user_id"`
	ChangeId uuid.UUID `json:"change_id"`
	Source   string    `json:"source"`
}
