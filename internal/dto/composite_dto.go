package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-music-be/pkg/preference"
)

type CreateCompositeRequest struct {
	SessionName string      `json:"session_name" validate:"required"`
	UserIds     []uuid.UUID `json:"user_ids" validate:"required,min=2"`
}

type ModifyMemberRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
}

type SavePresetRequest struct {
	PresetName string `json:"preset_name" validate:"required"`
}

type CompositeResponse struct {
	Id          uuid.UUID           `json:"id"`
	SessionName string              `json:"session_name"`
	UserIds     []uuid.UUID         `json:"user_ids"`
	Composite   preference.Document `json:"composite_preferences"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
}

type PresetResponse struct {
	Id         uuid.UUID           `json:"id"`
	PresetName string              `json:"preset_name"`
	Document   preference.Document `json:"document"`
	CreatedAt  time.Time           `json:"created_at"`
}
