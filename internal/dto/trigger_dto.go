package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-music-be/pkg/preference"
)

type CreateTriggerRequest struct {
	TriggerType     string              `json:"trigger_type" validate:"required"`
	Overlay         preference.Document `json:"overlay,omitempty"`
	LifetimeSeconds int                 `json:"lifetime_seconds,omitempty"`
}

type TriggerResponse struct {
	Id              uuid.UUID           `json:"id"`
	TriggerType     string              `json:"trigger_type"`
	Overlay         preference.Document `json:"overlay"`
	IsActive        bool                `json:"is_active"`
	LifetimeSeconds int                 `json:"lifetime_seconds"`
	ActivatedAt     *time.Time          `json:"activated_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}
