package unitofwork

import (
	"context"

	"ai-music-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserPreferenceRepository() contract.UserPreferenceRepository
	PreferenceChangeRepository() contract.PreferenceChangeRepository
	PersonalPresetRepository() contract.PersonalPresetRepository
	TriggerRepository() contract.TriggerRepository
	CompositeSessionRepository() contract.CompositeSessionRepository
	PredictiveEventRepository() contract.PredictiveEventRepository
	PredictiveModelRepository() contract.PredictiveModelRepository
}
