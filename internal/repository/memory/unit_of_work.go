package memory

import (
	"context"

	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/unitofwork"
)

// UnitOfWork shares one set of in-memory repositories across calls.
// Begin/Commit/Rollback are accepted but not transactional; the backing
// stores apply each operation immediately.
type UnitOfWork struct {
	prefs    *UserPreferenceRepository
	changes  *PreferenceChangeRepository
	presets  *PersonalPresetRepository
	triggers *TriggerRepository
	sessions *CompositeSessionRepository
	events   *PredictiveEventRepository
	models   *PredictiveModelRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		prefs:    NewUserPreferenceRepository(),
		changes:  NewPreferenceChangeRepository(),
		presets:  NewPersonalPresetRepository(),
		triggers: NewTriggerRepository(),
		sessions: NewCompositeSessionRepository(),
		events:   NewPredictiveEventRepository(),
		models:   NewPredictiveModelRepository(),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) UserPreferenceRepository() contract.UserPreferenceRepository {
	return u.prefs
}

func (u *UnitOfWork) PreferenceChangeRepository() contract.PreferenceChangeRepository {
	return u.changes
}

func (u *UnitOfWork) PersonalPresetRepository() contract.PersonalPresetRepository {
	return u.presets
}

func (u *UnitOfWork) TriggerRepository() contract.TriggerRepository {
	return u.triggers
}

func (u *UnitOfWork) CompositeSessionRepository() contract.CompositeSessionRepository {
	return u.sessions
}

func (u *UnitOfWork) PredictiveEventRepository() contract.PredictiveEventRepository {
	return u.events
}

func (u *UnitOfWork) PredictiveModelRepository() contract.PredictiveModelRepository {
	return u.models
}

// Factory hands out the same shared UnitOfWork, mirroring how the GORM
// factory scopes repositories to one database.
type Factory struct {
	uow *UnitOfWork
}

func NewFactory() *Factory {
	return &Factory{uow: NewUnitOfWork()}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

var _ unitofwork.RepositoryFactory = (*Factory)(nil)
