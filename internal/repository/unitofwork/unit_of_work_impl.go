package unitofwork

import (
	"context"
	"fmt"

	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserPreferenceRepository() contract.UserPreferenceRepository {
	return implementation.NewUserPreferenceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PreferenceChangeRepository() contract.PreferenceChangeRepository {
	return implementation.NewPreferenceChangeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PersonalPresetRepository() contract.PersonalPresetRepository {
	return implementation.NewPersonalPresetRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TriggerRepository() contract.TriggerRepository {
	return implementation.NewTriggerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CompositeSessionRepository() contract.CompositeSessionRepository {
	return implementation.NewCompositeSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PredictiveEventRepository() contract.PredictiveEventRepository {
	return implementation.NewPredictiveEventRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PredictiveModelRepository() contract.PredictiveModelRepository {
	return implementation.NewPredictiveModelRepository(u.getDB())
}
