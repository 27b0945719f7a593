package implementation

import (
	"context"
	"errors"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/mapper"
	"ai-music-be/internal/model"
	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TriggerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TriggerMapper
}

func NewTriggerRepository(db *gorm.DB) contract.TriggerRepository {
	return &TriggerRepositoryImpl{
		db:     db,
		mapper: mapper.NewTriggerMapper(),
	}
}

func (r *TriggerRepositoryImpl) Create(ctx context.Context, trigger *entity.PreferenceTrigger) error {
	m := r.mapper.ToModel(trigger)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*trigger = *r.mapper.ToEntity(m)
	return nil
}

func (r *TriggerRepositoryImpl) Update(ctx context.Context, trigger *entity.PreferenceTrigger) error {
	m := r.mapper.ToModel(trigger)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*trigger = *r.mapper.ToEntity(m)
	return nil
}

func (r *TriggerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PreferenceTrigger{}, id).Error
}

func (r *TriggerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceTrigger, error) {
	var m model.PreferenceTrigger
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TriggerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceTrigger, error) {
	var models []*model.PreferenceTrigger
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
