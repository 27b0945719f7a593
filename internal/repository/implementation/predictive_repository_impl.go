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
	"gorm.io/gorm/clause"
)

type PredictiveEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PredictiveMapper
}

func NewPredictiveEventRepository(db *gorm.DB) contract.PredictiveEventRepository {
	return &PredictiveEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewPredictiveMapper(),
	}
}

func (r *PredictiveEventRepositoryImpl) Create(ctx context.Context, event *entity.PredictiveEvent) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *PredictiveEventRepositoryImpl) Update(ctx context.Context, event *entity.PredictiveEvent) error {
	m := r.mapper.EventToModel(event)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.EventToEntity(m)
	return nil
}

func (r *PredictiveEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PredictiveEvent, error) {
	var m model.PredictiveEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.EventToEntity(&m), nil
}

func (r *PredictiveEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PredictiveEvent, error) {
	var models []*model.PredictiveEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.EventsToEntities(models), nil
}

func (r *PredictiveEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.PredictiveEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type PredictiveModelRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PredictiveMapper
}

func NewPredictiveModelRepository(db *gorm.DB) contract.PredictiveModelRepository {
	return &PredictiveModelRepositoryImpl{
		db:     db,
		mapper: mapper.NewPredictiveMapper(),
	}
}

func (r *PredictiveModelRepositoryImpl) Save(ctx context.Context, m *entity.PredictiveModel) error {
	row := r.mapper.ModelToModel(m)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"feature_names", "weights", "bias", "training_size", "trained_at"}),
	}).Create(row).Error
}

func (r *PredictiveModelRepositoryImpl) Get(ctx context.Context, userId uuid.UUID) (*entity.PredictiveModel, error) {
	var m model.PredictiveModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ModelToEntity(&m), nil
}

func (r *PredictiveModelRepositoryImpl) Delete(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.PredictiveModel{}).Error
}
