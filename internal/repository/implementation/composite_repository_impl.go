package implementation

import (
	"context"
	"errors"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/mapper"
	"ai-music-be/internal/model"
	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CompositeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CompositeMapper
}

func NewCompositeSessionRepository(db *gorm.DB) contract.CompositeSessionRepository {
	return &CompositeSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewCompositeMapper(),
	}
}

func (r *CompositeSessionRepositoryImpl) Create(ctx context.Context, session *entity.CompositeSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompositeSessionRepositoryImpl) Update(ctx context.Context, session *entity.CompositeSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *CompositeSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CompositeSession, error) {
	var m model.CompositeSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CompositeSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CompositeSession, error) {
	var models []*model.CompositeSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
