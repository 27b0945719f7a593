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

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type UserPreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewUserPreferenceRepository(db *gorm.DB) contract.UserPreferenceRepository {
	return &UserPreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *UserPreferenceRepositoryImpl) Get(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error) {
	var m model.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserPreferenceRepositoryImpl) Save(ctx context.Context, pref *entity.UserPreference) error {
	m := r.mapper.ToModel(pref)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*pref = *r.mapper.ToEntity(m)
	return nil
}

func (r *UserPreferenceRepositoryImpl) Exists(ctx context.Context, userId uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserPreference{}).Where("user_id = ?", userId).Count(&count).Error
	return count > 0, err
}

type PreferenceChangeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChangeMapper
}

func NewPreferenceChangeRepository(db *gorm.DB) contract.PreferenceChangeRepository {
	return &PreferenceChangeRepositoryImpl{
		db:     db,
		mapper: mapper.NewChangeMapper(),
	}
}

func (r *PreferenceChangeRepositoryImpl) Create(ctx context.Context, change *entity.PreferenceChange) error {
	m := r.mapper.ToModel(change)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*change = *r.mapper.ToEntity(m)
	return nil
}

func (r *PreferenceChangeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceChange, error) {
	var m model.PreferenceChange
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceChangeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceChange, error) {
	var models []*model.PreferenceChange
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PreferenceChangeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.PreferenceChange{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type PersonalPresetRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PresetMapper
}

func NewPersonalPresetRepository(db *gorm.DB) contract.PersonalPresetRepository {
	return &PersonalPresetRepositoryImpl{
		db:     db,
		mapper: mapper.NewPresetMapper(),
	}
}

func (r *PersonalPresetRepositoryImpl) Create(ctx context.Context, preset *entity.PersonalPreset) error {
	m := r.mapper.ToModel(preset)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*preset = *r.mapper.ToEntity(m)
	return nil
}

func (r *PersonalPresetRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonalPreset, error) {
	var models []*model.PersonalPreset
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PersonalPresetRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PersonalPreset{}, id).Error
}
