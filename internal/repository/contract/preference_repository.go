package contract

import (
	"context"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserPreferenceRepository interface {
	// Get returns nil (not an error) when the user has no row yet.
	Get(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error)
	// Save upserts the full document; it is the only write path.
	Save(ctx context.Context, pref *entity.UserPreference) error
	Exists(ctx context.Context, userId uuid.UUID) (bool, error)
}

type PreferenceChangeRepository interface {
	Create(ctx context.Context, change *entity.PreferenceChange) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceChange, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceChange, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PersonalPresetRepository interface {
	Create(ctx context.Context, preset *entity.PersonalPreset) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonalPreset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
