package contract

import (
	"context"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PredictiveEventRepository interface {
	Create(ctx context.Context, event *entity.PredictiveEvent) error
	Update(ctx context.Context, event *entity.PredictiveEvent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PredictiveEvent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PredictiveEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PredictiveModelRepository interface {
	// Save upserts; one model row per user.
	Save(ctx context.Context, model *entity.PredictiveModel) error
	Get(ctx context.Context, userId uuid.UUID) (*entity.PredictiveModel, error)
	Delete(ctx context.Context, userId uuid.UUID) error
}
