package contract

import (
	"context"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TriggerRepository interface {
	Create(ctx context.Context, trigger *entity.PreferenceTrigger) error
	Update(ctx context.Context, trigger *entity.PreferenceTrigger) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceTrigger, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceTrigger, error)
}
