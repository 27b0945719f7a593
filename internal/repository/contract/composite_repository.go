package contract

import (
	"context"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/specification"
)

type CompositeSessionRepository interface {
	Create(ctx context.Context, session *entity.CompositeSession) error
	Update(ctx context.Context, session *entity.CompositeSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CompositeSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CompositeSession, error)
}
