package memory

import (
	"context"
	"sync"
	"time"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/specification"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

type CompositeSessionRepository struct {
	mu       sync.RWMutex
	sessions []*entity.CompositeSession
}

func NewCompositeSessionRepository() *CompositeSessionRepository {
	return &CompositeSessionRepository{}
}

func cloneSession(s *entity.CompositeSession) *entity.CompositeSession {
	cp := *s
	cp.UserIds = append([]uuid.UUID(nil), s.UserIds...)
	cp.CompositePreferences = s.CompositePreferences.Clone()
	cp.OriginalPreferences = make(map[uuid.UUID]preference.Document, len(s.OriginalPreferences))
	for id, doc := range s.OriginalPreferences {
		cp.OriginalPreferences[id] = doc.Clone()
	}
	return &cp
}

func (r *CompositeSessionRepository) Create(ctx context.Context, session *entity.CompositeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.sessions = append(r.sessions, cloneSession(session))
	return nil
}

func (r *CompositeSessionRepository) Update(ctx context.Context, session *entity.CompositeSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sessions {
		if s.Id == session.Id {
			session.UpdatedAt = time.Now()
			r.sessions[i] = cloneSession(session)
			return nil
		}
	}
	return nil
}

func (r *CompositeSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CompositeSession, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *CompositeSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CompositeSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]specRow, len(r.sessions))
	for i, s := range r.sessions {
		rows[i] = specRow{
			Id:        s.Id,
			IsActive:  s.IsActive,
			HasActive: true,
			CreatedAt: s.CreatedAt,
		}
	}
	indices := make([]int, 0, len(rows))
	for i, row := range rows {
		if matchAll(row, specs) {
			indices = append(indices, i)
		}
	}
	indices = applyOrderAndPage(rows, indices, specs)
	out := make([]*entity.CompositeSession, 0, len(indices))
	for _, i := range indices {
		out = append(out, cloneSession(r.sessions[i]))
	}
	return out, nil
}

var _ contract.CompositeSessionRepository = (*CompositeSessionRepository)(nil)
