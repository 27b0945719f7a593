package memory

import (
	"context"
	"sync"
	"time"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/repository/contract"
	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PredictiveEventRepository struct {
	mu     sync.RWMutex
	events []*entity.PredictiveEvent
}

func NewPredictiveEventRepository() *PredictiveEventRepository {
	return &PredictiveEventRepository{}
}

func cloneEvent(e *entity.PredictiveEvent) *entity.PredictiveEvent {
	cp := *e
	cp.OriginalPreferences = e.OriginalPreferences.Clone()
	cp.AppliedPreferences = e.AppliedPreferences.Clone()
	if e.UserAccepted != nil {
		b := *e.UserAccepted
		cp.UserAccepted = &b
	}
	if e.RevertedAt != nil {
		at := *e.RevertedAt
		cp.RevertedAt = &at
	}
	return &cp
}

func (r *PredictiveEventRepository) Create(ctx context.Context, event *entity.PredictiveEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.events = append(r.events, cloneEvent(event))
	return nil
}

func (r *PredictiveEventRepository) Update(ctx context.Context, event *entity.PredictiveEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.events {
		if e.Id == event.Id {
			r.events[i] = cloneEvent(event)
			return nil
		}
	}
	return nil
}

func (r *PredictiveEventRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PredictiveEvent, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *PredictiveEventRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PredictiveEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]specRow, len(r.events))
	for i, e := range r.events {
		rows[i] = specRow{
			Id:        e.Id,
			UserId:    e.UserId,
			IsActive:  e.IsActive,
			HasActive: true,
			CreatedAt: e.CreatedAt,
		}
	}
	indices := make([]int, 0, len(rows))
	for i, row := range rows {
		if matchAll(row, specs) {
			indices = append(indices, i)
		}
	}
	indices = applyOrderAndPage(rows, indices, specs)
	out := make([]*entity.PredictiveEvent, 0, len(indices))
	for _, i := range indices {
		out = append(out, cloneEvent(r.events[i]))
	}
	return out, nil
}

func (r *PredictiveEventRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type PredictiveModelRepository struct {
	mu     sync.RWMutex
	models map[uuid.UUID]*entity.PredictiveModel
}

func NewPredictiveModelRepository() *PredictiveModelRepository {
	return &PredictiveModelRepository{
		models: make(map[uuid.UUID]*entity.PredictiveModel),
	}
}

func cloneModel(m *entity.PredictiveModel) *entity.PredictiveModel {
	cp := *m
	cp.FeatureNames = append([]string(nil), m.FeatureNames...)
	cp.Weights = append([]float64(nil), m.Weights...)
	return &cp
}

func (r *PredictiveModelRepository) Save(ctx context.Context, m *entity.PredictiveModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[m.UserId] = cloneModel(m)
	return nil
}

func (r *PredictiveModelRepository) Get(ctx context.Context, userId uuid.UUID) (*entity.PredictiveModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[userId]
	if !ok {
		return nil, nil
	}
	return cloneModel(m), nil
}

func (r *PredictiveModelRepository) Delete(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, userId)
	return nil
}

var _ contract.PredictiveEventRepository = (*PredictiveEventRepository)(nil)
var _ contract.PredictiveModelRepository = (*PredictiveModelRepository)(nil)
