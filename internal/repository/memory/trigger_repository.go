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

type TriggerRepository struct {
	mu       sync.RWMutex
	triggers []*entity.PreferenceTrigger
}

func NewTriggerRepository() *TriggerRepository {
	return &TriggerRepository{}
}

func cloneTrigger(t *entity.PreferenceTrigger) *entity.PreferenceTrigger {
	cp := *t
	cp.Overlay = t.Overlay.Clone()
	cp.OriginalPreferences = t.OriginalPreferences.Clone()
	if t.ActivatedAt != nil {
		at := *t.ActivatedAt
		cp.ActivatedAt = &at
	}
	if t.DeactivatedAt != nil {
		at := *t.DeactivatedAt
		cp.DeactivatedAt = &at
	}
	return &cp
}

func (r *TriggerRepository) rows() []specRow {
	rows := make([]specRow, len(r.triggers))
	for i, t := range r.triggers {
		rows[i] = specRow{
			Id:          t.Id,
			UserId:      t.UserId,
			TriggerType: t.TriggerType,
			IsActive:    t.IsActive,
			HasActive:   true,
			CreatedAt:   t.CreatedAt,
		}
	}
	return rows
}

func (r *TriggerRepository) Create(ctx context.Context, trigger *entity.PreferenceTrigger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if trigger.Id == uuid.Nil {
		trigger.Id = uuid.New()
	}
	if trigger.CreatedAt.IsZero() {
		trigger.CreatedAt = time.Now()
	}
	r.triggers = append(r.triggers, cloneTrigger(trigger))
	return nil
}

func (r *TriggerRepository) Update(ctx context.Context, trigger *entity.PreferenceTrigger) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.triggers {
		if t.Id == trigger.Id {
			trigger.UpdatedAt = time.Now()
			r.triggers[i] = cloneTrigger(trigger)
			return nil
		}
	}
	return nil
}

func (r *TriggerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.triggers {
		if t.Id == id {
			r.triggers = append(r.triggers[:i], r.triggers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *TriggerRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceTrigger, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *TriggerRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceTrigger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := r.rows()
	indices := make([]int, 0, len(rows))
	for i, row := range rows {
		if matchAll(row, specs) {
			indices = append(indices, i)
		}
	}
	indices = applyOrderAndPage(rows, indices, specs)
	out := make([]*entity.PreferenceTrigger, 0, len(indices))
	for _, i := range indices {
		out = append(out, cloneTrigger(r.triggers[i]))
	}
	return out, nil
}

var _ contract.TriggerRepository = (*TriggerRepository)(nil)
