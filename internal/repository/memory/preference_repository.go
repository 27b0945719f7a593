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

// In-memory repository implementations back the maintenance sweeps in
// tests and the service-level test suite. They honor the same contracts
// as the GORM implementations.

type UserPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[uuid.UUID]*entity.UserPreference
}

func NewUserPreferenceRepository() *UserPreferenceRepository {
	return &UserPreferenceRepository{
		prefs: make(map[uuid.UUID]*entity.UserPreference),
	}
}

func clonePreference(p *entity.UserPreference) *entity.UserPreference {
	cp := *p
	cp.Document = p.Document.Clone()
	return &cp
}

func (r *UserPreferenceRepository) Get(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prefs[userId]
	if !ok {
		return nil, nil
	}
	return clonePreference(p), nil
}

func (r *UserPreferenceRepository) Save(ctx context.Context, pref *entity.UserPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if existing, ok := r.prefs[pref.UserId]; ok {
		pref.CreatedAt = existing.CreatedAt
	} else if pref.CreatedAt.IsZero() {
		pref.CreatedAt = now
	}
	pref.UpdatedAt = now
	r.prefs[pref.UserId] = clonePreference(pref)
	return nil
}

func (r *UserPreferenceRepository) Exists(ctx context.Context, userId uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.prefs[userId]
	return ok, nil
}

type PreferenceChangeRepository struct {
	mu      sync.RWMutex
	changes []*entity.PreferenceChange
}

func NewPreferenceChangeRepository() *PreferenceChangeRepository {
	return &PreferenceChangeRepository{}
}

func cloneChange(c *entity.PreferenceChange) *entity.PreferenceChange {
	cp := *c
	cp.PreviousState = c.PreviousState.Clone()
	cp.NewState = c.NewState.Clone()
	return &cp
}

func (r *PreferenceChangeRepository) rows() []specRow {
	rows := make([]specRow, len(r.changes))
	for i, c := range r.changes {
		rows[i] = specRow{
			Id:        c.Id,
			UserId:    c.UserId,
			Source:    string(c.Source),
			CreatedAt: c.CreatedAt,
		}
	}
	return rows
}

func (r *PreferenceChangeRepository) Create(ctx context.Context, change *entity.PreferenceChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if change.Id == uuid.Nil {
		change.Id = uuid.New()
	}
	if change.CreatedAt.IsZero() {
		change.CreatedAt = time.Now()
	}
	r.changes = append(r.changes, cloneChange(change))
	return nil
}

func (r *PreferenceChangeRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PreferenceChange, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *PreferenceChangeRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PreferenceChange, error) {
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
	out := make([]*entity.PreferenceChange, 0, len(indices))
	for _, i := range indices {
		out = append(out, cloneChange(r.changes[i]))
	}
	return out, nil
}

func (r *PreferenceChangeRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type PersonalPresetRepository struct {
	mu      sync.RWMutex
	presets []*entity.PersonalPreset
}

func NewPersonalPresetRepository() *PersonalPresetRepository {
	return &PersonalPresetRepository{}
}

func clonePreset(p *entity.PersonalPreset) *entity.PersonalPreset {
	cp := *p
	cp.Document = p.Document.Clone()
	return &cp
}

func (r *PersonalPresetRepository) Create(ctx context.Context, preset *entity.PersonalPreset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if preset.Id == uuid.Nil {
		preset.Id = uuid.New()
	}
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = time.Now()
	}
	r.presets = append(r.presets, clonePreset(preset))
	return nil
}

func (r *PersonalPresetRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PersonalPreset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rows := make([]specRow, len(r.presets))
	for i, p := range r.presets {
		rows[i] = specRow{Id: p.Id, UserId: p.UserId, CreatedAt: p.CreatedAt}
	}
	indices := make([]int, 0, len(rows))
	for i, row := range rows {
		if matchAll(row, specs) {
			indices = append(indices, i)
		}
	}
	indices = applyOrderAndPage(rows, indices, specs)
	out := make([]*entity.PersonalPreset, 0, len(indices))
	for _, i := range indices {
		out = append(out, clonePreset(r.presets[i]))
	}
	return out, nil
}

func (r *PersonalPresetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.presets {
		if p.Id == id {
			r.presets = append(r.presets[:i], r.presets[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ contract.UserPreferenceRepository = (*UserPreferenceRepository)(nil)
var _ contract.PreferenceChangeRepository = (*PreferenceChangeRepository)(nil)
var _ contract.PersonalPresetRepository = (*PersonalPresetRepository)(nil)
