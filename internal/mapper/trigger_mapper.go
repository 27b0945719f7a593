package mapper

import (
	"ai-music-be/internal/entity"
	"ai-music-be/internal/model"
)

type TriggerMapper struct{}

func NewTriggerMapper() *TriggerMapper {
	return &TriggerMapper{}
}

func (m *TriggerMapper) ToEntity(t *model.PreferenceTrigger) *entity.PreferenceTrigger {
	if t == nil {
		return nil
	}
	return &entity.PreferenceTrigger{
		Id:                  t.Id,
		UserId:              t.UserId,
		TriggerType:         t.TriggerType,
		Overlay:             documentFromJSON(t.Overlay),
		IsActive:            t.IsActive,
		OriginalPreferences: documentFromJSON(t.OriginalPreferences),
		LifetimeSeconds:     t.LifetimeSeconds,
		ActivatedAt:         t.ActivatedAt,
		DeactivatedAt:       t.DeactivatedAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func (m *TriggerMapper) ToEntities(models []*model.PreferenceTrigger) []*entity.PreferenceTrigger {
	out := make([]*entity.PreferenceTrigger, 0, len(models))
	for _, t := range models {
		out = append(out, m.ToEntity(t))
	}
	return out
}

func (m *TriggerMapper) ToModel(t *entity.PreferenceTrigger) *model.PreferenceTrigger {
	if t == nil {
		return nil
	}
	return &model.PreferenceTrigger{
		Id:                  t.Id,
		UserId:              t.UserId,
		TriggerType:         t.TriggerType,
		Overlay:             documentToJSON(t.Overlay),
		IsActive:            t.IsActive,
		OriginalPreferences: documentToJSON(t.OriginalPreferences),
		LifetimeSeconds:     t.LifetimeSeconds,
		ActivatedAt:         t.ActivatedAt,
		DeactivatedAt:       t.DeactivatedAt,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}
