package mapper

import (
	"encoding/json"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/model"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CompositeMapper struct{}

func NewCompositeMapper() *CompositeMapper {
	return &CompositeMapper{}
}

func (m *CompositeMapper) ToEntity(s *model.CompositeSession) *entity.CompositeSession {
	if s == nil {
		return nil
	}

	var userIds []uuid.UUID
	if len(s.UserIds) > 0 {
		_ = json.Unmarshal(s.UserIds, &userIds)
	}

	originals := make(map[uuid.UUID]preference.Document)
	if len(s.OriginalPreferences) > 0 {
		raw := make(map[string]preference.Document)
		if err := json.Unmarshal(s.OriginalPreferences, &raw); err == nil {
			for key, doc := range raw {
				if id, err := uuid.Parse(key); err == nil {
					originals[id] = doc
				}
			}
		}
	}

	return &entity.CompositeSession{
		Id:                   s.Id,
		Name:                 s.Name,
		UserIds:              userIds,
		CompositePreferences: documentFromJSON(s.CompositePreferences),
		OriginalPreferences:  originals,
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func (m *CompositeMapper) ToEntities(models []*model.CompositeSession) []*entity.CompositeSession {
	out := make([]*entity.CompositeSession, 0, len(models))
	for _, s := range models {
		out = append(out, m.ToEntity(s))
	}
	return out
}

func (m *CompositeMapper) ToModel(s *entity.CompositeSession) *model.CompositeSession {
	if s == nil {
		return nil
	}

	userIds, err := json.Marshal(s.UserIds)
	if err != nil {
		userIds = []byte("[]")
	}

	raw := make(map[string]preference.Document, len(s.OriginalPreferences))
	for id, doc := range s.OriginalPreferences {
		raw[id.String()] = doc
	}
	originals, err := json.Marshal(raw)
	if err != nil {
		originals = []byte("{}")
	}

	return &model.CompositeSession{
		Id:                   s.Id,
		Name:                 s.Name,
		UserIds:              datatypes.JSON(userIds),
		CompositePreferences: documentToJSON(s.CompositePreferences),
		OriginalPreferences:  datatypes.JSON(originals),
		IsActive:             s.IsActive,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
