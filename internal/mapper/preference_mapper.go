package mapper

import (
	"encoding/json"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/model"
	"ai-music-be/pkg/preference"

	"gorm.io/datatypes"
)

// documentToJSON encodes a typed document into a jsonb column value.
// An empty or nil document becomes "{}" so columns stay non-null.
func documentToJSON(doc preference.Document) datatypes.JSON {
	if doc == nil {
		doc = preference.NewDocument()
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(data)
}

func documentFromJSON(data datatypes.JSON) preference.Document {
	doc := preference.NewDocument()
	if len(data) == 0 {
		return doc
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return preference.NewDocument()
	}
	return doc
}

func metadataToJSON(md map[string]interface{}) datatypes.JSON {
	if md == nil {
		return nil
	}
	data, err := json.Marshal(md)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}

func metadataFromJSON(data datatypes.JSON) map[string]interface{} {
	if len(data) == 0 {
		return nil
	}
	var md map[string]interface{}
	if err := json.Unmarshal(data, &md); err != nil {
		return nil
	}
	return md
}

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.UserPreference) *entity.UserPreference {
	if p == nil {
		return nil
	}
	return &entity.UserPreference{
		UserId:    p.UserId,
		Document:  documentFromJSON(p.Document),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.UserPreference) *model.UserPreference {
	if p == nil {
		return nil
	}
	return &model.UserPreference{
		UserId:    p.UserId,
		Document:  documentToJSON(p.Document),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type ChangeMapper struct{}

func NewChangeMapper() *ChangeMapper {
	return &ChangeMapper{}
}

func (m *ChangeMapper) ToEntity(c *model.PreferenceChange) *entity.PreferenceChange {
	if c == nil {
		return nil
	}
	return &entity.PreferenceChange{
		Id:            c.Id,
		UserId:        c.UserId,
		PreviousState: documentFromJSON(c.PreviousState),
		NewState:      documentFromJSON(c.NewState),
		Source:        entity.ChangeSource(c.Source),
		TriggerId:     c.TriggerId,
		CompositeId:   c.CompositeId,
		Metadata:      metadataFromJSON(c.Metadata),
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChangeMapper) ToEntities(models []*model.PreferenceChange) []*entity.PreferenceChange {
	out := make([]*entity.PreferenceChange, 0, len(models))
	for _, c := range models {
		out = append(out, m.ToEntity(c))
	}
	return out
}

func (m *ChangeMapper) ToModel(c *entity.PreferenceChange) *model.PreferenceChange {
	if c == nil {
		return nil
	}
	return &model.PreferenceChange{
		Id:            c.Id,
		UserId:        c.UserId,
		PreviousState: documentToJSON(c.PreviousState),
		NewState:      documentToJSON(c.NewState),
		Source:        string(c.Source),
		TriggerId:     c.TriggerId,
		CompositeId:   c.CompositeId,
		Metadata:      metadataToJSON(c.Metadata),
		CreatedAt:     c.CreatedAt,
	}
}

type PresetMapper struct{}

func NewPresetMapper() *PresetMapper {
	return &PresetMapper{}
}

func (m *PresetMapper) ToEntity(p *model.PersonalPreset) *entity.PersonalPreset {
	if p == nil {
		return nil
	}
	return &entity.PersonalPreset{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Document:  documentFromJSON(p.Document),
		CreatedAt: p.CreatedAt,
	}
}

func (m *PresetMapper) ToEntities(models []*model.PersonalPreset) []*entity.PersonalPreset {
	out := make([]*entity.PersonalPreset, 0, len(models))
	for _, p := range models {
		out = append(out, m.ToEntity(p))
	}
	return out
}

func (m *PresetMapper) ToModel(p *entity.PersonalPreset) *model.PersonalPreset {
	if p == nil {
		return nil
	}
	return &model.PersonalPreset{
		Id:        p.Id,
		UserId:    p.UserId,
		Name:      p.Name,
		Document:  documentToJSON(p.Document),
		CreatedAt: p.CreatedAt,
	}
}
