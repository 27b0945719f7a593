package mapper

import (
	"encoding/json"

	"ai-music-be/internal/entity"
	"ai-music-be/internal/model"

	"gorm.io/datatypes"
)

type PredictiveMapper struct{}

func NewPredictiveMapper() *PredictiveMapper {
	return &PredictiveMapper{}
}

func (m *PredictiveMapper) EventToEntity(e *model.PredictiveEvent) *entity.PredictiveEvent {
	if e == nil {
		return nil
	}

	var snapshot entity.ContextSnapshot
	if len(e.ContextSnapshot) > 0 {
		_ = json.Unmarshal(e.ContextSnapshot, &snapshot)
	}

	return &entity.PredictiveEvent{
		Id:                  e.Id,
		UserId:              e.UserId,
		ContextSnapshot:     snapshot,
		OriginalPreferences: documentFromJSON(e.OriginalPreferences),
		AppliedPreferences:  documentFromJSON(e.AppliedPreferences),
		ReasonCode:          e.ReasonCode,
		UserAccepted:        e.UserAccepted,
		IsActive:            e.IsActive,
		RevertedAt:          e.RevertedAt,
		CreatedAt:           e.CreatedAt,
	}
}

func (m *PredictiveMapper) EventsToEntities(models []*model.PredictiveEvent) []*entity.PredictiveEvent {
	out := make([]*entity.PredictiveEvent, 0, len(models))
	for _, e := range models {
		out = append(out, m.EventToEntity(e))
	}
	return out
}

func (m *PredictiveMapper) EventToModel(e *entity.PredictiveEvent) *model.PredictiveEvent {
	if e == nil {
		return nil
	}

	snapshot, err := json.Marshal(e.ContextSnapshot)
	if err != nil {
		snapshot = []byte("{}")
	}

	return &model.PredictiveEvent{
		Id:                  e.Id,
		UserId:              e.UserId,
		ContextSnapshot:     datatypes.JSON(snapshot),
		OriginalPreferences: documentToJSON(e.OriginalPreferences),
		AppliedPreferences:  documentToJSON(e.AppliedPreferences),
		ReasonCode:          e.ReasonCode,
		UserAccepted:        e.UserAccepted,
		IsActive:            e.IsActive,
		RevertedAt:          e.RevertedAt,
		CreatedAt:           e.CreatedAt,
	}
}

func (m *PredictiveMapper) ModelToEntity(p *model.PredictiveModel) *entity.PredictiveModel {
	if p == nil {
		return nil
	}

	var features []string
	if len(p.FeatureNames) > 0 {
		_ = json.Unmarshal(p.FeatureNames, &features)
	}
	var weights []float64
	if len(p.Weights) > 0 {
		_ = json.Unmarshal(p.Weights, &weights)
	}

	return &entity.PredictiveModel{
		UserId:       p.UserId,
		FeatureNames: features,
		Weights:      weights,
		Bias:         p.Bias,
		TrainingSize: p.TrainingSize,
		TrainedAt:    p.TrainedAt,
	}
}

func (m *PredictiveMapper) ModelToModel(p *entity.PredictiveModel) *model.PredictiveModel {
	if p == nil {
		return nil
	}

	features, err := json.Marshal(p.FeatureNames)
	if err != nil {
		features = []byte("[]")
	}
	weights, err := json.Marshal(p.Weights)
	if err != nil {
		weights = []byte("[]")
	}

	return &model.PredictiveModel{
		UserId:       p.UserId,
		FeatureNames: datatypes.JSON(features),
		Weights:      datatypes.JSON(weights),
		Bias:         p.Bias,
		TrainingSize: p.TrainingSize,
		TrainedAt:    p.TrainedAt,
	}
}
