package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-music-be/internal/dto"
	"ai-music-be/internal/entity"
	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/unitofwork"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

// currentDocument reads the live document for a user, treating an absent
// row as an empty document.
func currentDocument(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (preference.Document, error) {
	pref, err := uow.UserPreferenceRepository().Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return preference.Document{}, nil
	}
	return pref.Document, nil
}

// writeDocument persists the next document and appends its history record
// inside the caller's open transaction. Callers hold the user's lock.
func writeDocument(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	now time.Time,
	userId uuid.UUID,
	previous, next preference.Document,
	source entity.ChangeSource,
	triggerId, compositeId *uuid.UUID,
	metadata map[string]interface{},
) (*entity.PreferenceChange, error) {
	change := &entity.PreferenceChange{
		Id:            uuid.New(),
		UserId:        userId,
		PreviousState: previous.Clone(),
		NewState:      next.Clone(),
		Source:        source,
		TriggerId:     triggerId,
		CompositeId:   compositeId,
		Metadata:      metadata,
		CreatedAt:     now,
	}
	if err := uow.PreferenceChangeRepository().Create(ctx, change); err != nil {
		return nil, err
	}
	err := uow.UserPreferenceRepository().Save(ctx, &entity.UserPreference{
		UserId:    userId,
		Document:  next.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// emitPreferenceChanged fans the committed change out on the message bus.
// Failures are logged, never surfaced; the mutation already committed.
func emitPreferenceChanged(ctx context.Context, log logger.ILogger, publisher IPublisherService, change *entity.PreferenceChange) {
	if publisher == nil {
		return
	}
	payload, err := json.Marshal(dto.PreferenceChangedMessage{
		UserId:   change.UserId,
		ChangeId: change.Id,
		Source:   string(change.Source),
	})
	if err != nil {
		return
	}
	if err := publisher.Publish(ctx, payload); err != nil {
		log.Warn("events", "failed to publish preference change", map[string]interface{}{
			"user_id":   change.UserId.String(),
			"change_id": change.Id.String(),
			"error":     err.Error(),
		})
	}
}

func changeToResponse(change *entity.PreferenceChange) *dto.ChangeRecordResponse {
	return &dto.ChangeRecordResponse{
		Id:            change.Id,
		Source:        string(change.Source),
		PreviousState: change.PreviousState,
		NewState:      change.NewState,
		TriggerId:     change.TriggerId,
		CompositeId:   change.CompositeId,
		Metadata:      change.Metadata,
		CreatedAt:     change.CreatedAt,
	}
}
