package service

import (
	"context"

	"ai-music-be/internal/dto"
	"ai-music-be/internal/entity"
	"ai-music-be/internal/pkg/clock"
	"ai-music-be/internal/pkg/keylock"
	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/memory"
	"ai-music-be/internal/repository/specification"
	"ai-music-be/internal/repository/unitofwork"
	"ai-music-be/pkg/predictor"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

const (
	trainEpochs       = 500
	trainLearningRate = 0.001
	acceptThreshold   = 0.5
)

type IPredictiveService interface {
	// Apply decides on an adjustment for the snapshot. The bool reports
	// whether anything was applied.
	Apply(ctx context.Context, userId uuid.UUID, req *dto.PredictiveApplyRequest) (*dto.PredictiveEventResponse, bool, error)
	Accept(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) (*dto.PredictiveEventResponse, error)
	Revert(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) (*dto.PreferenceDocumentResponse, error)
	Events(ctx context.Context, userId uuid.UUID) ([]*dto.PredictiveEventResponse, error)
	Train(ctx context.Context, userId uuid.UUID) (*dto.TrainResponse, error)
	NeedsRetraining(ctx context.Context, userId uuid.UUID) (*dto.RetrainingStatusResponse, error)
}

type predictiveService struct {
	uowFactory       unitofwork.RepositoryFactory
	locks            *keylock.KeyLock
	cache            *memory.DocumentCache
	rules            *predictor.RuleTable
	publisher        IPublisherService
	clock            clock.Clock
	logger           logger.ILogger
	retrainThreshold int
}

func NewPredictiveService(
	uowFactory unitofwork.RepositoryFactory,
	locks *keylock.KeyLock,
	cache *memory.DocumentCache,
	rules *predictor.RuleTable,
	publisher IPublisherService,
	clk clock.Clock,
	log logger.ILogger,
	retrainThreshold int,
) IPredictiveService {
	return &predictiveService{
		uowFactory:       uowFactory,
		locks:            locks,
		cache:            cache,
		rules:            rules,
		publisher:        publisher,
		clock:            clk,
		logger:           log,
		retrainThreshold: retrainThreshold,
	}
}

func (s *predictiveService) Apply(ctx context.Context, userId uuid.UUID, req *dto.PredictiveApplyRequest) (*dto.PredictiveEventResponse, bool, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, false, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.clock.Now()

	snap := entity.ContextSnapshot{
		Time:                   now,
		SessionDurationSeconds: req.SessionDurationSeconds,
		InteractionCount:       req.InteractionCount,
		MinutesSinceLastChange: -1,
	}
	lastChanges, err := uow.PreferenceChangeRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: 1},
	)
	if err != nil {
		return nil, false, err
	}
	if len(lastChanges) > 0 {
		snap.MinutesSinceLastChange = now.Sub(lastChanges[0].CreatedAt).Minutes()
	}

	overlay, reason, err := s.decide(ctx, uow, userId, snap)
	if err != nil {
		return nil, false, err
	}
	if overlay == nil {
		return nil, false, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer uow.Rollback()

	previous, err := currentDocument(ctx, uow, userId)
	if err != nil {
		return nil, false, err
	}

	event := &entity.PredictiveEvent{
		Id:                  uuid.New(),
		UserId:              userId,
		ContextSnapshot:     snap,
		OriginalPreferences: previous.Clone(),
		AppliedPreferences:  overlay.Clone(),
		ReasonCode:          reason,
		IsActive:            true,
		CreatedAt:           now,
	}
	if err := uow.PredictiveEventRepository().Create(ctx, event); err != nil {
		return nil, false, err
	}

	next := preference.Merge(previous, overlay)
	change, err := writeDocument(ctx, uow, now, userId, previous, next, entity.SourceMLDriven, nil, nil, map[string]interface{}{
		"reason_code": reason,
		"event_id":    event.Id.String(),
	})
	if err != nil {
		return nil, false, err
	}
	if err := uow.Commit(); err != nil {
		return nil, false, err
	}

	s.cache.Invalidate(userId)
	emitPreferenceChanged(ctx, s.logger, s.publisher, change)
	return eventToResponse(event), true, nil
}

// decide consults the rule table first and falls back to the trained
// model. A model hit replays the overlay of the newest accepted event;
// with no accepted history the fallback stays silent.
func (s *predictiveService) decide(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, snap entity.ContextSnapshot) (preference.Document, string, error) {
	rule, err := s.rules.Match(snap)
	if err != nil {
		return nil, "", err
	}
	if rule != nil {
		return rule.Overlay.Clone(), "rule:" + rule.Name, nil
	}

	model, err := uow.PredictiveModelRepository().Get(ctx, userId)
	if err != nil {
		return nil, "", err
	}
	if model == nil {
		return nil, "", nil
	}

	clf := predictor.Logistic{Weights: model.Weights, Bias: model.Bias}
	if clf.Predict(predictor.Vector(snap)) < acceptThreshold {
		return nil, "", nil
	}

	events, err := uow.PredictiveEventRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, "", err
	}
	for _, event := range events {
		if event.UserAccepted != nil && *event.UserAccepted {
			return event.AppliedPreferences.Clone(), "model:logistic", nil
		}
	}
	return nil, "", nil
}

func (s *predictiveService) Accept(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) (*dto.PredictiveEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := s.findOwnedEvent(ctx, uow, userId, eventId)
	if err != nil {
		return nil, err
	}

	accepted := true
	event.UserAccepted = &accepted
	if err := uow.PredictiveEventRepository().Update(ctx, event); err != nil {
		return nil, err
	}
	return eventToResponse(event), nil
}

func (s *predictiveService) Revert(ctx context.Context, userId uuid.UUID, eventId uuid.UUID) (*dto.PreferenceDocumentResponse, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	event, err := s.findOwnedEvent(ctx, uow, userId, eventId)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		// Already reverted; hand back the live document unchanged.
		doc, err := currentDocument(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		return &dto.PreferenceDocumentResponse{UserId: userId, Document: doc}, nil
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	previous, err := currentDocument(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	restored := event.OriginalPreferences.Clone()
	change, err := writeDocument(ctx, uow, now, userId, previous, restored, entity.SourceMLDriven, nil, nil, map[string]interface{}{
		"action":   "revert",
		"event_id": event.Id.String(),
	})
	if err != nil {
		return nil, err
	}

	rejected := false
	event.UserAccepted = &rejected
	event.IsActive = false
	event.RevertedAt = &now
	if err := uow.PredictiveEventRepository().Update(ctx, event); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(userId)
	emitPreferenceChanged(ctx, s.logger, s.publisher, change)

	return &dto.PreferenceDocumentResponse{
		UserId:    userId,
		Document:  change.NewState,
		UpdatedAt: now,
	}, nil
}

func (s *predictiveService) Events(ctx context.Context, userId uuid.UUID) ([]*dto.PredictiveEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	events, err := uow.PredictiveEventRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.PredictiveEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, eventToResponse(event))
	}
	return responses, nil
}

// Train fits a fresh model on every event the user has labeled through
// Accept or Revert.
func (s *predictiveService) Train(ctx context.Context, userId uuid.UUID) (*dto.TrainResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	events, err := uow.PredictiveEventRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	var features [][]float64
	var labels []bool
	for _, event := range events {
		if event.UserAccepted == nil {
			continue
		}
		features = append(features, predictor.Vector(event.ContextSnapshot))
		labels = append(labels, *event.UserAccepted)
	}
	if len(features) == 0 {
		return nil, ErrInsufficientData
	}

	fitted := predictor.Fit(features, labels, trainEpochs, trainLearningRate)
	now := s.clock.Now()
	model := &entity.PredictiveModel{
		UserId:       userId,
		FeatureNames: append([]string(nil), predictor.FeatureNames...),
		Weights:      fitted.Weights,
		Bias:         fitted.Bias,
		TrainingSize: len(features),
		TrainedAt:    now,
	}
	if err := uow.PredictiveModelRepository().Save(ctx, model); err != nil {
		return nil, err
	}

	s.logger.Info("predictive", "model trained", map[string]interface{}{
		"user_id":       userId.String(),
		"training_size": model.TrainingSize,
	})
	return &dto.TrainResponse{
		TrainingSize: model.TrainingSize,
		FeatureNames: model.FeatureNames,
		TrainedAt:    model.TrainedAt,
	}, nil
}

// NeedsRetraining reports whether enough events accumulated since the
// last fit to make the stored model stale.
func (s *predictiveService) NeedsRetraining(ctx context.Context, userId uuid.UUID) (*dto.RetrainingStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	model, err := uow.PredictiveModelRepository().Get(ctx, userId)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.ByUserID{UserID: userId},
	}
	if model != nil {
		specs = append(specs, specification.CreatedFrom{From: model.TrainedAt})
	}
	count, err := uow.PredictiveEventRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	newEvents := int(count)
	needs := false
	if model == nil {
		needs = newEvents > 0
	} else {
		needs = newEvents >= s.retrainThreshold
	}
	return &dto.RetrainingStatusResponse{
		NeedsRetraining: needs,
		NewEvents:       newEvents,
	}, nil
}

func (s *predictiveService) findOwnedEvent(ctx context.Context, uow unitofwork.UnitOfWork, userId, eventId uuid.UUID) (*entity.PredictiveEvent, error) {
	event, err := uow.PredictiveEventRepository().FindOne(ctx,
		specification.ByID{ID: eventId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}
	return event, nil
}

func eventToResponse(event *entity.PredictiveEvent) *dto.PredictiveEventResponse {
	return &dto.PredictiveEventResponse{
		Id:           event.Id,
		ReasonCode:   event.ReasonCode,
		Applied:      event.AppliedPreferences,
		IsActive:     event.IsActive,
		UserAccepted: event.UserAccepted,
		CreatedAt:    event.CreatedAt,
	}
}
