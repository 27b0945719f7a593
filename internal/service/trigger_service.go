package service

import (
	"context"

	"ai-music-be/internal/constant"
	"ai-music-be/internal/dto"
	"ai-music-be/internal/entity"
	"ai-music-be/internal/pkg/clock"
	"ai-music-be/internal/pkg/keylock"
	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/memory"
	"ai-music-be/internal/repository/specification"
	"ai-music-be/internal/repository/unitofwork"
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

type ITriggerService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTriggerRequest) (*dto.TriggerResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.TriggerResponse, error)
	Activate(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) (*dto.TriggerResponse, error)
	Deactivate(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) (*dto.TriggerResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) error
	CleanupStale(ctx context.Context, userId uuid.UUID) (int, error)
}

type triggerService struct {
	uowFactory unitofwork.RepositoryFactory
	locks      *keylock.KeyLock
	cache      *memory.DocumentCache
	fields     preference.FieldTable
	publisher  IPublisherService
	clock      clock.Clock
	logger     logger.ILogger
}

func NewTriggerService(
	uowFactory unitofwork.RepositoryFactory,
	locks *keylock.KeyLock,
	cache *memory.DocumentCache,
	fields preference.FieldTable,
	publisher IPublisherService,
	clk clock.Clock,
	log logger.ILogger,
) ITriggerService {
	return &triggerService{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		fields:     fields,
		publisher:  publisher,
		clock:      clk,
		logger:     log,
	}
}

func (s *triggerService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTriggerRequest) (*dto.TriggerResponse, error) {
	preset, ok := constant.TriggerCatalog[req.TriggerType]
	if !ok {
		return nil, ErrUnsupportedTrigger
	}

	overlay := req.Overlay
	if overlay.IsEmpty() {
		overlay = preset.Overlay.Clone()
	}
	if err := preference.Validate(overlay, s.fields); err != nil {
		return nil, err
	}

	lifetime := req.LifetimeSeconds
	if lifetime <= 0 {
		lifetime = preset.LifetimeSeconds
	}

	now := s.clock.Now()
	trigger := &entity.PreferenceTrigger{
		Id:              uuid.New(),
		UserId:          userId,
		TriggerType:     req.TriggerType,
		Overlay:         overlay,
		LifetimeSeconds: lifetime,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TriggerRepository().Create(ctx, trigger); err != nil {
		return nil, err
	}
	return triggerToResponse(trigger), nil
}

func (s *triggerService) List(ctx context.Context, userId uuid.UUID) ([]*dto.TriggerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	triggers, err := uow.TriggerRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.TriggerResponse, 0, len(triggers))
	for _, trigger := range triggers {
		responses = append(responses, triggerToResponse(trigger))
	}
	return responses, nil
}

func (s *triggerService) Activate(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) (*dto.TriggerResponse, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	trigger, err := s.findOwned(ctx, uow, userId, triggerId)
	if err != nil {
		return nil, err
	}
	if trigger.IsActive {
		// Idempotent: repeated activation keeps document and snapshot.
		return triggerToResponse(trigger), nil
	}

	// Only one trigger of a given type may be active per user. Two live
	// snapshots of the same type would clobber each other on restore.
	conflict, err := uow.TriggerRepository().FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.ByTriggerType{TriggerType: trigger.TriggerType},
		specification.ActiveOnly{Active: true},
	)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, ErrTriggerTypeActive
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
	next := preference.Merge(previous, trigger.Overlay)

	change, err := writeDocument(ctx, uow, now, userId, previous, next, entity.SourceEphemeral, &trigger.Id, nil, map[string]interface{}{
		"trigger_action": "activate",
		"trigger_type":   trigger.TriggerType,
	})
	if err != nil {
		return nil, err
	}

	trigger.IsActive = true
	trigger.OriginalPreferences = previous.Clone()
	trigger.ActivatedAt = &now
	trigger.DeactivatedAt = nil
	trigger.UpdatedAt = now
	if err := uow.TriggerRepository().Update(ctx, trigger); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.cache.Invalidate(userId)
	emitPreferenceChanged(ctx, s.logger, s.publisher, change)
	return triggerToResponse(trigger), nil
}

func (s *triggerService) Deactivate(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) (*dto.TriggerResponse, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	trigger, err := s.findOwned(ctx, uow, userId, triggerId)
	if err != nil {
		return nil, err
	}
	if !trigger.IsActive {
		return triggerToResponse(trigger), nil
	}
	if err := s.deactivateLocked(ctx, uow, trigger); err != nil {
		return nil, err
	}
	return triggerToResponse(trigger), nil
}

func (s *triggerService) Delete(ctx context.Context, userId uuid.UUID, triggerId uuid.UUID) error {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	trigger, err := s.findOwned(ctx, uow, userId, triggerId)
	if err != nil {
		return err
	}
	if trigger.IsActive {
		if err := s.deactivateLocked(ctx, uow, trigger); err != nil {
			return err
		}
	}
	return uow.TriggerRepository().Delete(ctx, trigger.Id)
}

// CleanupStale deactivates every active trigger of the user that has
// outlived its lifetime. Per-trigger failures are logged and skipped so
// one bad row cannot wedge the sweep.
func (s *triggerService) CleanupStale(ctx context.Context, userId uuid.UUID) (int, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return 0, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	triggers, err := uow.TriggerRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{Active: true},
	)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	cleaned := 0
	for _, trigger := range triggers {
		if trigger.StaleAt().After(now) {
			continue
		}
		if err := s.deactivateLocked(ctx, uow, trigger); err != nil {
			s.logger.Warn("trigger", "stale trigger cleanup failed", map[string]interface{}{
				"trigger_id": trigger.Id.String(),
				"user_id":    userId.String(),
				"error":      err.Error(),
			})
			continue
		}
		cleaned++
	}
	return cleaned, nil
}

// deactivateLocked restores the activation snapshot verbatim and clears
// it. Caller holds the user's lock and has verified the trigger is active.
func (s *triggerService) deactivateLocked(ctx context.Context, uow unitofwork.UnitOfWork, trigger *entity.PreferenceTrigger) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	previous, err := currentDocument(ctx, uow, trigger.UserId)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	restored := trigger.OriginalPreferences.Clone()

	change, err := writeDocument(ctx, uow, now, trigger.UserId, previous, restored, entity.SourceEphemeral, &trigger.Id, nil, map[string]interface{}{
		"trigger_action": "deactivate",
		"trigger_type":   trigger.TriggerType,
	})
	if err != nil {
		return err
	}

	trigger.IsActive = false
	trigger.OriginalPreferences = nil
	trigger.DeactivatedAt = &now
	trigger.UpdatedAt = now
	if err := uow.TriggerRepository().Update(ctx, trigger); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Invalidate(trigger.UserId)
	emitPreferenceChanged(ctx, s.logger, s.publisher, change)
	return nil
}

func (s *triggerService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, triggerId uuid.UUID) (*entity.PreferenceTrigger, error) {
	trigger, err := uow.TriggerRepository().FindOne(ctx,
		specification.ByID{ID: triggerId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if trigger == nil {
		return nil, ErrNotFound
	}
	return trigger, nil
}

func triggerToResponse(trigger *entity.PreferenceTrigger) *dto.TriggerResponse {
	return &dto.TriggerResponse{
		Id:              trigger.Id,
		TriggerType:     trigger.TriggerType,
		Overlay:         trigger.Overlay,
		IsActive:        trigger.IsActive,
		LifetimeSeconds: trigger.LifetimeSeconds,
		ActivatedAt:     trigger.ActivatedAt,
		CreatedAt:       trigger.CreatedAt,
	}
}
