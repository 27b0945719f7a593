package service

import (
	"context"
	"time"

	"ai-music-be/internal/pkg/logger"
	"ai-music-be/internal/repository/specification"
	"ai-music-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IMaintenanceService interface {
	// Start runs the stale trigger sweep on the configured interval until
	// the context is cancelled.
	Start(ctx context.Context)
	SweepOnce(ctx context.Context) (int, error)
}

type maintenanceService struct {
	uowFactory     unitofwork.RepositoryFactory
	triggerService ITriggerService
	logger         logger.ILogger
	interval       time.Duration
}

func NewMaintenanceService(
	uowFactory unitofwork.RepositoryFactory,
	triggerService ITriggerService,
	log logger.ILogger,
	interval time.Duration,
) IMaintenanceService {
	return &maintenanceService{
		uowFactory:     uowFactory,
		triggerService: triggerService,
		logger:         log,
		interval:       interval,
	}
}

func (s *maintenanceService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleaned, err := s.SweepOnce(ctx)
				if err != nil {
					s.logger.Warn("maintenance", "stale trigger sweep failed", map[string]interface{}{
						"error": err.Error(),
					})
					continue
				}
				if cleaned > 0 {
					s.logger.Info("maintenance", "stale triggers deactivated", map[string]interface{}{
						"count": cleaned,
					})
				}
			}
		}
	}()
}

// SweepOnce deactivates expired triggers for every user that has at
// least one active. A failing user is logged and skipped.
func (s *maintenanceService) SweepOnce(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	active, err := uow.TriggerRepository().FindAll(ctx, specification.ActiveOnly{Active: true})
	if err != nil {
		return 0, err
	}

	users := make(map[uuid.UUID]struct{})
	for _, trigger := range active {
		users[trigger.UserId] = struct{}{}
	}

	total := 0
	for userId := range users {
		cleaned, err := s.triggerService.CleanupStale(ctx, userId)
		if err != nil {
			s.logger.Warn("maintenance", "cleanup failed for user", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
			continue
		}
		total += cleaned
	}
	return total, nil
}
