package service

import (
	"context"
	"sort"
	"time"

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

type IPreferenceService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceDocumentResponse, error)
	Set(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.PreferenceDocumentResponse, error)
	History(ctx context.Context, userId uuid.UUID, req *dto.HistoryRequest) ([]*dto.ChangeRecordResponse, error)
	RollbackTo(ctx context.Context, userId uuid.UUID, req *dto.RollbackRequest) (*dto.PreferenceDocumentResponse, error)
	Presets(ctx context.Context, userId uuid.UUID) ([]*dto.PresetResponse, error)
	DeletePreset(ctx context.Context, userId uuid.UUID, presetId uuid.UUID) error
}

type preferenceService struct {
	uowFactory   unitofwork.RepositoryFactory
	locks        *keylock.KeyLock
	cache        *memory.DocumentCache
	fields       preference.FieldTable
	publisher    IPublisherService
	clock        clock.Clock
	logger       logger.ILogger
	historyLimit int
}

func NewPreferenceService(
	uowFactory unitofwork.RepositoryFactory,
	locks *keylock.KeyLock,
	cache *memory.DocumentCache,
	fields preference.FieldTable,
	publisher IPublisherService,
	clk clock.Clock,
	log logger.ILogger,
	historyLimit int,
) IPreferenceService {
	return &preferenceService{
		uowFactory:   uowFactory,
		locks:        locks,
		cache:        cache,
		fields:       fields,
		publisher:    publisher,
		clock:        clk,
		logger:       log,
		historyLimit: historyLimit,
	}
}

func (s *preferenceService) Get(ctx context.Context, userId uuid.UUID) (*dto.PreferenceDocumentResponse, error) {
	if doc, found := s.cache.Get(userId); found {
		return &dto.PreferenceDocumentResponse{
			UserId:   userId,
			Document: doc,
		}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pref, err := uow.UserPreferenceRepository().Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		// First access seeds an empty row so every later mutation has a
		// stable base to read.
		now := s.clock.Now()
		pref = &entity.UserPreference{
			UserId:    userId,
			Document:  preference.Document{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uow.UserPreferenceRepository().Save(ctx, pref); err != nil {
			return nil, err
		}
	}

	s.cache.Save(userId, pref.Document)
	return &dto.PreferenceDocumentResponse{
		UserId:    userId,
		Document:  pref.Document,
		UpdatedAt: pref.UpdatedAt,
	}, nil
}

func (s *preferenceService) Set(ctx context.Context, userId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.PreferenceDocumentResponse, error) {
	if err := preference.Validate(req.Document, s.fields); err != nil {
		return nil, err
	}

	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	previous, err := currentDocument(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	change, err := writeDocument(ctx, uow, now, userId, previous, req.Document, entity.SourceManual, nil, nil, req.Metadata)
	if err != nil {
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

func (s *preferenceService) History(ctx context.Context, userId uuid.UUID, req *dto.HistoryRequest) ([]*dto.ChangeRecordResponse, error) {
	specs := []specification.Specification{
		specification.ByUserID{UserID: userId},
	}
	if req.From != nil {
		specs = append(specs, specification.CreatedFrom{From: *req.From})
	}
	if req.To != nil {
		specs = append(specs, specification.CreatedTo{To: *req.To})
	}
	if len(req.Sources) > 0 {
		specs = append(specs, specification.BySources{Sources: req.Sources})
	}
	var excluded []string
	if req.ExcludeEphemeral {
		excluded = append(excluded, string(entity.SourceEphemeral))
	}
	if req.ExcludeComposite {
		excluded = append(excluded, string(entity.SourceComposite))
	}
	if len(excluded) > 0 {
		specs = append(specs, specification.ExcludeSources{Sources: excluded})
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.historyLimit
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	changes, err := uow.PreferenceChangeRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ChangeRecordResponse, 0, len(changes))
	for _, change := range changes {
		responses = append(responses, changeToResponse(change))
	}
	return responses, nil
}

func (s *preferenceService) RollbackTo(ctx context.Context, userId uuid.UUID, req *dto.RollbackRequest) (*dto.PreferenceDocumentResponse, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	target, err := uow.PreferenceChangeRepository().FindOne(ctx,
		specification.ByID{ID: req.VersionId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrNotFound
	}

	restored := target.NewState.Clone()
	if req.PreserveEphemeral {
		overlays, err := s.activeOverlays(ctx, uow, userId)
		if err != nil {
			return nil, err
		}
		for _, overlay := range overlays {
			restored = preference.Merge(restored, overlay)
		}
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
	change, err := writeDocument(ctx, uow, now, userId, previous, restored, entity.SourceRollback, nil, nil, map[string]interface{}{
		"rollback_to": req.VersionId.String(),
	})
	if err != nil {
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

// activeOverlays returns the user's active trigger overlays in activation
// order so later activations keep winning after a rollback re-merge.
func (s *preferenceService) activeOverlays(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]preference.Document, error) {
	triggers, err := uow.TriggerRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.ActiveOnly{Active: true},
	)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(triggers, func(i, j int) bool {
		var ti, tj time.Time
		if triggers[i].ActivatedAt != nil {
			ti = *triggers[i].ActivatedAt
		}
		if triggers[j].ActivatedAt != nil {
			tj = *triggers[j].ActivatedAt
		}
		return ti.Before(tj)
	})
	overlays := make([]preference.Document, 0, len(triggers))
	for _, trigger := range triggers {
		overlays = append(overlays, trigger.Overlay)
	}
	return overlays, nil
}

func (s *preferenceService) Presets(ctx context.Context, userId uuid.UUID) ([]*dto.PresetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	presets, err := uow.PersonalPresetRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.PresetResponse, 0, len(presets))
	for _, preset := range presets {
		responses = append(responses, &dto.PresetResponse{
			Id:         preset.Id,
			PresetName: preset.Name,
			Document:   preset.Document,
			CreatedAt:  preset.CreatedAt,
		})
	}
	return responses, nil
}

func (s *preferenceService) DeletePreset(ctx context.Context, userId uuid.UUID, presetId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	presets, err := uow.PersonalPresetRepository().FindAll(ctx,
		specification.ByID{ID: presetId},
		specification.ByUserID{UserID: userId},
	)
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		return ErrNotFound
	}
	return uow.PersonalPresetRepository().Delete(ctx, presetId)
}
