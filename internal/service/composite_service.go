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
	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

type ICompositeService interface {
	Create(ctx context.Context, req *dto.CreateCompositeRequest) (*dto.CompositeResponse, error)
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.CompositeResponse, error)
	Update(ctx context.Context, sessionId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.CompositeResponse, error)
	AddUser(ctx context.Context, sessionId uuid.UUID, req *dto.ModifyMemberRequest) (*dto.CompositeResponse, error)
	RemoveUser(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.CompositeResponse, error)
	Apply(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.PreferenceDocumentResponse, error)
	SaveAsPersonalPreset(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID, req *dto.SavePresetRequest) (*dto.PresetResponse, error)
}

type compositeService struct {
	uowFactory unitofwork.RepositoryFactory
	locks      *keylock.KeyLock
	cache      *memory.DocumentCache
	fields     preference.FieldTable
	publisher  IPublisherService
	clock      clock.Clock
	logger     logger.ILogger
}

func NewCompositeService(
	uowFactory unitofwork.RepositoryFactory,
	locks *keylock.KeyLock,
	cache *memory.DocumentCache,
	fields preference.FieldTable,
	publisher IPublisherService,
	clk clock.Clock,
	log logger.ILogger,
) ICompositeService {
	return &compositeService{
		uowFactory: uowFactory,
		locks:      locks,
		cache:      cache,
		fields:     fields,
		publisher:  publisher,
		clock:      clk,
		logger:     log,
	}
}

func (s *compositeService) Create(ctx context.Context, req *dto.CreateCompositeRequest) (*dto.CompositeResponse, error) {
	if len(req.UserIds) < 2 {
		return nil, ErrNotEnoughMembers
	}
	seen := make(map[uuid.UUID]struct{}, len(req.UserIds))
	for _, id := range req.UserIds {
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateMember
		}
		seen[id] = struct{}{}
	}

	// Hold every member's lock so the snapshots form one consistent cut.
	keys := lockKeys(req.UserIds)
	if err := s.locks.AcquireAll(ctx, keys); err != nil {
		return nil, err
	}
	defer s.locks.ReleaseAll(keys)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	snapshots := make(map[uuid.UUID]preference.Document, len(req.UserIds))
	for _, id := range req.UserIds {
		pref, err := uow.UserPreferenceRepository().Get(ctx, id)
		if err != nil {
			return nil, err
		}
		// A seeded empty document still counts as present; only users the
		// store has never seen fail.
		if pref == nil {
			return nil, ErrMissingUser
		}
		snapshots[id] = pref.Document.Clone()
	}

	now := s.clock.Now()
	session := &entity.CompositeSession{
		Id:                  uuid.New(),
		Name:                req.SessionName,
		UserIds:             append([]uuid.UUID(nil), req.UserIds...),
		OriginalPreferences: snapshots,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	session.CompositePreferences = preference.Composite(session.MemberDocuments(), s.fields)

	if err := uow.CompositeSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return compositeToResponse(session), nil
}

func (s *compositeService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.CompositeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	return compositeToResponse(session), nil
}

// Update merges a manual patch onto the derived composite. The patch does
// not touch member snapshots, so a later recompute discards it.
func (s *compositeService) Update(ctx context.Context, sessionId uuid.UUID, req *dto.UpdatePreferenceRequest) (*dto.CompositeResponse, error) {
	if err := preference.Validate(req.Document, s.fields); err != nil {
		return nil, err
	}

	// The session's own id keys its lock; every read-modify-write of the
	// session row serializes on it.
	if err := s.locks.Acquire(ctx, sessionId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(sessionId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	session.CompositePreferences = preference.Merge(session.CompositePreferences, req.Document)
	session.UpdatedAt = s.clock.Now()
	if err := uow.CompositeSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return compositeToResponse(session), nil
}

func (s *compositeService) AddUser(ctx context.Context, sessionId uuid.UUID, req *dto.ModifyMemberRequest) (*dto.CompositeResponse, error) {
	// Session key serializes membership changes, member key pins the
	// snapshot being taken.
	keys := []string{sessionId.String(), req.UserId.String()}
	if err := s.locks.AcquireAll(ctx, keys); err != nil {
		return nil, err
	}
	defer s.locks.ReleaseAll(keys)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if session.HasMember(req.UserId) {
		return nil, ErrAlreadyMember
	}

	pref, err := uow.UserPreferenceRepository().Get(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return nil, ErrMissingUser
	}

	session.UserIds = append(session.UserIds, req.UserId)
	session.OriginalPreferences[req.UserId] = pref.Document.Clone()
	session.CompositePreferences = preference.Composite(session.MemberDocuments(), s.fields)
	session.UpdatedAt = s.clock.Now()

	if err := uow.CompositeSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return compositeToResponse(session), nil
}

func (s *compositeService) RemoveUser(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.CompositeResponse, error) {
	keys := []string{sessionId.String(), userId.String()}
	if err := s.locks.AcquireAll(ctx, keys); err != nil {
		return nil, err
	}
	defer s.locks.ReleaseAll(keys)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.HasMember(userId) {
		return nil, ErrNotAMember
	}

	members := make([]uuid.UUID, 0, len(session.UserIds)-1)
	for _, id := range session.UserIds {
		if id != userId {
			members = append(members, id)
		}
	}
	session.UserIds = members
	delete(session.OriginalPreferences, userId)
	// Removing the last member leaves an empty composite, not an error.
	session.CompositePreferences = preference.Composite(session.MemberDocuments(), s.fields)
	session.UpdatedAt = s.clock.Now()

	if err := uow.CompositeSessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	return compositeToResponse(session), nil
}

// Apply writes the session composite into one member's live document so
// the derived set actually reaches playback.
func (s *compositeService) Apply(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) (*dto.PreferenceDocumentResponse, error) {
	if err := s.locks.Acquire(ctx, userId.String()); err != nil {
		return nil, err
	}
	defer s.locks.Release(userId.String())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.HasMember(userId) {
		return nil, ErrNotAMember
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
	change, err := writeDocument(ctx, uow, now, userId, previous, session.CompositePreferences, entity.SourceComposite, nil, &session.Id, map[string]interface{}{
		"session_name": session.Name,
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

func (s *compositeService) SaveAsPersonalPreset(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID, req *dto.SavePresetRequest) (*dto.PresetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := s.findSession(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.HasMember(userId) {
		return nil, ErrNotAMember
	}

	preset := &entity.PersonalPreset{
		Id:        uuid.New(),
		UserId:    userId,
		Name:      req.PresetName,
		Document:  session.CompositePreferences.Clone(),
		CreatedAt: s.clock.Now(),
	}
	if err := uow.PersonalPresetRepository().Create(ctx, preset); err != nil {
		return nil, err
	}
	return &dto.PresetResponse{
		Id:         preset.Id,
		PresetName: preset.Name,
		Document:   preset.Document,
		CreatedAt:  preset.CreatedAt,
	}, nil
}

func (s *compositeService) findSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.CompositeSession, error) {
	session, err := uow.CompositeSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotFound
	}
	return session, nil
}

func lockKeys(userIds []uuid.UUID) []string {
	keys := make([]string, 0, len(userIds))
	for _, id := range userIds {
		keys = append(keys, id.String())
	}
	return keys
}

func compositeToResponse(session *entity.CompositeSession) *dto.CompositeResponse {
	return &dto.CompositeResponse{
		Id:          session.Id,
		SessionName: session.Name,
		UserIds:     session.UserIds,
		Composite:   session.CompositePreferences,
		IsActive:    session.IsActive,
		CreatedAt:   session.CreatedAt,
	}
}
