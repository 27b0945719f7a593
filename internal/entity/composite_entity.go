package entity

import (
	"time"

	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
)

type CompositeSession struct {
	Id                   uuid.UUID
	Name                 string
	UserIds              []uuid.UUID
	CompositePreferences preference.Document
	OriginalPreferences  map[uuid.UUID]preference.Document
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasMember reports whether the user participates in the session.
func (s *CompositeSession) HasMember(userId uuid.UUID) bool {
	for _, id := range s.UserIds {
		if id == userId {
			return true
		}
	}
	return false
}

// MemberDocuments returns the snapshot documents in participant order,
// the ordering used as the composite tie-break key.
func (s *CompositeSession) MemberDocuments() []preference.Document {
	docs := make([]preference.Document, 0, len(s.UserIds))
	for _, id := range s.UserIds {
		if doc, ok := s.OriginalPreferences[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs
}
