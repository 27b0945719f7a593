package specification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Specification narrows a repository query. Implementations translate
// themselves onto the GORM builder; the in-memory repositories interpret
// the same types by switching on the concrete struct.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ByID filters by primary key.
type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByUserID filters rows owned by a user.
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByTriggerType filters triggers by their catalog type.
type ByTriggerType struct {
	TriggerType string
}

func (s ByTriggerType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("trigger_type = ?", s.TriggerType)
}

// ActiveOnly keeps rows whose is_active flag matches.
type ActiveOnly struct {
	Active bool
}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", s.Active)
}

// CreatedFrom keeps rows created at or after the given time.
type CreatedFrom struct {
	From time.Time
}

func (s CreatedFrom) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.From)
}

// CreatedTo keeps rows created at or before the given time.
type CreatedTo struct {
	To time.Time
}

func (s CreatedTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at <= ?", s.To)
}

// BySources keeps history rows whose source is in the set.
type BySources struct {
	Sources []string
}

func (s BySources) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source IN ?", s.Sources)
}

// ExcludeSources drops history rows whose source is in the set.
type ExcludeSources struct {
	Sources []string
}

func (s ExcludeSources) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source NOT IN ?", s.Sources)
}

// OrderBy applies ordering.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%s %s", s.Field, direction))
}

// Pagination applies limit/offset.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit > 0 {
		db = db.Limit(s.Limit)
	}
	return db.Offset(s.Offset)
}
