package memory

import (
	"sort"
	"time"

	"ai-music-be/internal/repository/specification"

	"github.com/google/uuid"
)

// specRow is the subset of entity fields the in-memory matcher can see.
// Repositories project their entities into it before filtering.
type specRow struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	TriggerType string
	Source      string
	IsActive    bool
	HasActive   bool // whether IsActive is meaningful for this row
	CreatedAt   time.Time
}

func matchSpec(row specRow, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return row.Id == s.ID
	case specification.ByUserID:
		return row.UserId == s.UserID
	case specification.ByTriggerType:
		return row.TriggerType == s.TriggerType
	case specification.ActiveOnly:
		return !row.HasActive || row.IsActive == s.Active
	case specification.CreatedFrom:
		return !row.CreatedAt.Before(s.From)
	case specification.CreatedTo:
		return !row.CreatedAt.After(s.To)
	case specification.BySources:
		for _, src := range s.Sources {
			if row.Source == src {
				return true
			}
		}
		return false
	case specification.ExcludeSources:
		for _, src := range s.Sources {
			if row.Source == src {
				return false
			}
		}
		return true
	default:
		// ordering/pagination handled after filtering
		return true
	}
}

func matchAll(row specRow, specs []specification.Specification) bool {
	for _, spec := range specs {
		if !matchSpec(row, spec) {
			return false
		}
	}
	return true
}

// applyOrderAndPage sorts indices by created_at per any OrderBy spec and
// applies Pagination. Only created_at ordering is supported in memory,
// which is the only ordering the services use.
func applyOrderAndPage(rows []specRow, indices []int, specs []specification.Specification) []int {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok {
			sort.SliceStable(indices, func(a, b int) bool {
				if s.Desc {
					return rows[indices[a]].CreatedAt.After(rows[indices[b]].CreatedAt)
				}
				return rows[indices[a]].CreatedAt.Before(rows[indices[b]].CreatedAt)
			})
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.Pagination); ok {
			if s.Offset >= len(indices) {
				return nil
			}
			indices = indices[s.Offset:]
			if s.Limit > 0 && s.Limit < len(indices) {
				indices = indices[:s.Limit]
			}
		}
	}
	return indices
}
