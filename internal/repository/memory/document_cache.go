package memory

import (
	"time"

	"ai-music-be/pkg/preference"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DocumentCache is a short-lived read cache for resolved preference
// documents. Every committed mutation must invalidate the owner's entry.
type DocumentCache struct {
	cache *cache.Cache
}

func NewDocumentCache() *DocumentCache {
	// Documents change rarely compared to playback reads; a 5 minute
	// TTL with a 10 minute janitor keeps the table small.
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &DocumentCache{
		cache: c,
	}
}

func (r *DocumentCache) Save(userId uuid.UUID, doc preference.Document) {
	r.cache.Set(userId.String(), doc.Clone(), cache.DefaultExpiration)
}

func (r *DocumentCache) Get(userId uuid.UUID) (preference.Document, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(preference.Document).Clone(), true
	}
	return nil, false
}

func (r *DocumentCache) Invalidate(userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
