package catalog

import (
	"context"
	"sync"
	"time"

	"techquiz-core/models"
)

// PageCache stores catalog pages for a short while so re-requesting the
// same page does not hit the backend again.
type PageCache interface {
	Get(ctx context.Context, key string) (*models.QuizPage, bool)
	Set(ctx context.Context, key string, page *models.QuizPage, ttl time.Duration)
}

type memoryEntry struct {
	page      models.QuizPage
	expiresAt time.Time
}

// MemoryCache is an in-process PageCache with per-entry TTL.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.QuizPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	page := entry.page
	return &page, true
}

func (c *MemoryCache) Set(_ context.Context, key string, page *models.QuizPage, ttl time.Duration) {
	if page == nil || ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{page: *page, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
