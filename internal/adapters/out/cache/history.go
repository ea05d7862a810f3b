package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

type historyCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *domain.ConsultationHistory]
}

// Canonical consultation lists

func (c *CacheAdapter) GetHistory(ctx context.Context, user domain.UserKey) (*domain.ConsultationHistory, bool) {
	c.historyCache.mu.RLock()
	defer c.historyCache.mu.RUnlock()

	entry, exists := c.historyCache.cache.Get(user.String())
	if !exists {
		c.logger.Debug("cache.history.get.miss", out.LogFields{
			"user": user.String(),
		})
		return nil, false
	}

	history := *entry
	return &history, true
}

// StoreHistory keeps its own copy of the record slice.
func (c *CacheAdapter) StoreHistory(ctx context.Context, history domain.ConsultationHistory) {
	c.historyCache.mu.Lock()
	defer c.historyCache.mu.Unlock()

	history.Records = append([]domain.ConsultationRecord(nil), history.Records...)
	c.historyCache.cache.Add(history.User.String(), &history)

	c.logger.Debug("cache.history.store", out.LogFields{
		"user":    history.User.String(),
		"records": len(history.Records),
	})
}

func (c *CacheAdapter) InvalidateHistory(ctx context.Context, user domain.UserKey) {
	c.historyCache.mu.Lock()
	defer c.historyCache.mu.Unlock()

	c.historyCache.cache.Remove(user.String())
}

func (c *CacheAdapter) InvalidateAllHistory(ctx context.Context) {
	c.historyCache.mu.Lock()
	defer c.historyCache.mu.Unlock()

	c.historyCache.cache.Purge()
}
