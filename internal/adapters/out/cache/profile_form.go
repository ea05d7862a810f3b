package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
)

type profileFormCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *domain.ProfileSnapshot]
}

// Profile form sessions

func (c *CacheAdapter) GetProfileForm(ctx context.Context, user domain.UserKey) (*domain.ProfileSnapshot, bool) {
	c.profileFormCache.mu.RLock()
	defer c.profileFormCache.mu.RUnlock()

	entry, exists := c.profileFormCache.cache.Get(user.String())
	if !exists {
		return nil, false
	}

	form := entry.Clone()
	return &form, true
}

func (c *CacheAdapter) StoreProfileForm(ctx context.Context, user domain.UserKey, form domain.ProfileSnapshot) {
	c.profileFormCache.mu.Lock()
	defer c.profileFormCache.mu.Unlock()

	stored := form.Clone()
	c.profileFormCache.cache.Add(user.String(), &stored)
}

func (c *CacheAdapter) InvalidateProfileForm(ctx context.Context, user domain.UserKey) {
	c.profileFormCache.mu.Lock()
	defer c.profileFormCache.mu.Unlock()

	c.profileFormCache.cache.Remove(user.String())
}
