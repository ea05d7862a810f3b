package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/utils"
)

type postalCodeEntry struct {
	address   domain.PostalAddress
	timestamp time.Time
}

type postalCodeCache struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, *postalCodeEntry]
	ttl   time.Duration
}

// Postal code lookups

func (c *CacheAdapter) GetPostalAddress(ctx context.Context, cep string) (*domain.PostalAddress, bool) {
	if c.postalCodeCache == nil {
		return nil, false
	}

	c.postalCodeCache.mu.RLock()
	defer c.postalCodeCache.mu.RUnlock()

	key := utils.OnlyDigits(cep)
	entry, exists := c.postalCodeCache.cache.Peek(key)
	if !exists || time.Since(entry.timestamp) > c.postalCodeCache.ttl {
		c.logger.Debug("cache.postal_code.get.miss", out.LogFields{
			"cep":     key,
			"expired": exists,
		})
		return nil, false
	}

	address := entry.address
	return &address, true
}

func (c *CacheAdapter) StorePostalAddress(ctx context.Context, address domain.PostalAddress) {
	if c.postalCodeCache == nil {
		return
	}

	c.postalCodeCache.mu.Lock()
	defer c.postalCodeCache.mu.Unlock()

	c.postalCodeCache.cache.Add(utils.OnlyDigits(address.Cep), &postalCodeEntry{
		address:   address,
		timestamp: time.Now(),
	})
}
