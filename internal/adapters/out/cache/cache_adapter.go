package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Inovare-Grupo-8/portal-assistencia/internal/config"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/domain"
	"github.com/Inovare-Grupo-8/portal-assistencia/internal/core/ports/out"
)

// CacheAdapter keeps per-user session state and lookup results in bounded LRUs.
// Session state is always kept; CACHE_ENABLED only switches the lookup cache.
type CacheAdapter struct {
	historyCache     *historyCache
	profileFormCache *profileFormCache
	postalCodeCache  *postalCodeCache
	logger           out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	logger = logger.WithModule("CacheAdapter")

	lruHistoryCache, err := lru.New[string, *domain.ConsultationHistory](cfg.Cache.HistorySize)
	if err != nil {
		logger.Error("cache.history.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.HistorySize,
		})
		return nil, err
	}

	lruProfileFormCache, err := lru.New[string, *domain.ProfileSnapshot](cfg.Cache.ProfileSize)
	if err != nil {
		logger.Error("cache.profile_form.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.ProfileSize,
		})
		return nil, err
	}

	adapter := &CacheAdapter{
		historyCache:     &historyCache{cache: lruHistoryCache},
		profileFormCache: &profileFormCache{cache: lruProfileFormCache},
		logger:           logger,
	}

	if !cfg.Cache.Enabled {
		logger.Info("cache.postal_code.disabled", out.LogFields{
			"message": "Postal code lookups are not cached",
		})
		return adapter, nil
	}

	lruPostalCodeCache, err := lru.New[string, *postalCodeEntry](cfg.Cache.CepSize)
	if err != nil {
		logger.Error("cache.postal_code.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.CepSize,
		})
		return nil, err
	}
	adapter.postalCodeCache = &postalCodeCache{
		cache: lruPostalCodeCache,
		ttl:   cfg.Cache.CepTTL,
	}

	return adapter, nil
}
