package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/cache"
	"github.com/bookcircle/bookcircle-server/internal/config"
	"github.com/bookcircle/bookcircle-server/internal/logger"
	"github.com/bookcircle/bookcircle-server/internal/store/sqlite"
)

// databaseFile is the SQLite file name inside the data directory.
const databaseFile = "bookcircle.db"

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Data.BasePath, databaseFile)
	st, err := sqlite.Open(dbPath, log.Component("store"))
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: st}, nil
}

// ScoreCacheHandle wraps the score cache with shutdown capability.
type ScoreCacheHandle struct {
	cache.Cache
}

// Shutdown implements do.Shutdownable.
func (h *ScoreCacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideScoreCache provides the recommendation score cache, or a no-op
// cache when caching is disabled.
func ProvideScoreCache(i do.Injector) (*ScoreCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Recommend.CacheEnabled {
		log.Info("Score cache disabled")
		return &ScoreCacheHandle{Cache: cache.Noop{}}, nil
	}

	c, err := cache.NewBadger(cfg.Recommend.CacheTTL, log.Component("cache"))
	if err != nil {
		return nil, err
	}

	log.Info("Score cache initialized", "ttl", cfg.Recommend.CacheTTL)

	return &ScoreCacheHandle{Cache: c}, nil
}
