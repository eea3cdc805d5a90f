package cache

import (
	"context"
	"fmt"

	"diet-planner/internal/infrastructure/config"
	"diet-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 結果快取
// Get 未命中時回傳 common.ErrCacheMiss
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Stats() map[string]interface{}
	Close() error
}

// New 依設定建立快取，停用時回傳 nil
func New(ctx context.Context, cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendRedis:
		s, err := NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.CacheBackendMemory, "":
		return NewManager(cfg), nil
	default:
		common.LogError("未知的快取後端", zap.String("backend", cfg.Backend))
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
