// Package infra 基础设施聚合层
//
// 提供统一的基础设施初始化和依赖注入，包括：
//   - Storage：持久化存储（MongoDB）
//   - GeoCache：地理解析缓存（Redis，可选）
package infra

import (
	"nassnews/internal/shared/cache"
	cacheredis "nassnews/internal/shared/cache/redis"
	"nassnews/internal/shared/storage"
	"nassnews/internal/shared/storage/mongostore"
)

// Infrastructure 基础设施聚合结构
type Infrastructure struct {
	// Storage 持久化存储（MongoDB）
	Storage storage.Store

	// GeoCache 地理解析缓存（Redis 或 NoOp）
	GeoCache cache.GeoCache
}

// New 初始化基础设施
//
// redisURL 为空时使用 NoOp 缓存，解析请求直连提供方。
func New(mongoURI, mongoDB, redisURL string) (*Infrastructure, error) {
	store, err := mongostore.NewStore(mongoURI, mongoDB)
	if err != nil {
		return nil, err
	}

	var geoCache cache.GeoCache = cache.NewNoOpCache()
	if redisURL != "" {
		rc, err := cacheredis.NewStoreFromURL(redisURL)
		if err != nil {
			store.Close()
			return nil, err
		}
		geoCache = rc
	}

	return &Infrastructure{Storage: store, GeoCache: geoCache}, nil
}

// Close 关闭所有基础设施连接
func (i *Infrastructure) Close() error {
	var lastErr error

	if i.Storage != nil {
		if err := i.Storage.Close(); err != nil {
			lastErr = err
		}
	}

	if i.GeoCache != nil {
		if err := i.GeoCache.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
