// Package redis 地理解析缓存操作
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"nassnews/internal/shared/cache"
)

// GetResolvedName 读取缓存的城市名，未命中返回 ("", nil)
func (s *Store) GetResolvedName(ctx context.Context, key string) (string, error) {
	name, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// SetResolvedName 缓存提供方返回的城市名
func (s *Store) SetResolvedName(ctx context.Context, key, name string, ttl time.Duration) error {
	return s.client.Set(ctx, key, name, ttl).Err()
}

// 确保 Store 实现了 GeoCache 接口
var _ cache.GeoCache = (*Store)(nil)
