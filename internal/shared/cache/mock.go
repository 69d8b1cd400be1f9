// mock.go 提供用于测试的 NoOp 与内存实现
package cache

import (
	"context"
	"sync"
	"time"
)

// NoOpCache 空操作缓存：永不命中，写入即丢弃
type NoOpCache struct{}

// NewNoOpCache 创建 NoOpCache 实例
func NewNoOpCache() *NoOpCache { return &NoOpCache{} }

func (c *NoOpCache) GetResolvedName(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (c *NoOpCache) SetResolvedName(ctx context.Context, key, name string, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error { return nil }

var _ GeoCache = (*NoOpCache)(nil)

// MemCache 内存缓存，仅用于测试（忽略 TTL）
type MemCache struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemCache 创建内存缓存实例
func NewMemCache() *MemCache {
	return &MemCache{items: make(map[string]string)}
}

func (c *MemCache) GetResolvedName(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items[key], nil
}

func (c *MemCache) SetResolvedName(ctx context.Context, key, name string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = name
	return nil
}

func (c *MemCache) Close() error { return nil }

var _ GeoCache = (*MemCache)(nil)
