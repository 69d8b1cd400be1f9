// Package cache 缓存层抽象接口
//
// 提供地理解析结果的短期缓存能力，当前由 Redis 实现。
// 缓存只保存提供方返回的城市名，不缓存任何文档。
package cache

import (
	"context"
	"fmt"
	"time"
)

// 缓存键前缀
const (
	KeyGeoReverse = "geo:rev:"
	KeyGeoIP      = "geo:ip:"
)

// GeoCache 地理解析缓存接口
//
// 未命中返回 ("", nil)；缓存故障由调用方降级为未命中，
// 绝不因缓存不可用而失败一次解析请求。
type GeoCache interface {
	GetResolvedName(ctx context.Context, key string) (string, error)
	SetResolvedName(ctx context.Context, key string, name string, ttl time.Duration) error
	Close() error
}

// ReverseKey 坐标反查缓存键
// 坐标保留四位小数（约 11m 精度），相邻请求命中同一键
func ReverseKey(lat, lon float64) string {
	return fmt.Sprintf("%s%.4f,%.4f", KeyGeoReverse, lat, lon)
}

// IPKey IP 定位缓存键
func IPKey(ip string) string {
	return KeyGeoIP + ip
}
