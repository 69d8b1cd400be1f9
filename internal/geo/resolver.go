package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nassnews/internal/shared/cache"
	"nassnews/internal/shared/model"
	"nassnews/internal/shared/storage"
	"nassnews/pkg/logging"
)

// ReverseGeocoder 坐标反查地名
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// IPLocator IP 定位
type IPLocator interface {
	Lookup(ctx context.Context, ip string) (string, error)
}

// Resolver 城市解析器
//
// 解析约定：提供方故障、超时或查无地名时返回 (nil, nil)——
// 位置补全是尽力而为的增强，绝不因此让请求失败。
// 调用方必须先判空再使用。存储层错误照常返回。
type Resolver struct {
	store    storage.CityStore
	geocoder ReverseGeocoder
	ipLoc    IPLocator
	cache    cache.GeoCache
	cacheTTL time.Duration
	log      *logging.Logger
}

// NewResolver 创建城市解析器
func NewResolver(store storage.CityStore, geocoder ReverseGeocoder, ipLoc IPLocator, geoCache cache.GeoCache, cacheTTL time.Duration, log *logging.Logger) *Resolver {
	if geoCache == nil {
		geoCache = cache.NewNoOpCache()
	}
	if log == nil {
		log = logging.Default("geo")
	}
	return &Resolver{
		store:    store,
		geocoder: geocoder,
		ipLoc:    ipLoc,
		cache:    geoCache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// ResolveByCoordinates 按坐标解析城市（主路径）
//
// 地名解析成功后统一经 getOrCreate 入库去重，
// 新建城市时记录坐标。未解析出城市返回 (nil, nil)。
func (r *Resolver) ResolveByCoordinates(ctx context.Context, lat, lon float64) (*model.City, error) {
	name := r.cachedName(ctx, cache.ReverseKey(lat, lon))
	if name == "" {
		name = r.callProvider(ctx, "nominatim", cache.ReverseKey(lat, lon), func(ctx context.Context) (string, error) {
			return r.geocoder.Reverse(ctx, lat, lon)
		})
		if name == "" {
			return nil, nil
		}
	}
	return r.getOrCreate(ctx, name, model.FormatCoordinates(lat, lon))
}

// ResolveByIP 按 IP 解析城市（仅作为坐标解析的回退）
func (r *Resolver) ResolveByIP(ctx context.Context, ip string) (*model.City, error) {
	name := r.cachedName(ctx, cache.IPKey(ip))
	if name == "" {
		name = r.callProvider(ctx, "ipstack", cache.IPKey(ip), func(ctx context.Context) (string, error) {
			return r.ipLoc.Lookup(ctx, ip)
		})
		if name == "" {
			return nil, nil
		}
	}
	return r.getOrCreate(ctx, name, "")
}

// GetOrCreateByName 按名称取城市，不存在则创建
//
// 唯一的去重卡口：所有解析路径都经过这里，同一名称在顺序
// 调用下永远得到同一个城市 ID。
func (r *Resolver) GetOrCreateByName(ctx context.Context, name string) (*model.City, error) {
	return r.getOrCreate(ctx, name, "")
}

func (r *Resolver) getOrCreate(ctx context.Context, name, coordinates string) (*model.City, error) {
	existing, err := r.store.GetCityByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup city by name: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	city := &model.City{Name: name, Coordinates: coordinates}
	err = r.store.CreateCity(ctx, city)
	if err == nil {
		r.log.Info("Created city", "city_id", city.ID, "name", name)
		return city, nil
	}
	if !errors.Is(err, storage.ErrDuplicate) {
		return nil, fmt.Errorf("create city: %w", err)
	}

	// 并发创建时输给了唯一索引，改读胜者
	winner, err := r.store.GetCityByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("lookup city after duplicate: %w", err)
	}
	if winner == nil {
		return nil, storage.ErrConflict
	}
	return winner, nil
}

// Validate 按 ID 校验城市引用，实体不存在时返回 storage.ErrNotFound
//
// 所有持久化城市引用的组件（用户关联城市、收藏城市、活动、
// 新闻）都在写入前调用此方法拒绝悬空引用。
func (r *Resolver) Validate(ctx context.Context, cityID string) (*model.City, error) {
	city, err := r.store.GetCity(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("lookup city: %w", err)
	}
	if city == nil {
		return nil, fmt.Errorf("city %s: %w", cityID, storage.ErrNotFound)
	}
	return city, nil
}

// cachedName 读缓存，缓存故障降级为未命中
func (r *Resolver) cachedName(ctx context.Context, key string) string {
	name, err := r.cache.GetResolvedName(ctx, key)
	if err != nil {
		cacheHitsTotal.WithLabelValues("error").Inc()
		r.log.WithError(err).Debug("Geo cache read failed")
		return ""
	}
	if name != "" {
		cacheHitsTotal.WithLabelValues("hit").Inc()
		return name
	}
	cacheHitsTotal.WithLabelValues("miss").Inc()
	return ""
}

// callProvider 调用提供方并记录指标/日志，故障与无结果统一返回 ""
func (r *Resolver) callProvider(ctx context.Context, provider, cacheKey string, call func(context.Context) (string, error)) string {
	start := time.Now()
	name, err := call(ctx)
	elapsed := time.Since(start)
	providerDuration.WithLabelValues(provider).Observe(elapsed.Seconds())

	switch {
	case err != nil:
		providerRequestsTotal.WithLabelValues(provider, "error").Inc()
		r.log.ProviderCallLog(provider, "error", elapsed, err)
		return ""
	case name == "":
		providerRequestsTotal.WithLabelValues(provider, "empty").Inc()
		r.log.ProviderCallLog(provider, "empty", elapsed, nil)
		return ""
	default:
		providerRequestsTotal.WithLabelValues(provider, "ok").Inc()
		r.log.ProviderCallLog(provider, "ok", elapsed, nil)
		if err := r.cache.SetResolvedName(ctx, cacheKey, name, r.cacheTTL); err != nil {
			r.log.WithError(err).Debug("Geo cache write failed")
		}
		return name
	}
}
