// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
)

// routeCacheTTL bounds staleness if an invalidation is ever lost.
const routeCacheTTL = 24 * time.Hour

// RedisRouteCache implements [RouteCache] on Redis.
//
// All failures degrade to a miss. The repository is the source of truth;
// a broken cache must never break route resolution.
type RedisRouteCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisRouteCache constructs a Redis backed route cache.
func NewRedisRouteCache(client *redis.Client, logger *slog.Logger) *RedisRouteCache {
	return &RedisRouteCache{client: client, logger: logger}
}

func (cache *RedisRouteCache) GetItemID(context context.Context, routePath string) (string, bool) {
	itemID, err := cache.client.Get(context, cache.key(routePath)).Result()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("route cache read failed", "route_path", routePath, "error", err)
		}
		return "", false
	}
	return itemID, true
}

func (cache *RedisRouteCache) SetItemID(context context.Context, routePath, itemID string) {
	if err := cache.client.Set(context, cache.key(routePath), itemID, routeCacheTTL).Err(); err != nil {
		cache.logger.Warn("route cache write failed", "route_path", routePath, "error", err)
	}
}

func (cache *RedisRouteCache) Invalidate(context context.Context, routePath string) {
	if err := cache.client.Del(context, cache.key(routePath)).Err(); err != nil {
		cache.logger.Warn("route cache invalidation failed", "route_path", routePath, "error", err)
	}
}

func (cache *RedisRouteCache) key(routePath string) string {
	return constants.RedisPrefixRoute + routePath
}
