// Copyright (c) 2026 Raytha. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/constants"
)

// RedisTokenStore implements [TokenStore] on redis. Expiry is delegated
// to redis TTLs; expired tokens simply stop resolving.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore constructs a redis backed refresh token store.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (store *RedisTokenStore) Save(context context.Context, token, accountID string, timeToLive time.Duration) error {
	if err := store.client.Set(context, tokenKey(token), accountID, timeToLive).Err(); err != nil {
		return fmt.Errorf("auth: save refresh token: %w", err)
	}
	return nil
}

func (store *RedisTokenStore) Resolve(context context.Context, token string) (string, error) {
	accountID, err := store.client.Get(context, tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Refresh token")
		}
		return "", fmt.Errorf("auth: resolve refresh token: %w", err)
	}
	return accountID, nil
}

func (store *RedisTokenStore) Delete(context context.Context, token string) error {
	if err := store.client.Del(context, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("auth: delete refresh token: %w", err)
	}
	return nil
}

func tokenKey(token string) string {
	return constants.RedisPrefixRefreshToken + token
}
