package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/yukikurage/join-board-api/internal/constants"
)

// TokenCache remembers which user a token key belongs to.
type TokenCache interface {
	StoreUserID(ctx context.Context, key string, userID uint64) error
	LookupUserID(ctx context.Context, key string) (uint64, bool)
	Forget(ctx context.Context, key string) error
}

// RedisTokenCache keeps token lookups in redis for a limited time.
type RedisTokenCache struct {
	cache *Client
	ttl   time.Duration
}

// Ensure RedisTokenCache implements TokenCache
var _ TokenCache = (*RedisTokenCache)(nil)

func NewTokenCache(cache *Client, ttl time.Duration) *RedisTokenCache {
	return &RedisTokenCache{cache: cache, ttl: ttl}
}

func (s *RedisTokenCache) StoreUserID(ctx context.Context, key string, userID uint64) error {
	return s.cache.Set(ctx, constants.TokenCacheKeyPrefix+key, []byte(strconv.FormatUint(userID, 10)), s.ttl)
}

// LookupUserID reports a cache hit only for a well-formed entry.
func (s *RedisTokenCache) LookupUserID(ctx context.Context, key string) (uint64, bool) {
	data, err := s.cache.Get(ctx, constants.TokenCacheKeyPrefix+key)
	if err != nil || data == nil {
		return 0, false
	}
	userID, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (s *RedisTokenCache) Forget(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, constants.TokenCacheKeyPrefix+key)
}
