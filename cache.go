package tdsclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenCache is the opt-in Redis layer in front of the acquisition path. The
// client never parses token internals, so entries age out purely by TTL; a
// cache failure degrades to the network path and never fails the call.
type tokenCache struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func newTokenCache(cfg CacheConfig, rdb *redis.Client) *tokenCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &tokenCache{
		rdb:    rdb,
		prefix: cfg.RedisPrefix,
		ttl:    cfg.TTL,
	}
}

// Key shape: {prefix}:token:{client_id}:{min_alive}:{discovery_key}. The
// discovery key participates so an explicit-key caller never receives a token
// fetched through a different backend.
func (tc *tokenCache) key(req TokenRequest) string {
	return fmt.Sprintf("%s:token:%s:%d:%s", tc.prefix, req.ClientID, req.MinimumAliveSecs, req.DiscoveryKey)
}

func (tc *tokenCache) get(ctx context.Context, req TokenRequest) (string, bool) {
	if tc == nil {
		return "", false
	}

	token, err := tc.rdb.Get(ctx, tc.key(req)).Result()
	if err != nil {
		return "", false
	}
	return token, true
}

func (tc *tokenCache) store(ctx context.Context, req TokenRequest, token string) error {
	if tc == nil {
		return nil
	}
	if req.MinimumAliveSecs == 0 {
		// The caller accepts tokens about to expire; such a token is not
		// worth holding for anyone else.
		return nil
	}

	ttl := tc.ttl
	if alive := time.Duration(req.MinimumAliveSecs) * time.Second; alive < ttl {
		ttl = alive
	}
	if ttl <= 0 {
		return nil
	}

	err := tc.rdb.Set(ctx, tc.key(req), token, ttl).Err()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
