// Package redis provides fetch functions that read a single Redis key.
//
// Typical use is a remote configuration or feature-flag blob that many
// goroutines read and that should hit Redis at most once per TTL:
//
//	cfg, _ := flightcache.New(redis.Key(rdb, "app:config", codec.JSON[Config]{}),
//	    flightcache.Options[Config]{TTL: 30 * time.Second})
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/flightcache"
	c "github.com/unkn0wn-root/flightcache/codec"
)

var ErrKeyNotFound = errors.New("redis source: key not found")

// Key returns a fetch function that GETs key and decodes it with codec.
// A missing key yields an error wrapping ErrKeyNotFound, so the cache keeps
// whatever it held before and retries on the next Get.
func Key[V any](client goredis.UniversalClient, key string, codec c.Codec[V]) flightcache.FetchFunc[V] {
	return func(ctx context.Context) (V, error) {
		var zero V
		b, err := client.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return zero, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
		}
		if err != nil {
			return zero, fmt.Errorf("redis source: get %q: %w", key, err)
		}
		v, err := codec.Decode(b)
		if err != nil {
			return zero, fmt.Errorf("redis source: decode %q: %w", key, err)
		}
		return v, nil
	}
}

// Hash returns a fetch function that reads the whole hash at key (HGETALL).
// An empty or missing hash yields ErrKeyNotFound.
func Hash(client goredis.UniversalClient, key string) flightcache.FetchFunc[map[string]string] {
	return func(ctx context.Context) (map[string]string, error) {
		m, err := client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis source: hgetall %q: %w", key, err)
		}
		if len(m) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
		}
		return m, nil
	}
}
