package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pr "github.com/unkn0wn-root/flightcache/provider"
)

var ErrNilClient = errors.New("redis provider: nil client")

// Redis holds values in Redis. Each cache instance writes under its own
// random key, so this moves the value out of process memory without sharing
// it between processes.
type Redis struct {
	rdb         goredis.UniversalClient
	prefix      string
	maxBytes    int
	closeClient bool
}

var _ pr.Provider = (*Redis)(nil)

type Config struct {
	Client goredis.UniversalClient

	// Prefix is prepended to every key, e.g. "svc-a:" on a shared server.
	Prefix string

	// MaxValueBytes refuses (ok=false) frames larger than this so big values
	// stay on the heap instead of crossing the network on every Get. 0 = no limit.
	MaxValueBytes int

	CloseClient bool // set true only if this provider exclusively owns the client
}

func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{
		rdb:         cfg.Client,
		prefix:      cfg.Prefix,
		maxBytes:    cfg.MaxValueBytes,
		closeClient: cfg.CloseClient,
	}, nil
}

func (p *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := p.rdb.Get(ctx, p.prefix+key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	return b, true, nil
}

func (p *Redis) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if p.maxBytes > 0 && len(value) > p.maxBytes {
		return false, nil
	}
	if ttl < 0 {
		ttl = 0 // no expiry
	}
	if err := p.rdb.Set(ctx, p.prefix+key, value, ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (p *Redis) Del(ctx context.Context, key string) error {
	return p.rdb.Del(ctx, p.prefix+key).Err()
}

// Close releases the client if this provider owns it; later calls do nothing.
func (p *Redis) Close(context.Context) error {
	if !p.closeClient {
		return nil
	}
	if err := p.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}
