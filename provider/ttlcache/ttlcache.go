package ttlcache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"

	pr "github.com/unkn0wn-root/flightcache/provider"
)

// Provider holds values in a jellydator/ttlcache with per-entry TTL.
// Expired entries are purged by ttlcache's janitor goroutine, which New
// starts and Close stops.
type Provider struct {
	c    *ttlcache.Cache[string, []byte]
	once sync.Once
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	// Capacity bounds the number of entries; 0 = unbounded.
	Capacity uint64
}

func New(cfg Config) *Provider {
	opts := []ttlcache.Option[string, []byte]{
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, []byte](cfg.Capacity))
	}
	c := ttlcache.New[string, []byte](opts...)
	go c.Start()
	return &Provider{c: c}
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := p.c.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	p.c.Set(key, value, ttl)
	return true, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Delete(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.once.Do(p.c.Stop)
	return nil
}
