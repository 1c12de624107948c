package flightcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/flightcache/codec"
	pr "github.com/unkn0wn-root/flightcache/provider"
)

// FetchFunc is the authoritative data source behind a cache.
// It receives the context of the caller that started the flight with
// cancellation stripped, so it must apply its own deadline if it needs one.
type FetchFunc[V any] func(ctx context.Context) (V, error)

type SetCostFunc func(storageKey string, raw []byte) int64

// Cache is a single-value memoizing cache with single-flight refresh.
// All methods are safe for concurrent use.
type Cache[V any] interface {
	// Get returns the held value while it is fresh, otherwise refreshes it.
	// Concurrent refreshes collapse into one fetch. Errors from fetch are
	// returned unchanged. ctx bounds only this caller's wait.
	Get(ctx context.Context) (V, error)

	// Invalidate marks the held value stale. Never blocks.
	Invalidate()

	// SyncedAt reports when the held value was fetched; false after
	// Invalidate or before the first successful fetch.
	SyncedAt() (time.Time, bool)

	Stats() Stats

	// Close releases the Provider if the cache owns it. Get keeps working.
	Close(context.Context) error
}

// Options tune the behavior of the cache.
// Nothing is required; zero values fall back to defaults.
type Options[V any] struct {
	TTL       time.Duration    // validity window after a successful fetch; 0 => 10s
	Namespace string           // label for storage keys and hooks; "" => "default"
	Clock     func() time.Time // nil => time.Now

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// Provider, when set, holds the encoded value instead of the Go heap.
	// Codec is required with it.
	Provider       pr.Provider
	Codec          c.Codec[V]
	CloseProvider  bool        // Close also closes Provider
	ComputeSetCost SetCostFunc // default 1
}

// New builds a cache around fetch. Nothing is fetched until the first Get.
func New[V any](fetch FetchFunc[V], opts Options[V]) (Cache[V], error) {
	return newCache[V](fetch, opts)
}
