// Package provider defines the byte store a cache may hold its value in.
//
// Implementations MUST be byte-for-byte transparent: Get returns exactly the
// []byte last passed to Set for the key (no added metadata, no re-encoding).
// Compression and similar transforms must be fully reversed on Get.
//
// Keys under the "flight:" prefix belong to flightcache. Foreign writes there
// fail frame validation and are deleted on read.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// IO/remote errors return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 means no expiry). May ignore
	// cost. Returns ok=false when the store refused the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
