// Package flightcache implements a single-value, single-flight memoizing cache
// with a fixed time-to-live. It sits in front of one expensive data source
// (a remote configuration, a provider list, a token) and keeps the herd of
// concurrent readers from hitting that source more than once at a time.
//
// Behavior of Get:
//   - fresh (now < syncedAt+TTL): the held value is returned, fetch is not called.
//   - stale, fetch in flight: the caller joins it and observes the same outcome.
//   - stale, nothing in flight: fetch is started; success commits value and
//     syncedAt, failure leaves both untouched and returns fetch's error as is.
//
// Invalidate clears syncedAt so the next Get refetches. It does not cancel a
// fetch that is already running; that fetch still commits when it settles.
//
// Components:
//   - FetchFunc[V]: the caller's data source.
//   - Provider + Codec[V] (optional): hold the encoded value outside the Go heap
//     (Ristretto, BigCache, ttlcache, Redis). Without them the value lives on the heap.
//   - Hooks / Logger: observability adapters (slog, zap, logrus, Prometheus).
//
// Usage:
//
//	cfg, _ := flightcache.New[Config](loadConfig, flightcache.Options[Config]{
//	    TTL: 30 * time.Second,
//	})
//	c, err := cfg.Get(ctx) // at most one loadConfig call in flight
package flightcache
