package flightcache

import "sync/atomic"

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits          uint64 // Get served from the held value
	Fetches       uint64 // fetch invocations
	Joins         uint64 // Get calls that attached to a running fetch
	Failures      uint64 // fetch invocations that returned an error or panicked
	Invalidations uint64
	SelfHeals     uint64 // held entries dropped on read (provider-backed only)
}

type counters struct {
	hits          atomic.Uint64
	fetches       atomic.Uint64
	joins         atomic.Uint64
	failures      atomic.Uint64
	invalidations atomic.Uint64
	selfHeals     atomic.Uint64
}

func (s *counters) snapshot() Stats {
	return Stats{
		Hits:          s.hits.Load(),
		Fetches:       s.fetches.Load(),
		Joins:         s.joins.Load(),
		Failures:      s.failures.Load(),
		Invalidations: s.invalidations.Load(),
		SelfHeals:     s.selfHeals.Load(),
	}
}
