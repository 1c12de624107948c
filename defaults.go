package flightcache

import "time"

const (
	DefaultTTL       = 10 * time.Second
	DefaultNamespace = "default"
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
