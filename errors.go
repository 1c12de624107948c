package flightcache

import (
	"errors"
	"fmt"
)

var (
	ErrNilFetch      = errors.New("flightcache: fetch is required")
	ErrInvalidTTL    = errors.New("flightcache: ttl must not be negative")
	ErrCodecRequired = errors.New("flightcache: codec is required when provider is set")
)

// PanicError is returned to every waiter of a flight whose fetch panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("flightcache: fetch panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ProviderError describes a failed holder operation. It never reaches Get
// callers; it is handed to Hooks and the Logger.
type ProviderError struct {
	Op  string // "set", "verify", "get", "del", "encode"
	Key string
	Err error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("provider %s %q: rejected", e.Op, e.Key)
	default:
		return fmt.Sprintf("provider %s %q: %v", e.Op, e.Key, e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }
