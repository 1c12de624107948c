// Package codec converts cached values to and from the bytes a Provider holds.
//
// Codecs are only used when a cache is built with a Provider: each committed
// value is encoded once per fetch, wrapped in the cache's frame and written to
// the provider, then decoded on every Get that is served from it. A value that
// fails to decode is dropped and refetched.
package codec

// Codec encodes/decodes values V to []byte for storage.
// Implementations must be safe for concurrent use.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
