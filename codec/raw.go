package codec

// Bytes is an identity codec for []byte values. Useful when the fetch already
// returns the serialized form (a config blob, a token) and only framing is needed.
// The held bytes are returned without copying; do not mutate them.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go strings. Assumes UTF-8, validates nothing.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
