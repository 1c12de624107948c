package codec

import (
	"errors"

	"google.golang.org/protobuf/proto"
)

var errNoConstructor = errors.New("codec: protobuf codec built without constructor; use NewProtobuf")

// Protobuf is a Codec for generated protobuf messages.
// Construct it with NewProtobuf; Decode needs a fresh message per call.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf returns a codec that allocates messages with ctor,
// e.g. func() *configpb.Snapshot { return &configpb.Snapshot{} }.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	if c.new == nil {
		var zero T
		return zero, errNoConstructor
	}
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
