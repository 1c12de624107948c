package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version   byte = 1
	kindValue byte = 1

	// magic(4) | ver(1) | kind(1) | gen(8) | syncedAt(8) | vlen(4)
	headerLen = 4 + 1 + 1 + 8 + 8 + 4
)

var (
	ErrCorrupt = errors.New("flightcache: corrupt entry")
	magic4     = [...]byte{'F', 'L', 'C', 'H'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Encode frames a held value:
//
//	magic(4) | ver(1) | kind(1) | gen(u64 be) | syncedAt(i64 unix nanos, be) | vlen(u32 be) | payload(vlen)
func Encode(gen uint64, syncedAtNanos int64, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(headerLen + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindValue)

	var u8 [8]byte
	var u4 [4]byte

	binary.BigEndian.PutUint64(u8[:], gen)
	buf.Write(u8[:])

	binary.BigEndian.PutUint64(u8[:], uint64(syncedAtNanos))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

// Decode validates a frame produced by Encode. The payload aliases b.
// Trailing bytes after the payload are treated as corruption.
func Decode(b []byte) (gen uint64, syncedAtNanos int64, payload []byte, err error) {
	if len(b) < headerLen || !hasMagic(b) || b[4] != version || b[5] != kindValue {
		return 0, 0, nil, ErrCorrupt
	}

	off := 6
	gen = binary.BigEndian.Uint64(b[off : off+8])
	off += 8
	syncedAtNanos = int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen != len(b)-off {
		return 0, 0, nil, ErrCorrupt
	}

	return gen, syncedAtNanos, b[off:], nil
}
