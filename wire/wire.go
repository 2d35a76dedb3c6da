// Package wire contains the primitives used to frame commands exchanged
// between the checker and the harness.
//
// A command on the wire is a native-width little-endian identifier followed by
// the command fields in declaration order. Fields use the same encoding as the
// postcard serialization format so both parties can be built from different
// toolchains:
//
//   - signed integers are zigzag LEB128 varints
//   - unsigned integers wider than a byte are LEB128 varints
//   - bytes are written as-is
//   - byte strings are a varint length followed by the raw bytes
//
// There is no outer framing, the transport is responsible for delimiting
// messages when it needs to.
package wire

import (
	"encoding/binary"
	"math/bits"
)

// IDSize is the size of a command identifier on the wire, which is the size
// of a machine word.
const IDSize = bits.UintSize / 8

// AppendID appends the little-endian representation of id to b.
func AppendID(b []byte, id uint) []byte {
	if IDSize == 8 {
		return binary.LittleEndian.AppendUint64(b, uint64(id))
	}
	return binary.LittleEndian.AppendUint32(b, uint32(id))
}

// ReadID reads the identifier at the head of b, returning it along with the
// remaining bytes.
func ReadID(b []byte) (uint, []byte, error) {
	if len(b) < IDSize {
		return 0, b, ShortBuffer("command id", IDSize, len(b))
	}
	if IDSize == 8 {
		return uint(binary.LittleEndian.Uint64(b)), b[8:], nil
	}
	return uint(binary.LittleEndian.Uint32(b)), b[4:], nil
}

func appendUvarint(b []byte, v uint64) []byte {
	return binary.AppendUvarint(b, v)
}

func readUvarint(b []byte) (uint64, []byte, error) {
	v, n := binary.Uvarint(b)
	switch {
	case n == 0:
		return 0, b, errShortBuffer
	case n < 0:
		return 0, b, Malformed("varint overflows 64 bits")
	}
	return v, b[n:], nil
}

func appendVarint(b []byte, v int64) []byte {
	return binary.AppendVarint(b, v)
}

func readVarint(b []byte) (int64, []byte, error) {
	v, n := binary.Varint(b)
	switch {
	case n == 0:
		return 0, b, errShortBuffer
	case n < 0:
		return 0, b, Malformed("varint overflows 64 bits")
	}
	return v, b[n:], nil
}

// maxVarintLen32 is the maximum length of a 32 bits varint. The last byte may
// only carry the 4 remaining bits, longer or overflowing encodings are
// rejected like the postcard decoder does.
const maxVarintLen32 = 5

func readUvarint32(b []byte) (uint32, []byte, error) {
	var v uint32
	for i := 0; i < maxVarintLen32; i++ {
		if i == len(b) {
			return 0, b, errShortBuffer
		}
		c := b[i]
		if i == maxVarintLen32-1 && c > 0x0F {
			return 0, b, Malformed("varint overflows 32 bits")
		}
		v |= uint32(c&0x7F) << (7 * i)
		if c < 0x80 {
			return v, b[i+1:], nil
		}
	}
	return 0, b, Malformed("varint overflows 32 bits")
}

func appendU8(b []byte, v uint8) []byte {
	return append(b, v)
}

func readU8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, b, errShortBuffer
	}
	return b[0], b[1:], nil
}
