// Package transcript implements the file format used to store sequences of
// encoded commands.
//
// A transcript starts with a header identifying the format and the session
// that produced it, followed by record batches:
//
//	header: "KMCT" | version (u16) | compression (u8) | session (16 bytes)
//	batch:  size (u32) | count (u32) | compression (u8) | payload
//
// The size of a batch counts the bytes following the size field. Once
// decompressed, the payload is a sequence of count records, each prefixed by
// its length as a u32. Integers are little-endian.
package transcript

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/stealthrocket/kmc/wire"
)

const (
	magic = "KMCT"

	// Version is the version of the transcript format written by this
	// package.
	Version = 1

	headerSize = len(magic) + 2 + 1 + 16
)

// Header is the header of a transcript.
type Header struct {
	Version     uint16      `json:"version" yaml:"version"`
	Compression Compression `json:"compression" yaml:"compression"`
	Session     uuid.UUID   `json:"session" yaml:"session"`
}

// NewHeader returns the header of a new session using the given compression.
func NewHeader(compression Compression) Header {
	return Header{
		Version:     Version,
		Compression: compression,
		Session:     uuid.New(),
	}
}

func (h *Header) append(b []byte) []byte {
	b = append(b, magic...)
	b = binary.LittleEndian.AppendUint16(b, h.Version)
	b = append(b, byte(h.Compression))
	return append(b, h.Session[:]...)
}

func readHeader(r io.Reader) (h Header, err error) {
	var b [headerSize]byte
	if n, err := io.ReadFull(r, b[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = wire.ShortBuffer("transcript header", headerSize, n)
		}
		return h, fmt.Errorf("reading transcript header: %w", err)
	}
	if string(b[:4]) != magic {
		return h, wire.Malformed("not a transcript: invalid magic number %q", b[:4])
	}
	h.Version = binary.LittleEndian.Uint16(b[4:])
	if h.Version != Version {
		return h, wire.Malformed("unsupported transcript version %d", h.Version)
	}
	h.Compression = Compression(b[6])
	copy(h.Session[:], b[7:])
	return h, nil
}
