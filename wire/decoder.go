//go:build !checker

package wire

import "fmt"

// Decoder is a Visitor parsing fields from a buffer.
//
// The first error encountered is retained and all subsequent visits become
// no-ops, so a command can visit all its fields and check Err once at the end.
// The decoder only allocates when it reports an error. It is only available in
// harness builds.
type Decoder struct {
	buffer []byte
	err    error
}

// Reset sets the buffer to decode from and clears any previous error.
func (d *Decoder) Reset(buffer []byte) {
	d.buffer, d.err = buffer, nil
}

// Remaining returns the bytes that were not consumed by the decoder.
func (d *Decoder) Remaining() []byte { return d.buffer }

// Err returns the first error encountered while decoding.
func (d *Decoder) Err() error { return d.err }

func (d *Decoder) Int(v *int) {
	if d.err != nil {
		return
	}
	var x int64
	if x, d.buffer, d.err = readVarint(d.buffer); d.err != nil {
		return
	}
	if int64(int(x)) != x {
		d.err = Malformed("integer %d overflows a machine word", x)
		return
	}
	*v = int(x)
}

func (d *Decoder) Int64(v *int64) {
	if d.err == nil {
		*v, d.buffer, d.err = readVarint(d.buffer)
	}
}

func (d *Decoder) Uint64(v *uint64) {
	if d.err == nil {
		*v, d.buffer, d.err = readUvarint(d.buffer)
	}
}

func (d *Decoder) Uint32(v *uint32) {
	if d.err == nil {
		*v, d.buffer, d.err = readUvarint32(d.buffer)
	}
}

func (d *Decoder) Uint8(v *uint8) {
	if d.err == nil {
		*v, d.buffer, d.err = readU8(d.buffer)
	}
}

func (d *Decoder) Bits8(v *uint8, known uint8) {
	d.Uint8(v)
	*v &= known
}

func (d *Decoder) Bits32(v *uint32, known uint32) {
	d.Uint32(v)
	*v &= known
}

func (d *Decoder) Bounded(buf []byte, n *int) {
	if d.err != nil {
		return
	}
	var size uint64
	if size, d.buffer, d.err = readUvarint(d.buffer); d.err != nil {
		return
	}
	if size > uint64(len(buf)) {
		d.err = fmt.Errorf("%w: %w: string of %d bytes does not fit in %d", ErrMalformedInput, ErrCapacityExceeded, size, len(buf))
		return
	}
	if size > uint64(len(d.buffer)) {
		d.err = ShortBuffer("string", int(size), len(d.buffer))
		return
	}
	*n = copy(buf, d.buffer[:size])
	clear(buf[*n:])
	d.buffer = d.buffer[size:]
}

var _ Visitor = (*Decoder)(nil)
