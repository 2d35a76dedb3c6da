//go:build !harness

package wire

// Encoder is a Visitor appending the visited fields to a buffer.
//
// Encoding never fails. The encoder is only available in checker builds.
type Encoder struct {
	buffer []byte
}

// Reset sets the buffer that the encoder appends to.
func (e *Encoder) Reset(buffer []byte) { e.buffer = buffer }

// Bytes returns the buffer with all the fields encoded so far.
func (e *Encoder) Bytes() []byte { return e.buffer }

func (e *Encoder) Int(v *int) { e.buffer = appendVarint(e.buffer, int64(*v)) }

func (e *Encoder) Int64(v *int64) { e.buffer = appendVarint(e.buffer, *v) }

func (e *Encoder) Uint64(v *uint64) { e.buffer = appendUvarint(e.buffer, *v) }

func (e *Encoder) Uint32(v *uint32) { e.buffer = appendUvarint(e.buffer, uint64(*v)) }

func (e *Encoder) Uint8(v *uint8) { e.buffer = appendU8(e.buffer, *v) }

func (e *Encoder) Bits8(v *uint8, known uint8) { e.buffer = appendU8(e.buffer, *v) }

func (e *Encoder) Bits32(v *uint32, known uint32) {
	e.buffer = appendUvarint(e.buffer, uint64(*v))
}

func (e *Encoder) Bounded(buf []byte, n *int) {
	e.buffer = appendUvarint(e.buffer, uint64(*n))
	e.buffer = append(e.buffer, buf[:*n]...)
}

var _ Visitor = (*Encoder)(nil)
