package wire

// Visitor is implemented by the Encoder and Decoder types.
//
// Each command lists its fields once, in wire order, by calling the methods of
// a Visitor. When the visitor is an Encoder the values are read and appended
// to the output buffer; when it is a Decoder the values are parsed from the
// input and written through the pointers.
type Visitor interface {
	// Int visits a signed machine word (e.g. a file descriptor).
	Int(v *int)
	// Int64 visits a signed 64 bits integer.
	Int64(v *int64)
	// Uint64 visits an unsigned 64 bits integer (addresses, sizes, counts).
	Uint64(v *uint64)
	// Uint32 visits an unsigned 32 bits integer.
	Uint32(v *uint32)
	// Uint8 visits a single byte.
	Uint8(v *uint8)
	// Bits8 visits an 8 bits flag set. Bits outside of known are dropped
	// when decoding.
	Bits8(v *uint8, known uint8)
	// Bits32 visits a 32 bits flag set. Bits outside of known are dropped
	// when decoding.
	Bits32(v *uint32, known uint32)
	// Bounded visits a byte string of length *n stored in buf. The capacity
	// of the string is len(buf).
	Bounded(buf []byte, n *int)
}
