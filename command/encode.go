//go:build !harness

package command

import "github.com/stealthrocket/kmc/wire"

// Encode appends the wire representation of c to buf: the command identifier
// followed by its fields.
func Encode(buf []byte, c Command) []byte {
	var e wire.Encoder
	e.Reset(wire.AppendID(buf, uint(c.CommandID())))
	c.Fields(&e)
	return e.Bytes()
}

// Marshal returns the wire representation of c in a new byte slice.
func Marshal(c Command) []byte { return Encode(nil, c) }
