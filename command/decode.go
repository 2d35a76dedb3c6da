//go:build !checker

package command

import (
	"fmt"

	"github.com/stealthrocket/kmc/wire"
)

// PeekID reads the command identifier at the head of b without decoding the
// command, and returns it along with the bytes that follow.
func PeekID(b []byte) (ID, []byte, error) {
	id, rest, err := wire.ReadID(b)
	return ID(id), rest, err
}

// Decode decodes a command of type T from the head of b and returns it along
// with the unconsumed bytes, which may hold more commands.
//
// The identifier at the head of b must be the one of T.
func Decode[T any, P interface {
	*T
	Command
}](b []byte) (T, []byte, error) {
	var c T
	rest, err := DecodeInto(b, P(&c))
	if err != nil {
		var zero T
		return zero, b, err
	}
	return c, rest, nil
}

// DecodeInto is like Decode but writes the fields to c. The content of c is
// undefined when an error is returned.
func DecodeInto(b []byte, c Command) ([]byte, error) {
	id, rest, err := PeekID(b)
	if err != nil {
		return b, err
	}
	if want := c.CommandID(); id != want {
		return b, wire.Malformed("command id %d where %s (%d) was expected", uint(id), want, uint(want))
	}
	var d wire.Decoder
	d.Reset(rest)
	c.Fields(&d)
	if err := d.Err(); err != nil {
		return b, fmt.Errorf("decoding %s: %w", NameOf(c), err)
	}
	return d.Remaining(), nil
}

// DecodeAny decodes the command at the head of b, selecting its type from the
// identifier. When command types share an identifier the primary one is used,
// or the alternate one if alternate is true.
//
// Unlike Decode, the function allocates the returned command.
func DecodeAny(b []byte, alternate bool) (Command, []byte, error) {
	id, _, err := PeekID(b)
	if err != nil {
		return nil, b, err
	}
	descriptors := ByID(id)
	if len(descriptors) == 0 {
		return nil, b, wire.Malformed("unknown command id %d", uint(id))
	}
	d := descriptors[0]
	if alternate && len(descriptors) > 1 {
		d = descriptors[1]
	}
	c := d.New()
	rest, err := DecodeInto(b, c)
	if err != nil {
		return nil, b, err
	}
	return c, rest, nil
}
