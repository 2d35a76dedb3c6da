//go:build !checker

package transcript

import (
	"github.com/stealthrocket/kmc/command"
	"github.com/stealthrocket/kmc/internal/stream"
	"github.com/stealthrocket/kmc/wire"
)

// Commands returns a reader decoding the records of r as commands. When
// alternate is true, records with identifiers shared by several command types
// decode as the alternate type (e.g. sbrk instead of brk).
func Commands(r stream.Reader[[]byte], alternate bool) stream.Reader[command.Command] {
	return stream.ConvertReader(r, func(record []byte) (command.Command, error) {
		c, rest, err := command.DecodeAny(record, alternate)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, wire.Malformed("%d trailing bytes after %s command", len(rest), command.NameOf(c))
		}
		return c, nil
	})
}
