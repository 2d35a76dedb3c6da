// Package command defines the commands exchanged between the checker and the
// harness.
//
// Each command is a struct listing the arguments of a system call. The checker
// encodes commands with Encode, the harness peeks at the identifier with
// PeekID to pick the command type, then decodes it with Decode.
//
// Encoding is only compiled in checker builds and decoding only in harness
// builds; the roles are selected with the "checker" and "harness" build tags.
// Building without either tag includes both, which is what the host tools and
// the tests do.
package command

import (
	"fmt"

	"github.com/stealthrocket/kmc/wire"
)

// ID is the stable identifier of a command type on the wire.
type ID uint

const (
	GetcwdID   ID = 17
	DupID      ID = 23
	MkdiratID  ID = 34
	UnlinkatID ID = 35
	LinkatID   ID = 37
	ChdirID    ID = 49
	OpenatID   ID = 56
	CloseID    ID = 57
	GetdentsID ID = 61
	FstatID    ID = 80

	MprotectID ID = 5
	BrkID      ID = 214
	SbrkID     ID = 214
	MunmapID   ID = 215
	MmapID     ID = 222
)

func (id ID) String() string {
	if d, ok := primary(id); ok {
		return d.Name
	}
	return fmt.Sprintf("ID(%d)", uint(id))
}

// Command is implemented by pointers to command types.
type Command interface {
	// CommandID returns the identifier of the command type.
	CommandID() ID
	// Fields visits the fields of the command in wire order.
	Fields(v wire.Visitor)
}
