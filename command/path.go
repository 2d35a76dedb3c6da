package command

import (
	"bytes"
	"fmt"

	"github.com/stealthrocket/kmc/wire"
)

// MaxPathLen is the capacity of a Path in bytes.
const MaxPathLen = 256

// Path is a file system path of at most MaxPathLen bytes, stored inline so it
// can be used without dynamic allocation.
//
// Paths are stored verbatim, no normalization is applied. Path values are
// comparable with ==, which is equivalent to Equal.
type Path struct {
	buf [MaxPathLen]byte
	len int
}

// NewPath constructs a Path from s. The function errors with
// wire.ErrCapacityExceeded if s is longer than MaxPathLen.
func NewPath(s string) (p Path, err error) {
	if len(s) > MaxPathLen {
		return p, fmt.Errorf("path of %d bytes: %w", len(s), wire.ErrCapacityExceeded)
	}
	p.len = copy(p.buf[:], s)
	return p, nil
}

// PathFromBytes is like NewPath but takes a byte slice.
func PathFromBytes(b []byte) (p Path, err error) {
	if len(b) > MaxPathLen {
		return p, fmt.Errorf("path of %d bytes: %w", len(b), wire.ErrCapacityExceeded)
	}
	p.len = copy(p.buf[:], b)
	return p, nil
}

// MustPath is like NewPath but panics if s does not fit in a Path.
func MustPath(s string) Path {
	p, err := NewPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Absolute returns true if the path starts with a separator.
func (p Path) Absolute() bool { return p.len > 0 && p.buf[0] == '/' }

// Relative returns true if the path is not absolute.
func (p Path) Relative() bool { return !p.Absolute() }

// Len returns the length of the path in bytes.
func (p Path) Len() int { return p.len }

// Bytes returns the content of the path.
func (p Path) Bytes() []byte { return p.buf[:p.len] }

func (p Path) String() string { return string(p.buf[:p.len]) }

// Equal compares p and q byte-wise.
func (p Path) Equal(q Path) bool { return bytes.Equal(p.Bytes(), q.Bytes()) }

// Compare compares p and q byte-wise, returning -1, 0, or +1.
func (p Path) Compare(q Path) int { return bytes.Compare(p.Bytes(), q.Bytes()) }

func (p Path) MarshalText() ([]byte, error) { return p.buf[:p.len:p.len], nil }

func (p *Path) UnmarshalText(b []byte) (err error) {
	*p, err = PathFromBytes(b)
	return err
}

func (p *Path) visit(v wire.Visitor) { v.Bounded(p.buf[:], &p.len) }
