package abi

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/stealthrocket/kmc/wire"
)

const (
	// DirentNameMax is the capacity of the name buffer of a directory entry.
	DirentNameMax = 256

	// DirentMinSize is the size of a directory entry with an empty name: the
	// inode and offset words, the record length and the type tag.
	DirentMinSize = 8 + 8 + 2 + 1

	// DirentMaxSize is the size of a directory entry with a full name buffer.
	DirentMaxSize = DirentMinSize + DirentNameMax

	// DirentOneEntryBufSize is the largest buffer size which can only ever
	// hold a single directory entry.
	DirentOneEntryBufSize = 2 * DirentMinSize
)

// LibcDirent is a directory entry in the layout of the linux getdents64
// system call (struct linux_dirent64).
//
//	offset  size  field
//	     0     8  ino
//	     8     8  off
//	    16     2  reclen
//	    18     1  type
//	    19     *  name (reclen - 19 bytes)
type LibcDirent struct {
	Ino     uint64
	Off     uint64
	Reclen  uint16
	Type    uint8
	RawName [DirentNameMax]byte
}

// NewLibcDirent constructs a directory entry with a record length covering
// exactly the name.
func NewLibcDirent(ino, off uint64, kind FileKind, name string) (LibcDirent, error) {
	d := LibcDirent{Ino: ino, Off: off, Type: kind.Type()}
	if len(name) > DirentNameMax {
		return d, fmt.Errorf("directory entry name of %d bytes: %w", len(name), wire.ErrCapacityExceeded)
	}
	d.Reclen = uint16(DirentMinSize + copy(d.RawName[:], name))
	return d, nil
}

// Kind returns the kind of the directory entry.
func (d *LibcDirent) Kind() FileKind { return KindFromType(d.Type) }

// NameLen returns the length of the name declared by the record length,
// bounded by the capacity of the name buffer.
func (d *LibcDirent) NameLen() int {
	n := int(d.Reclen) - DirentMinSize
	switch {
	case n < 0:
		return 0
	case n > DirentNameMax:
		return DirentNameMax
	}
	return n
}

// Name returns the name of the directory entry. The returned slice covers the
// length declared by the record and aliases the entry's buffer; bytes past it
// are never exposed.
func (d *LibcDirent) Name() []byte { return d.RawName[:d.NameLen()] }

// DirEntry returns the decoded form of d.
//
// The kernel pads names with null bytes to align records, the name of the
// returned entry stops at the first null byte.
func (d *LibcDirent) DirEntry() DirEntry {
	name := d.Name()
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	e := DirEntry{Ino: d.Ino, Kind: d.Kind()}
	e.NameLen = copy(e.NameBuf[:], name)
	return e
}

// ReadDirent decodes the directory entry at the head of b and returns it along
// with the bytes following the record.
//
// Records longer than DirentMaxSize are only accepted when the extra bytes are
// null padding.
func ReadDirent(b []byte) (d LibcDirent, rest []byte, err error) {
	if len(b) < DirentMinSize {
		return d, b, wire.ShortBuffer("directory entry", DirentMinSize, len(b))
	}
	d.Ino = binary.LittleEndian.Uint64(b[0:])
	d.Off = binary.LittleEndian.Uint64(b[8:])
	d.Reclen = binary.LittleEndian.Uint16(b[16:])
	d.Type = b[18]

	reclen := int(d.Reclen)
	if reclen < DirentMinSize {
		return d, b, wire.Malformed("directory entry record length %d is less than %d", reclen, DirentMinSize)
	}
	if reclen > len(b) {
		return d, b, wire.ShortBuffer("directory entry", reclen, len(b))
	}
	name := b[DirentMinSize:reclen]
	if len(name) > DirentNameMax {
		if !isPadding(name[DirentNameMax:]) {
			return d, b, fmt.Errorf("%w: directory entry name of %d bytes: %w", wire.ErrMalformedInput, len(name), wire.ErrCapacityExceeded)
		}
		name = name[:DirentNameMax]
	}
	copy(d.RawName[:], name)
	return d, b[reclen:], nil
}

// AppendDirent appends the record of d to b. Exactly d.Reclen bytes are
// written, names are padded with null bytes when the record length exceeds
// the name buffer.
func AppendDirent(b []byte, d *LibcDirent) []byte {
	b = binary.LittleEndian.AppendUint64(b, d.Ino)
	b = binary.LittleEndian.AppendUint64(b, d.Off)
	b = binary.LittleEndian.AppendUint16(b, d.Reclen)
	b = append(b, d.Type)
	b = append(b, d.Name()...)
	for i := DirentMinSize + d.NameLen(); i < int(d.Reclen); i++ {
		b = append(b, 0)
	}
	return b
}

// ParseDirents decodes the contiguous run of directory entries in b, appending
// them to entries.
//
// On error, the returned bytes start at the record which could not be decoded.
func ParseDirents(b []byte, entries []DirEntry) ([]DirEntry, []byte, error) {
	for len(b) > 0 {
		d, rest, err := ReadDirent(b)
		if err != nil {
			return entries, b, err
		}
		entries = append(entries, d.DirEntry())
		b = rest
	}
	return entries, b, nil
}

func isPadding(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// DirEntry is a decoded directory entry, independent of the kernel layout.
type DirEntry struct {
	Ino     uint64
	Kind    FileKind
	NameLen int
	NameBuf [DirentNameMax]byte
}

// Name returns the name of the entry.
func (e *DirEntry) Name() string { return string(e.NameBuf[:e.NameLen]) }

func (e DirEntry) String() string {
	return fmt.Sprintf("%d %s %q", e.Ino, e.Kind, e.NameBuf[:e.NameLen])
}
