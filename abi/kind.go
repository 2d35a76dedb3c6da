// Package abi contains the kernel values and structure layouts shared by the
// checker and the harness.
//
// The layouts in this package are fixed by the operating system rather than
// by this module: records are read and written at explicit offsets, in
// little-endian byte order, so buffers captured from the kernel round-trip
// without corruption.
package abi

// File types of directory entries (DT_* from dirent.h).
const (
	DT_UNKNOWN uint8 = 0
	DT_FIFO    uint8 = 1
	DT_CHR     uint8 = 2
	DT_DIR     uint8 = 4
	DT_BLK     uint8 = 6
	DT_REG     uint8 = 8
	DT_LNK     uint8 = 10
	DT_SOCK    uint8 = 12
)

// File type bits of stat modes (S_IF* from stat.h).
const (
	S_IFMT   uint32 = 0o170000
	S_IFSOCK uint32 = 0o140000
	S_IFLNK  uint32 = 0o120000
	S_IFREG  uint32 = 0o100000
	S_IFBLK  uint32 = 0o060000
	S_IFDIR  uint32 = 0o040000
	S_IFCHR  uint32 = 0o020000
	S_IFIFO  uint32 = 0o010000

	// ModeTypeMask selects the file type bits of a mode.
	ModeTypeMask = S_IFMT
	// ModePermMask selects the permission bits of a mode.
	ModePermMask = uint32(FileModeKnown)
)

// FileKind is the type of a file.
//
// The values are the DT_* directory entry types.
type FileKind uint8

const (
	Unknown     = FileKind(DT_UNKNOWN)
	Fifo        = FileKind(DT_FIFO)
	CharDevice  = FileKind(DT_CHR)
	Directory   = FileKind(DT_DIR)
	BlockDevice = FileKind(DT_BLK)
	Regular     = FileKind(DT_REG)
	Symlink     = FileKind(DT_LNK)
	Socket      = FileKind(DT_SOCK)
)

var fileKinds = [...]struct {
	kind FileKind
	mode uint32
	name string
}{
	{Fifo, S_IFIFO, "fifo"},
	{CharDevice, S_IFCHR, "char-device"},
	{Directory, S_IFDIR, "directory"},
	{BlockDevice, S_IFBLK, "block-device"},
	{Regular, S_IFREG, "regular"},
	{Symlink, S_IFLNK, "symlink"},
	{Socket, S_IFSOCK, "socket"},
}

// KindFromType returns the kind of a directory entry type tag. Tags that are
// not known map to Unknown.
func KindFromType(typ uint8) FileKind {
	for _, k := range fileKinds {
		if uint8(k.kind) == typ {
			return k.kind
		}
	}
	return Unknown
}

// KindFromMode returns the kind encoded in the type bits of a stat mode. Type
// bits that are not known map to Unknown.
func KindFromMode(mode uint32) FileKind {
	mode &= ModeTypeMask
	for _, k := range fileKinds {
		if k.mode == mode {
			return k.kind
		}
	}
	return Unknown
}

// Type returns the directory entry type tag of k.
func (k FileKind) Type() uint8 { return uint8(k) }

// Mode returns the stat mode type bits of k, zero for Unknown.
func (k FileKind) Mode() uint32 {
	for _, f := range fileKinds {
		if f.kind == k {
			return f.mode
		}
	}
	return 0
}

func (k FileKind) String() string {
	for _, f := range fileKinds {
		if f.kind == k {
			return f.name
		}
	}
	return "unknown"
}

func (k FileKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
