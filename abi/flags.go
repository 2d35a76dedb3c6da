package abi

// OpenFlags are the flags of the openat command.
type OpenFlags uint32

const (
	O_RDONLY    OpenFlags = 0o00000000
	O_WRONLY    OpenFlags = 0o00000001
	O_RDWR      OpenFlags = 0o00000002
	O_CREAT     OpenFlags = 0o00000100
	O_APPEND    OpenFlags = 0o00000200
	O_TRUNC     OpenFlags = 0o00000400
	O_DIRECTORY OpenFlags = 0o01000000

	// OpenFlagsKnown is the set of bits retained when decoding open flags.
	OpenFlagsKnown = O_WRONLY | O_RDWR | O_CREAT | O_APPEND | O_TRUNC | O_DIRECTORY
)

var openFlagNames = []flagName[OpenFlags]{
	{O_RDONLY, "RDONLY"},
	{O_WRONLY, "WRONLY"},
	{O_RDWR, "RDWR"},
	{O_CREAT, "CREAT"},
	{O_APPEND, "APPEND"},
	{O_TRUNC, "TRUNC"},
	{O_DIRECTORY, "DIRECTORY"},
}

// OpenFlagsFromBits returns the open flags of bits, dropping unknown bits.
func OpenFlagsFromBits(bits uint32) OpenFlags { return OpenFlags(bits) & OpenFlagsKnown }

func (f OpenFlags) Bits() uint32 { return uint32(f) }

func (f OpenFlags) Contains(flags OpenFlags) bool { return f&flags == flags }

func (f OpenFlags) String() string { return formatFlags(f, openFlagNames, "RDONLY") }

func (f OpenFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *OpenFlags) UnmarshalText(b []byte) (err error) {
	*f, err = parseFlags(string(b), openFlagNames, OpenFlagsKnown, 32)
	return err
}

// FileMode are the permission bits of a file.
type FileMode uint32

const (
	S_IRUSR FileMode = 0o400
	S_IWUSR FileMode = 0o200
	S_IXUSR FileMode = 0o100
	S_IRGRP FileMode = 0o040
	S_IWGRP FileMode = 0o020
	S_IXGRP FileMode = 0o010
	S_IROTH FileMode = 0o004
	S_IWOTH FileMode = 0o002
	S_IXOTH FileMode = 0o001

	// FileModeKnown is the set of bits retained when decoding file modes.
	FileModeKnown FileMode = 0o777
)

var fileModeNames = []flagName[FileMode]{
	{S_IRUSR, "USER_READ"},
	{S_IWUSR, "USER_WRITE"},
	{S_IXUSR, "USER_EXEC"},
	{S_IRGRP, "GROUP_READ"},
	{S_IWGRP, "GROUP_WRITE"},
	{S_IXGRP, "GROUP_EXEC"},
	{S_IROTH, "OTHER_READ"},
	{S_IWOTH, "OTHER_WRITE"},
	{S_IXOTH, "OTHER_EXEC"},
}

// FileModeFromBits returns the permission bits of bits, dropping file type
// bits and any other unknown bit.
func FileModeFromBits(bits uint32) FileMode { return FileMode(bits) & FileModeKnown }

func (m FileMode) Bits() uint32 { return uint32(m) }

func (m FileMode) Contains(mode FileMode) bool { return m&mode == mode }

func (m FileMode) String() string { return formatFlags(m, fileModeNames, "0") }

func (m FileMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *FileMode) UnmarshalText(b []byte) (err error) {
	*m, err = parseFlags(string(b), fileModeNames, FileModeKnown, 32)
	return err
}

// UnlinkFlags are the flags of the unlinkat command.
type UnlinkFlags uint32

const (
	AT_REMOVEDIR UnlinkFlags = 0x200

	UnlinkFlagsKnown = AT_REMOVEDIR
)

var unlinkFlagNames = []flagName[UnlinkFlags]{
	{AT_REMOVEDIR, "REMOVEDIR"},
}

func UnlinkFlagsFromBits(bits uint32) UnlinkFlags { return UnlinkFlags(bits) & UnlinkFlagsKnown }

func (f UnlinkFlags) Bits() uint32 { return uint32(f) }

func (f UnlinkFlags) Contains(flags UnlinkFlags) bool { return f&flags == flags }

func (f UnlinkFlags) String() string { return formatFlags(f, unlinkFlagNames, "0") }

func (f UnlinkFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *UnlinkFlags) UnmarshalText(b []byte) (err error) {
	*f, err = parseFlags(string(b), unlinkFlagNames, UnlinkFlagsKnown, 32)
	return err
}

// ProtFlags are the access permissions of a memory mapping.
type ProtFlags uint8

const (
	PROT_READ  ProtFlags = 1 << 0
	PROT_WRITE ProtFlags = 1 << 1
	PROT_EXEC  ProtFlags = 1 << 2

	ProtFlagsKnown = PROT_READ | PROT_WRITE | PROT_EXEC
)

var protFlagNames = []flagName[ProtFlags]{
	{0, "NONE"},
	{PROT_READ, "READ"},
	{PROT_WRITE, "WRITE"},
	{PROT_EXEC, "EXECUTE"},
}

func ProtFlagsFromBits(bits uint8) ProtFlags { return ProtFlags(bits) & ProtFlagsKnown }

func (f ProtFlags) Bits() uint8 { return uint8(f) }

func (f ProtFlags) Contains(flags ProtFlags) bool { return f&flags == flags }

func (f ProtFlags) String() string { return formatFlags(f, protFlagNames, "NONE") }

func (f ProtFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *ProtFlags) UnmarshalText(b []byte) (err error) {
	*f, err = parseFlags(string(b), protFlagNames, ProtFlagsKnown, 8)
	return err
}

// MmapFlags determine whether updates to a mapping are visible to other
// processes mapping the same region.
type MmapFlags uint32

const (
	MAP_SHARED  MmapFlags = 1 << 0
	MAP_PRIVATE MmapFlags = 1 << 1
	MAP_FIXED   MmapFlags = 1 << 4

	MmapFlagsKnown = MAP_SHARED | MAP_PRIVATE | MAP_FIXED
)

var mmapFlagNames = []flagName[MmapFlags]{
	{MAP_SHARED, "MAP_SHARED"},
	{MAP_PRIVATE, "MAP_PRIVATE"},
	{MAP_FIXED, "MAP_FIXED"},
}

func MmapFlagsFromBits(bits uint32) MmapFlags { return MmapFlags(bits) & MmapFlagsKnown }

func (f MmapFlags) Bits() uint32 { return uint32(f) }

func (f MmapFlags) Contains(flags MmapFlags) bool { return f&flags == flags }

func (f MmapFlags) String() string { return formatFlags(f, mmapFlagNames, "0") }

func (f MmapFlags) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *MmapFlags) UnmarshalText(b []byte) (err error) {
	*f, err = parseFlags(string(b), mmapFlagNames, MmapFlagsKnown, 32)
	return err
}
