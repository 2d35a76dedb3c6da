package command

import (
	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/wire"
)

// Openat opens and possibly creates a file.
//
// Ref: https://man7.org/linux/man-pages/man2/open.2.html
type Openat struct {
	// Descriptor of the directory that relative paths are resolved from.
	DirFD int           `json:"dirfd" yaml:"dirfd"`
	Path  Path          `json:"path" yaml:"path"`
	Flags abi.OpenFlags `json:"flags" yaml:"flags"`
	// Permissions of the file when it is created.
	Mode abi.FileMode `json:"mode" yaml:"mode"`
}

func NewOpenat(dirfd int, path Path, flags abi.OpenFlags, mode abi.FileMode) Openat {
	return Openat{DirFD: dirfd, Path: path, Flags: flags, Mode: mode}
}

func (Openat) CommandID() ID { return OpenatID }

func (c *Openat) Fields(v wire.Visitor) {
	v.Int(&c.DirFD)
	c.Path.visit(v)
	v.Bits32((*uint32)(&c.Flags), uint32(abi.OpenFlagsKnown))
	v.Bits32((*uint32)(&c.Mode), uint32(abi.FileModeKnown))
}

// Close closes a file descriptor.
//
// Ref: https://man7.org/linux/man-pages/man2/close.2.html
type Close struct {
	FD int `json:"fd" yaml:"fd"`
}

func NewClose(fd int) Close { return Close{FD: fd} }

func (Close) CommandID() ID { return CloseID }

func (c *Close) Fields(v wire.Visitor) { v.Int(&c.FD) }

// Fstat gets the status of an open file. The harness replies with an
// abi.LibcStat record.
//
// Ref: https://man7.org/linux/man-pages/man2/fstat.2.html
type Fstat struct {
	FD int `json:"fd" yaml:"fd"`
}

func NewFstat(fd int) Fstat { return Fstat{FD: fd} }

func (Fstat) CommandID() ID { return FstatID }

func (c *Fstat) Fields(v wire.Visitor) { v.Int(&c.FD) }

// Getdents reads directory entries. The harness replies with a run of
// abi.LibcDirent records and may issue the system call several times to
// collect all the entries.
//
// Ref: https://man7.org/linux/man-pages/man2/getdents.2.html
type Getdents struct {
	FD int `json:"fd" yaml:"fd"`
	// Expected number of entries.
	Count uint64 `json:"count" yaml:"count"`
}

func NewGetdents(fd int, count uint64) Getdents { return Getdents{FD: fd, Count: count} }

func (Getdents) CommandID() ID { return GetdentsID }

func (c *Getdents) Fields(v wire.Visitor) {
	v.Int(&c.FD)
	v.Uint64(&c.Count)
}

// Linkat makes a new name for a file.
//
// Ref: https://man7.org/linux/man-pages/man2/link.2.html
type Linkat struct {
	OldDirFD int  `json:"olddirfd" yaml:"olddirfd"`
	OldPath  Path `json:"oldpath" yaml:"oldpath"`
	NewDirFD int  `json:"newdirfd" yaml:"newdirfd"`
	NewPath  Path `json:"newpath" yaml:"newpath"`
}

func NewLinkat(olddirfd int, oldpath Path, newdirfd int, newpath Path) Linkat {
	return Linkat{OldDirFD: olddirfd, OldPath: oldpath, NewDirFD: newdirfd, NewPath: newpath}
}

func (Linkat) CommandID() ID { return LinkatID }

func (c *Linkat) Fields(v wire.Visitor) {
	v.Int(&c.OldDirFD)
	c.OldPath.visit(v)
	v.Int(&c.NewDirFD)
	c.NewPath.visit(v)
}

// Unlinkat deletes a name and possibly the file it refers to.
//
// Ref: https://man7.org/linux/man-pages/man2/unlink.2.html
type Unlinkat struct {
	DirFD int             `json:"dirfd" yaml:"dirfd"`
	Path  Path            `json:"path" yaml:"path"`
	Flags abi.UnlinkFlags `json:"flags" yaml:"flags"`
}

func NewUnlinkat(dirfd int, path Path, flags abi.UnlinkFlags) Unlinkat {
	return Unlinkat{DirFD: dirfd, Path: path, Flags: flags}
}

func (Unlinkat) CommandID() ID { return UnlinkatID }

func (c *Unlinkat) Fields(v wire.Visitor) {
	v.Int(&c.DirFD)
	c.Path.visit(v)
	v.Bits32((*uint32)(&c.Flags), uint32(abi.UnlinkFlagsKnown))
}

// Mkdirat creates a directory.
//
// Ref: https://man7.org/linux/man-pages/man2/mkdirat.2.html
type Mkdirat struct {
	DirFD int          `json:"dirfd" yaml:"dirfd"`
	Path  Path         `json:"path" yaml:"path"`
	Mode  abi.FileMode `json:"mode" yaml:"mode"`
}

func NewMkdirat(dirfd int, path Path, mode abi.FileMode) Mkdirat {
	return Mkdirat{DirFD: dirfd, Path: path, Mode: mode}
}

func (Mkdirat) CommandID() ID { return MkdiratID }

func (c *Mkdirat) Fields(v wire.Visitor) {
	v.Int(&c.DirFD)
	c.Path.visit(v)
	v.Bits32((*uint32)(&c.Mode), uint32(abi.FileModeKnown))
}

// Getcwd gets the current working directory.
//
// Ref: https://man7.org/linux/man-pages/man2/getcwd.2.html
type Getcwd struct{}

func NewGetcwd() Getcwd { return Getcwd{} }

func (Getcwd) CommandID() ID { return GetcwdID }

func (c *Getcwd) Fields(v wire.Visitor) {}

// Dup duplicates a file descriptor.
//
// Ref: https://man7.org/linux/man-pages/man2/dup.2.html
type Dup struct {
	OldFD int `json:"oldfd" yaml:"oldfd"`
}

func NewDup(oldfd int) Dup { return Dup{OldFD: oldfd} }

func (Dup) CommandID() ID { return DupID }

func (c *Dup) Fields(v wire.Visitor) { v.Int(&c.OldFD) }

// Chdir changes the current working directory.
//
// Ref: https://man7.org/linux/man-pages/man2/chdir.2.html
type Chdir struct {
	Path Path `json:"path" yaml:"path"`
}

func NewChdir(path Path) Chdir { return Chdir{Path: path} }

func (Chdir) CommandID() ID { return ChdirID }

func (c *Chdir) Fields(v wire.Visitor) { c.Path.visit(v) }
