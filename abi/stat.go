package abi

import (
	"encoding/binary"
	"time"

	"github.com/stealthrocket/kmc/wire"
)

// SizeofLibcStat is the size of a LibcStat record.
const SizeofLibcStat = 128

// LibcStat is the result of the stat family of system calls, in the layout of
// the generic linux struct stat (used by arm64 and riscv64).
//
//	offset  size  field
//	     0     8  dev
//	     8     8  ino
//	    16     4  mode
//	    20     4  nlink
//	    24     4  uid
//	    28     4  gid
//	    32     8  rdev
//	    40     8  (padding)
//	    48     8  size
//	    56     4  blksize
//	    60     4  (padding)
//	    64     8  blocks
//	    72    16  atime (sec, nsec)
//	    88    16  mtime (sec, nsec)
//	   104    16  ctime (sec, nsec)
//	   120     8  (reserved)
//
// Harnesses that declare the record without the reserved tail produce 120
// bytes per record. ReadStat reports those as short buffers instead of
// reading into the next record, records have to be padded to SizeofLibcStat.
type LibcStat struct {
	Dev       uint64
	Ino       uint64
	RawMode   uint32
	Nlink     uint32
	Uid       uint32
	Gid       uint32
	Rdev      uint64
	_         uint64
	Size      int64
	Blksize   int32
	_         int32
	Blocks    int64
	AtimeSec  int64
	AtimeNsec int64
	MtimeSec  int64
	MtimeNsec int64
	CtimeSec  int64
	CtimeNsec int64
	_         [2]uint32
}

// Mode returns the permission bits of the file mode.
func (st *LibcStat) Mode() FileMode { return FileModeFromBits(st.RawMode) }

// Kind returns the kind of file encoded in the type bits of the mode.
func (st *LibcStat) Kind() FileKind { return KindFromMode(st.RawMode) }

func (st *LibcStat) AccessTime() time.Time { return time.Unix(st.AtimeSec, st.AtimeNsec) }

func (st *LibcStat) ModifyTime() time.Time { return time.Unix(st.MtimeSec, st.MtimeNsec) }

func (st *LibcStat) ChangeTime() time.Time { return time.Unix(st.CtimeSec, st.CtimeNsec) }

// FileStat returns the decoded form of st.
func (st *LibcStat) FileStat() FileStat {
	return FileStat{
		Ino:   st.Ino,
		Mode:  st.Mode(),
		Uid:   st.Uid,
		Gid:   st.Gid,
		Kind:  st.Kind(),
		Nlink: st.Nlink,
		Size:  st.Size,
	}
}

// ReadStat decodes the stat record at the head of b and returns it along with
// the bytes following it. Padding and reserved fields are ignored.
func ReadStat(b []byte) (st LibcStat, rest []byte, err error) {
	if len(b) < SizeofLibcStat {
		return st, b, wire.ShortBuffer("stat", SizeofLibcStat, len(b))
	}
	le := binary.LittleEndian
	st.Dev = le.Uint64(b[0:])
	st.Ino = le.Uint64(b[8:])
	st.RawMode = le.Uint32(b[16:])
	st.Nlink = le.Uint32(b[20:])
	st.Uid = le.Uint32(b[24:])
	st.Gid = le.Uint32(b[28:])
	st.Rdev = le.Uint64(b[32:])
	st.Size = int64(le.Uint64(b[48:]))
	st.Blksize = int32(le.Uint32(b[56:]))
	st.Blocks = int64(le.Uint64(b[64:]))
	st.AtimeSec = int64(le.Uint64(b[72:]))
	st.AtimeNsec = int64(le.Uint64(b[80:]))
	st.MtimeSec = int64(le.Uint64(b[88:]))
	st.MtimeNsec = int64(le.Uint64(b[96:]))
	st.CtimeSec = int64(le.Uint64(b[104:]))
	st.CtimeNsec = int64(le.Uint64(b[112:]))
	return st, b[SizeofLibcStat:], nil
}

// AppendStat appends the record of st to b, writing zeros in padding and
// reserved fields.
func AppendStat(b []byte, st *LibcStat) []byte {
	le := binary.LittleEndian
	b = le.AppendUint64(b, st.Dev)
	b = le.AppendUint64(b, st.Ino)
	b = le.AppendUint32(b, st.RawMode)
	b = le.AppendUint32(b, st.Nlink)
	b = le.AppendUint32(b, st.Uid)
	b = le.AppendUint32(b, st.Gid)
	b = le.AppendUint64(b, st.Rdev)
	b = le.AppendUint64(b, 0)
	b = le.AppendUint64(b, uint64(st.Size))
	b = le.AppendUint32(b, uint32(st.Blksize))
	b = le.AppendUint32(b, 0)
	b = le.AppendUint64(b, uint64(st.Blocks))
	b = le.AppendUint64(b, uint64(st.AtimeSec))
	b = le.AppendUint64(b, uint64(st.AtimeNsec))
	b = le.AppendUint64(b, uint64(st.MtimeSec))
	b = le.AppendUint64(b, uint64(st.MtimeNsec))
	b = le.AppendUint64(b, uint64(st.CtimeSec))
	b = le.AppendUint64(b, uint64(st.CtimeNsec))
	return le.AppendUint64(b, 0)
}

// FileStat is a decoded stat record, independent of the kernel layout.
type FileStat struct {
	Ino   uint64
	Mode  FileMode
	Uid   uint32
	Gid   uint32
	Kind  FileKind
	Nlink uint32
	Size  int64
}
