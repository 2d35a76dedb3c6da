// Package probe captures directory entries and file status from the kernel of
// the host and decodes them with the record layouts of package abi.
//
// The probe is used to check that the layouts agree with what the kernel
// produces, and to collect raw buffers that the decoding tools can consume.
package probe

import (
	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/print/human"
)

// DefaultConcurrency is the number of concurrent stat calls issued by Dir
// when the concurrency is not set.
const DefaultConcurrency = 8

// Entry is a directory entry and the status of the file that it names.
type Entry struct {
	Ino   uint64       `json:"ino"   yaml:"ino"   text:"INODE"`
	Kind  abi.FileKind `json:"kind"  yaml:"kind"  text:"KIND"`
	Mode  abi.FileMode `json:"mode"  yaml:"mode"  text:"MODE"`
	Nlink uint32       `json:"nlink" yaml:"nlink" text:"LINKS"`
	Size  human.Bytes  `json:"size"  yaml:"size"  text:"SIZE"`
	Name  string       `json:"name"  yaml:"name"  text:"NAME"`
	// Error is the error reported by the kernel when the file status could
	// not be read, in which case only the fields from the directory entry are
	// set.
	Error string `json:"error,omitempty" yaml:"error,omitempty" text:"ERROR"`
}

// Result is the result of probing a directory.
type Result struct {
	Entries []Entry
	// Dirents is the concatenation of the getdents64 buffers returned by
	// the kernel.
	Dirents []byte
	// Stats is the concatenation of the stat records of the entries, in the
	// same order. Entries for which the status could not be read have a
	// zero record.
	Stats []byte
}

func newEntry(d *abi.DirEntry) Entry {
	return Entry{Ino: d.Ino, Kind: d.Kind, Name: d.Name()}
}

func (e *Entry) setStat(st *abi.FileStat) {
	e.Mode = st.Mode
	e.Nlink = st.Nlink
	e.Size = human.Bytes(st.Size)
	if st.Kind != abi.Unknown {
		e.Kind = st.Kind
	}
}
