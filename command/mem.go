package command

import (
	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/wire"
)

// Brk sets the program break, which is the end of the process's data segment.
//
// Brk and Sbrk share an identifier: they are alternate framings of the same
// system call and a harness accepts only one of them.
//
// Ref: https://man7.org/linux/man-pages/man2/brk.2.html
type Brk struct {
	Addr uint64 `json:"addr" yaml:"addr"`
}

func NewBrk(addr uint64) Brk { return Brk{Addr: addr} }

func (Brk) CommandID() ID { return BrkID }

func (c *Brk) Fields(v wire.Visitor) { v.Uint64(&c.Addr) }

// Sbrk moves the program break by an increment and returns the previous one.
//
// Ref: https://man7.org/linux/man-pages/man2/brk.2.html
type Sbrk struct {
	Increment int64 `json:"increment" yaml:"increment"`
}

func NewSbrk(increment int64) Sbrk { return Sbrk{Increment: increment} }

func (Sbrk) CommandID() ID { return SbrkID }

func (c *Sbrk) Fields(v wire.Visitor) { v.Int64(&c.Increment) }

// Mmap creates a new mapping in the virtual address space.
//
// Ref: https://man7.org/linux/man-pages/man2/mmap.2.html
type Mmap struct {
	Addr  uint64        `json:"addr" yaml:"addr"`
	Len   uint64        `json:"len" yaml:"len"`
	Prot  abi.ProtFlags `json:"prot" yaml:"prot"`
	Flags abi.MmapFlags `json:"flags" yaml:"flags"`
}

func NewMmap(addr, length uint64, prot abi.ProtFlags, flags abi.MmapFlags) Mmap {
	return Mmap{Addr: addr, Len: length, Prot: prot, Flags: flags}
}

func (Mmap) CommandID() ID { return MmapID }

func (c *Mmap) Fields(v wire.Visitor) {
	v.Uint64(&c.Addr)
	v.Uint64(&c.Len)
	v.Bits8((*uint8)(&c.Prot), uint8(abi.ProtFlagsKnown))
	v.Bits32((*uint32)(&c.Flags), uint32(abi.MmapFlagsKnown))
}

// Munmap removes a mapping from the virtual address space.
//
// Ref: https://man7.org/linux/man-pages/man2/munmap.2.html
type Munmap struct {
	Addr uint64 `json:"addr" yaml:"addr"`
	Len  uint64 `json:"len" yaml:"len"`
}

func NewMunmap(addr, length uint64) Munmap { return Munmap{Addr: addr, Len: length} }

func (Munmap) CommandID() ID { return MunmapID }

func (c *Munmap) Fields(v wire.Visitor) {
	v.Uint64(&c.Addr)
	v.Uint64(&c.Len)
}

// Mprotect changes the access protections of the pages containing any part
// of the range [start, start+len-1].
//
// Ref: https://man7.org/linux/man-pages/man2/mprotect.2.html
type Mprotect struct {
	Start uint64        `json:"start" yaml:"start"`
	Len   uint64        `json:"len" yaml:"len"`
	Flags abi.ProtFlags `json:"flags" yaml:"flags"`
}

func NewMprotect(start, length uint64, flags abi.ProtFlags) Mprotect {
	return Mprotect{Start: start, Len: length, Flags: flags}
}

func (Mprotect) CommandID() ID { return MprotectID }

func (c *Mprotect) Fields(v wire.Visitor) {
	v.Uint64(&c.Start)
	v.Uint64(&c.Len)
	v.Bits8((*uint8)(&c.Flags), uint8(abi.ProtFlagsKnown))
}
