package abi_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/assert"
	"github.com/stealthrocket/kmc/wire"
)

func mustDirent(t *testing.T, ino, off uint64, kind abi.FileKind, name string) abi.LibcDirent {
	t.Helper()
	d, err := abi.NewLibcDirent(ino, off, kind, name)
	assert.OK(t, err)
	return d
}

func TestDirentSizes(t *testing.T) {
	assert.Equal(t, abi.DirentMinSize, 19)
	assert.Equal(t, abi.DirentMaxSize, 275)
	assert.Equal(t, abi.DirentOneEntryBufSize, 38)
}

func TestDirentName(t *testing.T) {
	d := mustDirent(t, 1, 2, abi.Regular, "foo")
	assert.Equal(t, d.Reclen, 22)
	assert.Equal(t, d.NameLen(), 3)
	assert.Equal(t, string(d.Name()), "foo")

	// Bytes past the declared length are never exposed.
	copy(d.RawName[3:], "garbage")
	assert.Equal(t, string(d.Name()), "foo")
	e := d.DirEntry()
	assert.Equal(t, e.Name(), "foo")
	assert.Equal(t, e.NameLen, 3)
	assert.Equal(t, e.Kind, abi.Regular)
	assert.Equal(t, e.Ino, 1)
}

func TestDirentNameLenBounds(t *testing.T) {
	d := abi.LibcDirent{Reclen: 10}
	assert.Equal(t, d.NameLen(), 0)
	assert.Equal(t, len(d.Name()), 0)

	d.Reclen = 1000
	assert.Equal(t, d.NameLen(), abi.DirentNameMax)
}

func TestDirentNameCapacity(t *testing.T) {
	_, err := abi.NewLibcDirent(1, 1, abi.Regular, strings.Repeat("a", abi.DirentNameMax))
	assert.OK(t, err)
	_, err = abi.NewLibcDirent(1, 1, abi.Regular, strings.Repeat("a", abi.DirentNameMax+1))
	assert.Error(t, err, wire.ErrCapacityExceeded)
}

func TestDirentTrimsKernelPadding(t *testing.T) {
	// The kernel aligns records on 8 bytes: "." in a 24 bytes record.
	d := abi.LibcDirent{Ino: 7, Off: 1, Reclen: 24, Type: abi.DT_DIR}
	d.RawName[0] = '.'
	e := d.DirEntry()
	assert.Equal(t, e.Name(), ".")
	assert.Equal(t, e.Kind, abi.Directory)
	assert.Equal(t, e.String(), `7 directory "."`)
}

func TestDirentRoundTrip(t *testing.T) {
	tests := map[string]abi.LibcDirent{
		"empty name": mustDirent(t, 1, 1, abi.Unknown, ""),
		"dot":        mustDirent(t, 2, 2, abi.Directory, "."),
		"full name":  mustDirent(t, 3, 3, abi.Regular, strings.Repeat("x", abi.DirentNameMax)),
		"padded":     {Ino: 4, Off: 4, Reclen: 32, Type: abi.DT_LNK, RawName: [256]byte{'l', 'n'}},
	}

	for scenario, d := range tests {
		t.Run(scenario, func(t *testing.T) {
			b := abi.AppendDirent(nil, &d)
			assert.Equal(t, len(b), int(d.Reclen))

			got, rest, err := abi.ReadDirent(append(b, 0xEE))
			assert.OK(t, err)
			assert.Equal(t, got, d)
			assert.EqualAll(t, rest, []byte{0xEE})
		})
	}
}

func TestDirentLayout(t *testing.T) {
	d := mustDirent(t, 0x0102030405060708, 0x1112131415161718, abi.Symlink, "ab")
	b := abi.AppendDirent(nil, &d)
	assert.EqualAll(t, b, []byte{
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
		0x18, 0x17, 0x16, 0x15, 0x14, 0x13, 0x12, 0x11,
		21, 0,
		abi.DT_LNK,
		'a', 'b',
	})
}

func TestReadDirentErrors(t *testing.T) {
	valid := abi.AppendDirent(nil, &abi.LibcDirent{Ino: 1, Reclen: 24, Type: abi.DT_REG, RawName: [256]byte{'f'}})

	t.Run("short header", func(t *testing.T) {
		_, rest, err := abi.ReadDirent(valid[:abi.DirentMinSize-1])
		assert.Error(t, err, wire.ErrMalformedInput)
		assert.Error(t, err, io.ErrShortBuffer)
		assert.Equal(t, len(rest), abi.DirentMinSize-1)
	})

	t.Run("record longer than buffer", func(t *testing.T) {
		_, _, err := abi.ReadDirent(valid[:20])
		assert.Error(t, err, io.ErrShortBuffer)
	})

	t.Run("record length below minimum", func(t *testing.T) {
		b := bytes.Clone(valid)
		b[16] = 18
		_, _, err := abi.ReadDirent(b)
		assert.Error(t, err, wire.ErrMalformedInput)
	})

	t.Run("oversized name", func(t *testing.T) {
		d := abi.LibcDirent{Reclen: abi.DirentMaxSize + 1}
		b := abi.AppendDirent(nil, &d)
		b[len(b)-1] = 'x'
		_, _, err := abi.ReadDirent(b)
		assert.Error(t, err, wire.ErrMalformedInput)
		assert.Error(t, err, wire.ErrCapacityExceeded)
	})

	t.Run("oversized padding", func(t *testing.T) {
		d := abi.LibcDirent{Reclen: abi.DirentMaxSize + 5}
		_, _, err := abi.ReadDirent(abi.AppendDirent(nil, &d))
		assert.OK(t, err)
	})
}

func TestParseDirents(t *testing.T) {
	records := []abi.LibcDirent{
		{Ino: 10, Off: 1, Reclen: 24, Type: abi.DT_DIR, RawName: [256]byte{'.'}},
		{Ino: 11, Off: 2, Reclen: 24, Type: abi.DT_DIR, RawName: [256]byte{'.', '.'}},
		mustDirent(t, 12, 3, abi.Regular, "hello.txt"),
		mustDirent(t, 13, 4, abi.Fifo, "pipe"),
	}
	var b []byte
	for i := range records {
		b = abi.AppendDirent(b, &records[i])
	}

	entries, rest, err := abi.ParseDirents(b, nil)
	assert.OK(t, err)
	assert.Equal(t, len(rest), 0)
	assert.Equal(t, len(entries), 4)

	want := []struct {
		ino  uint64
		kind abi.FileKind
		name string
	}{
		{10, abi.Directory, "."},
		{11, abi.Directory, ".."},
		{12, abi.Regular, "hello.txt"},
		{13, abi.Fifo, "pipe"},
	}
	for i, w := range want {
		assert.Equal(t, entries[i].Ino, w.ino)
		assert.Equal(t, entries[i].Kind, w.kind)
		assert.Equal(t, entries[i].Name(), w.name)
	}

	t.Run("truncated tail", func(t *testing.T) {
		entries, rest, err := abi.ParseDirents(b[:len(b)-2], nil)
		assert.Error(t, err, wire.ErrMalformedInput)
		assert.Equal(t, len(entries), 3)
		assert.Equal(t, len(rest), int(records[3].Reclen)-2)
	})
}
