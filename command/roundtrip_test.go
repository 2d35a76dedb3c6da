//go:build !harness && !checker

package command_test

import (
	"testing"

	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/command"
	"github.com/stealthrocket/kmc/internal/assert"
)

func roundTrip[T any, P interface {
	*T
	command.Command
}](t *testing.T, c T) {
	t.Helper()
	b := command.Encode(nil, P(&c))

	got, rest, err := command.Decode[T, P](append(b, 0xFF))
	assert.OK(t, err)
	assert.DeepEqual(t, got, c)
	assert.EqualAll(t, rest, []byte{0xFF})
}

func TestCommandRoundTrip(t *testing.T) {
	tests := map[string]func(*testing.T){
		"openat": func(t *testing.T) {
			roundTrip(t, command.NewOpenat(3, command.MustPath("/tmp/x"), abi.O_CREAT|abi.O_WRONLY, abi.S_IRUSR|abi.S_IWUSR))
		},
		"openat with no flags": func(t *testing.T) {
			roundTrip(t, command.NewOpenat(0, command.Path{}, abi.O_RDONLY, 0))
		},
		"openat with all flags": func(t *testing.T) {
			roundTrip(t, command.NewOpenat(-100, longPath, allOpenFlags, abi.FileModeKnown))
		},
		"close": func(t *testing.T) {
			roundTrip(t, command.NewClose(1<<30))
		},
		"fstat": func(t *testing.T) {
			roundTrip(t, command.NewFstat(-1))
		},
		"getdents": func(t *testing.T) {
			roundTrip(t, command.NewGetdents(4, 1<<63))
		},
		"linkat": func(t *testing.T) {
			roundTrip(t, command.NewLinkat(3, command.MustPath("a"), 4, longPath))
		},
		"unlinkat": func(t *testing.T) {
			roundTrip(t, command.NewUnlinkat(3, command.MustPath("dir"), abi.AT_REMOVEDIR))
		},
		"mkdirat": func(t *testing.T) {
			roundTrip(t, command.NewMkdirat(3, longPath, abi.S_IRUSR|abi.S_IXUSR))
		},
		"getcwd": func(t *testing.T) {
			roundTrip(t, command.NewGetcwd())
		},
		"dup": func(t *testing.T) {
			roundTrip(t, command.NewDup(2))
		},
		"chdir": func(t *testing.T) {
			roundTrip(t, command.NewChdir(command.MustPath("..")))
		},
		"brk": func(t *testing.T) {
			roundTrip(t, command.NewBrk(0xFFFF_FFFF_FFFF_F000))
		},
		"sbrk": func(t *testing.T) {
			roundTrip(t, command.NewSbrk(-4096))
		},
		"mmap": func(t *testing.T) {
			roundTrip(t, command.NewMmap(0, 1<<20, abi.PROT_READ|abi.PROT_WRITE, abi.MAP_PRIVATE|abi.MAP_FIXED))
		},
		"mmap with no flags": func(t *testing.T) {
			roundTrip(t, command.NewMmap(0, 0, 0, 0))
		},
		"munmap": func(t *testing.T) {
			roundTrip(t, command.NewMunmap(0x7f0000000000, 4096))
		},
		"mprotect": func(t *testing.T) {
			roundTrip(t, command.NewMprotect(0x1000, 0x2000, abi.ProtFlagsKnown))
		},
	}

	for scenario, test := range tests {
		t.Run(scenario, test)
	}
}

func TestDecodeEncodedFlagsDropUnknownBits(t *testing.T) {
	c := command.Openat{Flags: 0xFFFFFFFF, Mode: 0xFFFFFFFF}
	got, _, err := command.Decode[command.Openat](command.Marshal(&c))
	assert.OK(t, err)
	assert.Equal(t, got.Flags, abi.OpenFlagsKnown)
	assert.Equal(t, got.Mode, abi.FileModeKnown)
}

func TestDecodeEncodedCommands(t *testing.T) {
	openat := command.NewOpenat(-100, command.MustPath("file"), abi.O_RDONLY, 0)
	fstat := command.NewFstat(3)
	closefd := command.NewClose(3)

	var b []byte
	b = command.Encode(b, &openat)
	b = command.Encode(b, &fstat)
	b = command.Encode(b, &closefd)

	var got []command.Command
	for len(b) > 0 {
		c, rest, err := command.DecodeAny(b, false)
		assert.OK(t, err)
		got = append(got, c)
		b = rest
	}
	assert.DeepEqual(t, got, []command.Command{&openat, &fstat, &closefd})
}
