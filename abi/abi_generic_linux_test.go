//go:build linux && (arm64 || riscv64 || loong64)

package abi_test

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/assert"
	"golang.org/x/sys/unix"
)

// On these architectures the kernel uses the generic struct stat, so the
// memory of unix.Stat_t must decode as a LibcStat record.
func TestLinuxStatLayout(t *testing.T) {
	assert.Equal(t, unsafe.Sizeof(unix.Stat_t{}), abi.SizeofLibcStat)

	path := filepath.Join(t.TempDir(), "file")
	assert.OK(t, os.WriteFile(path, []byte("hello"), 0640))

	var st unix.Stat_t
	assert.OK(t, unix.Stat(path, &st))

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&st)), unsafe.Sizeof(st))
	got, rest, err := abi.ReadStat(raw)
	assert.OK(t, err)
	assert.Equal(t, len(rest), 0)

	assert.Equal(t, got.Ino, st.Ino)
	assert.Equal(t, got.RawMode, st.Mode)
	assert.Equal(t, got.Size, st.Size)
	assert.Equal(t, got.Kind(), abi.Regular)
	assert.Equal(t, got.Mode()&abi.S_IRUSR, abi.S_IRUSR)
	assert.Equal(t, got.MtimeSec, st.Mtim.Sec)
	assert.Equal(t, got.MtimeNsec, st.Mtim.Nsec)
}
