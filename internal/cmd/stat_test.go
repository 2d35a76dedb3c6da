package cmd_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/assert"
	"gopkg.in/yaml.v3"
)

func writeStats(t *testing.T) string {
	records := []abi.LibcStat{
		{
			Ino:      7,
			RawMode:  abi.Regular.Mode() | uint32(abi.S_IRUSR|abi.S_IWUSR),
			Nlink:    1,
			Uid:      1000,
			Gid:      100,
			Size:     2048,
			MtimeSec: 1700000000,
		},
		{
			Ino:     8,
			RawMode: abi.Directory.Mode() | uint32(abi.S_IRUSR|abi.S_IWUSR|abi.S_IXUSR),
			Nlink:   2,
			Size:    4096,
		},
	}
	var b []byte
	for i := range records {
		b = abi.AppendStat(b, &records[i])
	}
	path := filepath.Join(t.TempDir(), "stats.bin")
	assert.OK(t, os.WriteFile(path, b, 0666))
	return path
}

var stat = tests{
	"the text output is a table of file status": func(t *testing.T) {
		stdout, stderr, exitCode := kmc(t, "stat", writeStats(t))
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stderr, "")

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, len(lines), 3)
		assert.EqualAll(t, strings.Fields(lines[0]), []string{"INODE", "KIND", "MODE", "LINKS", "UID", "GID", "SIZE", "MODIFIED"})
		assert.HasPrefix(t, lines[1], "7 ")
		assert.True(t, strings.Contains(lines[1], " regular "))
		assert.True(t, strings.Contains(lines[1], " 2 KiB "))
		assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), " 2023-11-14T22:13:20Z"))
	},

	"the yaml output lists the decoded records": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "stat", "-o", "yaml", writeStats(t))
		assert.Equal(t, exitCode, 0)

		type record struct {
			Ino   uint64 `yaml:"ino"`
			Kind  string `yaml:"kind"`
			Nlink uint32 `yaml:"nlink"`
			Uid   uint32 `yaml:"uid"`
			Size  int64  `yaml:"size"`
		}
		var records []record
		d := yaml.NewDecoder(strings.NewReader(stdout))
		for {
			var r record
			if err := d.Decode(&r); err != nil {
				break
			}
			records = append(records, r)
		}
		assert.EqualAll(t, records, []record{
			{Ino: 7, Kind: "regular", Nlink: 1, Uid: 1000, Size: 2048},
			{Ino: 8, Kind: "directory", Nlink: 2, Size: 4096},
		})
	},

	"a buffer which is not a sequence of records causes an error": func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats.bin")
		assert.OK(t, os.WriteFile(path, make([]byte, abi.SizeofLibcStat+1), 0666))

		_, stderr, exitCode := kmc(t, "stat", path)
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stderr, "ERR: kmc stat: buffer of 129 bytes is not a sequence of 128 bytes stat records\n")
	},
}
