package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/assert"
)

func writeDirents(t *testing.T) (string, []byte) {
	var b []byte
	for _, e := range []struct {
		ino  uint64
		kind abi.FileKind
		name string
	}{
		{ino: 1, kind: abi.Directory, name: "."},
		{ino: 2, kind: abi.Directory, name: ".."},
		{ino: 42, kind: abi.Regular, name: "file"},
	} {
		d, err := abi.NewLibcDirent(e.ino, uint64(len(b)+1), e.kind, e.name)
		assert.OK(t, err)
		b = abi.AppendDirent(b, &d)
	}
	path := filepath.Join(t.TempDir(), "dirents.bin")
	assert.OK(t, os.WriteFile(path, b, 0666))
	return path, b
}

var dirents = tests{
	"the quiet option prints the names of entries": func(t *testing.T) {
		path, _ := writeDirents(t)
		stdout, stderr, exitCode := kmc(t, "dirents", "-q", path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, ".\n..\nfile\n")
		assert.Equal(t, stderr, "")
	},

	"the text output is a table of entries": func(t *testing.T) {
		path, _ := writeDirents(t)
		stdout, _, exitCode := kmc(t, "dirents", path)
		assert.Equal(t, exitCode, 0)

		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, len(lines), 4)
		assert.EqualAll(t, strings.Fields(lines[0]), []string{"INODE", "OFFSET", "RECLEN", "KIND", "NAME"})
		assert.EqualAll(t, strings.Fields(lines[3]), []string{"42", "42", "23", "regular", "file"})
	},

	"the json output lists the decoded entries": func(t *testing.T) {
		path, _ := writeDirents(t)
		stdout, _, exitCode := kmc(t, "dirents", "-o", "json", path)
		assert.Equal(t, exitCode, 0)

		type entry struct {
			Ino    uint64 `json:"ino"`
			Off    uint64 `json:"off"`
			Reclen uint16 `json:"reclen"`
			Kind   string `json:"kind"`
			Name   string `json:"name"`
		}
		var entries []entry
		d := json.NewDecoder(strings.NewReader(stdout))
		for d.More() {
			var e entry
			assert.OK(t, d.Decode(&e))
			entries = append(entries, e)
		}
		assert.EqualAll(t, entries, []entry{
			{Ino: 1, Off: 1, Reclen: 20, Kind: "directory", Name: "."},
			{Ino: 2, Off: 21, Reclen: 21, Kind: "directory", Name: ".."},
			{Ino: 42, Off: 42, Reclen: 23, Kind: "regular", Name: "file"},
		})
	},

	"a truncated buffer reports the offset of the entry": func(t *testing.T) {
		_, b := writeDirents(t)
		path := filepath.Join(t.TempDir(), "truncated.bin")
		assert.OK(t, os.WriteFile(path, b[:len(b)-2], 0666))

		_, stderr, exitCode := kmc(t, "dirents", path)
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: kmc dirents: directory entry at offset 41: ")
	},

	"calling dirents without a file causes a usage error": func(t *testing.T) {
		_, _, exitCode := kmc(t, "dirents")
		assert.Equal(t, exitCode, 2)
	},
}
