package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stealthrocket/kmc/internal/assert"
)

const decodedScenario = `openat dirfd=3 path="/tmp/x" flags=WRONLY|CREAT mode=USER_READ|USER_WRITE
getdents fd=3 count=38
close fd=3
brk addr=4096
`

func writeRawScenario(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "commands.bin")
	assert.OK(t, os.WriteFile(path, rawScenario(), 0666))
	return path
}

func writeTranscript(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "session.kmct")
	_, _, exitCode := kmc(t, "encode", "-o", path, "testdata/scenario.yaml")
	assert.Equal(t, exitCode, 0)
	return path
}

var decode = tests{
	"decoding a transcript prints one command per line": func(t *testing.T) {
		stdout, stderr, exitCode := kmc(t, "decode", writeTranscript(t))
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, decodedScenario)
		assert.Equal(t, stderr, "")
	},

	"decoding multiple transcripts concatenates their commands": func(t *testing.T) {
		path := writeTranscript(t)
		stdout, _, exitCode := kmc(t, "decode", path, path)
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, decodedScenario+decodedScenario)
	},

	"decoding raw commands prints one command per line": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "decode", "--raw", writeRawScenario(t))
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, decodedScenario)
	},

	"the sbrk option decodes brk commands as sbrk": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "decode", "--raw", "--sbrk", writeRawScenario(t))
		assert.Equal(t, exitCode, 0)
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		assert.Equal(t, len(lines), 4)
		// 4096 is the varint encoding of 2048 when read as a signed value.
		assert.Equal(t, lines[3], "sbrk increment=2048")
	},

	"the hex option prints the encoded bytes of commands": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "decode", "--raw", "-x", writeRawScenario(t))
		assert.Equal(t, exitCode, 0)
		lines := strings.Split(stdout, "\n")
		assert.Equal(t, lines[0], `openat dirfd=3 path="/tmp/x" flags=WRONLY|CREAT mode=USER_READ|USER_WRITE`)
		assert.HasPrefix(t, lines[1], "    | 00000000  38 00 00 00 00 00 00 00  06 06 2f 74 6d 70 2f 78  |8.........")
	},

	"the yaml output is a scenario which encodes to the same commands": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "decode", "-o", "yaml", writeTranscript(t))
		assert.Equal(t, exitCode, 0)

		path := filepath.Join(t.TempDir(), "scenario.yaml")
		assert.OK(t, os.WriteFile(path, []byte(stdout), 0666))

		encoded, _, exitCode := kmc(t, "encode", "--raw", path)
		assert.Equal(t, exitCode, 0)
		assert.True(t, bytes.Equal([]byte(encoded), rawScenario()))
	},

	"the json output is a list of commands": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "decode", "-o", "json", writeTranscript(t))
		assert.Equal(t, exitCode, 0)

		var steps []map[string]any
		assert.OK(t, json.Unmarshal([]byte(stdout), &steps))
		assert.Equal(t, len(steps), 4)
		assert.Equal(t, steps[0]["op"], any("openat"))
		assert.Equal(t, steps[0]["path"], any("/tmp/x"))
		assert.Equal(t, steps[0]["flags"], any("WRONLY|CREAT"))
		assert.Equal(t, steps[2]["op"], any("close"))
		assert.Equal(t, steps[2]["fd"], any(3.0))
	},

	"decoding a file which is not a transcript causes an error": func(t *testing.T) {
		_, stderr, exitCode := kmc(t, "decode", writeRawScenario(t))
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: kmc decode: ")
	},

	"decoding truncated raw commands causes an error": func(t *testing.T) {
		raw := rawScenario()
		path := filepath.Join(t.TempDir(), "commands.bin")
		assert.OK(t, os.WriteFile(path, raw[:len(raw)-1], 0666))

		stdout, stderr, exitCode := kmc(t, "decode", "--raw", path)
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stdout, "openat ")
		assert.HasPrefix(t, stderr, "ERR: kmc decode: ")
	},

	"decoding a missing file causes an error": func(t *testing.T) {
		_, stderr, exitCode := kmc(t, "decode", filepath.Join(t.TempDir(), "missing"))
		assert.Equal(t, exitCode, 1)
		assert.HasPrefix(t, stderr, "ERR: kmc decode: open ")
	},

	"calling decode without files causes a usage error": func(t *testing.T) {
		_, stderr, exitCode := kmc(t, "decode")
		assert.Equal(t, exitCode, 2)
		assert.Equal(t, stderr, "Expected at least one file to decode as argument\n")
	},
}
