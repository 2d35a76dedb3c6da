package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stealthrocket/kmc/internal/assert"
)

var config = tests{
	"the text output is the content of the configuration file": func(t *testing.T) {
		b, err := os.ReadFile("testdata/config.yaml")
		assert.OK(t, err)

		stdout, stderr, exitCode := kmc(t, "config")
		assert.Equal(t, exitCode, 0)
		assert.Equal(t, stdout, string(b))
		assert.Equal(t, stderr, "")
	},

	"the json output is the effective configuration": func(t *testing.T) {
		stdout, _, exitCode := kmc(t, "config", "-o", "json")
		assert.Equal(t, exitCode, 0)

		var c struct {
			Transcript struct {
				Compression string `json:"compression"`
				BatchSize   int    `json:"batchSize"`
			} `json:"transcript"`
			Output string `json:"output"`
			Log    struct {
				Level string `json:"level"`
			} `json:"log"`
		}
		assert.OK(t, json.Unmarshal([]byte(stdout), &c))
		assert.Equal(t, c.Transcript.Compression, "snappy")
		assert.Equal(t, c.Transcript.BatchSize, 2)
		assert.Equal(t, c.Output, "text")
		assert.Equal(t, c.Log.Level, "warn")
	},

	"a missing configuration file prints the defaults": func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		stdout, _, exitCode := kmc(t, "config", "-c", path)
		assert.Equal(t, exitCode, 0)
		assert.HasPrefix(t, stdout, "transcript:\n    compression: zstd\n")

		_, err := os.Stat(path)
		assert.Error(t, err, os.ErrNotExist)
	},

	"editing without an editor causes an error": func(t *testing.T) {
		t.Setenv("EDITOR", "")
		_, stderr, exitCode := kmc(t, "config", "--edit", "-c", filepath.Join(t.TempDir(), "config.yaml"))
		assert.Equal(t, exitCode, 1)
		assert.Equal(t, stderr, "ERR: kmc config: $EDITOR is not set\n")
	},

	"editing applies the changes of the editor": func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "kmc", "config.yaml")
		t.Setenv("EDITOR", "sed -i -e s/zstd/snappy/")

		stdout, _, exitCode := kmc(t, "config", "--edit", "-c", path, "-o", "json")
		assert.Equal(t, exitCode, 0)

		var c struct {
			Transcript struct {
				Compression string `json:"compression"`
			} `json:"transcript"`
		}
		assert.OK(t, json.Unmarshal([]byte(stdout), &c))
		assert.Equal(t, c.Transcript.Compression, "snappy")

		_, err := os.Stat(path)
		assert.OK(t, err)
	},
}
