// Package config loads the configuration of the kmc tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/internal/print/human"
	"github.com/stealthrocket/kmc/internal/transcript"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is the location of the configuration file when neither
	// the KMCCONFIG environment variable nor a command line option set it.
	DefaultPath = "~/.kmc/config.yaml"

	// PathEnv is the environment variable overriding DefaultPath.
	PathEnv = "KMCCONFIG"
)

// Path is the path to the kmc configuration.
var Path human.Path = DefaultPath

func init() {
	if p := os.Getenv(PathEnv); p != "" {
		Path = human.Path(p)
	}
}

// Load opens and reads the configuration file.
func Load() (*Config, error) {
	r, _, err := Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Read(r)
}

// Open opens the configuration file. When the file does not exist, the
// returned reader produces the default configuration.
func Open() (io.ReadCloser, string, error) {
	path, err := Path.Resolve()
	if err != nil {
		return nil, path, err
	}
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
		b, _ := yaml.Marshal(Default())
		return io.NopCloser(bytes.NewReader(b)), path, nil
	}
	return f, path, nil
}

// Read reads and parses configuration. Unknown fields are errors.
func Read(r io.Reader) (*Config, error) {
	c := Default()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil {
		if err == io.EOF {
			return c, nil
		}
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	return c, nil
}

// Default is the default configuration.
func Default() *Config {
	c := new(Config)
	c.Transcript.Compression = transcript.Zstd
	c.Transcript.BatchSize = transcript.DefaultBatchSize
	c.Output = "text"
	c.Log.Level = NullableValue(Level(zerolog.InfoLevel))
	return c
}

// Config is the kmc configuration.
type Config struct {
	Transcript struct {
		Compression transcript.Compression `json:"compression" yaml:"compression"`
		BatchSize   int                    `json:"batchSize" yaml:"batchSize"`
	} `json:"transcript" yaml:"transcript"`
	Output string `json:"output" yaml:"output"`
	Log    Log    `json:"log" yaml:"log"`
}

// Log is the logging section of the configuration.
type Log struct {
	Level Nullable[Level] `json:"level" yaml:"level"`
}

// UnmarshalYAML decodes the section on top of the current values. A null
// level overrides the default instead of being skipped like other null
// values.
func (l *Log) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: log must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "level":
			if value.ShortTag() == "!!null" {
				l.Level = Nullable[Level]{}
			} else if err := value.Decode(&l.Level); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: field %s not found in log", key.Line, key.Value)
		}
	}
	return nil
}

// Level is a zerolog level in its textual form. A null level disables
// logging.
type Level zerolog.Level

func (l Level) String() string { return zerolog.Level(l).String() }

func (l Level) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Level) UnmarshalText(b []byte) error {
	level, err := zerolog.ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = Level(level)
	return nil
}

// LogLevel returns the configured log level, zerolog.Disabled if logging is
// turned off.
func (c *Config) LogLevel() zerolog.Level {
	if level, ok := c.Log.Level.Value(); ok {
		return zerolog.Level(level)
	}
	return zerolog.Disabled
}
