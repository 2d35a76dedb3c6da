package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/command"
	"github.com/stealthrocket/kmc/internal/scenario"
	"github.com/stealthrocket/kmc/internal/transcript"
)

const encodeUsage = `
Usage:	kmc encode [options] <scenario>

   The encode command reads a scenario of commands in YAML and encodes them in
   the format that the harness decodes.

   By default the commands are written to a transcript, which records each
   encoded command in compressed batches. With --raw, the encoded commands are
   written back to back, exactly as the checker sends them.

   The scenario is read from the standard input when its path is "-".

Example:

   $ cat scenario.yaml
   - op: openat
     dirfd: 3
     path: /tmp/x
     flags: CREAT|WRONLY
     mode: USER_READ|USER_WRITE
   - op: close
     fd: 3

   $ kmc encode -o session.kmct scenario.yaml

Options:
   -c, --config path         Path to the kmc configuration file (overrides KMCCONFIG)
       --compression type    Compression of the transcript, one of: none, snappy, zstd
   -h, --help                Show this usage information
   -o, --output path         Path of the output file (default to stdout)
       --raw                 Write the encoded commands without a transcript
   -v, --verbose             Enable debug logs
`

func encode(ctx context.Context, args []string) error {
	var (
		compression compressionFlag
		outputPath  string
		raw         bool
	)

	flagSet := newFlagSet("kmc encode", encodeUsage)
	customVar(flagSet, &compression, "compression")
	flagSet.StringVar(&outputPath, "o", "", "")
	flagSet.StringVar(&outputPath, "output", "", "")
	boolVar(flagSet, &raw, "raw")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("Expected exactly one scenario file as argument")
	}

	ctx, config, err := setup(ctx, "encode")
	if err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)

	steps, err := loadScenario(args[0])
	if err != nil {
		return err
	}
	log.Debug().Str("scenario", args[0]).Int("steps", len(steps)).Msg("loaded scenario")

	output, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	defer output.Close()

	if raw {
		var buf []byte
		for _, step := range steps {
			buf = command.Encode(buf, step.Command)
		}
		log.Debug().Int("size", len(buf)).Msg("writing raw commands")
		if _, err := output.Write(buf); err != nil {
			return err
		}
		return output.Close()
	}

	if !compression.set {
		compression.value = config.Transcript.Compression
	}
	header := transcript.NewHeader(compression.value)
	w := transcript.NewWriter(output, header, config.Transcript.BatchSize)

	for _, step := range steps {
		if err := w.WriteCommand(step.Command); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.Debug().
		Stringer("session", header.Session).
		Stringer("compression", header.Compression).
		Int("commands", len(steps)).
		Msg("wrote transcript")
	return output.Close()
}

func loadScenario(path string) ([]scenario.Step, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	steps, err := scenario.Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}

// createOutput opens the file at path for writing, or returns stdout if the
// path is empty or "-". Closing the returned file more than once is not an
// error.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &onceCloser{File: f}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type onceCloser struct {
	*os.File
	closed bool
}

func (f *onceCloser) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.File.Close()
}

type compressionFlag struct {
	value transcript.Compression
	set   bool
}

func (c compressionFlag) String() string {
	return c.value.String()
}

func (c *compressionFlag) Set(value string) error {
	if err := c.value.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	c.set = true
	return nil
}
