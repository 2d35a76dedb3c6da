package cmd

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/command"
	"github.com/stealthrocket/kmc/internal/print/jsonprint"
	"github.com/stealthrocket/kmc/internal/print/textprint"
	"github.com/stealthrocket/kmc/internal/print/yamlprint"
	"github.com/stealthrocket/kmc/internal/scenario"
	"github.com/stealthrocket/kmc/internal/stream"
	"github.com/stealthrocket/kmc/internal/transcript"
)

const decodeUsage = `
Usage:	kmc decode [options] <file>...

   The decode command prints the commands recorded in transcripts, or with
   --raw, the commands encoded back to back in a file as the harness receives
   them.

   Commands which share an identifier decode as the first registered type
   (e.g. brk) unless --sbrk is set.

   The json and yaml outputs are a single list of commands. The yaml output is
   a scenario which can be encoded again with 'kmc encode'.

Example:

   $ kmc decode session.kmct
   openat dirfd=3 path="/tmp/x" flags=WRONLY|CREAT mode=USER_READ|USER_WRITE
   close fd=3

Options:
   -c, --config path    Path to the kmc configuration file (overrides KMCCONFIG)
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
       --raw            Decode files of encoded commands instead of transcripts
       --sbrk           Decode commands sharing the brk identifier as sbrk
   -v, --verbose        Enable debug logs
   -x, --hex            Print the encoded bytes of each command (text output only)
`

func decode(ctx context.Context, args []string) error {
	var (
		output outputFormat
		raw    bool
		sbrk   bool
		dump   bool
	)

	flagSet := newFlagSet("kmc decode", decodeUsage)
	customVar(flagSet, &output, "o", "output")
	boolVar(flagSet, &raw, "raw")
	boolVar(flagSet, &sbrk, "sbrk")
	boolVar(flagSet, &dump, "x", "hex")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return usageError("Expected at least one file to decode as argument")
	}

	ctx, config, err := setup(ctx, "decode")
	if err != nil {
		return err
	}
	if output, err = output.orDefault(config); err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)

	readers := make([]stream.Reader[command.Command], 0, len(args))
	for _, path := range args {
		f, err := openInput(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if raw {
			b, err := io.ReadAll(f)
			if err != nil {
				return err
			}
			readers = append(readers, &rawReader{input: b, alternate: sbrk})
			continue
		}

		r := transcript.NewReader(f)
		h, err := r.Header()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		log.Debug().
			Str("path", path).
			Stringer("session", h.Session).
			Stringer("compression", h.Compression).
			Msg("reading transcript")
		readers = append(readers, transcript.Commands(r, sbrk))
	}

	steps := stream.ConvertReader(stream.MultiReader(readers...), func(c command.Command) (scenario.Step, error) {
		return scenario.Step{Command: c}, nil
	})

	if output != "text" {
		var w stream.WriteCloser[scenario.Step]
		if output == "json" {
			w = jsonprint.NewListWriter[scenario.Step](os.Stdout)
		} else {
			w = yamlprint.NewListWriter[scenario.Step](os.Stdout)
		}
		all, err := stream.ReadAll(steps)
		if err != nil {
			return err
		}
		log.Debug().Int("commands", len(all)).Msg("decoded commands")
		if _, err := w.Write(all); err != nil {
			return err
		}
		return w.Close()
	}

	w := &stepWriter{output: bufio.NewWriter(os.Stdout), dump: dump}
	defer w.output.Flush()

	count := 0
	it := stream.Iter(steps)
	for it.Next() {
		if err := w.write(it.Value()); err != nil {
			return err
		}
		count++
	}
	if err := it.Err(); err != nil {
		return err
	}
	log.Debug().Int("commands", count).Msg("decoded commands")
	return w.output.Flush()
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// rawReader decodes the commands encoded back to back in a buffer.
type rawReader struct {
	input     []byte
	alternate bool
}

func (r *rawReader) Read(commands []command.Command) (n int, err error) {
	for n < len(commands) && len(r.input) > 0 {
		c, rest, err := command.DecodeAny(r.input, r.alternate)
		if err != nil {
			return n, err
		}
		commands[n] = c
		r.input = rest
		n++
	}
	if len(r.input) == 0 {
		err = io.EOF
	}
	return n, err
}

// stepWriter writes one step per line, optionally followed by a hex dump of
// the encoded command.
type stepWriter struct {
	output *bufio.Writer
	dump   bool
	buffer []byte
}

func (w *stepWriter) write(step scenario.Step) error {
	if _, err := fmt.Fprintln(w.output, step); err != nil {
		return err
	}
	if !w.dump {
		return nil
	}
	w.buffer = command.Encode(w.buffer[:0], step.Command)
	d := hex.Dumper(textprint.QuoteBytes(w.output))
	_, _ = d.Write(w.buffer)
	if err := d.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w.output, "\n")
	return err
}
