package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/print/textprint"
	"github.com/stealthrocket/kmc/internal/stream"
)

const direntsUsage = `
Usage:	kmc dirents [options] <file>

   The dirents command decodes a buffer of directory entries in the layout
   returned by the getdents64 system call on Linux, and prints the entries.

   The buffer is read from the standard input when its path is "-".

Example:

   $ kmc probe --dirents /tmp/dirents.bin /tmp
   $ kmc dirents /tmp/dirents.bin
   INODE    OFFSET               RECLEN  KIND       NAME
   ...

Options:
   -c, --config path    Path to the kmc configuration file (overrides KMCCONFIG)
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
   -q, --quiet          Only print the names of the entries (text output only)
   -v, --verbose        Enable debug logs
`

type direntRow struct {
	Ino    uint64       `json:"ino"    yaml:"ino"    text:"INODE"`
	Off    uint64       `json:"off"    yaml:"off"    text:"OFFSET"`
	Reclen uint16       `json:"reclen" yaml:"reclen" text:"RECLEN"`
	Kind   abi.FileKind `json:"kind"   yaml:"kind"   text:"KIND"`
	Name   string       `json:"name"   yaml:"name"   text:"NAME"`
}

func dirents(ctx context.Context, args []string) error {
	var (
		output outputFormat
		quiet  bool
	)

	flagSet := newFlagSet("kmc dirents", direntsUsage)
	customVar(flagSet, &output, "o", "output")
	boolVar(flagSet, &quiet, "q", "quiet")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("Expected exactly one file to decode as argument")
	}

	ctx, config, err := setup(ctx, "dirents")
	if err != nil {
		return err
	}
	if output, err = output.orDefault(config); err != nil {
		return err
	}

	b, err := readInput(args[0])
	if err != nil {
		return err
	}
	rows, err := decodeDirents(b)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int("size", len(b)).Int("entries", len(rows)).Msg("decoded directory entries")

	if quiet && output == "text" {
		w := textprint.NewWriter[string](os.Stdout)
		for _, row := range rows {
			if _, err := w.Write([]string{row.Name}); err != nil {
				return err
			}
		}
		return w.Close()
	}

	w := newWriter(os.Stdout, output, func(w io.Writer) stream.WriteCloser[direntRow] {
		return textprint.NewTableWriter[direntRow](w)
	})
	if _, err := w.Write(rows); err != nil {
		return err
	}
	return w.Close()
}

func decodeDirents(b []byte) ([]direntRow, error) {
	var rows []direntRow
	for offset := 0; offset < len(b); {
		d, rest, err := abi.ReadDirent(b[offset:])
		if err != nil {
			return rows, fmt.Errorf("directory entry at offset %d: %w", offset, err)
		}
		e := d.DirEntry()
		rows = append(rows, direntRow{
			Ino:    d.Ino,
			Off:    d.Off,
			Reclen: d.Reclen,
			Kind:   e.Kind,
			Name:   e.Name(),
		})
		offset = len(b) - len(rest)
	}
	return rows, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
