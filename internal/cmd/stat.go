package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/abi"
	"github.com/stealthrocket/kmc/internal/print/human"
	"github.com/stealthrocket/kmc/internal/print/textprint"
	"github.com/stealthrocket/kmc/internal/stream"
)

const statUsage = `
Usage:	kmc stat [options] <file>

   The stat command decodes a buffer of file status records in the layout
   filled by the stat family of system calls on Linux, and prints them. The
   buffer may contain any number of consecutive records.

   The buffer is read from the standard input when its path is "-".

Example:

   $ kmc probe --stats /tmp/stats.bin /tmp
   $ kmc stat /tmp/stats.bin
   INODE    KIND       MODE  LINKS  UID  GID  SIZE   MODIFIED
   ...

Options:
   -c, --config path    Path to the kmc configuration file (overrides KMCCONFIG)
   -h, --help           Show this usage information
   -o, --output format  Output format, one of: text, json, yaml
   -v, --verbose        Enable debug logs
`

type statRow struct {
	Ino      uint64       `json:"ino"      yaml:"ino"      text:"INODE"`
	Kind     abi.FileKind `json:"kind"     yaml:"kind"     text:"KIND"`
	Mode     abi.FileMode `json:"mode"     yaml:"mode"     text:"MODE"`
	Nlink    uint32       `json:"nlink"    yaml:"nlink"    text:"LINKS"`
	Uid      uint32       `json:"uid"      yaml:"uid"      text:"UID"`
	Gid      uint32       `json:"gid"      yaml:"gid"      text:"GID"`
	Size     human.Bytes  `json:"size"     yaml:"size"     text:"SIZE"`
	Modified time.Time    `json:"modified" yaml:"modified" text:"MODIFIED"`
}

func stat(ctx context.Context, args []string) error {
	var output outputFormat

	flagSet := newFlagSet("kmc stat", statUsage)
	customVar(flagSet, &output, "o", "output")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("Expected exactly one file to decode as argument")
	}

	ctx, config, err := setup(ctx, "stat")
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
	rows, err := decodeStats(b)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Int("size", len(b)).Int("records", len(rows)).Msg("decoded file status")

	w := newWriter(os.Stdout, output, func(w io.Writer) stream.WriteCloser[statRow] {
		return textprint.NewTableWriter[statRow](w)
	})
	if _, err := w.Write(rows); err != nil {
		return err
	}
	return w.Close()
}

func decodeStats(b []byte) ([]statRow, error) {
	if len(b)%abi.SizeofLibcStat != 0 {
		return nil, fmt.Errorf("buffer of %d bytes is not a sequence of %d bytes stat records", len(b), abi.SizeofLibcStat)
	}
	rows := make([]statRow, 0, len(b)/abi.SizeofLibcStat)
	for len(b) > 0 {
		st, rest, err := abi.ReadStat(b)
		if err != nil {
			return rows, err
		}
		fs := st.FileStat()
		rows = append(rows, statRow{
			Ino:      fs.Ino,
			Kind:     fs.Kind,
			Mode:     fs.Mode,
			Nlink:    fs.Nlink,
			Uid:      fs.Uid,
			Gid:      fs.Gid,
			Size:     human.Bytes(fs.Size),
			Modified: st.ModifyTime().UTC(),
		})
		b = rest
	}
	return rows, nil
}
