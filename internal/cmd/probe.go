package cmd

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/stealthrocket/kmc/internal/print/textprint"
	"github.com/stealthrocket/kmc/internal/probe"
	"github.com/stealthrocket/kmc/internal/stream"
)

const probeUsage = `
Usage:	kmc probe [options] <directory>

   The probe command reads the entries of a directory and the status of each
   file with the system calls of the host kernel, then decodes the records with
   the layouts that the harness uses. Only Linux hosts are supported.

   The raw buffers returned by the kernel can be saved with --dirents and
   --stats, and decoded again with 'kmc dirents' and 'kmc stat'.

Example:

   $ kmc probe /tmp
   INODE    KIND       MODE                      LINKS  SIZE     NAME
   ...

Options:
   -c, --config path     Path to the kmc configuration file (overrides KMCCONFIG)
       --dirents path    Write the getdents64 buffers to this file
   -h, --help            Show this usage information
   -j, --jobs count      Number of concurrent stat calls (default 8)
   -o, --output format   Output format, one of: text, json, yaml
       --stats path      Write the stat records to this file
   -v, --verbose         Enable debug logs
`

func probeDir(ctx context.Context, args []string) error {
	var (
		output      outputFormat
		concurrency = probe.DefaultConcurrency
		direntsPath string
		statsPath   string
	)

	flagSet := newFlagSet("kmc probe", probeUsage)
	customVar(flagSet, &output, "o", "output")
	intVar(flagSet, &concurrency, "j", "jobs")
	flagSet.StringVar(&direntsPath, "dirents", "", "")
	flagSet.StringVar(&statsPath, "stats", "", "")

	args, err := parseFlags(flagSet, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usageError("Expected exactly one directory to probe as argument")
	}
	if concurrency <= 0 {
		return usageError("Invalid number of jobs: %d", concurrency)
	}

	ctx, config, err := setup(ctx, "probe")
	if err != nil {
		return err
	}
	if output, err = output.orDefault(config); err != nil {
		return err
	}
	log := zerolog.Ctx(ctx)

	res, err := probe.Dir(ctx, args[0], concurrency)
	if err != nil {
		return err
	}
	log.Debug().
		Str("path", args[0]).
		Int("entries", len(res.Entries)).
		Int("dirents", len(res.Dirents)).
		Int("stats", len(res.Stats)).
		Msg("probed directory")

	for _, e := range res.Entries {
		if e.Error != "" {
			log.Warn().Str("name", e.Name).Str("error", e.Error).Msg("reading file status")
		}
	}

	if direntsPath != "" {
		if err := os.WriteFile(direntsPath, res.Dirents, 0666); err != nil {
			return err
		}
	}
	if statsPath != "" {
		if err := os.WriteFile(statsPath, res.Stats, 0666); err != nil {
			return err
		}
	}

	w := newWriter(os.Stdout, output, func(w io.Writer) stream.WriteCloser[probe.Entry] {
		return textprint.NewTableWriter[probe.Entry](w,
			textprint.OrderBy(func(a, b probe.Entry) bool {
				return a.Name < b.Name
			}),
		)
	})
	if _, err := w.Write(res.Entries); err != nil {
		return err
	}
	return w.Close()
}
